package domain

import "Cataphract/internal/campaign/entity"

// Territory 表示目标格相对某统帅的立场。
type Territory string

const (
	TerritoryFriendly          Territory = "friendly"
	TerritoryRecentlyConquered Territory = "recently_conquered"
	TerritoryNeutral           Territory = "neutral"
	TerritoryHostile           Territory = "hostile"
)

// ClassifyTerritory 判断目标格对指定统帅是敌是友。
// 同势力或盟友视为友方；刚易手不足 recentDays 的友方格单列，
// 因为征募与征粮在这类地盘上更容易激起叛乱。
func ClassifyTerritory(c *entity.Campaign, commanderID entity.CommanderID, hex *entity.Hex, recentDays int) Territory {
	if hex == nil || hex.ControllingFactionID == nil {
		return TerritoryNeutral
	}
	commander := c.Commanders[commanderID]
	if commander == nil {
		return TerritoryNeutral
	}
	owner := *hex.ControllingFactionID
	friendly := owner == commander.FactionID
	if !friendly {
		if f := c.Factions[commander.FactionID]; f != nil && f.RelationTo(owner) == entity.RelationAllied {
			friendly = true
		}
	}
	if friendly {
		if hex.LastControlChangeDay != nil && c.CurrentDay-*hex.LastControlChangeDay <= recentDays {
			return TerritoryRecentlyConquered
		}
		return TerritoryFriendly
	}
	if f := c.Factions[commander.FactionID]; f != nil && f.RelationTo(owner) == entity.RelationNeutral {
		return TerritoryNeutral
	}
	return TerritoryHostile
}

// CommanderTraits 取军队统帅的特质表，统帅缺失时为空。
func CommanderTraits(c *entity.Campaign, army *entity.Army) []*entity.Trait {
	commander := c.Commanders[army.CommanderID]
	if commander == nil {
		return nil
	}
	return commander.Traits
}
