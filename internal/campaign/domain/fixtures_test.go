package domain

import (
	"fmt"
	"time"

	"Cataphract/internal/campaign/entity"
)

// 测试兵种目录的固定 ID。
const (
	utInfantry   entity.UnitTypeID = 1
	utCavalry    entity.UnitTypeID = 2
	utSkirmisher entity.UnitTypeID = 3
)

// newTestCampaign 造一条 12 格的东西向走廊：格 i 在 (i-1, 0)，全部通路。
func newTestCampaign() *entity.Campaign {
	c := entity.NewCampaign(1, "测试战役", time.Date(1250, 3, 1, 0, 0, 0, 0, time.UTC), entity.SeasonSummer)
	c.UnitTypes[utInfantry] = &entity.UnitType{ID: utInfantry, Name: "Levy Spears", Category: "infantry", BattleMultiplier: 1}
	c.UnitTypes[utCavalry] = &entity.UnitType{ID: utCavalry, Name: "Lancers", Category: "cavalry", BattleMultiplier: 1}
	c.UnitTypes[utSkirmisher] = &entity.UnitType{
		ID: utSkirmisher, Name: "Skirmishers", Category: "infantry", BattleMultiplier: 1,
		SpecialAbilities: map[string]any{
			"skirmisher":                   true,
			"offroad_full_speed":           true,
			"acts_as_cavalry_for_foraging": true,
		},
	}
	for i := 1; i <= 12; i++ {
		id := entity.HexID(i)
		c.Map.Hexes[id] = &entity.Hex{
			ID: id, CampaignID: c.ID, Q: i - 1, R: 0,
			Terrain: entity.TerrainFlatland, HasRoad: true,
			ForagingTimesRemaining: 5,
		}
	}
	return c
}

func addCommander(c *entity.Campaign, id entity.CommanderID, factionID entity.FactionID, traits ...string) *entity.Commander {
	if c.Factions[factionID] == nil {
		c.Factions[factionID] = &entity.Faction{ID: factionID, CampaignID: c.ID, Name: fmt.Sprintf("势力%d", factionID)}
	}
	commander := &entity.Commander{
		ID: id, CampaignID: c.ID, Name: fmt.Sprintf("指挥官%d", id),
		FactionID: factionID, Age: 40, Status: "active",
	}
	for i, name := range traits {
		commander.Traits = append(commander.Traits, &entity.Trait{ID: i + 1, Name: name})
	}
	c.Commanders[id] = commander
	return commander
}

func addArmy(c *entity.Campaign, id entity.ArmyID, commanderID entity.CommanderID, hexID entity.HexID, dets ...*entity.Detachment) *entity.Army {
	army := &entity.Army{
		ID: id, CampaignID: c.ID, CommanderID: commanderID, CurrentHexID: hexID,
		Detachments:             dets,
		Status:                  entity.ArmyIdle,
		MovementPointsRemaining: 1.0,
		MoraleCurrent:           9, MoraleResting: 9, MoraleMax: 12,
		SuppliesCurrent: 1000, SuppliesCapacity: 100000,
	}
	c.Armies[id] = army
	return army
}

func addRoad(c *entity.Campaign, from, to entity.HexID, status string) *entity.RoadEdge {
	edge := &entity.RoadEdge{
		FromHexID: from, ToHexID: to,
		Quality: "paved", BaseCostHours: 12, Status: status,
	}
	c.Map.Roads = append(c.Map.Roads, edge)
	return edge
}

func infantryDet(id entity.DetachmentID, soldiers, wagons int) *entity.Detachment {
	return &entity.Detachment{ID: id, UnitTypeID: utInfantry, Soldiers: soldiers, Wagons: wagons}
}

func cavalryDet(id entity.DetachmentID, soldiers int) *entity.Detachment {
	return &entity.Detachment{ID: id, UnitTypeID: utCavalry, Soldiers: soldiers}
}

func skirmisherDet(id entity.DetachmentID, soldiers int) *entity.Detachment {
	return &entity.Detachment{ID: id, UnitTypeID: utSkirmisher, Soldiers: soldiers}
}
