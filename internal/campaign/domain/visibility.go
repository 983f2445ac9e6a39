package domain

import (
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/hexx"
)

// operationalRadius 侦察与征粮共用的半径口径：基础 1，骑兵 +1，
// outrider 再 +1，坏天气扣减，ranger 免疫天气。
// cavalryAbility 指定哪类特殊能力让步兵按骑兵计。
func operationalRadius(c *entity.Campaign, army *entity.Army, traits []*entity.Trait, cfg *rules.Config, cavalryAbility string) int {
	hasCavalry := false
	for _, det := range army.Detachments {
		if unitCategory(c.UnitTypes, det.UnitTypeID) == "cavalry" ||
			abilityTrue(c.UnitTypes, det.UnitTypeID, cavalryAbility) {
			hasCavalry = true
			break
		}
	}

	radius := cfg.Visibility.BaseRadius
	if hasCavalry {
		radius += cfg.Visibility.CavalryBonus
		if hasTrait(traits, "outrider") {
			radius += cfg.Visibility.OutriderBonus
		}
	}

	if !hasTrait(traits, "ranger") {
		if w := c.WeatherToday(); w != nil {
			radius += w.VisibilityPenalty
		}
	}
	return maxInt(0, radius)
}

// ScoutingRadius 计算侦察半径（格）。
func ScoutingRadius(c *entity.Campaign, army *entity.Army, cfg *rules.Config) int {
	traits := CommanderTraits(c, army)
	return operationalRadius(c, army, traits, cfg, "acts_as_cavalry_for_scouting")
}

// VisibleHexes 返回以军队所在格为中心、侦察半径内的全部坐标。
func VisibleHexes(q, r, radius int) []hexx.Coord {
	coords, err := hexx.InRange(hexx.New(q, r), radius)
	if err != nil {
		return nil
	}
	return coords
}

// VisibleArmies 返回侦察半径内能看到的其他军队。
func VisibleArmies(c *entity.Campaign, observer *entity.Army, cfg *rules.Config) []*entity.Army {
	hex := c.Map.Hexes[observer.CurrentHexID]
	if hex == nil {
		return nil
	}
	radius := ScoutingRadius(c, observer, cfg)

	visible := make(map[hexx.Coord]bool)
	for _, coord := range VisibleHexes(hex.Q, hex.R, radius) {
		visible[coord] = true
	}

	var seen []*entity.Army
	for _, other := range c.Armies {
		if other.ID == observer.ID {
			continue
		}
		otherHex := c.Map.Hexes[other.CurrentHexID]
		if otherHex == nil {
			continue
		}
		if visible[hexx.New(otherHex.Q, otherHex.R)] {
			seen = append(seen, other)
		}
	}
	return seen
}
