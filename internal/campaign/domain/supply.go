package domain

import (
	"fmt"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
	"Cataphract/modules/kit/hexx"
)

// SupplySnapshot 是由分队构成推导出的后勤汇总。
type SupplySnapshot struct {
	TotalSoldiers     int     `json:"total_soldiers"`
	TotalCavalry      int     `json:"total_cavalry"`
	TotalWagons       int     `json:"total_wagons"`
	Noncombatants     int     `json:"noncombatants"`
	Capacity          int     `json:"capacity"`
	Consumption       int     `json:"consumption"`
	ColumnLengthMiles float64 `json:"column_length_miles"`
	WizardDetachments int     `json:"wizard_detachments"`
}

// ForageOutcome 是一次征粮行动的结果。
type ForageOutcome struct {
	Success        bool            `json:"success"`
	SuppliesGained int             `json:"supplies_gained"`
	ForagedHexes   []entity.HexID  `json:"foraged_hexes"`
	FailedHexes    []HexFailure    `json:"failed_hexes,omitempty"`
	RevoltHexes    []entity.HexID  `json:"revolt_hexes,omitempty"`
}

// TorchOutcome 是一次焚掠行动的结果。
type TorchOutcome struct {
	Success      bool           `json:"success"`
	TorchedHexes []entity.HexID `json:"torched_hexes"`
	FailedHexes  []HexFailure   `json:"failed_hexes,omitempty"`
	RevoltHexes  []entity.HexID `json:"revolt_hexes,omitempty"`
}

// HexFailure 记录某格行动失败及原因。
type HexFailure struct {
	HexID  entity.HexID `json:"hex_id"`
	Reason string       `json:"reason"`
}

type compositionTotals struct {
	infantry      int
	cavalry       int
	wagons        int
	noncombatants int
}

// BuildSupplySnapshot 计算军队的载量、日耗与行军纵队长度。
func BuildSupplySnapshot(c *entity.Campaign, army *entity.Army, cfg *rules.Config) SupplySnapshot {
	traits := CommanderTraits(c, army)

	totalSoldiers := 0
	totalCavalry := 0
	totalWagons := 0
	for _, det := range army.Detachments {
		totalSoldiers += det.Soldiers
		totalWagons += det.Wagons
		if unitCategory(c.UnitTypes, det.UnitTypeID) == "cavalry" {
			totalCavalry += det.Soldiers
		}
	}

	noncombatants := calculateNoncombatants(army, c.UnitTypes, traits, cfg)
	totals := compositionTotals{
		infantry:      totalSoldiers - totalCavalry,
		cavalry:       totalCavalry,
		wagons:        totalWagons,
		noncombatants: noncombatants,
	}

	return SupplySnapshot{
		TotalSoldiers:     totalSoldiers,
		TotalCavalry:      totalCavalry,
		TotalWagons:       totalWagons,
		Noncombatants:     noncombatants,
		Capacity:          calculateCapacity(totals, traits, army, c.UnitTypes, cfg),
		Consumption:       calculateConsumption(totals, cfg),
		ColumnLengthMiles: calculateColumnLength(totals, traits),
		WizardDetachments: countWizardDetachments(army, c.UnitTypes, cfg.Supply.WizardSupplyEncumbrance),
	}
}

// Forage 对目标格执行征粮，就地修改军队补给与格子计数。
// 叛乱只在结果里标记，叛军的生成由调用方统一编排。
func Forage(c *entity.Campaign, army *entity.Army, targets []entity.HexID, seed string, cfg *rules.Config) ForageOutcome {
	armyHex := c.Map.Hexes[army.CurrentHexID]
	if armyHex == nil {
		return ForageOutcome{FailedHexes: []HexFailure{{army.CurrentHexID, "army hex missing"}}}
	}

	traits := CommanderTraits(c, army)
	forageRange := foragingRange(c, army, traits, cfg)
	snapshot := BuildSupplySnapshot(c, army, cfg)

	outcome := ForageOutcome{}
	gainedTotal := 0

	for _, hexID := range targets {
		target := c.Map.Hexes[hexID]
		switch {
		case target == nil:
			outcome.FailedHexes = append(outcome.FailedHexes, HexFailure{hexID, "hex not found"})
			continue
		case hexDistance(armyHex, target) > forageRange:
			outcome.FailedHexes = append(outcome.FailedHexes, HexFailure{hexID, "hex out of range"})
			continue
		case target.IsTorched:
			outcome.FailedHexes = append(outcome.FailedHexes, HexFailure{hexID, "hex torched"})
			continue
		case target.ForagingTimesRemaining <= 0:
			outcome.FailedHexes = append(outcome.FailedHexes, HexFailure{hexID, "foraging exhausted"})
			continue
		case target.Settlement <= 0:
			outcome.FailedHexes = append(outcome.FailedHexes, HexFailure{hexID, "no settlement"})
			continue
		}

		if checkSupplyRevolt(c, army, target, "forage", fmt.Sprintf("%s:revolt:%d", seed, hexID), cfg) {
			outcome.RevoltHexes = append(outcome.RevoltHexes, hexID)
		}

		gained := target.Settlement * cfg.Supply.ForagingMultiplier
		if hasTrait(traits, "raider") {
			gained = int(float64(gained) * 1.10)
		}

		target.ForagingTimesRemaining--
		day := c.CurrentDay
		target.LastForagedDay = &day
		gainedTotal += gained
		outcome.ForagedHexes = append(outcome.ForagedHexes, hexID)
	}

	if gainedTotal > 0 {
		capacity := army.SuppliesCapacity
		if capacity == 0 {
			capacity = snapshot.Capacity
		}
		army.SuppliesCurrent = minInt(capacity, army.SuppliesCurrent+gainedTotal)
	}

	outcome.Success = len(outcome.ForagedHexes) > 0
	outcome.SuppliesGained = gainedTotal
	return outcome
}

// Torch 焚掠目标格，连带征粮半径内的格子一起烧毁。
func Torch(c *entity.Campaign, army *entity.Army, targets []entity.HexID, seed string, cfg *rules.Config) TorchOutcome {
	armyHex := c.Map.Hexes[army.CurrentHexID]
	if armyHex == nil {
		return TorchOutcome{FailedHexes: []HexFailure{{army.CurrentHexID, "army hex missing"}}}
	}

	traits := CommanderTraits(c, army)
	torchRange := foragingRange(c, army, traits, cfg)

	outcome := TorchOutcome{}
	for _, hexID := range targets {
		target := c.Map.Hexes[hexID]
		if target == nil {
			outcome.FailedHexes = append(outcome.FailedHexes, HexFailure{hexID, "hex not found"})
			continue
		}
		if hexDistance(armyHex, target) > torchRange {
			outcome.FailedHexes = append(outcome.FailedHexes, HexFailure{hexID, "hex out of range"})
			continue
		}

		if checkSupplyRevolt(c, army, target, "torch", fmt.Sprintf("%s:revolt:%d", seed, hexID), cfg) {
			outcome.RevoltHexes = append(outcome.RevoltHexes, hexID)
		}

		applyTorchEffect(c, target, torchRange)
		outcome.TorchedHexes = append(outcome.TorchedHexes, hexID)
	}

	if len(outcome.TorchedHexes) > 0 {
		army.Status = entity.ArmyTorching
	}
	outcome.Success = len(outcome.TorchedHexes) > 0
	return outcome
}

func unitCategory(unitTypes map[entity.UnitTypeID]*entity.UnitType, id entity.UnitTypeID) string {
	if ut := unitTypes[id]; ut != nil && ut.Category != "" {
		return ut.Category
	}
	return "infantry"
}

func unitAbility(unitTypes map[entity.UnitTypeID]*entity.UnitType, id entity.UnitTypeID, key string) (any, bool) {
	ut := unitTypes[id]
	if ut == nil || ut.SpecialAbilities == nil {
		return nil, false
	}
	v, ok := ut.SpecialAbilities[key]
	return v, ok
}

func abilityTrue(unitTypes map[entity.UnitTypeID]*entity.UnitType, id entity.UnitTypeID, key string) bool {
	v, ok := unitAbility(unitTypes, id, key)
	if !ok {
		return false
	}
	b, isBool := v.(bool)
	return isBool && b
}

// isExclusiveSkirmisher 全军皆为轻装散兵且无辎重车时成立。
func isExclusiveSkirmisher(army *entity.Army, unitTypes map[entity.UnitTypeID]*entity.UnitType) bool {
	if len(army.Detachments) == 0 {
		return false
	}
	for _, det := range army.Detachments {
		if det.Wagons > 0 {
			return false
		}
		if !abilityTrue(unitTypes, det.UnitTypeID, "offroad_full_speed") ||
			!abilityTrue(unitTypes, det.UnitTypeID, "acts_as_cavalry_for_foraging") {
			return false
		}
	}
	return true
}

func calculateNoncombatants(army *entity.Army, unitTypes map[entity.UnitTypeID]*entity.UnitType, traits []*entity.Trait, cfg *rules.Config) int {
	totalSoldiers := army.TotalSoldiers()
	ratio := cfg.Supply.BaseNoncombatantRatio
	switch {
	case isExclusiveSkirmisher(army, unitTypes):
		ratio = cfg.Supply.ExclusiveSkirmisherRatio
	case hasTrait(traits, "spartan"):
		ratio = cfg.Supply.SpartanRatio
	}
	return int(float64(totalSoldiers) * ratio)
}

func calculateCapacity(totals compositionTotals, traits []*entity.Trait, army *entity.Army, unitTypes map[entity.UnitTypeID]*entity.UnitType, cfg *rules.Config) int {
	sr := cfg.Supply
	total := (totals.infantry+totals.noncombatants)*sr.InfantryCapacity +
		totals.cavalry*sr.CavalryCapacity +
		totals.wagons*sr.WagonCapacity

	if hasTrait(traits, "logistician") {
		total = int(float64(total) * 1.20)
	}

	total -= countWizardDetachments(army, unitTypes, sr.WizardSupplyEncumbrance)
	return maxInt(0, total)
}

func calculateConsumption(totals compositionTotals, cfg *rules.Config) int {
	sr := cfg.Supply
	return (totals.infantry+totals.noncombatants)*sr.InfantryConsumption +
		totals.cavalry*sr.CavalryConsumption +
		totals.wagons*sr.WagonConsumption
}

// calculateColumnLength 纵队长度取步、骑、车三项里最长的一段。
func calculateColumnLength(totals compositionTotals, traits []*entity.Trait) float64 {
	infantryMiles := float64(totals.infantry+totals.noncombatants) / 5000.0
	cavalryMiles := float64(totals.cavalry) / 2000.0
	wagonMiles := float64(totals.wagons) / 50.0
	column := infantryMiles
	if cavalryMiles > column {
		column = cavalryMiles
	}
	if wagonMiles > column {
		column = wagonMiles
	}
	if hasTrait(traits, "logistician") {
		column *= 0.5
	}
	return column
}

// countWizardDetachments 术士分队按补给当量单独记账。
func countWizardDetachments(army *entity.Army, unitTypes map[entity.UnitTypeID]*entity.UnitType, suppliesEquivalent int) int {
	count := 0
	for _, det := range army.Detachments {
		v, ok := unitAbility(unitTypes, det.UnitTypeID, "supplies_equivalent")
		if !ok {
			continue
		}
		switch n := v.(type) {
		case int:
			if n == suppliesEquivalent {
				count++
			}
		case float64:
			if int(n) == suppliesEquivalent {
				count++
			}
		}
	}
	return count
}

// foragingRange 征粮半径与侦察半径同一套口径，只是代骑兵资格不同。
func foragingRange(c *entity.Campaign, army *entity.Army, traits []*entity.Trait, cfg *rules.Config) int {
	return operationalRadius(c, army, traits, cfg, "acts_as_cavalry_for_foraging")
}

func hexDistance(a, b *entity.Hex) int {
	return hexx.Distance(hexx.New(a.Q, a.R), hexx.New(b.Q, b.R))
}

// checkSupplyRevolt 征粮/焚掠是否激起当地叛乱。
// 一年内重复征粮 2/6，焚掠 1/6；敌境 +1，honorable 特质 -1。
func checkSupplyRevolt(c *entity.Campaign, army *entity.Army, target *entity.Hex, action, seed string, cfg *rules.Config) bool {
	sr := cfg.Supply
	var chance int
	if action == "forage" {
		withinCooldown := target.LastForagedDay != nil &&
			c.CurrentDay-*target.LastForagedDay <= sr.RevoltCooldownDays
		if !withinCooldown {
			return false
		}
		chance = sr.ForageRevoltChanceRepeat
	} else {
		chance = sr.TorchRevoltChance
	}

	territory := ClassifyTerritory(c, army.CommanderID, target, cfg.Recruitment.RecentlyConqueredDays)
	if territory == TerritoryHostile {
		if action == "forage" {
			chance += sr.ForageRevoltHostileModifier
		} else {
			chance += sr.TorchRevoltHostileModifier
		}
	}

	if hasTrait(CommanderTraits(c, army), "honorable") {
		chance = maxInt(0, chance-1)
	}
	if chance <= 0 {
		return false
	}

	roll := dicex.MustRoll(seed, "1d6")
	return roll.Total <= chance
}

// applyTorchEffect 目标格与征粮半径内的格子全部烧毁。
func applyTorchEffect(c *entity.Campaign, target *entity.Hex, torchRange int) {
	day := c.CurrentDay
	markTorched := func(h *entity.Hex) {
		h.IsTorched = true
		h.ForagingTimesRemaining = 0
		h.LastTorchedDay = &day
	}
	markTorched(target)

	coords, err := hexx.InRange(hexx.New(target.Q, target.R), torchRange)
	if err != nil {
		return
	}
	for _, coord := range coords {
		if coord.Q == target.Q && coord.R == target.R {
			continue
		}
		if h := c.HexAt(coord.Q, coord.R); h != nil {
			markTorched(h)
		}
	}
}
