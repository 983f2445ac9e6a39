package domain

import (
	"fmt"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
)

const (
	majorCaptureDiff      = 6
	minorCaptureDiff      = 4
	majorCasualtyDiff     = 6
	significantCasualtyDiff = 4
	moderateCasualtyDiff  = 2
)

// BattleOptions 控制一次会战结算的修正与随机种子。
type BattleOptions struct {
	Seed               string
	AttackerModifier   int
	DefenderModifier   int
	AttackerModifiers  map[entity.ArmyID]int
	DefenderModifiers  map[entity.ArmyID]int
	AttackerFixedRolls map[entity.ArmyID]int
	DefenderFixedRolls map[entity.ArmyID]int
}

// ArmyBattleRecord 记录单支军队在会战里的掷骰与结算。
type ArmyBattleRecord struct {
	Roll              int            `json:"roll"`
	Modifiers         map[string]int `json:"modifiers,omitempty"`
	CasualtyPct       float64        `json:"casualty_pct"`
	MoraleDelta       int            `json:"morale_delta"`
	Routed            bool           `json:"routed"`
	RetreatHexes      int            `json:"retreat_hexes,omitempty"`
	CommanderCaptured bool           `json:"commander_captured,omitempty"`
}

// BattleResult 是一次会战的汇总结果。
type BattleResult struct {
	Winner             string                                 `json:"winner"` // attacker | defender
	AttackerRecords    map[entity.ArmyID]*ArmyBattleRecord    `json:"attacker_records"`
	DefenderRecords    map[entity.ArmyID]*ArmyBattleRecord    `json:"defender_records"`
	RollDifference     int                                    `json:"roll_difference"`
	CapturedCommanders []entity.CommanderID                   `json:"captured_commanders,omitempty"`
}

type sideContext struct {
	strength   float64
	seed       string
	fixedRolls map[entity.ArmyID]int
	modifiers  map[entity.ArmyID]int
	sideBonus  int
}

// ResolveBattle 结算一场会战。双方各军掷 2d6 加修正，
// 两边取最高点比差值定胜负，平局守方胜。就地施加伤亡、士气、溃退。
func ResolveBattle(attackers, defenders []*entity.Army, unitTypes map[entity.UnitTypeID]*entity.UnitType, opts BattleOptions, cfg *rules.Config) BattleResult {
	if opts.Seed == "" {
		opts.Seed = "battle"
	}

	attackerStrength := sideStrength(attackers, unitTypes)
	defenderStrength := sideStrength(defenders, unitTypes)

	attackerCtx := sideContext{
		strength:   attackerStrength,
		seed:       opts.Seed + ":attacker",
		fixedRolls: opts.AttackerFixedRolls,
		modifiers:  opts.AttackerModifiers,
		sideBonus:  opts.AttackerModifier,
	}
	defenderCtx := sideContext{
		strength:   defenderStrength,
		seed:       opts.Seed + ":defender",
		fixedRolls: opts.DefenderFixedRolls,
		modifiers:  opts.DefenderModifiers,
		sideBonus:  opts.DefenderModifier,
	}

	attackerRecords := buildSideRecords(attackers, attackerCtx, defenderStrength, cfg)
	defenderRecords := buildSideRecords(defenders, defenderCtx, attackerStrength, cfg)

	attackerBest := bestRoll(attackerRecords)
	defenderBest := bestRoll(defenderRecords)
	rawDiff := attackerBest - defenderBest

	winner := "defender"
	losing := attackers
	losingRecords := attackerRecords
	diff := -rawDiff
	if rawDiff > 0 {
		winner = "attacker"
		losing = defenders
		losingRecords = defenderRecords
		diff = rawDiff
	}
	if rawDiff == 0 {
		diff = 0
	}

	result := BattleResult{
		Winner:          winner,
		AttackerRecords: attackerRecords,
		DefenderRecords: defenderRecords,
		RollDifference:  diff,
	}

	for _, army := range attackers {
		record := attackerRecords[army.ID]
		applyBattleResolution(army, record, record.Roll-defenderBest, winner == "attacker", opts.Seed, cfg)
		if record.CommanderCaptured {
			result.CapturedCommanders = append(result.CapturedCommanders, army.CommanderID)
		}
	}
	for _, army := range defenders {
		record := defenderRecords[army.ID]
		applyBattleResolution(army, record, record.Roll-attackerBest, winner == "defender", opts.Seed, cfg)
		if record.CommanderCaptured {
			result.CapturedCommanders = append(result.CapturedCommanders, army.CommanderID)
		}
	}

	for _, army := range losing {
		if record, ok := losingRecords[army.ID]; ok {
			applyRetreatIfNeeded(army, record, diff, opts.Seed, cfg)
		}
	}

	return result
}

func sideStrength(armies []*entity.Army, unitTypes map[entity.UnitTypeID]*entity.UnitType) float64 {
	total := 0.0
	for _, army := range armies {
		total += effectiveStrength(army, unitTypes)
	}
	if total <= 0 {
		return 1
	}
	return total
}

func effectiveStrength(army *entity.Army, unitTypes map[entity.UnitTypeID]*entity.UnitType) float64 {
	strength := 0.0
	for _, det := range army.Detachments {
		multiplier := 1.0
		if ut := unitTypes[det.UnitTypeID]; ut != nil && ut.BattleMultiplier > 0 {
			multiplier = ut.BattleMultiplier
		}
		strength += float64(det.Soldiers) * multiplier
	}
	if strength < 1 {
		return 1
	}
	return strength
}

func buildSideRecords(armies []*entity.Army, ctx sideContext, enemyStrength float64, cfg *rules.Config) map[entity.ArmyID]*ArmyBattleRecord {
	records := make(map[entity.ArmyID]*ArmyBattleRecord, len(armies))
	for _, army := range armies {
		records[army.ID] = rollForArmy(army, ctx, enemyStrength, cfg)
	}
	return records
}

func bestRoll(records map[entity.ArmyID]*ArmyBattleRecord) int {
	best := 0
	for _, rec := range records {
		if rec.Roll > best {
			best = rec.Roll
		}
	}
	return best
}

func rollForArmy(army *entity.Army, ctx sideContext, enemyStrength float64, cfg *rules.Config) *ArmyBattleRecord {
	baseRoll, fixed := ctx.fixedRolls[army.ID]
	if !fixed {
		baseRoll = dicex.MustRoll(fmt.Sprintf("%s:%d", ctx.seed, army.ID), "2d6").Total
	}

	modifiers := make(map[string]int)
	if bonus := numericAdvantage(ctx.strength, enemyStrength, cfg); bonus != 0 {
		modifiers["numeric"] = bonus
	}

	moraleBonus := (army.MoraleCurrent - army.MoraleResting) / 2
	if moraleBonus > 2 {
		moraleBonus = 2
	}
	if moraleBonus < -2 {
		moraleBonus = -2
	}
	if moraleBonus != 0 {
		modifiers["morale"] = moraleBonus
	}

	if army.StatusEffects.SickOrExhausted {
		modifiers["exhaustion"] = -1
	}
	if perArmy := ctx.modifiers[army.ID]; perArmy != 0 {
		modifiers["order"] = perArmy
	}
	if ctx.sideBonus != 0 {
		modifiers["side"] += ctx.sideBonus
	}

	total := baseRoll
	for _, m := range modifiers {
		total += m
	}
	return &ArmyBattleRecord{Roll: total, Modifiers: modifiers}
}

// numericAdvantage 兵力占优方每超出一成兵力换 +1。
func numericAdvantage(own, enemy float64, cfg *rules.Config) int {
	if enemy <= 0 {
		return 3
	}
	ratio := own / enemy
	if ratio <= 1 {
		return 0
	}
	return int((ratio - 1) / cfg.Battle.MultiSideNumericBonusRatio)
}

func applyBattleResolution(army *entity.Army, record *ArmyBattleRecord, rollDiff int, winning bool, seed string, cfg *rules.Config) {
	diffMagnitude := rollDiff
	if diffMagnitude < 0 {
		diffMagnitude = -diffMagnitude
	}
	winnerCasualty, loserCasualty, winnerMorale, loserMorale := lookupCasualties(diffMagnitude)

	casualty := loserCasualty
	moraleDelta := loserMorale
	if winning {
		casualty = winnerCasualty
		moraleDelta = winnerMorale
	}
	record.CasualtyPct = casualty
	record.MoraleDelta = moraleDelta

	for _, det := range army.Detachments {
		det.Soldiers = maxInt(1, int(float64(det.Soldiers)*(1-casualty)))
	}
	army.SuppliesCurrent = int(float64(army.SuppliesCurrent) * (1 - casualty))

	AdjustMorale(army, moraleDelta, army.MoraleMax)

	if army.MoraleCurrent <= cfg.Battle.RoutThreshold {
		army.Status = entity.ArmyRouted
		record.Routed = true
	}

	// 惨败才有统帅被俘的风险。
	captureTarget := 0
	if !winning {
		switch {
		case rollDiff <= -majorCaptureDiff:
			captureTarget = cfg.Battle.CaptureChanceMajor
		case rollDiff <= -minorCaptureDiff:
			captureTarget = cfg.Battle.CaptureChanceMinor
		}
	}
	if captureTarget > 0 {
		roll := dicex.MustRoll(fmt.Sprintf("%s:capture:%d", seed, army.ID), "1d6")
		if roll.Total <= captureTarget {
			record.CommanderCaptured = true
		}
	}
}

func applyRetreatIfNeeded(army *entity.Army, record *ArmyBattleRecord, rollDiff int, seed string, cfg *rules.Config) {
	br := cfg.Battle
	if record.Routed {
		retreatRoll := dicex.MustRoll(fmt.Sprintf("%s:retreat:%d", seed, army.ID), fmt.Sprintf("1d%d", br.RetreatHexesMax)).Total
		record.RetreatHexes = maxInt(br.RetreatHexesMin, minInt(br.RetreatHexesMax, retreatRoll))

		lossDie := dicex.MustRoll(fmt.Sprintf("%s:retreat-supplies:%d", seed, army.ID), fmt.Sprintf("1d%d", br.RetreatSupplyLossDie)).Total
		lossPercent := float64(lossDie*br.RetreatSupplyLossMultiplier) / 100
		army.SuppliesCurrent = int(float64(army.SuppliesCurrent) * (1 - lossPercent))
		return
	}

	if rollDiff <= 0 {
		return
	}

	// 没溃退的败方也有一半概率后撤一格。
	if dicex.MustRoll(fmt.Sprintf("%s:fallback:%d", seed, army.ID), "1d2").Total == 1 {
		record.RetreatHexes = br.RetreatHexesMin
	}
}

// lookupCasualties 点差换伤亡与士气增减：胜方伤亡、败方伤亡、胜方士气、败方士气。
func lookupCasualties(diff int) (winnerCasualty, loserCasualty float64, winnerMorale, loserMorale int) {
	switch {
	case diff >= majorCasualtyDiff:
		return 0.05, 0.20, +2, -2
	case diff >= significantCasualtyDiff:
		return 0.05, 0.15, +2, -2
	case diff >= moderateCasualtyDiff:
		return 0.05, 0.10, +1, -2
	case diff >= 1:
		return 0.10, 0.10, 0, -1
	}
	return 0.05, 0.05, -1, 0
}
