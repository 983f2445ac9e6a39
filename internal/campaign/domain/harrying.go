package domain

import (
	"errors"
	"fmt"

	"Cataphract/internal/campaign/entity"
	"Cataphract/modules/kit/dicex"
)

// 袭扰目标。
const (
	HarryObjectiveKill  = "kill"
	HarryObjectiveTorch = "torch"
	HarryObjectiveSteal = "steal"
)

const (
	harryBaseSuccessThreshold = 2
	harryFailureLossNumerator = 1
	harryFailureLossDenominator = 5 // 失败损 20%
)

// HarryingResult 是一次袭扰的结算结果。
type HarryingResult struct {
	Success             bool   `json:"success"`
	Detail              string `json:"detail"`
	Roll                int    `json:"roll"`
	Modifier            int    `json:"modifier"`
	InflictedCasualties int    `json:"inflicted_casualties,omitempty"`
	AttackerLosses      int    `json:"attacker_losses,omitempty"`
	SuppliesBurned      int    `json:"supplies_burned,omitempty"`
	SuppliesStolen      int    `json:"supplies_stolen,omitempty"`
	LootStolen          int    `json:"loot_stolen,omitempty"`
}

// ResolveHarrying 用指定分队袭扰目标军队。
// 1d6 ≤ 2+修正 即成功；散兵 +1、骑兵 +2。无论成败，
// 目标当天移动力压到 0.5，袭扰方当天不再行动。
func ResolveHarrying(c *entity.Campaign, attacker, target *entity.Army, detached []*entity.Detachment, objective string) (HarryingResult, error) {
	if len(detached) == 0 {
		return HarryingResult{}, errors.New("harrying requires at least one detachment")
	}
	totalSoldiers := 0
	for _, det := range detached {
		totalSoldiers += det.Soldiers
	}
	if totalSoldiers <= 0 {
		return HarryingResult{}, errors.New("harrying detachment has no soldiers")
	}

	modifier := harryingModifier(c.UnitTypes, detached)
	seed := fmt.Sprintf("harry:%d:%d:%d", attacker.ID, target.ID, c.CurrentDay)
	roll := dicex.MustRoll(seed, "1d6").Total
	success := roll <= minInt(6, harryBaseSuccessThreshold+modifier)

	markHarryingState(attacker, target, c.CurrentDay, objective)

	if !success {
		losses := maxInt(1, totalSoldiers*harryFailureLossNumerator/harryFailureLossDenominator)
		applyCasualtiesToDetachments(detached, losses)
		return HarryingResult{
			Success:        false,
			Detail:         fmt.Sprintf("harrying failed: detachment lost %d soldiers", losses),
			Roll:           roll,
			Modifier:       modifier,
			AttackerLosses: losses,
		}, nil
	}

	switch objective {
	case HarryObjectiveKill:
		casualties := maxInt(1, totalSoldiers*20/100)
		applyCasualtiesToArmy(target, casualties)
		return HarryingResult{
			Success:             true,
			Detail:              fmt.Sprintf("harrying success: inflicted %d casualties", casualties),
			Roll:                roll,
			Modifier:            modifier,
			InflictedCasualties: casualties,
		}, nil

	case HarryObjectiveTorch:
		burnRoll := maxInt(1, dicex.MustRoll(seed+":torch", "2d6").Total+modifier)
		burned := minInt(totalSoldiers*burnRoll, target.SuppliesCurrent)
		target.SuppliesCurrent -= burned
		return HarryingResult{
			Success:        true,
			Detail:         fmt.Sprintf("harrying success: torched %d supplies", burned),
			Roll:           roll,
			Modifier:       modifier,
			SuppliesBurned: burned,
		}, nil

	case HarryObjectiveSteal:
		stealRoll := maxInt(1, dicex.MustRoll(seed+":steal", "1d6").Total+modifier)
		haul := totalSoldiers * stealRoll
		lootTaken := minInt(haul, target.LootCarried)
		target.LootCarried -= lootTaken
		suppliesTaken := 0
		if remaining := haul - lootTaken; remaining > 0 {
			capacity := maxInt(0, attacker.SuppliesCapacity-attacker.SuppliesCurrent)
			suppliesTaken = minInt(minInt(remaining, target.SuppliesCurrent), capacity)
			target.SuppliesCurrent -= suppliesTaken
			attacker.SuppliesCurrent += suppliesTaken
		}
		attacker.LootCarried += lootTaken
		detail := fmt.Sprintf("harrying success: stole %d loot", lootTaken)
		if suppliesTaken > 0 {
			detail += fmt.Sprintf(" and %d supplies", suppliesTaken)
		}
		return HarryingResult{
			Success:        true,
			Detail:         detail,
			Roll:           roll,
			Modifier:       modifier,
			LootStolen:     lootTaken,
			SuppliesStolen: suppliesTaken,
		}, nil
	}

	return HarryingResult{}, fmt.Errorf("unknown harrying objective: %s", objective)
}

func harryingModifier(unitTypes map[entity.UnitTypeID]*entity.UnitType, detached []*entity.Detachment) int {
	modifier := 0
	for _, det := range detached {
		if abilityTrue(unitTypes, det.UnitTypeID, "skirmisher") {
			modifier += 1
			break
		}
	}
	for _, det := range detached {
		if unitCategory(unitTypes, det.UnitTypeID) == "cavalry" {
			modifier += 2
			break
		}
	}
	return modifier
}

func markHarryingState(attacker, target *entity.Army, currentDay int, objective string) {
	attacker.Status = entity.ArmyHarrying
	attacker.MovementPointsRemaining = 0

	target.StatusEffects.Harried = &entity.HarriedEffect{
		Day:       currentDay,
		Objective: objective,
		Penalty:   0.5,
	}
	if target.MovementPointsRemaining > 0.5 {
		target.MovementPointsRemaining = 0.5
	}
}

// applyCasualtiesToArmy 先扣士兵，扣完再波及非战斗人员。
func applyCasualtiesToArmy(target *entity.Army, casualties int) {
	remaining := casualties
	for _, det := range target.Detachments {
		if remaining <= 0 {
			return
		}
		loss := minInt(det.Soldiers, remaining)
		det.Soldiers -= loss
		remaining -= loss
	}
	if remaining > 0 {
		target.NoncombatantCount = maxInt(0, target.NoncombatantCount-remaining)
	}
}

func applyCasualtiesToDetachments(detachments []*entity.Detachment, losses int) {
	remaining := losses
	for _, det := range detachments {
		if remaining <= 0 {
			return
		}
		loss := minInt(det.Soldiers, remaining)
		det.Soldiers -= loss
		remaining -= loss
	}
}
