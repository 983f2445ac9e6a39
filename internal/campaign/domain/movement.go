package domain

import (
	"errors"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
)

var ErrWagonsCannotFord = errors.New("army has wagons; cannot ford rivers")

// DailyMovementMiles 计算当天可行军的英里数。
// 路上 12/18，野地 6/9，夜行军 6（野地禁止）；纯骑兵强行军翻倍；
// 天气扣减（ranger 免疫）；纵队超过阈值时压到 6/12 封顶。
func DailyMovementMiles(c *entity.Campaign, army *entity.Army, movementType entity.MovementType, onRoad bool, cfg *rules.Config) float64 {
	mr := cfg.Movement
	traits := CommanderTraits(c, army)

	var base float64
	switch movementType {
	case entity.MoveForced:
		if onRoad {
			base = float64(mr.RoadForcedMilesPerDay)
		} else {
			base = float64(mr.OffroadForcedMilesPerDay)
		}
	case entity.MoveNight:
		if onRoad {
			base = float64(mr.NightMilesPerDay)
		} else {
			base = 0 // 夜间不能走野地
		}
	default:
		if onRoad {
			base = float64(mr.RoadStandardMilesPerDay)
		} else {
			base = float64(mr.OffroadStandardMilesPerDay)
		}
	}

	if movementType == entity.MoveForced && isCavalryOnly(c, army) {
		base *= float64(mr.CavalryForcedMultiplier)
	}

	if !hasTrait(traits, "ranger") {
		if w := c.WeatherToday(); w != nil {
			base += w.MovementModifier
		}
	}
	if base < 0 {
		base = 0
	}

	snapshot := BuildSupplySnapshot(c, army, cfg)
	if snapshot.ColumnLengthMiles > mr.ColumnLengthThreshold {
		var capped float64
		switch movementType {
		case entity.MoveStandard:
			capped = float64(mr.ColumnCappedStandardSpeed)
		case entity.MoveForced:
			capped = float64(mr.ColumnCappedForcedSpeed)
		default:
			capped = base
		}
		if capped < base {
			return capped
		}
	}
	return base
}

func isCavalryOnly(c *entity.Campaign, army *entity.Army) bool {
	if len(army.Detachments) == 0 {
		return false
	}
	for _, det := range army.Detachments {
		if unitCategory(c.UnitTypes, det.UnitTypeID) != "cavalry" {
			return false
		}
	}
	return true
}

// FordingDelayDays 徒涉一条河的耗时：步兵与非战斗人员纵队每英里半天。
// 骑兵照常通过，带辎重车则根本过不去。
func FordingDelayDays(c *entity.Campaign, army *entity.Army) (float64, error) {
	if army.TotalWagons() > 0 {
		return 0, ErrWagonsCannotFord
	}

	slowInfantry := 0
	hasSlow := false
	for _, det := range army.Detachments {
		if unitCategory(c.UnitTypes, det.UnitTypeID) == "cavalry" ||
			abilityTrue(c.UnitTypes, det.UnitTypeID, "acts_as_cavalry_for_fording") {
			continue
		}
		hasSlow = true
		slowInfantry += det.Soldiers
	}
	if !hasSlow {
		return 0, nil
	}

	columnMiles := float64(slowInfantry+army.NoncombatantCount) / 5000.0
	return columnMiles * 0.5, nil
}

// ValidateMovementOrder 校验一次行军指令：
// 带辎重车不得走野地、不得涉渡；夜行军不得走野地。
func ValidateMovementOrder(army *entity.Army, offRoadLegs, hasRiverFords []bool, isNight bool) error {
	totalWagons := army.TotalWagons()
	anyOffRoad := anyBool(offRoadLegs)

	if anyOffRoad && totalWagons > 0 {
		return errors.New("cannot travel off-road with wagons")
	}
	if isNight && anyOffRoad {
		return errors.New("cannot night march off-road")
	}
	if anyBool(hasRiverFords) && totalWagons > 0 {
		return errors.New("cannot ford rivers with wagons")
	}
	return nil
}

// ShouldTakeWrongFork 夜行军过岔路时 2/6 概率走错。
func ShouldTakeWrongFork(seed string, cfg *rules.Config) bool {
	return dicex.MustRoll(seed, "1d6").Total <= cfg.Movement.NightWrongPathChance
}

func anyBool(values []bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}
