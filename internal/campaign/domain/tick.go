package domain

import (
	"fmt"
	"sort"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
)

// TickReport 汇总一天推进的关键结果，供事件流与接口层消费。
type TickReport struct {
	Day             int             `json:"day"`
	OrdersExecuted  int             `json:"orders_executed"`
	OrdersFailed    int             `json:"orders_failed"`
	StarvingArmies  []entity.ArmyID `json:"starving_armies,omitempty"`
	DissolvedArmies []entity.ArmyID `json:"dissolved_armies,omitempty"`
	GatesOpened     []entity.SiegeID `json:"gates_opened,omitempty"`
	SiegesAdvanced  int             `json:"sieges_advanced"`
}

// RunDailyTick 推进战役一整天：清晨整备，四个时段逐段执行
// 在途信使、航行与到期命令，日落后结算补给、佣兵与每周围城。
func RunDailyTick(c *entity.Campaign, cfg *rules.Config) TickReport {
	report := TickReport{Day: c.CurrentDay}

	beginDay(c, cfg)

	for _, part := range entity.DayParts {
		c.CurrentPart = part
		AdvanceMessages(c, entity.DayFraction, cfg)
		AdvanceShips(c, entity.DayFraction)
		executed, failed := executeDueOrders(c, cfg, part)
		report.OrdersExecuted += executed
		report.OrdersFailed += failed
	}

	consumeDailySupplies(c, cfg, &report)
	ProcessMercenaryUpkeep(c, cfg)

	// 围城每过七天推进一周。
	if (c.CurrentDay+1)%7 == 0 {
		for _, siege := range c.Sieges {
			if siege.Status != entity.SiegeOngoing {
				continue
			}
			seed := fmt.Sprintf("siege:%d:%d", siege.ID, c.CurrentDay)
			result := AdvanceSiege(siege, seed, cfg)
			report.SiegesAdvanced++
			if result.GatesOpened {
				report.GatesOpened = append(report.GatesOpened, siege.ID)
				if stronghold := c.Strongholds[siege.StrongholdID]; stronghold != nil {
					stronghold.GatesOpen = true
					stronghold.CurrentThreshold = result.ThresholdAfter
				}
			}
		}
	}

	c.CurrentDay++
	c.CurrentPart = entity.PartMorning
	return report
}

// beginDay 清晨整备：刷新后勤口径、恢复移动力、清理过期状态。
func beginDay(c *entity.Campaign, cfg *rules.Config) {
	weekStart := c.CurrentDay%7 == 0

	for _, army := range c.Armies {
		snapshot := BuildSupplySnapshot(c, army, cfg)
		army.DailySupplyConsumption = snapshot.Consumption
		army.SuppliesCapacity = snapshot.Capacity
		army.ColumnLengthMiles = snapshot.ColumnLengthMiles
		if army.NoncombatantCount == 0 {
			army.NoncombatantCount = snapshot.Noncombatants
		}

		army.MovementPointsRemaining = 1.0
		if weekStart {
			army.DaysMarchedThisWeek = 0
		}

		if harried := army.StatusEffects.Harried; harried != nil && harried.Day < c.CurrentDay {
			army.StatusEffects.Harried = nil
		}
		if departed := army.StatusEffects.DepartedDetachments; departed != nil && c.CurrentDay >= departed.ReturnDay {
			army.StatusEffects.DepartedDetachments = nil
		}

		switch army.Status {
		case entity.ArmyMarching, entity.ArmyForcedMarch, entity.ArmyNightMarch,
			entity.ArmyForaging, entity.ArmyTorching, entity.ArmyHarrying, entity.ArmyInBattle:
			army.Status = entity.ArmyIdle
		case entity.ArmyResting:
			if army.RestStartedDay != nil && c.CurrentDay >= *army.RestStartedDay+army.RestDurationDays {
				army.Status = entity.ArmyIdle
				army.RestStartedDay = nil
				army.RestDurationDays = 0
			}
		}

		// 每满七天强行军扣一周的士气，余数留到下周累计。
		for army.ForcedMarchDays >= 7 {
			AdjustMorale(army, -cfg.Morale.ForcedMarchMoraleLossPerWeek, army.MoraleMax)
			army.ForcedMarchDays -= 7
		}
	}
}

func executeDueOrders(c *entity.Campaign, cfg *rules.Config, part entity.DayPart) (executed, failed int) {
	var due []*entity.Order
	for _, order := range c.Orders {
		if order.Status != entity.OrderPending && order.Status != entity.OrderExecuting {
			continue
		}
		// 定日命令只在指定那天执行：过期的不补执行（录入侧已拒收过去日）。
		if order.ExecuteDay != nil && *order.ExecuteDay != c.CurrentDay {
			continue
		}
		orderPart := entity.PartMorning
		if order.ExecutePart != nil {
			orderPart = *order.ExecutePart
		}
		if orderPart != part {
			continue
		}
		due = append(due, order)
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].IssuedAt.Equal(due[j].IssuedAt) {
			return due[i].IssuedAt.Before(due[j].IssuedAt)
		}
		return due[i].ID < due[j].ID
	})

	ctx := &OrderContext{Campaign: c, DayPart: part, Rules: cfg}
	for _, order := range due {
		result := ExecuteOrder(ctx, order)
		switch result.Status {
		case entity.OrderCompleted:
			executed++
		case entity.OrderFailed:
			failed++
		}
		if result.Status == entity.OrderCompleted || result.Status == entity.OrderFailed {
			day := c.CurrentDay
			order.ExecuteDay = &day
		}
	}
	return executed, failed
}

// consumeDailySupplies 日落结算口粮。断粮的军队每天掉 1 点士气并
// 做一次 2d6 士气判定，连续断粮到期限整军溃散。
func consumeDailySupplies(c *entity.Campaign, cfg *rules.Config, report *TickReport) {
	for _, army := range c.Armies {
		if army.Status == entity.ArmyRouted {
			continue
		}
		need := army.DailySupplyConsumption
		if need <= 0 {
			continue
		}

		if army.SuppliesCurrent >= need {
			army.SuppliesCurrent -= need
			army.DaysWithoutSupplies = 0
			army.StatusEffects.Undersupplied = false
			continue
		}

		army.SuppliesCurrent = 0
		army.DaysWithoutSupplies++
		army.StatusEffects.Undersupplied = true
		report.StarvingArmies = append(report.StarvingArmies, army.ID)

		AdjustMorale(army, -cfg.Morale.StarvationMoraleLossPerDay, army.MoraleMax)

		seed := fmt.Sprintf("starvation:%d:%d", army.ID, c.CurrentDay)
		if success, roll := RollMoraleCheck(army.MoraleCurrent, seed); !success {
			ApplyMoraleConsequence(army, roll, CommanderTraits(c, army), seed+":consequence", c.CurrentDay)
		}

		if army.DaysWithoutSupplies >= cfg.Morale.StarvationDissolutionDays {
			army.Status = entity.ArmyRouted
			report.DissolvedArmies = append(report.DissolvedArmies, army.ID)
		}
	}
}
