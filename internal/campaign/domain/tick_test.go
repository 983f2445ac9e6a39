package domain

import (
	"testing"
	"time"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
)

func TestRunDailyTick_日常推进(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	army := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	army.SuppliesCurrent = 20000
	army.MovementPointsRemaining = 0.25
	cfg := rules.Default()

	report := RunDailyTick(c, cfg)
	if report.Day != 0 || c.CurrentDay != 1 || c.CurrentPart != entity.PartMorning {
		t.Fatalf("日期推进不符: report=%+v day=%d part=%s", report, c.CurrentDay, c.CurrentPart)
	}
	// 清晨整备刷新口径：1250 人日耗 1250
	if army.DailySupplyConsumption != 1250 {
		t.Fatalf("日耗期望 1250, got %d", army.DailySupplyConsumption)
	}
	if army.SuppliesCurrent != 20000-1250 {
		t.Fatalf("补给期望 18750, got %d", army.SuppliesCurrent)
	}
	if army.NoncombatantCount != 250 {
		t.Fatalf("随军人员应补齐为 250, got %d", army.NoncombatantCount)
	}
	if army.MovementPointsRemaining != 1.0 {
		t.Fatalf("移动力应恢复满额, got %v", army.MovementPointsRemaining)
	}
	if len(report.StarvingArmies) != 0 {
		t.Fatalf("补给充足不该挨饿: %+v", report)
	}
}

func TestRunDailyTick_断粮与溃散(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	army := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	army.SuppliesCurrent = 0
	army.DaysWithoutSupplies = 13
	cfg := rules.Default()

	report := RunDailyTick(c, cfg)
	if len(report.StarvingArmies) != 1 || report.StarvingArmies[0] != 1 {
		t.Fatalf("断粮军队未上报: %+v", report)
	}
	if army.DaysWithoutSupplies != 14 {
		t.Fatalf("断粮天数期望 14, got %d", army.DaysWithoutSupplies)
	}
	if len(report.DissolvedArmies) != 1 || army.Status != entity.ArmyRouted {
		t.Fatalf("断粮 14 天应整军溃散: %+v status=%s", report, army.Status)
	}
	if !army.StatusEffects.Undersupplied {
		t.Fatalf("应标记缺粮状态")
	}
	if army.MoraleCurrent >= 9 {
		t.Fatalf("断粮应掉士气, got %d", army.MoraleCurrent)
	}
}

func TestRunDailyTick_到期命令执行(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	army := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	army.SuppliesCurrent = 50000
	armyID := entity.ArmyID(1)
	c.Orders[1] = &entity.Order{
		ID: 1, CampaignID: 1, ArmyID: &armyID, CommanderID: 1,
		OrderType: "move", Status: entity.OrderPending,
		IssuedAt: time.Date(1250, 3, 1, 8, 0, 0, 0, time.UTC),
		Parameters: map[string]any{
			"legs": []any{map[string]any{"to_hex_id": 2, "distance_miles": 6.0, "on_road": true}},
		},
	}
	c.Orders[2] = &entity.Order{
		ID: 2, CampaignID: 1, CommanderID: 1,
		OrderType: "dance", Status: entity.OrderPending,
		IssuedAt: time.Date(1250, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	report := RunDailyTick(c, rules.Default())
	if report.OrdersExecuted != 1 || report.OrdersFailed != 1 {
		t.Fatalf("命令执行统计不符: %+v", report)
	}
	if c.Orders[1].Status != entity.OrderCompleted || army.CurrentHexID != 2 {
		t.Fatalf("行军命令未生效: %+v hex=%d", c.Orders[1], army.CurrentHexID)
	}
	if c.Orders[2].Status != entity.OrderFailed {
		t.Fatalf("未知命令类型应失败: %+v", c.Orders[2])
	}
}

func TestRunDailyTick_定日命令不提前执行(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	army := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	army.SuppliesCurrent = 50000
	armyID := entity.ArmyID(1)
	future := 5
	c.Orders[1] = &entity.Order{
		ID: 1, CampaignID: 1, ArmyID: &armyID, CommanderID: 1,
		OrderType: "rest", Status: entity.OrderPending,
		ExecuteDay: &future,
		IssuedAt:   time.Date(1250, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	report := RunDailyTick(c, rules.Default())
	if report.OrdersExecuted != 0 || c.Orders[1].Status != entity.OrderPending {
		t.Fatalf("第 5 天的命令不该在第 0 天执行: %+v", c.Orders[1])
	}
}

func TestRunDailyTick_过期定日命令不补执行(t *testing.T) {
	c := newTestCampaign()
	c.CurrentDay = 10
	addCommander(c, 1, 1)
	army := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	army.SuppliesCurrent = 50000
	armyID := entity.ArmyID(1)
	past := 5
	c.Orders[1] = &entity.Order{
		ID: 1, CampaignID: 1, ArmyID: &armyID, CommanderID: 1,
		OrderType: "rest", Status: entity.OrderPending,
		ExecuteDay: &past,
		IssuedAt:   time.Date(1250, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	report := RunDailyTick(c, rules.Default())
	if report.OrdersExecuted != 0 || c.Orders[1].Status != entity.OrderPending {
		t.Fatalf("第 5 天的命令不该在第 10 天补执行: %+v", c.Orders[1])
	}
}

func TestRunDailyTick_每周围城推进(t *testing.T) {
	c := newTestCampaign()
	c.CurrentDay = 6 // 第 7 天结算围城周
	addCommander(c, 1, 1)
	army := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	army.SuppliesCurrent = 50000
	c.Strongholds[1] = &entity.Stronghold{ID: 1, HexID: 2, Type: entity.StrongholdTown, CurrentThreshold: 10}
	c.Sieges[1] = &entity.Siege{ID: 1, StrongholdID: 1, CurrentThreshold: 10, Status: entity.SiegeOngoing}

	report := RunDailyTick(c, rules.Default())
	if report.SiegesAdvanced != 1 || c.Sieges[1].WeeksElapsed != 1 {
		t.Fatalf("围城应推进一周: %+v siege=%+v", report, c.Sieges[1])
	}

	// 非围城周不推进
	c2 := newTestCampaign()
	c2.CurrentDay = 3
	c2.Sieges[1] = &entity.Siege{ID: 1, StrongholdID: 1, CurrentThreshold: 10, Status: entity.SiegeOngoing}
	if report := RunDailyTick(c2, rules.Default()); report.SiegesAdvanced != 0 {
		t.Fatalf("第 4 天不该结算围城周: %+v", report)
	}
}

func TestRunDailyTick_强行军每周扣士气(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	army := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	army.SuppliesCurrent = 50000
	army.ForcedMarchDays = 7.5

	RunDailyTick(c, rules.Default())
	if army.MoraleCurrent != 8 {
		t.Fatalf("满一周强行军应扣 1 点士气, got %d", army.MoraleCurrent)
	}
	if army.ForcedMarchDays != 0.5 {
		t.Fatalf("余数应留到下周, got %v", army.ForcedMarchDays)
	}
}
