package service

import (
	"errors"
	"testing"
	"time"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
)

func newServiceCampaign() *entity.Campaign {
	c := entity.NewCampaign(7, "裁判台测试", time.Date(1250, 3, 1, 0, 0, 0, 0, time.UTC), entity.SeasonSummer)
	for i := 1; i <= 3; i++ {
		id := entity.HexID(i)
		c.Map.Hexes[id] = &entity.Hex{
			ID: id, CampaignID: c.ID, Q: i - 1, R: 0,
			Terrain: entity.TerrainFlatland, HasRoad: true,
		}
	}
	c.UnitTypes[1] = &entity.UnitType{ID: 1, Name: "Levy Spears", Category: "infantry", BattleMultiplier: 1}
	c.Factions[1] = &entity.Faction{ID: 1, CampaignID: c.ID, Name: "北军", Color: "#aa0000"}
	c.Commanders[1] = &entity.Commander{ID: 1, CampaignID: c.ID, Name: "周都督", FactionID: 1, Age: 40, Status: "active"}
	c.Armies[1] = &entity.Army{
		ID: 1, CampaignID: c.ID, CommanderID: 1, CurrentHexID: 1,
		Detachments:             []*entity.Detachment{{ID: 1, UnitTypeID: 1, Soldiers: 1000}},
		Status:                  entity.ArmyIdle,
		MovementPointsRemaining: 1.0,
		MoraleCurrent:           9, MoraleResting: 9, MoraleMax: 12,
		SuppliesCurrent: 50000, SuppliesCapacity: 100000,
	}
	return c
}

func TestCreateOrder_入册与排队(t *testing.T) {
	c := newServiceCampaign()
	armyID := 1
	order, err := CS.CreateOrder(c, OrderDraft{
		ArmyID: &armyID, CommanderID: 1, OrderType: "rest",
	})
	if err != nil {
		t.Fatalf("CreateOrder err=%v", err)
	}
	if order.ID != 1 || order.Status != entity.OrderPending {
		t.Fatalf("命令状态不符: %+v", order)
	}
	if order.Parameters == nil {
		t.Fatalf("参数应补成空表")
	}
	if queue := c.Armies[1].OrdersQueue; len(queue) != 1 || queue[0] != order.ID {
		t.Fatalf("命令未挂进军队队列: %v", queue)
	}

	// 第二条命令拿下一个编号
	second, err := CS.CreateOrder(c, OrderDraft{CommanderID: 1, OrderType: "send_message"})
	if err != nil {
		t.Fatalf("CreateOrder err=%v", err)
	}
	if second.ID != 2 {
		t.Fatalf("编号应递增, got %d", second.ID)
	}
}

func TestCreateOrder_校验路径(t *testing.T) {
	c := newServiceCampaign()

	if _, err := CS.CreateOrder(c, OrderDraft{CommanderID: 1, OrderType: "dance"}); !errors.Is(err, ErrUnknownOrderType) {
		t.Fatalf("未知类型期望 ErrUnknownOrderType, got %v", err)
	}
	if _, err := CS.CreateOrder(c, OrderDraft{CommanderID: 99, OrderType: "rest"}); !errors.Is(err, ErrCommanderMissing) {
		t.Fatalf("指挥官不存在期望 ErrCommanderMissing, got %v", err)
	}
	missing := 99
	if _, err := CS.CreateOrder(c, OrderDraft{ArmyID: &missing, CommanderID: 1, OrderType: "rest"}); !errors.Is(err, ErrArmyNotFound) {
		t.Fatalf("军队不存在期望 ErrArmyNotFound, got %v", err)
	}

	c.CurrentDay = 10
	past := 5
	if _, err := CS.CreateOrder(c, OrderDraft{CommanderID: 1, OrderType: "rest", ExecuteDay: &past}); !errors.Is(err, ErrExecuteDayPast) {
		t.Fatalf("过去执行日期望 ErrExecuteDayPast, got %v", err)
	}
	today := 10
	if _, err := CS.CreateOrder(c, OrderDraft{CommanderID: 1, OrderType: "rest", ExecuteDay: &today}); err != nil {
		t.Fatalf("当天执行日应可入册, got %v", err)
	}

	c.Status = "paused"
	if _, err := CS.CreateOrder(c, OrderDraft{CommanderID: 1, OrderType: "rest"}); !errors.Is(err, ErrCampaignInactive) {
		t.Fatalf("停盘战役期望 ErrCampaignInactive, got %v", err)
	}
}

func TestCancelOrder_撤销与摘队(t *testing.T) {
	c := newServiceCampaign()
	armyID := 1
	order, err := CS.CreateOrder(c, OrderDraft{ArmyID: &armyID, CommanderID: 1, OrderType: "rest"})
	if err != nil {
		t.Fatalf("CreateOrder err=%v", err)
	}

	cancelled, err := CS.CancelOrder(c, order.ID)
	if err != nil {
		t.Fatalf("CancelOrder err=%v", err)
	}
	if cancelled.Status != entity.OrderCancelled {
		t.Fatalf("命令应撤销, got %s", cancelled.Status)
	}
	if len(c.Armies[1].OrdersQueue) != 0 {
		t.Fatalf("命令应从队列摘除: %v", c.Armies[1].OrdersQueue)
	}

	if _, err := CS.CancelOrder(c, order.ID); !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("重复撤销期望 ErrOrderNotPending, got %v", err)
	}
	if _, err := CS.CancelOrder(c, 99); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("撤销不存在命令期望 ErrOrderNotFound, got %v", err)
	}
}

func TestAdvanceDays_推进与停盘(t *testing.T) {
	c := newServiceCampaign()
	cfg := rules.Default()

	reports := CS.AdvanceDays(c, cfg, 3)
	if len(reports) != 3 || c.CurrentDay != 3 {
		t.Fatalf("推进天数不符: reports=%d day=%d", len(reports), c.CurrentDay)
	}
	if reports[0].Day != 0 || reports[2].Day != 2 {
		t.Fatalf("日报日期不符: %+v", reports)
	}

	// 不足一天按一天算
	if reports := CS.AdvanceDays(c, cfg, 0); len(reports) != 1 {
		t.Fatalf("至少推进一天: %d", len(reports))
	}

	c.Status = "completed"
	if reports := CS.AdvanceDays(c, cfg, 5); len(reports) != 0 {
		t.Fatalf("停盘战役不该推进: %d", len(reports))
	}
}

func TestDetail_投影排序与计数(t *testing.T) {
	c := newServiceCampaign()
	c.Factions[3] = &entity.Faction{ID: 3, CampaignID: c.ID, Name: "南军", Color: "#0000aa"}
	c.Commanders[2] = &entity.Commander{ID: 2, CampaignID: c.ID, Name: "陆将军", FactionID: 3, Age: 35, Status: "active"}
	c.Armies[3] = &entity.Army{
		ID: 3, CampaignID: c.ID, CommanderID: 2, CurrentHexID: 2,
		Detachments:            []*entity.Detachment{{ID: 2, UnitTypeID: 1, Soldiers: 600}},
		Status:                 entity.ArmyIdle,
		MoraleCurrent:          8, MoraleMax: 12,
		SuppliesCurrent:        1200,
		DailySupplyConsumption: 600,
	}
	c.Sieges[1] = &entity.Siege{ID: 1, StrongholdID: 1, Status: entity.SiegeOngoing}
	c.Sieges[2] = &entity.Siege{ID: 2, StrongholdID: 2, Status: entity.SiegeGatesOpened}
	if _, err := CS.CreateOrder(c, OrderDraft{CommanderID: 1, OrderType: "rest"}); err != nil {
		t.Fatalf("CreateOrder err=%v", err)
	}
	for i := 0; i < recentEventWindow+10; i++ {
		c.AppendEvent(&entity.Event{EventType: "test"})
	}

	d := CS.Detail(c, rules.Default())
	if d.HexCount != 3 || d.ActiveSieges != 1 || d.PendingOrders != 1 {
		t.Fatalf("台账计数不符: %+v", d)
	}
	if len(d.Armies) != 2 || d.Armies[0].ID != 1 || d.Armies[1].ID != 3 {
		t.Fatalf("军队应按编号排序: %+v", d.Armies)
	}
	if d.Armies[1].CommanderName != "陆将军" || d.Armies[1].FactionID != 3 {
		t.Fatalf("指挥官信息未带出: %+v", d.Armies[1])
	}
	if d.Armies[1].SuppliesDays != 2 {
		t.Fatalf("余粮天数期望 2, got %d", d.Armies[1].SuppliesDays)
	}
	if len(d.Factions) != 2 || d.Factions[0].ID != 1 || d.Factions[1].ID != 3 {
		t.Fatalf("势力应按编号排序: %+v", d.Factions)
	}
	// 纯步兵基础侦察半径 1，两军相邻互相可见
	if d.Armies[0].ScoutingRadius != 1 {
		t.Fatalf("侦察半径期望 1, got %d", d.Armies[0].ScoutingRadius)
	}
	if len(d.Armies[0].SightedArmies) != 1 || d.Armies[0].SightedArmies[0] != 3 {
		t.Fatalf("一号军应看见三号军: %+v", d.Armies[0].SightedArmies)
	}
	if len(d.Armies[1].SightedArmies) != 1 || d.Armies[1].SightedArmies[0] != 1 {
		t.Fatalf("三号军应看见一号军: %+v", d.Armies[1].SightedArmies)
	}
	if len(d.RecentEvents) != recentEventWindow {
		t.Fatalf("事件窗口期望 %d, got %d", recentEventWindow, len(d.RecentEvents))
	}
}

func TestImportScenario_校验与缺省(t *testing.T) {
	raw := []byte(`{
		"name": "边境冲突",
		"map": {"hexes": {"1": {"id": 1, "q": 0, "r": 0, "terrain": "flatland"}}},
		"commanders": {"1": {"id": 1, "name": "守将", "faction_id": 1}},
		"armies": {"1": {"id": 1, "commander_id": 1, "current_hex_id": 1,
			"detachments": [{"id": 1, "unit_type_id": 1, "soldiers": 500}]}}
	}`)
	c, err := CS.ImportScenario(raw)
	if err != nil {
		t.Fatalf("ImportScenario err=%v", err)
	}
	if c.Status != "active" || c.CurrentPart != entity.PartMorning || c.Season != entity.SeasonSummer {
		t.Fatalf("缺省字段未补齐: status=%s part=%s season=%s", c.Status, c.CurrentPart, c.Season)
	}
	if c.Orders == nil || c.Sieges == nil || c.Recruitments == nil {
		t.Fatalf("容器未补齐")
	}

	if _, err := CS.ImportScenario([]byte(`{"name": ""}`)); !errors.Is(err, ErrBadScenario) {
		t.Fatalf("缺名字期望 ErrBadScenario, got %v", err)
	}
	if _, err := CS.ImportScenario([]byte(`not json`)); !errors.Is(err, ErrBadScenario) {
		t.Fatalf("坏 JSON 期望 ErrBadScenario, got %v", err)
	}

	onBadHex := []byte(`{
		"name": "坏想定",
		"map": {"hexes": {"1": {"id": 1, "q": 0, "r": 0, "terrain": "flatland"}}},
		"commanders": {"1": {"id": 1, "name": "守将", "faction_id": 1}},
		"armies": {"1": {"id": 1, "commander_id": 1, "current_hex_id": 9}}
	}`)
	if _, err := CS.ImportScenario(onBadHex); !errors.Is(err, ErrBadScenario) {
		t.Fatalf("军队落在未知格期望 ErrBadScenario, got %v", err)
	}
}
