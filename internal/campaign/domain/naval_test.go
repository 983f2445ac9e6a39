package domain

import (
	"testing"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
)

func addShip(c *entity.Campaign, id entity.ShipID, hexID entity.HexID) *entity.Ship {
	ship := &entity.Ship{
		ID: id, CampaignID: c.ID, CurrentHexID: hexID,
		Status: entity.NavalAvailable, MovementPointsRemaining: 1.0,
	}
	c.Ships[id] = ship
	return ship
}

func TestEmbarkArmy_同格才能登船(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	army := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	ship := addShip(c, 1, 2)
	cfg := rules.Default()

	if result := EmbarkArmy(army, ship, cfg); result.Success {
		t.Fatalf("异格登船应失败: %+v", result)
	}

	ship.CurrentHexID = 1
	result := EmbarkArmy(army, ship, cfg)
	if !result.Success {
		t.Fatalf("登船失败: %+v", result)
	}
	if army.EmbarkedShipID == nil || *army.EmbarkedShipID != 1 ||
		ship.EmbarkedArmyID == nil || *ship.EmbarkedArmyID != 1 {
		t.Fatalf("登船后双向引用未建立")
	}
	if ship.Status != entity.NavalTransporting || ship.TravelDaysRemaining != 1 {
		t.Fatalf("登船应耗 1 天: status=%s days=%v", ship.Status, ship.TravelDaysRemaining)
	}
	// 已载军的船不能再接一支
	other := addArmy(c, 2, 1, 1, infantryDet(2, 500, 0))
	if result := EmbarkArmy(other, ship, cfg); result.Success {
		t.Fatalf("重复装载应失败: %+v", result)
	}
}

func TestDisembarkArmy_到港才能下船(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	army := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	ship := addShip(c, 1, 1)
	cfg := rules.Default()

	EmbarkArmy(army, ship, cfg)
	if result := DisembarkArmy(army, ship, cfg); result.Success {
		t.Fatalf("航行中下船应失败: %+v", result)
	}

	ship.TravelDaysRemaining = 0
	ship.CurrentHexID = 4
	result := DisembarkArmy(army, ship, cfg)
	if !result.Success {
		t.Fatalf("下船失败: %+v", result)
	}
	if army.EmbarkedShipID != nil || ship.EmbarkedArmyID != nil {
		t.Fatalf("下船后引用应清空")
	}
	if army.CurrentHexID != 4 {
		t.Fatalf("军队应落在船的位置, got %d", army.CurrentHexID)
	}
	if ship.TravelDaysRemaining != 1 {
		t.Fatalf("下船应耗 1 天, got %v", ship.TravelDaysRemaining)
	}
}

func TestSetCourse_航程换算(t *testing.T) {
	c := newTestCampaign()
	ship := addShip(c, 1, 1)
	cfg := rules.Default()

	result := SetCourse(c, ship, []entity.HexID{3}, cfg)
	if !result.Success {
		t.Fatalf("设航线失败: %+v", result)
	}
	// 2 格 × 6 英里 / 48 英里每天
	if ship.TravelDaysRemaining != 0.25 {
		t.Fatalf("航行天数期望 0.25, got %v", ship.TravelDaysRemaining)
	}
	if result := SetCourse(c, ship, nil, cfg); result.Success {
		t.Fatalf("空航线应失败")
	}
	if result := SetCourse(c, ship, []entity.HexID{99}, cfg); result.Success {
		t.Fatalf("未知格应失败")
	}
}

func TestAdvanceShips_到港落位(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	army := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	ship := addShip(c, 1, 1)
	cfg := rules.Default()

	EmbarkArmy(army, ship, cfg)
	ship.TravelDaysRemaining = 0
	SetCourse(c, ship, []entity.HexID{3}, cfg)

	AdvanceShips(c, entity.DayFraction)
	if ship.CurrentHexID != 3 || len(ship.CurrentRoute) != 0 {
		t.Fatalf("船应到港: hex=%d route=%v", ship.CurrentHexID, ship.CurrentRoute)
	}
	if army.CurrentHexID != 3 {
		t.Fatalf("载运的军队应随船落位, got %d", army.CurrentHexID)
	}
	if ship.Status != entity.NavalTransporting {
		t.Fatalf("仍载军的船状态应为 transporting, got %s", ship.Status)
	}
}
