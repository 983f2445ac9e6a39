package domain

import (
	"testing"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
)

func TestResolveBattle_平局守方胜(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	addCommander(c, 2, 2)
	attacker := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	defender := addArmy(c, 2, 2, 2, infantryDet(2, 1000, 0))

	opts := BattleOptions{
		Seed:               "tie",
		AttackerFixedRolls: map[entity.ArmyID]int{1: 7},
		DefenderFixedRolls: map[entity.ArmyID]int{2: 7},
	}
	result := ResolveBattle([]*entity.Army{attacker}, []*entity.Army{defender}, c.UnitTypes, opts, rules.Default())

	if result.Winner != "defender" || result.RollDifference != 0 {
		t.Fatalf("平局应判守方胜: %+v", result)
	}
	// 点差 0：双方各损 5%，胜方士气 -1，败方不变
	if attacker.Detachments[0].Soldiers != 950 || defender.Detachments[0].Soldiers != 950 {
		t.Fatalf("伤亡不符: atk=%d def=%d", attacker.Detachments[0].Soldiers, defender.Detachments[0].Soldiers)
	}
	if attacker.MoraleCurrent != 9 || defender.MoraleCurrent != 8 {
		t.Fatalf("士气不符: atk=%d def=%d", attacker.MoraleCurrent, defender.MoraleCurrent)
	}
	if result.AttackerRecords[1].RetreatHexes != 0 {
		t.Fatalf("点差 0 不该有退却: %+v", result.AttackerRecords[1])
	}
}

func TestResolveBattle_大胜伤亡表(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	addCommander(c, 2, 2)
	attacker := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	defender := addArmy(c, 2, 2, 2, infantryDet(2, 1000, 0))

	opts := BattleOptions{
		Seed:               "rout6",
		AttackerFixedRolls: map[entity.ArmyID]int{1: 12},
		DefenderFixedRolls: map[entity.ArmyID]int{2: 4},
	}
	result := ResolveBattle([]*entity.Army{attacker}, []*entity.Army{defender}, c.UnitTypes, opts, rules.Default())

	if result.Winner != "attacker" || result.RollDifference != 8 {
		t.Fatalf("期望攻方大胜: %+v", result)
	}
	// 点差 ≥6：胜方 5% / +2，败方 20% / -2
	if attacker.Detachments[0].Soldiers != 950 || attacker.MoraleCurrent != 11 {
		t.Fatalf("胜方结算不符: soldiers=%d morale=%d", attacker.Detachments[0].Soldiers, attacker.MoraleCurrent)
	}
	if defender.Detachments[0].Soldiers != 800 || defender.MoraleCurrent != 7 {
		t.Fatalf("败方结算不符: soldiers=%d morale=%d", defender.Detachments[0].Soldiers, defender.MoraleCurrent)
	}
	if result.DefenderRecords[2].Routed {
		t.Fatalf("士气 7 不该溃退")
	}
	// 惨败的统帅被俘走 2/6 判定，种子固定后可复现
	captured := dicex.MustRoll("rout6:capture:2", "1d6").Total <= rules.Default().Battle.CaptureChanceMajor
	if result.DefenderRecords[2].CommanderCaptured != captured {
		t.Fatalf("被俘判定与骰子不一致: expect=%v record=%+v", captured, result.DefenderRecords[2])
	}
}

func TestResolveBattle_低士气溃退(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	addCommander(c, 2, 2)
	attacker := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	defender := addArmy(c, 2, 2, 2, infantryDet(2, 1000, 0))
	defender.MoraleCurrent = 4 // 低于休整值，-2 修正

	cfg := rules.Default()
	opts := BattleOptions{
		Seed:               "rout",
		AttackerFixedRolls: map[entity.ArmyID]int{1: 10},
		DefenderFixedRolls: map[entity.ArmyID]int{2: 5},
	}
	result := ResolveBattle([]*entity.Army{attacker}, []*entity.Army{defender}, c.UnitTypes, opts, cfg)

	record := result.DefenderRecords[2]
	if record.Modifiers["morale"] != -2 {
		t.Fatalf("低士气修正期望 -2: %+v", record.Modifiers)
	}
	// 5-2=3 对 10，点差 7：败方 -2 后士气 2，触发溃退
	if !record.Routed || defender.Status != entity.ArmyRouted {
		t.Fatalf("守方应溃退: %+v status=%s", record, defender.Status)
	}
	wantRetreat := dicex.MustRoll("rout:retreat:2", "1d6").Total
	if record.RetreatHexes != wantRetreat {
		t.Fatalf("退却格数期望 %d, got %d", wantRetreat, record.RetreatHexes)
	}
	lossDie := dicex.MustRoll("rout:retreat-supplies:2", "1d6").Total
	wantSupplies := int(float64(int(1000*0.8)) * (1 - float64(lossDie*10)/100))
	if defender.SuppliesCurrent != wantSupplies {
		t.Fatalf("溃退补给损失期望 %d, got %d", wantSupplies, defender.SuppliesCurrent)
	}
}

func TestResolveBattle_兵力与士气修正(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	addCommander(c, 2, 2)
	attacker := addArmy(c, 1, 1, 1, infantryDet(1, 2000, 0))
	attacker.MoraleCurrent = 12
	defender := addArmy(c, 2, 2, 2, infantryDet(2, 1000, 0))

	cfg := rules.Default()
	opts := BattleOptions{
		Seed:               "mods",
		AttackerFixedRolls: map[entity.ArmyID]int{1: 7},
		DefenderFixedRolls: map[entity.ArmyID]int{2: 7},
	}
	result := ResolveBattle([]*entity.Army{attacker}, []*entity.Army{defender}, c.UnitTypes, opts, cfg)

	record := result.AttackerRecords[1]
	if record.Modifiers["morale"] != 1 {
		t.Fatalf("士气 12 对休整 9 期望 +1: %+v", record.Modifiers)
	}
	wantNumeric := int((2000.0/1000.0 - 1) / cfg.Battle.MultiSideNumericBonusRatio)
	if record.Modifiers["numeric"] != wantNumeric {
		t.Fatalf("兵力优势修正期望 %d: %+v", wantNumeric, record.Modifiers)
	}
	if result.Winner != "attacker" {
		t.Fatalf("修正后攻方应胜: %+v", result)
	}
}

func TestResolveBattle_多军取最高点(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	addCommander(c, 2, 2)
	a1 := addArmy(c, 1, 1, 1, infantryDet(1, 500, 0))
	a2 := addArmy(c, 2, 1, 1, infantryDet(2, 500, 0))
	defender := addArmy(c, 3, 2, 2, infantryDet(3, 1000, 0))

	opts := BattleOptions{
		Seed:               "multi",
		AttackerFixedRolls: map[entity.ArmyID]int{1: 4, 2: 9},
		DefenderFixedRolls: map[entity.ArmyID]int{3: 7},
	}
	result := ResolveBattle([]*entity.Army{a1, a2}, []*entity.Army{defender}, c.UnitTypes, opts, rules.Default())

	if result.Winner != "attacker" || result.RollDifference != 2 {
		t.Fatalf("应取攻方最高点 9 对 7: %+v", result)
	}
	// 胜方阵营各军都按胜方口径结算伤亡
	if a1.Detachments[0].Soldiers != 475 || a2.Detachments[0].Soldiers != 475 {
		t.Fatalf("攻方伤亡不符: a1=%d a2=%d", a1.Detachments[0].Soldiers, a2.Detachments[0].Soldiers)
	}
	if defender.Detachments[0].Soldiers != 900 || defender.MoraleCurrent != 7 {
		t.Fatalf("守方结算不符: soldiers=%d morale=%d", defender.Detachments[0].Soldiers, defender.MoraleCurrent)
	}
}
