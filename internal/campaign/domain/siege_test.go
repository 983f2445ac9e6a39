package domain

import (
	"testing"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
)

func TestInitialSiegeThreshold_按据点类型(t *testing.T) {
	cfg := rules.Default()
	cases := []struct {
		kind entity.StrongholdType
		want int
	}{
		{entity.StrongholdTown, 10},
		{entity.StrongholdCity, 15},
		{entity.StrongholdFortress, 20},
	}
	for _, tc := range cases {
		if got := InitialSiegeThreshold(tc.kind, cfg); got != tc.want {
			t.Fatalf("%s 起始阈值期望 %d, got %d", tc.kind, tc.want, got)
		}
	}
}

func TestAdvanceSiege_阈值递减与判定(t *testing.T) {
	cfg := rules.Default()
	siege := &entity.Siege{
		ID: 1, StrongholdID: 1, CurrentThreshold: 10,
		SiegeEnginesCount: 2, Status: entity.SiegeOngoing,
	}

	result := AdvanceSiege(siege, "siege:1:6", cfg)
	// 例行 -1，两队器械再 -2
	if result.ThresholdAfter != 7 || siege.CurrentThreshold != 7 {
		t.Fatalf("阈值期望 7, got %+v", result)
	}
	if siege.WeeksElapsed != 1 || len(siege.Attempts) != 1 {
		t.Fatalf("周数与记录不符: %+v", siege)
	}
	roll := dicex.MustRoll("siege:1:6", "2d6").Total
	if result.Roll != roll || result.GatesOpened != (roll > 7) {
		t.Fatalf("判定与骰子不一致: roll=%d result=%+v", roll, result)
	}
	attempt := siege.Attempts[0]
	if attempt.Week != 1 || attempt.Roll != roll || attempt.Threshold != 7 {
		t.Fatalf("检定记录不符: %+v", attempt)
	}
}

func TestAdvanceSiege_修正项叠加(t *testing.T) {
	cfg := rules.Default()
	siege := &entity.Siege{
		ID: 2, StrongholdID: 1, CurrentThreshold: 15, Status: entity.SiegeOngoing,
		ThresholdModifiers: []entity.SiegeModifier{
			{Kind: "disease"},
			{Kind: "resupply"},
			{Kind: "custom", Value: -3},
		},
	}

	result := AdvanceSiege(siege, "siege:2:13", cfg)
	// 15 -1(例行) -1(疫病) +2(补给入城) -3(自定义)
	if result.ThresholdAfter != 12 {
		t.Fatalf("阈值期望 12, got %d", result.ThresholdAfter)
	}
}

func TestAdvanceSiege_阈值见底必然开门(t *testing.T) {
	cfg := rules.Default()
	siege := &entity.Siege{ID: 3, StrongholdID: 1, CurrentThreshold: 1, Status: entity.SiegeOngoing}

	result := AdvanceSiege(siege, "siege:3:20", cfg)
	// 1-1=0 封在饥馑下限，2d6 必然大于 0
	if result.ThresholdAfter != 0 || !result.GatesOpened {
		t.Fatalf("阈值见底应开门: %+v", result)
	}
	if siege.Status != entity.SiegeGatesOpened {
		t.Fatalf("围城状态应为 gates_opened, got %s", siege.Status)
	}
}
