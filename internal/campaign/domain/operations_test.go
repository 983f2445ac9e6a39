package domain

import (
	"testing"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
)

func TestResolveOperation_目标值折算(t *testing.T) {
	cases := []struct {
		name       string
		complexity string
		territory  entity.MessengerTerritory
		modifier   int
		want       int
	}{
		{"简单行动", "simple", entity.TerritoryFriendly, 0, 5},
		{"标准行动", "standard", entity.TerritoryFriendly, 0, 7},
		{"敌境复杂行动", "complex", entity.TerritoryHostile, 0, 10},
		{"上限封 12", "complex", entity.TerritoryHostile, -10, 12},
		{"下限封 2", "simple", entity.TerritoryFriendly, 10, 2},
	}
	cfg := rules.Default()
	for i, tc := range cases {
		c := newTestCampaign()
		op := &entity.Operation{
			ID: entity.OperationID(i + 1), CommanderID: 1,
			OperationType: entity.OpIntelligence,
			Complexity:    tc.complexity, TerritoryType: tc.territory,
			DifficultyModifier: tc.modifier, Outcome: entity.OutcomePending,
		}
		result := ResolveOperation(c, op, "op-seed", cfg)
		if result.Target != tc.want {
			t.Fatalf("%s 目标值期望 %d, got %d", tc.name, tc.want, result.Target)
		}
	}
}

func TestResolveOperation_结算回写(t *testing.T) {
	c := newTestCampaign()
	c.CurrentDay = 17
	cfg := rules.Default()
	op := &entity.Operation{
		ID: 1, CommanderID: 1, OperationType: entity.OpSabotage,
		Complexity: "standard", TerritoryType: entity.TerritoryFriendly,
		Outcome: entity.OutcomePending,
	}

	result := ResolveOperation(c, op, "sabotage-roll", cfg)
	roll := dicex.MustRoll("sabotage-roll", "2d6").Total
	if result.Roll != roll || result.Success != (roll >= 7) {
		t.Fatalf("判定与骰子不一致: roll=%d result=%+v", roll, result)
	}
	if op.ExecutedOnDay == nil || *op.ExecutedOnDay != 17 {
		t.Fatalf("应记录执行日期: %+v", op.ExecutedOnDay)
	}
	if result.Success && op.Outcome != entity.OutcomeSuccess {
		t.Fatalf("成功时应回写 success, got %s", op.Outcome)
	}
	if !result.Success && op.Outcome != entity.OutcomeFailure {
		t.Fatalf("失败时应回写 failure, got %s", op.Outcome)
	}
	if op.Result["roll"] != roll || op.Result["target"] != 7 {
		t.Fatalf("结果明细不符: %+v", op.Result)
	}
}
