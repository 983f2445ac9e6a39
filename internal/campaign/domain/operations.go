package domain

import (
	"fmt"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
)

// OperationResult 是一次谍报行动的结算结果。
type OperationResult struct {
	Success bool   `json:"success"`
	Roll    int    `json:"roll"`
	Target  int    `json:"target"`
	Detail  string `json:"detail"`
}

// ResolveOperation 立即结算一次谍报行动并改写记录。
// 2d6 ≥ 目标值即成功；simple +2、complex -2、敌境 -1 折入目标值。
func ResolveOperation(c *entity.Campaign, operation *entity.Operation, seed string, cfg *rules.Config) OperationResult {
	modifier := operation.DifficultyModifier
	switch operation.Complexity {
	case "simple":
		modifier += cfg.Operations.SimpleModifier
	case "complex":
		modifier += cfg.Operations.ComplexModifier
	}
	if operation.TerritoryType == entity.TerritoryHostile {
		modifier += cfg.Operations.HostileTerritoryModifier
	}

	target := cfg.Operations.BaseSuccessTarget - modifier
	if target < 2 {
		target = 2
	}
	if target > 12 {
		target = 12
	}

	if seed == "" {
		seed = fmt.Sprintf("operation:%d", operation.ID)
	}
	roll := dicex.MustRoll(seed, "2d6").Total
	success := roll >= target

	day := c.CurrentDay
	operation.ExecutedOnDay = &day
	if success {
		operation.Outcome = entity.OutcomeSuccess
	} else {
		operation.Outcome = entity.OutcomeFailure
	}
	operation.Result = map[string]any{
		"roll":    roll,
		"target":  target,
		"success": success,
	}

	detail := "operation failed"
	if success {
		detail = "operation success"
	}
	return OperationResult{Success: success, Roll: roll, Target: target, Detail: detail}
}
