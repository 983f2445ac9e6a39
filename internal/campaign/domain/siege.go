package domain

import (
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
)

// SiegeAdvanceResult 是一次每周围城推进的结果。
type SiegeAdvanceResult struct {
	GatesOpened    bool `json:"gates_opened"`
	ThresholdAfter int  `json:"threshold_after"`
	Roll           int  `json:"roll"`
}

// AdvanceSiege 推进围城一周：阈值按例行 -1，叠加疾病/补给/被袭等修正，
// 攻城器械每队再 -1，然后掷 2d6，超过阈值即开门。
func AdvanceSiege(siege *entity.Siege, rollSeed string, cfg *rules.Config) SiegeAdvanceResult {
	sr := cfg.Siege
	siege.WeeksElapsed++

	threshold := siege.CurrentThreshold + sr.DefaultModifier
	for _, modifier := range siege.ThresholdModifiers {
		switch {
		case modifier.Value != 0:
			threshold += modifier.Value
		case modifier.Kind == "disease":
			threshold += sr.DiseaseModifier
		case modifier.Kind == "resupply":
			threshold += sr.ResupplyModifier
		case modifier.Kind == "attacked":
			threshold += sr.AttackedModifier
		}
	}
	if siege.SiegeEnginesCount > 0 {
		threshold -= siege.SiegeEnginesCount * sr.SiegeEngineReductionPerDetachment
	}
	if threshold < sr.StarvationThreshold {
		threshold = sr.StarvationThreshold
	}
	siege.CurrentThreshold = threshold

	if rollSeed == "" {
		rollSeed = "siege-threshold"
	}
	roll := dicex.MustRoll(rollSeed, "2d6").Total
	opened := roll > siege.CurrentThreshold
	if opened {
		siege.Status = entity.SiegeGatesOpened
	}

	siege.Attempts = append(siege.Attempts, entity.SiegeAttempt{
		Week:      siege.WeeksElapsed,
		Roll:      roll,
		Threshold: siege.CurrentThreshold,
		Opened:    opened,
	})

	return SiegeAdvanceResult{
		GatesOpened:    opened,
		ThresholdAfter: siege.CurrentThreshold,
		Roll:           roll,
	}
}

// InitialSiegeThreshold 按据点类型给出起始阈值。
func InitialSiegeThreshold(strongholdType entity.StrongholdType, cfg *rules.Config) int {
	switch strongholdType {
	case entity.StrongholdFortress:
		return cfg.Siege.FortressThreshold
	case entity.StrongholdCity:
		return cfg.Siege.CityThreshold
	default:
		return cfg.Siege.TownThreshold
	}
}
