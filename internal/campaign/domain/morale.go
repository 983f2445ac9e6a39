package domain

import (
	"fmt"
	"strings"

	"Cataphract/internal/campaign/entity"
	"Cataphract/modules/kit/dicex"
)

// MoraleConsequence 对应 2d6 士气失败后果表的点数。
type MoraleConsequence int

const (
	MoraleMutiny                 MoraleConsequence = 2  // 19/20 每个分队哗变
	MoraleMassDesertion          MoraleConsequence = 3  // 损失 30%
	MoraleDetachmentsDefect      MoraleConsequence = 4  // 1d6 个分队叛逃
	MoraleMajorDesertion         MoraleConsequence = 5  // 损失 20%
	MoraleArmySplits             MoraleConsequence = 6  // 3/6 每个分队另立门户
	MoraleRandomDetachmentDefect MoraleConsequence = 7  // 随机 1 个分队叛逃
	MoraleDesertion              MoraleConsequence = 8  // 损失 10%
	MoraleDetachmentsDepart      MoraleConsequence = 9  // 1d6 个分队离队 2d6 天
	MoraleCampFollowers          MoraleConsequence = 10 // 非战斗人员 +5%
	MoraleDetachmentDeparts      MoraleConsequence = 11 // 1 个分队离队 2d6 天
	MoraleNoConsequences         MoraleConsequence = 12
)

func (c MoraleConsequence) String() string {
	switch c {
	case MoraleMutiny:
		return "mutiny"
	case MoraleMassDesertion:
		return "mass_desertion"
	case MoraleDetachmentsDefect:
		return "detachments_defect"
	case MoraleMajorDesertion:
		return "major_desertion"
	case MoraleArmySplits:
		return "army_splits"
	case MoraleRandomDetachmentDefect:
		return "random_detachment_defects"
	case MoraleDesertion:
		return "desertion"
	case MoraleDetachmentsDepart:
		return "detachments_depart"
	case MoraleCampFollowers:
		return "camp_followers"
	case MoraleDetachmentDeparts:
		return "detachment_departs"
	case MoraleNoConsequences:
		return "no_consequences"
	}
	return fmt.Sprintf("consequence_%d", int(c))
}

// MoraleOutcome 汇总一次士气后果结算的全部产出，调用方据此生成事件与叛军。
type MoraleOutcome struct {
	Consequence          MoraleConsequence      `json:"consequence"`
	Roll                 int                    `json:"roll"`
	DefectedDetachments  []*entity.Detachment   `json:"-"`
	DefectedIDs          []entity.DetachmentID  `json:"defected_ids,omitempty"`
	LossPercentage       float64                `json:"loss_percentage,omitempty"`
	DepartingDetachments int                    `json:"departing_detachments,omitempty"`
	ReturnInDays         int                    `json:"return_in_days,omitempty"`
	NoncombatantIncrease int                    `json:"noncombatant_increase,omitempty"`
	VeteranHeld          bool                   `json:"veteran_held,omitempty"`
}

// RollMoraleCheck 掷 2d6 士气判定，点数不超过当前士气即成功。
func RollMoraleCheck(morale int, seed string) (success bool, roll int) {
	result := dicex.MustRoll(seed, "2d6")
	return result.Total <= morale, result.Total
}

func hasTrait(traits []*entity.Trait, name string) bool {
	for _, t := range traits {
		if t != nil && strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

// removeDetachments 把指定下标的分队从军队里摘出来并返回。
func removeDetachments(army *entity.Army, indices []int) []*entity.Detachment {
	picked := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		picked[idx] = struct{}{}
	}
	removed := make([]*entity.Detachment, 0, len(indices))
	kept := army.Detachments[:0]
	for i, det := range army.Detachments {
		if _, ok := picked[i]; ok {
			removed = append(removed, det)
		} else {
			kept = append(kept, det)
		}
	}
	army.Detachments = kept
	return removed
}

// pickRandomIndices 不放回地随机挑 n 个分队下标。
func pickRandomIndices(seed string, total, n int) []int {
	remaining := make([]int, total)
	for i := range remaining {
		remaining[i] = i
	}
	selected := make([]int, 0, n)
	for i := 0; i < n && len(remaining) > 0; i++ {
		pick, err := dicex.ChoiceIndex(fmt.Sprintf("%s:pick_%d", seed, i), len(remaining))
		if err != nil {
			break
		}
		selected = append(selected, remaining[pick])
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return selected
}

func applyProportionalLoss(army *entity.Army, lossPct float64) {
	for _, det := range army.Detachments {
		det.Soldiers = maxInt(1, int(float64(det.Soldiers)*(1-lossPct)))
	}
	army.SuppliesCurrent = int(float64(army.SuppliesCurrent) * (1 - lossPct))
}

// ApplyMoraleConsequence 按 2d6 点数结算士气失败后果，就地修改军队。
// 诗人特质让本表点数 +2，老兵特质免疫哗变与分裂两种整军崩溃。
func ApplyMoraleConsequence(army *entity.Army, roll int, traits []*entity.Trait, seed string, currentDay int) MoraleOutcome {
	effective := roll
	if hasTrait(traits, "poet") {
		effective += 2
	}
	if effective < 2 {
		effective = 2
	}
	if effective > 12 {
		effective = 12
	}

	outcome := MoraleOutcome{Consequence: MoraleConsequence(effective), Roll: roll}

	if hasTrait(traits, "veteran") &&
		(outcome.Consequence == MoraleMutiny || outcome.Consequence == MoraleArmySplits) {
		outcome.VeteranHeld = true
		return outcome
	}

	switch outcome.Consequence {
	case MoraleMutiny:
		// 每个分队各自 19/20 判定是否哗变。
		var indices []int
		for i := range army.Detachments {
			check := dicex.MustCheck(fmt.Sprintf("%s:mutiny_det_%d", seed, i), 19.0/20.0, "1d20")
			if check.Success {
				indices = append(indices, i)
			}
		}
		outcome.DefectedDetachments = removeDetachments(army, indices)

	case MoraleMassDesertion:
		outcome.LossPercentage = 0.30
		applyProportionalLoss(army, outcome.LossPercentage)

	case MoraleDetachmentsDefect:
		num := dicex.MustRoll(seed+":defect_count", "1d6").Total
		if limit := len(army.Detachments) - 1; num > limit {
			num = limit
		}
		if num > 0 {
			indices := pickRandomIndices(seed+":defect_selection", len(army.Detachments), num)
			outcome.DefectedDetachments = removeDetachments(army, indices)
		}

	case MoraleMajorDesertion:
		outcome.LossPercentage = 0.20
		applyProportionalLoss(army, outcome.LossPercentage)

	case MoraleArmySplits:
		// 每个分队 3/6 判定是否跟新统帅走，至少留一队。
		var indices []int
		for i := range army.Detachments {
			check := dicex.MustCheck(fmt.Sprintf("%s:split_det_%d", seed, i), 3.0/6.0, "1d6")
			if check.Success {
				indices = append(indices, i)
			}
		}
		if len(indices) >= len(army.Detachments) && len(indices) > 0 {
			indices = indices[:len(indices)-1]
		}
		outcome.DefectedDetachments = removeDetachments(army, indices)

	case MoraleRandomDetachmentDefect:
		if len(army.Detachments) > 1 {
			indices := pickRandomIndices(seed+":single_defect", len(army.Detachments), 1)
			outcome.DefectedDetachments = removeDetachments(army, indices)
		}

	case MoraleDesertion:
		outcome.LossPercentage = 0.10
		applyProportionalLoss(army, outcome.LossPercentage)

	case MoraleDetachmentsDepart:
		num := dicex.MustRoll(seed+":depart_count", "1d6").Total
		daysGone := dicex.MustRoll(seed+":depart_days", "2d6").Total
		if limit := len(army.Detachments) - 1; num > limit {
			num = limit
		}
		if num > 0 {
			indices := pickRandomIndices(seed+":depart_selection", len(army.Detachments), num)
			ids := make([]entity.DetachmentID, 0, len(indices))
			for _, idx := range indices {
				ids = append(ids, army.Detachments[idx].ID)
			}
			army.StatusEffects.DepartedDetachments = &entity.DepartedDetachments{
				DetachmentIDs: ids,
				ReturnDay:     currentDay + daysGone,
			}
			outcome.DepartingDetachments = len(ids)
			outcome.ReturnInDays = daysGone
		}

	case MoraleCampFollowers:
		increase := int(float64(army.NoncombatantCount) * 0.05)
		army.NoncombatantCount += increase
		outcome.NoncombatantIncrease = increase

	case MoraleDetachmentDeparts:
		daysGone := dicex.MustRoll(seed+":single_depart_days", "2d6").Total
		if len(army.Detachments) > 1 {
			indices := pickRandomIndices(seed+":single_depart_selection", len(army.Detachments), 1)
			army.StatusEffects.DepartedDetachments = &entity.DepartedDetachments{
				DetachmentIDs: []entity.DetachmentID{army.Detachments[indices[0]].ID},
				ReturnDay:     currentDay + daysGone,
			}
			outcome.DepartingDetachments = 1
			outcome.ReturnInDays = daysGone
		}

	case MoraleNoConsequences:
	}

	for _, det := range outcome.DefectedDetachments {
		outcome.DefectedIDs = append(outcome.DefectedIDs, det.ID)
	}
	return outcome
}

// AdjustMorale 调整士气，下限 2、上限 maxMorale。
func AdjustMorale(army *entity.Army, change, maxMorale int) {
	v := army.MoraleCurrent + change
	if v < 2 {
		v = 2
	}
	if v > maxMorale {
		v = maxMorale
	}
	army.MoraleCurrent = v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
