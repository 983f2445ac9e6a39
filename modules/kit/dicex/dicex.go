package dicex

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"sync"
)

// dicex 提供“可复现”的随机数：同一个 seed 字符串永远得到同样的结果。
//
// 约束：
// - 所有随机事件必须从局面状态派生 seed（campaign:day:part:context），禁止隐藏随机源
// - seed -> SHA-256 -> 前 8 字节（大端）作为 PRNG 种子

var notationRe = regexp.MustCompile(`^(\d+)d(\d+)$`)

// RollResult 保留每颗骰子的点数，方便写进事件流做审计。
type RollResult struct {
	Notation string `json:"notation"`
	Rolls    []int  `json:"rolls"`
	Total    int    `json:"total"`
	Seed     string `json:"seed"`
}

// CheckResult 是概率检定的结果：roll >= target 即成功。
type CheckResult struct {
	Success     bool    `json:"success"`
	Roll        int     `json:"roll"`
	Target      int     `json:"target"`
	Probability float64 `json:"probability"`
	Seed        string  `json:"seed"`
}

func seedToUint64(seed string) uint64 {
	digest := sha256.Sum256([]byte(seed))
	return binary.BigEndian.Uint64(digest[:8])
}

func newRand(seed string) *rand.Rand {
	return rand.New(rand.NewSource(int64(seedToUint64(seed))))
}

// ParseNotation 解析 "NdM" 记法（如 "2d6"、"1d20"）。
func ParseNotation(notation string) (numDice, numSides int, err error) {
	m := notationRe.FindStringSubmatch(notation)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid dice notation: %q, expected NdM", notation)
	}
	numDice, _ = strconv.Atoi(m[1])
	numSides, _ = strconv.Atoi(m[2])
	if numDice <= 0 {
		return 0, 0, fmt.Errorf("number of dice must be positive, got %d", numDice)
	}
	if numSides <= 0 {
		return 0, 0, fmt.Errorf("number of sides must be positive, got %d", numSides)
	}
	return numDice, numSides, nil
}

// Roll 按记法掷骰。同一 (seed, notation) 永远返回同样的点数序列。
func Roll(seed, notation string) (RollResult, error) {
	numDice, numSides, err := ParseNotation(notation)
	if err != nil {
		return RollResult{}, err
	}

	rng := newRand(seed)
	rolls := make([]int, numDice)
	total := 0
	for i := range rolls {
		rolls[i] = 1 + rng.Intn(numSides)
		total += rolls[i]
	}
	return RollResult{
		Notation: notation,
		Rolls:    rolls,
		Total:    total,
		Seed:     seed,
	}, nil
}

// MustRoll 供内部规则代码使用（记法是字面量，写错属于程序 bug）。
func MustRoll(seed, notation string) RollResult {
	r, err := Roll(seed, notation)
	if err != nil {
		panic(err)
	}
	return r
}

// Int 返回 [min, max] 闭区间内的随机整数。
func Int(seed string, minVal, maxVal int) (int, error) {
	if minVal > maxVal {
		return 0, fmt.Errorf("min (%d) cannot be greater than max (%d)", minVal, maxVal)
	}
	rng := newRand(seed)
	return minVal + rng.Intn(maxVal-minVal+1), nil
}

// ChoiceIndex 从 n 个选项里选一个，返回下标。
func ChoiceIndex(seed string, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("options cannot be empty")
	}
	rng := newRand(seed)
	return rng.Intn(n), nil
}

type pmfKey struct {
	dice  int
	sides int
}

var (
	pmfMu    sync.Mutex
	pmfCache = make(map[pmfKey]map[int]int)
)

// dicePMF 计算 NdM 点数和的分布（点数和 -> 组合数）。
func dicePMF(numDice, numSides int) map[int]int {
	pmfMu.Lock()
	defer pmfMu.Unlock()

	key := pmfKey{dice: numDice, sides: numSides}
	if cached, ok := pmfCache[key]; ok {
		return cached
	}

	pmf := map[int]int{0: 1}
	for i := 0; i < numDice; i++ {
		next := make(map[int]int)
		for total, count := range pmf {
			for face := 1; face <= numSides; face++ {
				next[total+face] += count
			}
		}
		pmf = next
	}
	pmfCache[key] = pmf
	return pmf
}

// thresholdFor 找最小目标 T，使得 P(roll >= T) >= probability。
// probability<=0 返回 maxRoll+1（必败）；>=1 返回 minRoll（必成）。
func thresholdFor(probability float64, numDice, numSides int) int {
	minRoll := numDice
	maxRoll := numDice * numSides

	if probability <= 0.0 {
		return maxRoll + 1
	}
	if probability >= 1.0 {
		return minRoll
	}

	pmf := dicePMF(numDice, numSides)
	totalOutcomes := 1
	for i := 0; i < numDice; i++ {
		totalOutcomes *= numSides
	}

	// 组合数按整数累加，只在最后和 probability 比较一次，
	// 避免逐项除法累出的浮点误差在 5/6、19/20 这类整分界上翻车。
	needed := probability * float64(totalOutcomes)
	cumulative := 0
	for target := maxRoll; target >= minRoll; target-- {
		cumulative += pmf[target]
		if float64(cumulative) >= needed-1e-9 {
			return target
		}
	}
	return maxRoll + 1
}

// Check 按给定概率做检定：用 NdM 的精确分布换算目标值，再掷骰比较。
//
// 常见用法：
//   - probability=0.5,  "1d6" -> 4+ 成功
//   - probability=1/6,  "1d6" -> 6  成功
func Check(seed string, probability float64, notation string) (CheckResult, error) {
	if probability < 0.0 || probability > 1.0 {
		return CheckResult{}, fmt.Errorf("probability must be between 0.0 and 1.0, got %v", probability)
	}
	numDice, numSides, err := ParseNotation(notation)
	if err != nil {
		return CheckResult{}, err
	}

	target := thresholdFor(probability, numDice, numSides)
	roll := MustRoll(seed, notation)

	return CheckResult{
		Success:     roll.Total >= target,
		Roll:        roll.Total,
		Target:      target,
		Probability: probability,
		Seed:        seed,
	}, nil
}

// MustCheck 供内部规则代码使用。
func MustCheck(seed string, probability float64, notation string) CheckResult {
	c, err := Check(seed, probability, notation)
	if err != nil {
		panic(err)
	}
	return c
}
