package dicex

import "testing"

func TestRoll_同seed结果可复现(t *testing.T) {
	a := MustRoll("1:42:morning:morale", "2d6")
	b := MustRoll("1:42:morning:morale", "2d6")
	if a.Total != b.Total {
		t.Fatalf("期望同 seed 同结果, got %d vs %d", a.Total, b.Total)
	}
	if len(a.Rolls) != 2 {
		t.Fatalf("期望 2 颗骰子, got %d", len(a.Rolls))
	}
	if a.Total < 2 || a.Total > 12 {
		t.Fatalf("2d6 点数越界: %d", a.Total)
	}
	sum := 0
	for _, r := range a.Rolls {
		if r < 1 || r > 6 {
			t.Fatalf("单颗点数越界: %d", r)
		}
		sum += r
	}
	if sum != a.Total {
		t.Fatalf("total 应等于各骰之和, got %d != %d", a.Total, sum)
	}
}

func TestRoll_不同seed分布应有差异(t *testing.T) {
	seen := make(map[int]bool)
	for _, seed := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		seen[MustRoll(seed, "3d6").Total] = true
	}
	if len(seen) < 2 {
		t.Fatalf("8 个不同 seed 至少应出现 2 种点数, got %v", seen)
	}
}

func TestRoll_非法记法返回错误(t *testing.T) {
	for _, notation := range []string{"", "d6", "2d", "0d6", "2d0", "-1d6", "2x6"} {
		if _, err := Roll("s", notation); err == nil {
			t.Fatalf("期望记法 %q 返回错误", notation)
		}
	}
}

func TestInt_区间与确定性(t *testing.T) {
	v, err := Int("seed-x", 1, 100)
	if err != nil {
		t.Fatalf("Int err=%v", err)
	}
	if v < 1 || v > 100 {
		t.Fatalf("越界: %d", v)
	}
	v2, _ := Int("seed-x", 1, 100)
	if v != v2 {
		t.Fatalf("期望可复现, got %d vs %d", v, v2)
	}
	if _, err := Int("s", 5, 4); err == nil {
		t.Fatalf("期望 min>max 返回错误")
	}
}

func TestChoiceIndex_空选项返回错误(t *testing.T) {
	if _, err := ChoiceIndex("s", 0); err == nil {
		t.Fatalf("期望空选项返回错误")
	}
	idx, err := ChoiceIndex("s", 3)
	if err != nil || idx < 0 || idx >= 3 {
		t.Fatalf("idx=%d err=%v", idx, err)
	}
}

func TestCheck_阈值换算(t *testing.T) {
	cases := []struct {
		probability float64
		notation    string
		target      int
	}{
		{0.5, "1d6", 4},          // 4,5,6 三面成功
		{1.0 / 6.0, "1d6", 6},    // 只有 6 成功
		{2.0 / 6.0, "1d6", 5},    // 5,6 成功
		{5.0 / 6.0, "1d6", 2},    // 2..6 成功
		{19.0 / 20.0, "1d20", 2}, // 1d20 2+ 成功
		{35.0 / 36.0, "2d6", 3},  // 只有双 1 失败
		{1.0 / 36.0, "2d6", 12},  // 只有双 6 成功
		{0.0, "1d6", 7},          // 必败
		{1.0, "1d6", 1},          // 必成
	}
	for _, c := range cases {
		got := MustCheck("seed", c.probability, c.notation)
		if got.Target != c.target {
			t.Fatalf("p=%v %s: 期望 target=%d, got %d", c.probability, c.notation, c.target, got.Target)
		}
		if got.Success != (got.Roll >= got.Target) {
			t.Fatalf("success 与 roll/target 不一致: %+v", got)
		}
	}
}

func TestCheck_概率越界返回错误(t *testing.T) {
	if _, err := Check("s", -0.1, "1d6"); err == nil {
		t.Fatalf("期望 p<0 返回错误")
	}
	if _, err := Check("s", 1.1, "1d6"); err == nil {
		t.Fatalf("期望 p>1 返回错误")
	}
}
