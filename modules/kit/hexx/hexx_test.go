package hexx

import "testing"

func TestDistance_对称且原点为零(t *testing.T) {
	origin := New(0, 0)
	if d := Distance(origin, origin); d != 0 {
		t.Fatalf("自距应为 0, got %d", d)
	}
	a := New(2, 1)
	if d := Distance(origin, a); d != 3 {
		t.Fatalf("期望 3, got %d", d)
	}
	if Distance(origin, a) != Distance(a, origin) {
		t.Fatalf("距离应对称")
	}
}

func TestNeighbors_六个相邻格距离均为1(t *testing.T) {
	c := New(3, -2)
	ns := Neighbors(c)
	if len(ns) != 6 {
		t.Fatalf("期望 6 个相邻格, got %d", len(ns))
	}
	seen := make(map[Coord]bool)
	for _, n := range ns {
		if Distance(c, n) != 1 {
			t.Fatalf("相邻格距离应为 1: %v", n)
		}
		if seen[n] {
			t.Fatalf("相邻格重复: %v", n)
		}
		seen[n] = true
	}
	if !seen[New(4, -2)] {
		t.Fatalf("期望包含东侧相邻格")
	}
}

func TestInRange_数量满足公式(t *testing.T) {
	center := New(1, -1)
	for _, n := range []int{0, 1, 2, 3} {
		hexes, err := InRange(center, n)
		if err != nil {
			t.Fatalf("n=%d err=%v", n, err)
		}
		want := 3*n*n + 3*n + 1
		if len(hexes) != want {
			t.Fatalf("n=%d 期望 %d 格, got %d", n, want, len(hexes))
		}
		containsCenter := false
		for _, h := range hexes {
			if Distance(center, h) > n {
				t.Fatalf("n=%d 出现超距格 %v", n, h)
			}
			if h == center {
				containsCenter = true
			}
		}
		if !containsCenter {
			t.Fatalf("结果应包含中心格")
		}
	}
}

func TestInRange_负数范围返回错误(t *testing.T) {
	if _, err := InRange(New(0, 0), -1); err == nil {
		t.Fatalf("期望 n<0 返回错误")
	}
}

func TestCube_约束(t *testing.T) {
	x, y, z := New(1, 2).ToCube()
	if x+y+z != 0 {
		t.Fatalf("cube 坐标应满足 x+y+z=0, got %d %d %d", x, y, z)
	}
	if FromCube(x, y, z) != New(1, 2) {
		t.Fatalf("cube/axial 互转应可逆")
	}
}
