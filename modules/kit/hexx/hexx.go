package hexx

import "fmt"

// hexx 实现六边形坐标系（axial 存储，cube 算距离）。
// 参考: https://www.redblobgames.com/grids/hexagons/

// Coord 是 axial 坐标（q 列、r 行），可直接做 map key。
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

func New(q, r int) Coord {
	return Coord{Q: q, R: r}
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Q, c.R)
}

// ToCube 转 cube 坐标，满足 x+y+z=0。
func (c Coord) ToCube() (x, y, z int) {
	x = c.Q
	z = c.R
	y = -x - z
	return x, y, z
}

func FromCube(x, _, z int) Coord {
	return Coord{Q: x, R: z}
}

// Distance 是两格之间的最短步数: max(|dx|,|dy|,|dz|)。
func Distance(a, b Coord) int {
	ax, ay, az := a.ToCube()
	bx, by, bz := b.ToCube()
	return max(abs(ax-bx), abs(ay-by), abs(az-bz))
}

// 六个相邻方向: 东、东北、西北、西、西南、东南。
var neighborDirections = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors 返回 6 个相邻格，顺序固定。
func Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, 6)
	for _, d := range neighborDirections {
		out = append(out, Coord{Q: c.Q + d.Q, R: c.R + d.R})
	}
	return out
}

// InRange 返回距 center 不超过 n 的所有格（含自身），数量为 3n²+3n+1。
func InRange(center Coord, n int) ([]Coord, error) {
	if n < 0 {
		return nil, fmt.Errorf("range must be non-negative, got %d", n)
	}

	cx, cy, cz := center.ToCube()
	out := make([]Coord, 0, 3*n*n+3*n+1)
	for dx := -n; dx <= n; dx++ {
		lo := max(-n, -dx-n)
		hi := min(n, -dx+n)
		for dy := lo; dy <= hi; dy++ {
			dz := -dx - dy
			out = append(out, FromCube(cx+dx, cy+dy, cz+dz))
		}
	}
	return out, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
