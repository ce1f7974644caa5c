package core

// Direction 朝向
type Direction int

const (
	DirDown Direction = iota
	DirUp
	DirLeft
	DirRight
)

// Directions 四个方向，固定顺序保证遍历确定性
var Directions = [4]Direction{DirDown, DirUp, DirLeft, DirRight}

func (d Direction) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// Opposite 反方向
func (d Direction) Opposite() Direction {
	switch d {
	case DirDown:
		return DirUp
	case DirUp:
		return DirDown
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta 单位格位移
func (d Direction) Delta() (int, int) {
	switch d {
	case DirDown:
		return 0, 1
	case DirUp:
		return 0, -1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Horizontal 是否水平方向
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// GridPos 格子坐标，1 起始
type GridPos struct {
	X, Y int
}

// Step 沿方向前进 n 格
func (p GridPos) Step(d Direction, n int) GridPos {
	dx, dy := d.Delta()
	return GridPos{X: p.X + dx*n, Y: p.Y + dy*n}
}

// Distance 曼哈顿距离
func (p GridPos) Distance(o GridPos) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
