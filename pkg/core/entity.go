package core

import "math"

// Status 生命状态
type Status int

const (
	StatusAlive Status = iota
	StatusDying
	StatusDead
)

func (s Status) String() string {
	switch s {
	case StatusAlive:
		return "alive"
	case StatusDying:
		return "dying"
	case StatusDead:
		return "dead"
	}
	return "unknown"
}

// Blocker 判断某格对当前移动者是否不可通行
type Blocker func(x, y int) bool

// Borders 碰撞盒边界（格坐标）
type Borders struct {
	Left, Right, Top, Bottom float64
}

// Corners 四个角所在的格子
func (b Borders) Corners() [4]GridPos {
	l, r := int(math.Floor(b.Left)), int(math.Floor(b.Right))
	t, btm := int(math.Floor(b.Top)), int(math.Floor(b.Bottom))
	return [4]GridPos{{l, t}, {r, t}, {l, btm}, {r, btm}}
}

// Overlaps 两个碰撞盒是否相交
func (b Borders) Overlaps(o Borders) bool {
	return b.Left < o.Right && b.Right > o.Left && b.Top < o.Bottom && b.Bottom > o.Top
}

// OverlapsTile 碰撞盒是否与某格相交
func (b Borders) OverlapsTile(p GridPos) bool {
	return b.Overlaps(Borders{
		Left:   float64(p.X),
		Right:  float64(p.X+1) - edgeEpsilon,
		Top:    float64(p.Y),
		Bottom: float64(p.Y+1) - edgeEpsilon,
	})
}

// Entity 可移动实体（角色与敌人共用）
// X, Y 为精灵左上角的格坐标，整数时与格子对齐。
type Entity struct {
	ID     int
	Kind   Kind
	X, Y   float64
	Speed  float64
	Facing Direction
	Moving bool
	Status Status
}

// NewEntity 按变体常量在格子上创建实体
func NewEntity(id int, kind Kind, pos GridPos) Entity {
	return Entity{
		ID:     id,
		Kind:   kind,
		X:      float64(pos.X),
		Y:      float64(pos.Y),
		Speed:  kind.Traits().Speed,
		Facing: DirDown,
		Status: StatusAlive,
	}
}

// Alive 是否存活
func (e *Entity) Alive() bool {
	return e.Status == StatusAlive
}

// Borders 计算碰撞盒
// own 为 true 时返回自身碰撞盒；为 false 时向外扩一格，用于检查边缘之外的相邻格。
// floorValues 为 true 时各边取整到格坐标。
func (e *Entity) Borders(own, floorValues bool) Borders {
	in := e.Kind.Traits().Box
	b := Borders{
		Left:   e.X + in.Left,
		Right:  e.X + 1 - in.Right - edgeEpsilon,
		Top:    e.Y + in.Top,
		Bottom: e.Y + 1 - in.Bottom - edgeEpsilon,
	}
	if !own {
		b.Left--
		b.Right++
		b.Top--
		b.Bottom++
	}
	if floorValues {
		b.Left = math.Floor(b.Left)
		b.Right = math.Floor(b.Right)
		b.Top = math.Floor(b.Top)
		b.Bottom = math.Floor(b.Bottom)
	}
	return b
}

// Tile 碰撞盒中心所在的格子
func (e *Entity) Tile() GridPos {
	b := e.Borders(true, false)
	return GridPos{
		X: int(math.Floor((b.Left + b.Right) / 2)),
		Y: int(math.Floor((b.Top + b.Bottom) / 2)),
	}
}

// MoveLeft 向左移动 distance 格
func (e *Entity) MoveLeft(distance float64) { e.Move(DirLeft, distance) }

// MoveRight 向右移动 distance 格
func (e *Entity) MoveRight(distance float64) { e.Move(DirRight, distance) }

// MoveUp 向上移动 distance 格
func (e *Entity) MoveUp(distance float64) { e.Move(DirUp, distance) }

// MoveDown 向下移动 distance 格
func (e *Entity) MoveDown(distance float64) { e.Move(DirDown, distance) }

// Move 无碰撞检查地移动并更新朝向
func (e *Entity) Move(dir Direction, distance float64) {
	switch dir {
	case DirLeft:
		e.X -= distance
	case DirRight:
		e.X += distance
	case DirUp:
		e.Y -= distance
	case DirDown:
		e.Y += distance
	}
	e.X = snap(e.X)
	e.Y = snap(e.Y)
	e.Facing = dir
}

// TryMove 按当前速度尝试移动
// 从整步开始按 StepDecrement 递减，取不碰撞的最大步长；全部失败时原地朝向 dir。
func (e *Entity) TryMove(dir Direction, blocked Blocker) bool {
	steps := int(math.Round(e.Speed / StepDecrement))
	for i := 0; i < steps; i++ {
		step := snap(e.Speed - float64(i)*StepDecrement)
		if step <= 0 {
			break
		}
		if e.fits(dir, step, blocked) {
			e.Move(dir, step)
			e.Moving = true
			return true
		}
	}
	e.Facing = dir
	e.Moving = false
	return false
}

// Blocked 紧邻边缘之外、dir 方向上的格子是否不可通行
func (e *Entity) Blocked(dir Direction, blocked Blocker) bool {
	own := e.Borders(true, true)
	out := e.Borders(false, true)
	var a, b GridPos
	switch dir {
	case DirLeft:
		a, b = GridPos{int(out.Left), int(own.Top)}, GridPos{int(out.Left), int(own.Bottom)}
	case DirRight:
		a, b = GridPos{int(out.Right), int(own.Top)}, GridPos{int(out.Right), int(own.Bottom)}
	case DirUp:
		a, b = GridPos{int(own.Left), int(out.Top)}, GridPos{int(own.Right), int(out.Top)}
	default:
		a, b = GridPos{int(own.Left), int(out.Bottom)}, GridPos{int(own.Right), int(out.Bottom)}
	}
	return blocked(a.X, a.Y) || blocked(b.X, b.Y)
}

// fits 移动 step 后前沿覆盖的格子（垂直于移动轴的两端）是否都可通行
func (e *Entity) fits(dir Direction, step float64, blocked Blocker) bool {
	next := *e
	next.Move(dir, step)
	b := next.Borders(true, true)
	l, r, t, btm := int(b.Left), int(b.Right), int(b.Top), int(b.Bottom)
	switch dir {
	case DirLeft:
		return !blocked(l, t) && !blocked(l, btm)
	case DirRight:
		return !blocked(r, t) && !blocked(r, btm)
	case DirUp:
		return !blocked(l, t) && !blocked(r, t)
	default:
		return !blocked(l, btm) && !blocked(r, btm)
	}
}

func snap(v float64) float64 {
	return math.Round(v*positionPrecision) / positionPrecision
}
