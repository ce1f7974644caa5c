package core

import (
	"sort"

	"bomberman/pkg/timer"
)

// Shape 火焰格的形状
type Shape int

const (
	ShapeCenter Shape = iota
	ShapeHorizontal
	ShapeVertical
	ShapeLeft
	ShapeRight
	ShapeTop
	ShapeBottom
)

func (s Shape) String() string {
	switch s {
	case ShapeCenter:
		return "center"
	case ShapeHorizontal:
		return "horizontal"
	case ShapeVertical:
		return "vertical"
	case ShapeLeft:
		return "left"
	case ShapeRight:
		return "right"
	case ShapeTop:
		return "top"
	case ShapeBottom:
		return "bottom"
	}
	return "unknown"
}

// armShape 臂上中间格与末端格的形状
func armShape(d Direction, tip bool) Shape {
	if !tip {
		if d.Horizontal() {
			return ShapeHorizontal
		}
		return ShapeVertical
	}
	switch d {
	case DirLeft:
		return ShapeLeft
	case DirRight:
		return ShapeRight
	case DirUp:
		return ShapeTop
	default:
		return ShapeBottom
	}
}

// BlastCell 单个火焰格，各自独立计时消失
type BlastCell struct {
	Pos   GridPos
	Shape Shape
	Muted bool // 落在墙上的火焰，不绘制

	expiry *timer.Timer
}

// Explosion 爆炸（id 与来源炸弹相同）
type Explosion struct {
	ID     int
	Origin GridPos
	Size   int

	cells map[TileKey]*BlastCell
}

// NewExplosion 由炸弹创建爆炸
func NewExplosion(b *Bomb) *Explosion {
	return &Explosion{
		ID:     b.ID,
		Origin: b.Pos,
		Size:   b.Size,
		cells:  make(map[TileKey]*BlastCell),
	}
}

// Cells 按位置排序的火焰格
func (e *Explosion) Cells() []*BlastCell {
	list := make([]*BlastCell, 0, len(e.cells))
	for _, c := range e.cells {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Pos.Y != list[j].Pos.Y {
			return list[i].Pos.Y < list[j].Pos.Y
		}
		return list[i].Pos.X < list[j].Pos.X
	})
	return list
}

// ContainsCell 爆炸是否覆盖某格
func (e *Explosion) ContainsCell(p GridPos) bool {
	for _, c := range e.cells {
		if c.Pos == p {
			return true
		}
	}
	return false
}

// explode 生成爆炸
// 中心格总是生成；四个方向各自最多延伸 Size 格，按以下优先级处理每一格：
// 炸弹 → 标记 Instant 并停止；可通行 → 生成火焰并继续；
// 墙 → 生成不可见火焰、墙进入爆炸状态并在火焰时长后移除，停止；岩石 → 停止。
func (g *Game) explode(b *Bomb) {
	st := g.Stage
	exp := NewExplosion(b)
	st.explosions[exp.ID] = exp
	st.addBlastCell(exp, b.Pos, ShapeCenter, false)

	for _, dir := range Directions {
	arm:
		for i := 1; i <= b.Size; i++ {
			p := b.Pos.Step(dir, i)
			shape := armShape(dir, i == b.Size)
			switch {
			case st.IsBomb(p.X, p.Y):
				st.Bomb(p).Instant = true
				break arm
			case !st.IsRock(p.X, p.Y) && !st.IsWall(p.X, p.Y):
				st.addBlastCell(exp, p, shape, false)
			case st.IsWall(p.X, p.Y):
				st.addBlastCell(exp, p, shape, true)
				g.explodeWall(p)
				break arm
			default:
				break arm
			}
		}
	}

	g.emit(Event{Kind: EventExplosion, Pos: b.Pos})
}

// BlastReach 在当前地形下以 origin 为中心、半径 size 的爆炸会覆盖的格子，
// 以及会被波及的炸弹位置。不修改关卡。
func (s *Stage) BlastReach(origin GridPos, size int) (cells, bombs []GridPos) {
	cells = append(cells, origin)
	for _, dir := range Directions {
		for i := 1; i <= size; i++ {
			p := origin.Step(dir, i)
			if s.IsBomb(p.X, p.Y) {
				bombs = append(bombs, p)
				break
			}
			if s.IsRock(p.X, p.Y) {
				break
			}
			cells = append(cells, p)
			if s.IsWall(p.X, p.Y) {
				break
			}
		}
	}
	return cells, bombs
}

// addBlastCell 生成火焰格并安排其自行消失
func (s *Stage) addBlastCell(exp *Explosion, p GridPos, shape Shape, muted bool) {
	key := s.Key(p)
	if _, ok := exp.cells[key]; ok {
		return
	}
	cell := &BlastCell{Pos: p, Shape: shape, Muted: muted}
	exp.cells[key] = cell
	s.occupyBlast(key)
	cell.expiry = s.timers.Schedule(func() { s.expireBlastCell(exp, key) }, ExplosionDuration)
}

// expireBlastCell 火焰格到期；最后一格消失时移除整个爆炸
func (s *Stage) expireBlastCell(exp *Explosion, key TileKey) {
	if _, ok := exp.cells[key]; !ok {
		return
	}
	delete(exp.cells, key)
	s.releaseBlast(key)
	if len(exp.cells) == 0 {
		if _, ok := s.explosions[exp.ID]; ok {
			s.DeleteExplosion(exp.ID)
		}
	}
}

// explodeWall 墙进入爆炸状态，火焰时长后移除
// 同一面墙被多次命中时只安排一次移除。
func (g *Game) explodeWall(p GridPos) {
	st := g.Stage
	w := st.Wall(p)
	if w.Exploding {
		return
	}
	w.Exploding = true
	w.removal = st.timers.Schedule(func() {
		if st.IsWall(p.X, p.Y) {
			st.DeleteWall(p)
		}
	}, ExplosionDuration)
}
