package core

// Sprite 可移动实体的渲染数据（像素坐标 + 视觉状态标签）
type Sprite struct {
	ID    int
	Kind  Kind
	X, Y  float64
	State string
}

// BombSprite 炸弹
type BombSprite struct {
	Pos       GridPos
	Remaining float64
}

// BlastSprite 可见的火焰格
type BlastSprite struct {
	Pos   GridPos
	Shape Shape
}

// ItemSprite 出口或道具
type ItemSprite struct {
	Pos  GridPos
	Type PowerUpType
}

// HUD 顶部信息栏
type HUD struct {
	Stage    int
	Lives    int
	Score    int
	TimeLeft int
}

// Frame 一帧的完整快照，渲染端不持有任何模拟状态
type Frame struct {
	Columns int
	Rows    int
	HUD     HUD

	Tiles     []TileSprite
	Door      *GridPos
	PowerUps  []ItemSprite
	Bombs     []BombSprite
	Blasts    []BlastSprite
	Enemies   []Sprite
	Character Sprite
	Markers   []XPMarker
}

// PixelPos 格坐标转像素坐标（第 1 格位于 0）
func PixelPos(x, y float64) (float64, float64) {
	return (x - 1) * TileSize, (y - 1) * TileSize
}

// Snapshot 生成当前帧的快照
func (g *Game) Snapshot() Frame {
	st := g.Stage
	c := g.Character
	f := Frame{
		HUD: HUD{
			Stage:    g.stageIndex + 1,
			Lives:    c.Lives,
			Score:    g.Session.Score,
			TimeLeft: g.TimeLeft,
		},
		Character: spriteOf(&c.Entity),
	}
	if st == nil {
		return f
	}
	f.Columns, f.Rows = st.Columns, st.Rows
	f.Tiles = st.Tiles()
	if d := st.Door(); d != nil {
		pos := d.Pos
		f.Door = &pos
	}
	for _, p := range st.PowerUps() {
		f.PowerUps = append(f.PowerUps, ItemSprite{Pos: p.Pos, Type: p.Type})
	}
	for _, b := range st.Bombs() {
		f.Bombs = append(f.Bombs, BombSprite{Pos: b.Pos, Remaining: b.Remaining().Seconds()})
	}
	for _, e := range st.Explosions() {
		for _, cell := range e.Cells() {
			if !cell.Muted {
				f.Blasts = append(f.Blasts, BlastSprite{Pos: cell.Pos, Shape: cell.Shape})
			}
		}
	}
	for _, e := range st.Enemies() {
		f.Enemies = append(f.Enemies, spriteOf(e))
	}
	for _, m := range g.Markers() {
		f.Markers = append(f.Markers, *m)
	}
	return f
}

func spriteOf(e *Entity) Sprite {
	x, y := PixelPos(e.X, e.Y)
	return Sprite{ID: e.ID, Kind: e.Kind, X: x, Y: y, State: VisualState(e)}
}

// VisualState 视觉状态标签，例如 walking-left、looking-down、dying
func VisualState(e *Entity) string {
	switch e.Status {
	case StatusDying:
		return "dying"
	case StatusDead:
		return "dead"
	}
	if e.Moving {
		return "walking-" + e.Facing.String()
	}
	return "looking-" + e.Facing.String()
}
