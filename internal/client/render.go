package client

import (
	"github.com/hajimehoshi/ebiten/v2"

	"bomberman/pkg/core"
	"bomberman/pkg/phase"
)

// 尚未收到任何关卡时的画面尺寸
const (
	defaultColumns = 15
	defaultRows    = 13
)

// Renderer 只根据帧快照绘制，不持有模拟状态
type Renderer struct {
	tick    int
	columns int
	rows    int
}

// NewRenderer 创建渲染器
func NewRenderer() *Renderer {
	return &Renderer{columns: defaultColumns, rows: defaultRows}
}

// Size 画面像素尺寸，随最近一次关卡大小变化
func (r *Renderer) Size() (int, int) {
	return r.columns * core.TileSize, r.rows*core.TileSize + HUDHeight
}

// Draw 按从下到上的层次绘制一帧
func (r *Renderer) Draw(screen *ebiten.Image, f phase.Frame, status string) {
	r.tick++
	if g := f.Game; g != nil && g.Columns > 0 && g.Rows > 0 {
		r.columns, r.rows = g.Columns, g.Rows
	}
	w, h := r.Size()
	width, height := float32(w), float32(h)

	if g := f.Game; g != nil && g.Columns > 0 {
		drawHUD(screen, width, g.HUD)
		drawGround(screen, g)
		drawDoor(screen, g)
		drawPowerUps(screen, g)
		drawTiles(screen, g, r.tick)
		for _, b := range g.Blasts {
			drawBlast(screen, b, r.tick)
		}
		for _, b := range g.Bombs {
			drawBomb(screen, b)
		}
		for _, e := range g.Enemies {
			drawEnemy(screen, e, r.tick)
		}
		drawCharacter(screen, g.Character, r.tick)
		drawMarkers(screen, g.Markers)
	}
	drawOverlay(screen, width, height, f)
	drawStatus(screen, height, status)
}
