package client

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"bomberman/pkg/core"
)

// drawBomb 绘制炸弹：引线随剩余时间变短，临爆前出现红色警告圈
func drawBomb(screen *ebiten.Image, b core.BombSprite) {
	px, py := tileOrigin(b.Pos)
	cx, cy := px+tile/2, py+tile/2

	fuse := core.BombCountdown.Seconds()
	ratio := 1 - b.Remaining/fuse
	ratio = math.Max(0, math.Min(1, ratio))
	elapsed := (fuse - b.Remaining) * core.FPS

	radius := float32(12)
	blink := math.Sin(elapsed * 0.1)
	alpha := uint8(200 + 55*blink)

	vector.FillCircle(screen, cx, cy, radius, color.RGBA{0, 0, 0, alpha}, false)
	vector.StrokeCircle(screen, cx, cy, radius, 2, color.RGBA{50, 50, 50, 255}, false)

	fuseLength := float32(15 * (1 - ratio))
	if fuseLength > 0 {
		fx := cx - radius*0.5
		fy := cy - radius
		vector.StrokeLine(screen, fx, fy, fx-fuseLength*0.5, fy-fuseLength, 2, color.RGBA{139, 69, 19, 255}, false)
		if blink > 0 {
			spark := color.RGBA{255, uint8(100 + 155*blink), 0, 255}
			vector.FillCircle(screen, fx-fuseLength*0.5, fy-fuseLength, 3, spark, false)
		}
	}

	if ratio > 0.7 {
		warn := (ratio - 0.7) / 0.3
		vector.StrokeCircle(screen, cx, cy, radius+float32(10*warn), 2,
			color.RGBA{255, 0, 0, uint8(warn * 100)}, false)
	}
}

// blastColor 火焰在黄、橙、红之间循环
func blastColor(tick int) color.RGBA {
	switch (tick / 4) % 3 {
	case 0:
		return color.RGBA{255, 255, 0, 255}
	case 1:
		return color.RGBA{255, 165, 0, 255}
	}
	return color.RGBA{255, 0, 0, 255}
}

// drawBlast 按形状绘制一格火焰
func drawBlast(screen *ebiten.Image, b core.BlastSprite, tick int) {
	px, py := tileOrigin(b.Pos)
	c := blastColor(tick)
	glow := color.RGBA{255, 255, 255, 200}
	thick := tile * 0.6
	inset := (tile - thick) / 2

	var x, y, w, h float32
	switch b.Shape {
	case core.ShapeCenter:
		x, y, w, h = px, py, tile, tile
	case core.ShapeHorizontal:
		x, y, w, h = px, py+inset, tile, thick
	case core.ShapeVertical:
		x, y, w, h = px+inset, py, thick, tile
	case core.ShapeLeft:
		x, y, w, h = px+inset, py+inset, tile-inset, thick
	case core.ShapeRight:
		x, y, w, h = px, py+inset, tile-inset, thick
	case core.ShapeTop:
		x, y, w, h = px+inset, py+inset, thick, tile-inset
	case core.ShapeBottom:
		x, y, w, h = px+inset, py, thick, tile-inset
	}
	vector.FillRect(screen, x, y, w, h, c, false)
	vector.StrokeRect(screen, x, y, w, h, 2, color.RGBA{255, 100, 0, 255}, false)

	// 白色高亮芯
	if w > h {
		vector.FillRect(screen, x, y+h/3, w, h/3, glow, false)
	} else {
		vector.FillRect(screen, x+w/3, y, w/3, h, glow, false)
	}
}
