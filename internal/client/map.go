package client

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"bomberman/pkg/core"
)

const tile = float32(core.TileSize)

// tileOrigin 格子左上角的屏幕坐标
func tileOrigin(p core.GridPos) (float32, float32) {
	x, y := core.PixelPos(float64(p.X), float64(p.Y))
	return float32(x), float32(y) + HUDHeight
}

// drawGround 铺满草地与网格线
func drawGround(screen *ebiten.Image, f *core.Frame) {
	w := float32(f.Columns) * tile
	h := float32(f.Rows) * tile
	vector.FillRect(screen, 0, HUDHeight, w, h, grassColor, false)
	for x := 1; x <= f.Columns; x++ {
		for y := 1; y <= f.Rows; y++ {
			px, py := tileOrigin(core.GridPos{X: x, Y: y})
			vector.StrokeRect(screen, px, py, tile, tile, 1, gridLineColor, false)
		}
	}
}

// drawTiles 绘制石块与砖墙；正在爆炸的墙闪烁变色
func drawTiles(screen *ebiten.Image, f *core.Frame, tick int) {
	for _, t := range f.Tiles {
		px, py := tileOrigin(t.Pos)
		switch t.Kind {
		case core.TileRock:
			vector.FillRect(screen, px, py, tile, tile, rockColor, false)
			vector.StrokeRect(screen, px, py, tile, tile, 1, gridLineColor, false)
			vector.StrokeLine(screen, px+tile/2, py+5, px+tile/2, py+tile-5, 2, rockLineColor, false)
			vector.StrokeLine(screen, px+5, py+tile/2, px+tile-5, py+tile/2, 2, rockLineColor, false)
		case core.TileWall:
			c := wallColor
			if t.Exploding {
				c = blastColor(tick)
			}
			vector.FillRect(screen, px, py, tile, tile, c, false)
			vector.StrokeRect(screen, px, py, tile, tile, 1, gridLineColor, false)
			for i := 0; i < 3; i++ {
				lineY := py + float32(i*10+5)
				vector.StrokeLine(screen, px+2, lineY, px+tile-2, lineY, 1, wallLineColor, false)
			}
		}
	}
}

// drawDoor 出口画在地形之前，被砖墙盖住时自然不可见
func drawDoor(screen *ebiten.Image, f *core.Frame) {
	if f.Door == nil {
		return
	}
	px, py := tileOrigin(*f.Door)
	vector.FillRect(screen, px+3, py+3, tile-6, tile-3, doorColor, false)
	vector.StrokeRect(screen, px+3, py+3, tile-6, tile-3, 2, color.RGBA{200, 200, 220, 255}, false)
	vector.FillCircle(screen, px+tile-9, py+tile/2+2, 2, highlightColor, false)
}

func drawPowerUps(screen *ebiten.Image, f *core.Frame) {
	for _, p := range f.PowerUps {
		px, py := tileOrigin(p.Pos)
		vector.FillRect(screen, px+3, py+3, tile-6, tile-6, powerUpColors[p.Type], false)
		vector.StrokeRect(screen, px+3, py+3, tile-6, tile-6, 2, color.RGBA{255, 255, 255, 255}, false)
		drawTextCentered(screen, px+tile/2, py+tile/2, powerUpLabels[p.Type], color.White)
	}
}
