package client

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"bomberman/pkg/core"
	"bomberman/pkg/phase"
)

// HUDHeight 顶部信息栏高度
const HUDHeight = 24

var hudFont = text.NewGoXFace(basicfont.Face7x13)

func drawText(screen *ebiten.Image, x, y float32, msg string, clr color.Color) {
	options := &text.DrawOptions{}
	options.GeoM.Translate(float64(x), float64(y))
	options.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, msg, hudFont, options)
}

// drawTextCentered 以 (cx, cy) 为中心绘制文字
func drawTextCentered(screen *ebiten.Image, cx, cy float32, msg string, clr color.Color) {
	w, h := text.Measure(msg, hudFont, 0)
	drawText(screen, cx-float32(w)/2, cy-float32(h)/2, msg, clr)
}

func drawHUD(screen *ebiten.Image, width float32, h core.HUD) {
	vector.FillRect(screen, 0, 0, width, HUDHeight, hudColor, false)
	line := fmt.Sprintf("STAGE %d   LIVES %d   SCORE %d", h.Stage, h.Lives, h.Score)
	drawText(screen, 8, 5, line, textColor)

	timeLeft := fmt.Sprintf("TIME %3d", h.TimeLeft)
	clr := textColor
	if h.TimeLeft <= 10 {
		clr = errorColor
	}
	w, _ := text.Measure(timeLeft, hudFont, 0)
	drawText(screen, width-float32(w)-8, 5, timeLeft, clr)
}

// drawMarkers 击杀得分飘字
func drawMarkers(screen *ebiten.Image, markers []core.XPMarker) {
	for _, m := range markers {
		px, py := tileOrigin(m.Pos)
		drawTextCentered(screen, px+tile/2, py+tile/2, fmt.Sprint(m.XP), color.White)
	}
}

// drawOverlay 压暗画面，显示阶段提示或菜单
func drawOverlay(screen *ebiten.Image, width, height float32, f phase.Frame) {
	if f.Menu == nil && f.Message == "" {
		return
	}
	dim := f.Game != nil
	if dim {
		vector.FillRect(screen, 0, HUDHeight, width, height-HUDHeight, color.RGBA{0, 0, 0, 160}, false)
	} else {
		vector.FillRect(screen, 0, 0, width, height, color.RGBA{0, 0, 0, 255}, false)
	}

	cx := width / 2
	cy := height / 2
	if mv := f.Menu; mv != nil {
		top := cy - float32(len(mv.Items)+2)*9
		drawTextCentered(screen, cx, top, mv.Title, highlightColor)
		for i, item := range mv.Items {
			y := top + float32(i+2)*18
			clr := color.Color(textColor)
			if i == mv.Selected {
				item = "> " + item + " <"
				clr = highlightColor
			}
			drawTextCentered(screen, cx, y, item, clr)
		}
		return
	}

	clr := color.Color(textColor)
	if f.Phase == phase.PhaseIncorrectConfig {
		clr = errorColor
	}
	drawTextCentered(screen, cx, cy, f.Message, clr)
}

// drawStatus 左下角的连接状态
func drawStatus(screen *ebiten.Image, height float32, status string) {
	if status == "" {
		return
	}
	w, h := text.Measure(status, hudFont, 0)
	vector.FillRect(screen, 4, height-float32(h)-8, float32(w)+8, float32(h)+4, color.RGBA{0, 0, 0, 180}, false)
	drawText(screen, 8, height-float32(h)-6, status, highlightColor)
}
