package client

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"bomberman/pkg/core"
)

// spriteState 解析视觉状态标签，例如 walking-left
type spriteState struct {
	walking bool
	dying   bool
	dead    bool
	facing  core.Direction
}

func parseState(s string) spriteState {
	action, dir, _ := strings.Cut(s, "-")
	st := spriteState{facing: core.DirDown}
	switch action {
	case "walking":
		st.walking = true
	case "dying":
		st.dying = true
	case "dead":
		st.dead = true
	}
	switch dir {
	case "up":
		st.facing = core.DirUp
	case "left":
		st.facing = core.DirLeft
	case "right":
		st.facing = core.DirRight
	}
	return st
}

// animFrame 行走时两帧交替
func animFrame(st spriteState, tick int) int {
	if !st.walking {
		return 0
	}
	return (tick / 9) % 2
}

// fade 死亡时变灰
func fade(c color.RGBA) color.RGBA {
	g := uint8((int(c.R) + int(c.G) + int(c.B)) / 3)
	return color.RGBA{g, g, g, 255}
}

// drawCharacter 绘制炸弹人
func drawCharacter(screen *ebiten.Image, s core.Sprite, tick int) {
	st := parseState(s.State)
	if st.dead {
		return
	}
	pal := characterPalette
	if st.dying {
		if (tick/4)%2 == 1 {
			return
		}
		pal = Palette{Body: fade(pal.Body), Outline: fade(pal.Outline), Hand: fade(pal.Hand), Shoe: fade(pal.Shoe)}
	}

	x := float32(s.X)
	y := float32(s.Y) + HUDHeight
	bodyW := tile * 0.6
	bodyH := tile * 0.6
	dx := x + (tile-bodyW)/2
	dy := y + (tile-bodyH)/2 - 2

	vector.FillRect(screen, dx, dy, bodyW, bodyH, pal.Body, false)
	vector.StrokeRect(screen, dx, dy, bodyW, bodyH, 2, pal.Outline, false)

	frame := animFrame(st, tick)
	swing := float32(frame) * 2

	handSize := bodyW * 0.2
	vector.FillCircle(screen, dx-swing-2, dy+bodyH*0.6, handSize, pal.Hand, false)
	vector.FillCircle(screen, dx+bodyW+swing+2, dy+bodyH*0.6, handSize, pal.Hand, false)

	footSize := bodyW * 0.3
	vector.FillRect(screen, dx+bodyW*0.2-swing, dy+bodyH, footSize, footSize*0.6, pal.Shoe, false)
	vector.FillRect(screen, dx+bodyW*0.5+swing, dy+bodyH, footSize, footSize*0.6, pal.Shoe, false)

	drawEyes(screen, dx, dy, bodyW, bodyH, st.facing)
}

// drawEyes 眼睛朝向面向的方向
func drawEyes(screen *ebiten.Image, dx, dy, bodyW, bodyH float32, facing core.Direction) {
	eyeSize := bodyW * 0.15
	eyeY := dy + bodyH*0.3
	spacing := bodyW * 0.2

	lx, rx := dx+bodyW*0.3, dx+bodyW*0.7
	ly, ry := eyeY, eyeY
	switch facing {
	case core.DirUp:
		ly, ry = eyeY-2, eyeY-2
	case core.DirDown:
		ly, ry = eyeY+2, eyeY+2
	case core.DirLeft:
		lx, rx = dx+bodyW*0.3-spacing/2, dx+bodyW*0.5-spacing/2
	case core.DirRight:
		lx, rx = dx+bodyW*0.5+spacing/2, dx+bodyW*0.7+spacing/2
	}

	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	vector.FillCircle(screen, lx, ly, eyeSize, white, false)
	vector.FillCircle(screen, rx, ry, eyeSize, white, false)
	vector.FillCircle(screen, lx, ly, eyeSize*0.5, black, false)
	vector.FillCircle(screen, rx, ry, eyeSize*0.5, black, false)
}

// drawEnemy 敌人画成圆形，颜色区分种类
func drawEnemy(screen *ebiten.Image, s core.Sprite, tick int) {
	st := parseState(s.State)
	if st.dead {
		return
	}
	pal := enemyPalette(s.Kind)
	if st.dying {
		pal.Body = fade(pal.Body)
		pal.Outline = fade(pal.Outline)
	}

	cx := float32(s.X) + tile/2
	cy := float32(s.Y) + HUDHeight + tile/2
	radius := tile * 0.42
	if animFrame(st, tick) == 1 {
		cy--
	}

	vector.FillCircle(screen, cx, cy, radius, pal.Body, true)
	vector.StrokeCircle(screen, cx, cy, radius, 2, pal.Outline, true)
	if st.dying {
		// 死亡时画叉眼
		c := color.RGBA{0, 0, 0, 200}
		for _, ex := range []float32{cx - 5, cx + 5} {
			vector.StrokeLine(screen, ex-3, cy-5, ex+3, cy+1, 2, c, false)
			vector.StrokeLine(screen, ex-3, cy+1, ex+3, cy-5, 2, c, false)
		}
		return
	}
	drawEyes(screen, cx-radius*0.8, cy-radius*0.6, radius*1.6, radius*1.2, st.facing)
}
