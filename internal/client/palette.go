package client

import (
	"image/color"

	"bomberman/pkg/core"
)

// Palette 角色与敌人的配色
type Palette struct {
	Body    color.RGBA
	Outline color.RGBA
	Hand    color.RGBA
	Shoe    color.RGBA
}

// 地形颜色
var (
	grassColor     = color.RGBA{34, 139, 34, 255}
	rockColor      = color.RGBA{80, 80, 80, 255}
	rockLineColor  = color.RGBA{60, 60, 60, 255}
	wallColor      = color.RGBA{205, 133, 63, 255}
	wallLineColor  = color.RGBA{180, 118, 53, 255}
	gridLineColor  = color.RGBA{0, 0, 0, 100}
	doorColor      = color.RGBA{70, 70, 90, 255}
	hudColor       = color.RGBA{20, 20, 30, 255}
	textColor      = color.RGBA{220, 230, 240, 255}
	highlightColor = color.RGBA{255, 220, 80, 255}
	errorColor     = color.RGBA{255, 120, 120, 255}
)

var characterPalette = Palette{
	Body:    color.RGBA{255, 255, 255, 255},
	Outline: color.RGBA{0, 0, 0, 255},
	Hand:    color.RGBA{255, 150, 150, 255},
	Shoe:    color.RGBA{50, 50, 50, 255},
}

var enemyBodies = map[core.Kind]color.RGBA{
	core.KindBalloom:  {255, 160, 40, 255},
	core.KindOneal:    {100, 180, 255, 255},
	core.KindDoll:     {255, 150, 200, 255},
	core.KindMinvo:    {255, 80, 80, 255},
	core.KindKondoria: {0, 50, 150, 255},
	core.KindOvapi:    {160, 90, 220, 255},
	core.KindPass:     {255, 220, 60, 255},
	core.KindPontan:   {230, 230, 230, 255},
}

// enemyPalette 按敌人种类取色，穿墙敌人描边更浅
func enemyPalette(k core.Kind) Palette {
	body, ok := enemyBodies[k]
	if !ok {
		body = color.RGBA{200, 200, 200, 255}
	}
	outline := color.RGBA{0, 0, 0, 255}
	if k.Traits().WallPass {
		outline = color.RGBA{200, 200, 200, 255}
	}
	return Palette{Body: body, Outline: outline}
}

var powerUpColors = map[core.PowerUpType]color.RGBA{
	core.PowerUpBombs:     {40, 40, 40, 255},
	core.PowerUpFlames:    {255, 100, 0, 255},
	core.PowerUpSpeed:     {80, 200, 255, 255},
	core.PowerUpWallPass:  {205, 133, 63, 255},
	core.PowerUpBombPass:  {120, 120, 120, 255},
	core.PowerUpFlamePass: {255, 0, 0, 255},
	core.PowerUpDetonator: {255, 220, 0, 255},
	core.PowerUpMystery:   {180, 80, 255, 255},
}

var powerUpLabels = map[core.PowerUpType]string{
	core.PowerUpBombs:     "B",
	core.PowerUpFlames:    "F",
	core.PowerUpSpeed:     "S",
	core.PowerUpWallPass:  "W",
	core.PowerUpBombPass:  "P",
	core.PowerUpFlamePass: "FP",
	core.PowerUpDetonator: "D",
	core.PowerUpMystery:   "?",
}
