package client

import (
	"github.com/hajimehoshi/ebiten/v2"

	"bomberman/pkg/phase"
)

// bindings 逻辑按键到物理按键，任一按下即视为按住
var bindings = map[phase.Key][]ebiten.Key{
	phase.KeyUp:       {ebiten.KeyW, ebiten.KeyArrowUp},
	phase.KeyDown:     {ebiten.KeyS, ebiten.KeyArrowDown},
	phase.KeyLeft:     {ebiten.KeyA, ebiten.KeyArrowLeft},
	phase.KeyRight:    {ebiten.KeyD, ebiten.KeyArrowRight},
	phase.KeyBomb:     {ebiten.KeySpace, ebiten.KeyX},
	phase.KeyDetonate: {ebiten.KeyZ, ebiten.KeyB},
	phase.KeyPause:    {ebiten.KeyEscape, ebiten.KeyP},
	phase.KeyConfirm:  {ebiten.KeyEnter, ebiten.KeySpace},
}

// Keyboard 从 Ebiten 读取键盘状态
type Keyboard struct{}

// Held 实现 phase.Input
func (Keyboard) Held(k phase.Key) bool {
	for _, key := range bindings[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
