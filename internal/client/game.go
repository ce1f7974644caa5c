package client

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"bomberman/pkg/audio"
	"bomberman/pkg/phase"
)

// LocalGame 单机模式：阶段机跑在 Ebiten 的 Update 循环里
type LocalGame struct {
	machine  *phase.Machine
	speaker  *audio.Speaker
	renderer *Renderer
	input    phase.Input
	frame    phase.Frame
}

// NewLocalGame 创建单机游戏；speaker 为 nil 时静音运行
func NewLocalGame(opts phase.Options, speaker *audio.Speaker) *LocalGame {
	if speaker != nil {
		opts.Audio = speaker
	}
	m := phase.NewMachine(opts)
	return &LocalGame{
		machine:  m,
		speaker:  speaker,
		renderer: NewRenderer(),
		input:    Keyboard{},
		frame:    m.Frame(),
	}
}

// Update 每帧推进一次阶段机
func (g *LocalGame) Update() error {
	handleWindowKeys(g.speaker)
	g.machine.Tick(g.input)
	g.frame = g.machine.Frame()
	return nil
}

// Draw 绘制最近一帧
func (g *LocalGame) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.frame, "")
}

// Layout 画面尺寸跟随关卡大小
func (g *LocalGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.Size()
}

// handleWindowKeys F11 切换全屏，M 切换静音
func handleWindowKeys(speaker *audio.Speaker) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if speaker != nil && inpututil.IsKeyJustPressed(ebiten.KeyM) {
		speaker.SetMuted(!speaker.Muted())
		log.Printf("静音: %v", speaker.Muted())
	}
}
