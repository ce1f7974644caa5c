package phase

import (
	"errors"
	"fmt"
	"log"
	"time"

	"bomberman/pkg/ai"
	"bomberman/pkg/audio"
	"bomberman/pkg/core"
	"bomberman/pkg/timer"
)

// ScoreDisplay 最终分数展示时长
const ScoreDisplay = 3 * time.Second

// Audio 声音协作方：播放音效与阶段音乐，并告知音乐时长
type Audio interface {
	PlayEffect(e audio.Effect)
	PlayMusic(c audio.Cue)
	StopMusic()
	SetPaused(paused bool)
	SetVolume(music, effects float64)
	Duration(c audio.Cue) time.Duration
}

// Pilot 代替键盘产生游戏输入（演示模式）
type Pilot interface {
	Decide(g *core.Game) core.Input
}

// Options 阶段机的构造参数
type Options struct {
	Specs     []core.StageSpec
	ConfigErr error
	Lives     int
	Seed      int64
	Audio     Audio
	// Demo 非空时主菜单提供演示选项
	Demo Pilot
}

// Machine 顶层阶段机，拥有调度器，每帧由宿主调用一次 Tick
type Machine struct {
	opts   Options
	clock  *timer.Scheduler
	timers *timer.Group
	audio  Audio

	phase  Phase
	game   *core.Game
	menu   *Menu
	keys   keyState
	pilot  Pilot
	seed   int64
	won    bool

	// OnTransition 每次阶段切换后调用
	OnTransition func(from, to Phase, on Event)
}

// NewMachine 创建阶段机；配置有误时停留在 PhaseIncorrectConfig
func NewMachine(opts Options) *Machine {
	if opts.Lives <= 0 {
		opts.Lives = core.DefaultLives
	}
	if opts.Audio == nil {
		opts.Audio = &audio.Recorder{}
	}
	if opts.ConfigErr == nil && len(opts.Specs) == 0 {
		opts.ConfigErr = errors.New("没有关卡")
	}
	clock := timer.NewScheduler()
	m := &Machine{
		opts:   opts,
		clock:  clock,
		timers: clock.NewGroup(),
		audio:  opts.Audio,
		phase:  PhaseMainMenu,
		menu:   newMainMenu(opts.Demo != nil),
		seed:   opts.Seed,
	}
	if opts.ConfigErr != nil {
		log.Printf("关卡配置错误: %v", opts.ConfigErr)
		m.Dispatch(EventConfigError)
	}
	return m
}

// Phase 当前阶段
func (m *Machine) Phase() Phase {
	return m.phase
}

// Game 当前游戏，菜单阶段为 nil
func (m *Machine) Game() *core.Game {
	return m.game
}

// Now 阶段机时钟
func (m *Machine) Now() time.Duration {
	return m.clock.Now()
}

// Dispatch 按切换表处理事件；不在表中的事件被忽略并返回 false
func (m *Machine) Dispatch(on Event) bool {
	from := m.phase
	to, ok := Next(from, on)
	if !ok {
		return false
	}
	m.timers.CancelAll()
	m.phase = to
	log.Printf("阶段切换: %s -> %s (%s)", from, to, on)
	if m.OnTransition != nil {
		m.OnTransition(from, to, on)
	}
	m.enter(from, to)
	return true
}

// Tick 推进一帧：处理输入、更新模拟，然后推进时钟
func (m *Machine) Tick(in Input) {
	held, pressed := m.keys.update(in)

	switch m.phase {
	case PhaseMainMenu:
		m.navigate(pressed)
	case PhaseRunning:
		if pressed.Held(KeyPause) {
			m.Dispatch(EventPause)
			break
		}
		m.step(held, pressed)
	case PhasePaused:
		if pressed.Held(KeyPause) {
			m.Dispatch(EventResume)
			break
		}
		m.navigate(pressed)
	case PhaseEnding, PhaseGameOver:
		if pressed.Held(KeyConfirm) {
			m.Dispatch(EventConfirm)
		}
	}

	m.clock.Advance(core.FrameDuration)
}

func (m *Machine) navigate(pressed KeySet) {
	if m.menu == nil {
		return
	}
	switch {
	case pressed.Held(KeyUp):
		m.menu.move(-1)
		m.audio.PlayEffect(audio.EffectMenuNavigate)
	case pressed.Held(KeyDown):
		m.menu.move(1)
		m.audio.PlayEffect(audio.EffectMenuNavigate)
	case pressed.Held(KeyConfirm):
		m.menu.choose(m)
	}
}

// step 运行中的一帧：先处理定时器留下的事件，再更新模拟
func (m *Machine) step(held, pressed KeySet) {
	if m.route() {
		return
	}
	in := gameInput(held, pressed)
	if m.pilot != nil {
		in = m.pilot.Decide(m.game)
	}
	m.game.Update(in)
	m.route()
}

// route 把模拟事件转成音效与阶段事件；发生阶段切换时返回 true
func (m *Machine) route() bool {
	for _, ev := range m.game.DrainEvents() {
		switch ev.Kind {
		case core.EventBombPlaced:
			m.audio.PlayEffect(audio.EffectBombPlaced)
		case core.EventExplosion:
			m.audio.PlayEffect(audio.EffectExplosion)
		case core.EventPowerUp:
			m.audio.PlayEffect(audio.EffectPowerUp)
		case core.EventStep:
			m.audio.PlayEffect(audio.EffectStep)
		case core.EventAllEnemiesDead:
			// 敌人全灭，出口开放
			m.audio.PlayEffect(audio.EffectDoorOpen)
		case core.EventCharacterDied:
			if m.Dispatch(EventCharacterDied) {
				return true
			}
		case core.EventStageCleared:
			if m.Dispatch(EventStageCleared) {
				return true
			}
		}
	}
	return false
}

// after 在阶段定时器组上延迟派发事件，阶段切换时自动取消
func (m *Machine) after(d time.Duration, decide func() Event) {
	m.timers.Schedule(func() { m.Dispatch(decide()) }, d)
}

func (m *Machine) enter(from, to Phase) {
	switch to {
	case PhaseIncorrectConfig:
		m.menu = nil
		m.audio.StopMusic()

	case PhaseMainMenu:
		m.closeGame()
		m.menu = newMainMenu(m.opts.Demo != nil)
		m.audio.StopMusic()

	case PhaseInitialize:
		m.closeGame()
		m.menu = nil
		m.won = false
		sess := core.NewSession(m.seed)
		m.seed++
		m.audio.SetVolume(sess.MusicVolume, sess.EffectsVolume)
		m.game = core.NewGame(sess, m.opts.Specs, m.clock, m.opts.Lives)
		m.game.SetSteerer(ai.NewEnemyBrain())
		m.Dispatch(EventInitialized)

	case PhaseStageStart:
		if from == PhaseDying {
			m.game.Restart()
		}
		m.game.PauseTimers()
		m.audio.PlayMusic(audio.CueStageStart)
		m.after(m.audio.Duration(audio.CueStageStart), func() Event { return EventStageReady })

	case PhaseRunning:
		m.menu = nil
		m.game.ResumeTimers()
		if from == PhasePaused {
			m.audio.SetPaused(false)
		} else {
			m.audio.PlayMusic(audio.CueStage)
		}

	case PhasePaused:
		m.game.PauseTimers()
		m.audio.SetPaused(true)
		m.menu = newPauseMenu()

	case PhaseDying:
		m.game.PauseTimers()
		m.audio.PlayMusic(audio.CueDeath)
		m.after(m.audio.Duration(audio.CueDeath), func() Event {
			if m.game.Character.Lives > 0 {
				return EventRespawn
			}
			return EventOutOfLives
		})

	case PhaseStageClear:
		m.game.PauseTimers()
		m.audio.PlayMusic(audio.CueStageClear)
		m.after(m.audio.Duration(audio.CueStageClear), func() Event {
			if m.game.NextStage() {
				return EventNextStage
			}
			m.won = true
			return EventStagesExhausted
		})

	case PhaseGameScore:
		m.audio.StopMusic()
		m.after(ScoreDisplay, func() Event {
			if m.won {
				return EventWon
			}
			return EventLost
		})

	case PhaseEnding:
		m.audio.PlayMusic(audio.CueEnding)
		m.after(m.audio.Duration(audio.CueEnding), func() Event { return EventConfirm })

	case PhaseGameOver:
		m.audio.PlayMusic(audio.CueGameOver)
		m.after(m.audio.Duration(audio.CueGameOver), func() Event { return EventConfirm })
	}
}

func (m *Machine) closeGame() {
	if m.game != nil {
		m.game.Close()
		m.game = nil
	}
}

// Frame 阶段机的一帧渲染数据
type Frame struct {
	Phase   Phase
	Game    *core.Frame
	Menu    *MenuView
	Message string
}

// Frame 生成当前帧
func (m *Machine) Frame() Frame {
	f := Frame{Phase: m.phase}
	if m.menu != nil {
		f.Menu = m.menu.view()
	}
	if m.game != nil && m.game.Stage != nil {
		gf := m.game.Snapshot()
		f.Game = &gf
	}
	switch m.phase {
	case PhaseIncorrectConfig:
		f.Message = fmt.Sprintf("关卡配置错误: %v", m.opts.ConfigErr)
	case PhaseStageStart:
		f.Message = fmt.Sprintf("STAGE %d", m.game.StageIndex()+1)
	case PhaseStageClear:
		f.Message = "STAGE CLEAR"
	case PhaseGameScore:
		f.Message = fmt.Sprintf("SCORE %d", m.game.Session.Score)
	case PhaseEnding:
		f.Message = "CONGRATULATIONS"
	case PhaseGameOver:
		f.Message = "GAME OVER"
	}
	return f
}
