package phase

import (
	"errors"
	"testing"

	"bomberman/pkg/ai"
	"bomberman/pkg/audio"
	"bomberman/pkg/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var none KeySet

func literal(rows ...string) [][]core.TileKind {
	out := make([][]core.TileKind, len(rows))
	for j, row := range rows {
		out[j] = make([]core.TileKind, len(row))
		for i, ch := range row {
			switch ch {
			case '#':
				out[j][i] = core.TileRock
			case '*':
				out[j][i] = core.TileWall
			}
		}
	}
	return out
}

// singleEnemySpec 7×7，一个 balloom，唯一的墙下藏着出口
func singleEnemySpec() core.StageSpec {
	return core.StageSpec{
		Rows:      7,
		Columns:   7,
		RoundTime: 10,
		Enemies:   map[core.Kind]int{core.KindBalloom: 1},
		Map: literal(
			"....*",
			".....",
			".....",
			".....",
			".....",
		),
	}
}

// emptySpec 没有敌人的空旷关卡
func emptySpec(roundTime int) core.StageSpec {
	spec := singleEnemySpec()
	spec.Enemies = nil
	spec.RoundTime = roundTime
	return spec
}

// runUntil 空输入推进直到进入目标阶段
func runUntil(t *testing.T, m *Machine, want Phase, maxTicks int) int {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		if m.Phase() == want {
			return i
		}
		m.Tick(none)
	}
	require.Equal(t, want, m.Phase(), "%d 帧内未进入目标阶段", maxTicks)
	return maxTicks
}

// startRunning 从主菜单开始游戏并等到可操作
func startRunning(t *testing.T, opts Options) (*Machine, *audio.Recorder) {
	t.Helper()
	rec := &audio.Recorder{}
	opts.Audio = rec
	m := NewMachine(opts)
	require.Equal(t, PhaseMainMenu, m.Phase())

	m.Tick(Keys(KeyConfirm))
	require.Equal(t, PhaseStageStart, m.Phase())
	assert.Equal(t, audio.CueStageStart, rec.Cue)
	assert.True(t, m.Game().TimersPaused(), "开场展示期间冻结关卡定时器")

	ticks := runUntil(t, m, PhaseRunning, 200)
	assert.GreaterOrEqual(t, ticks, 180, "开场音乐播完才开始")
	assert.Equal(t, audio.CueStage, rec.Cue)
	m.Game().SetSteerer(nil)
	return m, rec
}

func TestTransitionTable(t *testing.T) {
	to, ok := Next(PhaseRunning, EventPause)
	assert.True(t, ok)
	assert.Equal(t, PhasePaused, to)

	_, ok = Next(PhaseRunning, EventConfirm)
	assert.False(t, ok)

	m := NewMachine(Options{Specs: []core.StageSpec{emptySpec(100)}})
	assert.False(t, m.Dispatch(EventStageCleared), "表外事件被忽略")
	assert.Equal(t, PhaseMainMenu, m.Phase())
}

func TestKillLastEnemyThenExitDoorClearsStage(t *testing.T) {
	m, rec := startRunning(t, Options{Specs: []core.StageSpec{singleEnemySpec()}})
	g := m.Game()
	c := g.Character
	c.FlamePass = true
	require.Len(t, g.Stage.Enemies(), 1)
	e := g.Stage.Enemies()[0]
	e.X, e.Y = 3, 2

	m.Tick(Keys(KeyBomb))
	require.True(t, g.Stage.IsBomb(2, 2))
	for i := 0; i < 200 && g.Stage.EnemyCount > 0; i++ {
		m.Tick(none)
	}
	require.Equal(t, 0, g.Stage.EnemyCount)
	assert.Equal(t, PhaseRunning, m.Phase())
	assert.Equal(t, 100, g.Session.Score)

	door := g.Stage.Door()
	require.NotNil(t, door)
	g.Stage.DeleteWall(door.Pos)
	c.X, c.Y = float64(door.Pos.X), float64(door.Pos.Y)

	m.Tick(none)
	assert.Equal(t, PhaseStageClear, m.Phase())
	assert.Greater(t, g.TimeLeft, 0, "不依赖倒计时结束")
	assert.Equal(t, audio.CueStageClear, rec.Cue)
	effects := rec.Drain()
	assert.Contains(t, effects, audio.EffectExplosion)
	assert.Contains(t, effects, audio.EffectDoorOpen, "敌人全灭时提示出口开放")

	// 只有一关：结算后进入结局
	runUntil(t, m, PhaseGameScore, 300)
	assert.Equal(t, "SCORE 100", m.Frame().Message)
	runUntil(t, m, PhaseEnding, 200)

	m.Tick(Keys(KeyConfirm))
	assert.Equal(t, PhaseMainMenu, m.Phase())
	assert.Nil(t, m.Game())
}

func TestLastLifeGoesToGameOver(t *testing.T) {
	m, rec := startRunning(t, Options{Specs: []core.StageSpec{singleEnemySpec()}, Lives: 1})
	var seen []Phase
	m.OnTransition = func(_, to Phase, _ Event) { seen = append(seen, to) }

	e := m.Game().Stage.Enemies()[0]
	e.X, e.Y = 2, 2
	m.Tick(none)
	require.Equal(t, PhaseDying, m.Phase())
	assert.Equal(t, 0, m.Game().Character.Lives)
	assert.Equal(t, audio.CueDeath, rec.Cue)

	runUntil(t, m, PhaseGameOver, 400)
	assert.Equal(t, []Phase{PhaseDying, PhaseGameScore, PhaseGameOver}, seen)
	assert.Equal(t, "GAME OVER", m.Frame().Message)

	// 结束音乐播完自动回到主菜单
	runUntil(t, m, PhaseMainMenu, 400)
}

func TestDeathWithLivesRestartsStage(t *testing.T) {
	m, _ := startRunning(t, Options{Specs: []core.StageSpec{singleEnemySpec()}})
	g := m.Game()
	e := g.Stage.Enemies()[0]
	e.X, e.Y = 2, 2
	m.Tick(none)
	require.Equal(t, PhaseDying, m.Phase())

	runUntil(t, m, PhaseStageStart, 200)
	assert.Same(t, g, m.Game())
	assert.True(t, g.Character.Alive())
	assert.Equal(t, core.DefaultLives-1, g.Character.Lives)
	assert.Equal(t, 1, g.Stage.EnemyCount)
	assert.Equal(t, 2.0, g.Character.X)
	assert.Equal(t, 10, g.TimeLeft)
}

func TestRoundTimeExpiryKillsCharacter(t *testing.T) {
	m, _ := startRunning(t, Options{Specs: []core.StageSpec{emptySpec(10)}})
	ticks := runUntil(t, m, PhaseDying, 700)
	assert.GreaterOrEqual(t, ticks, 600)
	assert.Equal(t, 0, m.Game().TimeLeft)
}

func TestPausePreservesTimers(t *testing.T) {
	m, rec := startRunning(t, Options{Specs: []core.StageSpec{emptySpec(100)}})
	g := m.Game()

	m.Tick(Keys(KeyBomb))
	for i := 0; i < 30; i++ {
		m.Tick(none)
	}
	bomb := g.Stage.Bomb(core.GridPos{X: 2, Y: 2})
	require.NotNil(t, bomb)
	remaining := bomb.Remaining()
	timeLeft := g.TimeLeft

	m.Tick(Keys(KeyPause))
	require.Equal(t, PhasePaused, m.Phase())
	assert.True(t, rec.Paused)
	require.NotNil(t, m.Frame().Menu)
	assert.Equal(t, []string{"Continue", "Restart", "Quit"}, m.Frame().Menu.Items)

	for i := 0; i < 600; i++ {
		m.Tick(none)
	}
	assert.Equal(t, remaining, bomb.Remaining())
	assert.Equal(t, timeLeft, g.TimeLeft)

	m.Tick(Keys(KeyPause))
	require.Equal(t, PhaseRunning, m.Phase())
	assert.False(t, rec.Paused)
	assert.Equal(t, remaining-core.FrameDuration, bomb.Remaining())
}

func TestPauseMenu(t *testing.T) {
	m, rec := startRunning(t, Options{Specs: []core.StageSpec{emptySpec(100)}})
	first := m.Game()
	first.Character.Lives = 1

	m.Tick(Keys(KeyPause))
	m.Tick(Keys(KeyDown))
	assert.Equal(t, 1, m.Frame().Menu.Selected)
	assert.Equal(t, []audio.Effect{audio.EffectMenuNavigate}, rec.Drain())

	m.Tick(none)
	m.Tick(Keys(KeyConfirm))
	require.Equal(t, PhaseStageStart, m.Phase(), "重新开始一局")
	assert.NotSame(t, first, m.Game())
	assert.Equal(t, core.DefaultLives, m.Game().Character.Lives)

	runUntil(t, m, PhaseRunning, 200)
	m.Tick(Keys(KeyPause))
	m.Tick(Keys(KeyUp))
	assert.Equal(t, 2, m.Frame().Menu.Selected, "光标循环")
	m.Tick(none)
	m.Tick(Keys(KeyConfirm))
	assert.Equal(t, PhaseMainMenu, m.Phase())
	assert.Nil(t, m.Game())
}

func TestHeldKeyTriggersOnce(t *testing.T) {
	m, _ := startRunning(t, Options{Specs: []core.StageSpec{emptySpec(100)}})
	g := m.Game()
	g.Character.MaxBombs = 2
	g.Stage.BombsAvailable = 2

	hold := Keys(KeyBomb, KeyRight)
	for i := 0; i < 30; i++ {
		m.Tick(hold)
	}
	assert.Len(t, g.Stage.Bombs(), 1, "按住放弹键只放一颗")
	assert.Greater(t, g.Character.X, 2.5, "方向键取按住状态")
}

func TestIncorrectConfig(t *testing.T) {
	err := errors.New("关卡 1: rows 必须 ≥ 7")
	m := NewMachine(Options{ConfigErr: err})
	assert.Equal(t, PhaseIncorrectConfig, m.Phase())

	m.Tick(Keys(KeyConfirm))
	assert.Equal(t, PhaseIncorrectConfig, m.Phase(), "配置错误时永久停留")
	f := m.Frame()
	assert.Nil(t, f.Game)
	assert.Contains(t, f.Message, "rows")

	assert.Equal(t, PhaseIncorrectConfig, NewMachine(Options{}).Phase())
}

func TestDemoMenu(t *testing.T) {
	m := NewMachine(Options{
		Specs: []core.StageSpec{emptySpec(100)},
		Demo:  ai.NewAutopilot(1, nil),
	})
	assert.Equal(t, []string{"Start", "Demo"}, m.Frame().Menu.Items)

	m.Tick(Keys(KeyDown))
	m.Tick(none)
	m.Tick(Keys(KeyConfirm))
	require.Equal(t, PhaseStageStart, m.Phase())
	assert.NotNil(t, m.pilot)
	assert.Equal(t, "STAGE 1", m.Frame().Message)
}

func TestKeySet(t *testing.T) {
	s := Keys(KeyUp, KeyConfirm)
	assert.True(t, s.Held(KeyUp))
	assert.False(t, s.Held(KeyDown))
	assert.Equal(t, s, Snapshot(s))

	var ks keyState
	_, pressed := ks.update(s)
	assert.Equal(t, s, pressed)
	_, pressed = ks.update(Keys(KeyUp, KeyBomb))
	assert.Equal(t, Keys(KeyBomb), pressed)
}
