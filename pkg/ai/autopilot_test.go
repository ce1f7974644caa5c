package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bomberman/pkg/core"
	"bomberman/pkg/timer"
)

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

func newGame(t *testing.T, rows ...string) (*core.Game, *timer.Scheduler) {
	t.Helper()
	spec := core.StageSpec{Rows: 7, Columns: 7, RoundTime: 100, Map: literal(rows...)}
	clock := timer.NewScheduler()
	return core.NewGame(core.NewSession(3), []core.StageSpec{spec}, clock, core.DefaultLives), clock
}

var openMap = []string{".....", ".....", ".....", ".....", "....."}

func TestDangerFieldChain(t *testing.T) {
	g, clock := newGame(t, openMap...)
	g.Stage.BombsAvailable = 2
	require.True(t, g.PlaceBomb())
	clock.Advance(time.Second)
	g.Character.X = 3
	require.True(t, g.PlaceBomb())

	var df DangerField
	df.Update(g.Stage)

	far := core.GridPos{X: 4, Y: 2}
	assert.True(t, df.InDanger(far))
	assert.True(t, df.SafeAt(far, time.Second))
	assert.False(t, df.SafeAt(far, 2*time.Second), "连锁使第二个炸弹提前引爆")
	assert.True(t, df.SafeAt(far, 3*time.Second))
	assert.False(t, df.InDanger(core.GridPos{X: 5, Y: 5}))
}

func TestAutopilotEscapesOwnBomb(t *testing.T) {
	g, _ := newGame(t, openMap...)
	require.True(t, g.PlaceBomb())

	a := NewAutopilot(1, &AutopilotHard)
	in := a.Decide(g)
	assert.True(t, in.Right || in.Down, "向远离炸弹的方向移动")
	assert.False(t, in.Bomb)

	for i := 0; i < 120; i++ {
		g.Update(a.Decide(g))
	}
	var df DangerField
	df.Update(g.Stage)
	assert.False(t, df.InDanger(g.Character.Tile()))
}

func TestAutopilotBombsAdjacentWall(t *testing.T) {
	g, _ := newGame(t,
		".*...",
		".....",
		".....",
		".....",
		".....",
	)
	a := NewAutopilot(1, &AutopilotHard)
	in := a.Decide(g)
	assert.True(t, in.Bomb)
}

func TestAutopilotSkipsBombWithoutEscape(t *testing.T) {
	g, _ := newGame(t,
		".*...",
		"*....",
		".....",
		".....",
		".....",
	)
	a := NewAutopilot(1, &AutopilotHard)
	in := a.Decide(g)
	assert.False(t, in.Bomb, "被困在角落时放弹必死")
}

func TestAutopilotIdleWhenDead(t *testing.T) {
	g, _ := newGame(t, openMap...)
	g.Character.Status = core.StatusDying
	assert.Equal(t, core.Input{}, NewAutopilot(1, nil).Decide(g))
}
