package core

import (
	"testing"

	"bomberman/pkg/timer"
)

// literal 把字符串地图转换为内部区域的地形
func literal(rows ...string) [][]TileKind {
	out := make([][]TileKind, len(rows))
	for j, row := range rows {
		out[j] = make([]TileKind, len(row))
		for i, ch := range row {
			switch ch {
			case '#':
				out[j][i] = TileRock
			case '*':
				out[j][i] = TileWall
			default:
				out[j][i] = TileEmpty
			}
		}
	}
	return out
}

// openSpec 7×7 的空旷关卡，没有敌人和道具
func openSpec() StageSpec {
	return StageSpec{
		Rows:      7,
		Columns:   7,
		RoundTime: 100,
		Map: literal(
			".....",
			".....",
			".....",
			".....",
			".....",
		),
	}
}

func newTestGame(t *testing.T, specs ...StageSpec) (*Game, *timer.Scheduler) {
	t.Helper()
	if len(specs) == 0 {
		specs = []StageSpec{openSpec()}
	}
	clock := timer.NewScheduler()
	g := NewGame(NewSession(1), specs, clock, DefaultLives)
	return g, clock
}

// placeCharacter 把角色直接放到某格
func placeCharacter(g *Game, p GridPos) {
	g.Character.X, g.Character.Y = float64(p.X), float64(p.Y)
}

// spawnEnemy 在指定格子放置敌人
func spawnEnemy(g *Game, kind Kind, p GridPos) *Entity {
	e := NewEntity(g.Session.NextEnemyID(), kind, p)
	g.Stage.addEnemy(&e)
	g.Stage.EnemyCount++
	return &e
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}
