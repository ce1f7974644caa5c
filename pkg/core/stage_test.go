package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bomberman/pkg/timer"
)

func TestIsBlockOutOfBounds(t *testing.T) {
	st := NewStage(0, 9, 7, 100, timer.NewScheduler().NewGroup())

	flagSets := []BlockFlags{
		{},
		{BombPass: true},
		{WallPass: true},
		{BombPass: true, WallPass: true},
		{ForEnemy: true},
		{BombPass: true, WallPass: true, ForEnemy: true},
	}
	outside := []GridPos{{0, 1}, {1, 0}, {10, 3}, {3, 8}, {-4, -4}, {0, 0}, {10, 8}}

	for _, p := range outside {
		for _, f := range flagSets {
			assert.True(t, st.IsBlock(p.X, p.Y, f), "pos %v flags %+v", p, f)
		}
		assert.True(t, st.IsRock(p.X, p.Y))
		assert.False(t, st.IsWall(p.X, p.Y))
		assert.False(t, st.IsExplosion(p.X, p.Y, false))
	}
}

func TestIsBlockFlags(t *testing.T) {
	st := NewStage(0, 9, 9, 100, timer.NewScheduler().NewGroup())
	st.addRock(GridPos{3, 3})
	st.addWall(GridPos{4, 2})
	st.AddBomb(NewBomb(1, GridPos{5, 2}, 1))
	st.door = &ExitDoor{Pos: GridPos{6, 2}}

	tests := []struct {
		name  string
		pos   GridPos
		flags BlockFlags
		want  bool
	}{
		{"空地", GridPos{2, 2}, BlockFlags{}, false},
		{"岩石不受标志影响", GridPos{3, 3}, BlockFlags{BombPass: true, WallPass: true}, true},
		{"墙", GridPos{4, 2}, BlockFlags{}, true},
		{"穿墙", GridPos{4, 2}, BlockFlags{WallPass: true}, false},
		{"炸弹", GridPos{5, 2}, BlockFlags{}, true},
		{"穿弹", GridPos{5, 2}, BlockFlags{BombPass: true}, false},
		{"出口对角色可通行", GridPos{6, 2}, BlockFlags{}, false},
		{"出口对敌人不可通行", GridPos{6, 2}, BlockFlags{ForEnemy: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, st.IsBlock(tt.pos.X, tt.pos.Y, tt.flags))
		})
	}
}

func TestIsExplosionFlamePass(t *testing.T) {
	st := NewStage(0, 7, 7, 100, timer.NewScheduler().NewGroup())
	key := st.Key(GridPos{3, 3})
	st.occupyBlast(key)
	st.occupyBlast(key)

	assert.True(t, st.IsExplosion(3, 3, false))
	assert.False(t, st.IsExplosion(3, 3, true))

	st.releaseBlast(key)
	assert.True(t, st.IsExplosion(3, 3, false), "两个爆炸重叠时释放一个后仍有火焰")
	st.releaseBlast(key)
	assert.False(t, st.IsExplosion(3, 3, false))
}

func TestBombCountAccounting(t *testing.T) {
	st := NewStage(0, 7, 7, 100, timer.NewScheduler().NewGroup())
	st.BombsAvailable = 2

	st.AddBomb(NewBomb(1, GridPos{2, 2}, 1))
	st.AddBomb(NewBomb(2, GridPos{3, 2}, 1))
	assert.Equal(t, 0, st.BombsAvailable)
	assert.True(t, st.IsBomb(2, 2))

	st.DeleteBomb(GridPos{2, 2})
	assert.Equal(t, 1, st.BombsAvailable)
	assert.False(t, st.IsBomb(2, 2))
}

func TestDoubleDeletePanics(t *testing.T) {
	st := NewStage(0, 7, 7, 100, timer.NewScheduler().NewGroup())
	st.addWall(GridPos{3, 2})
	st.DeleteWall(GridPos{3, 2})

	assert.Panics(t, func() { st.DeleteWall(GridPos{3, 2}) })
	assert.Panics(t, func() { st.DeleteBomb(GridPos{2, 2}) })
	assert.Panics(t, func() { st.DeletePowerUp(GridPos{2, 2}) })
	assert.Panics(t, func() { st.DeleteExplosion(7) })
	assert.Panics(t, func() { st.DeleteEnemy(7) })
	assert.Panics(t, func() {
		st.AddBomb(NewBomb(1, GridPos{4, 4}, 1))
		st.AddBomb(NewBomb(2, GridPos{4, 4}, 1))
	})
}

func TestGeneratedCapacityMatchesBuilder(t *testing.T) {
	for _, size := range [][2]int{{7, 7}, {8, 9}, {13, 31}} {
		spec := StageSpec{Rows: size[0], Columns: size[1], RoundTime: 100}
		st := BuildStage(0, spec, NewSession(1), timer.NewScheduler().NewGroup())
		open := len(st.freeTiles()) + len(st.walls) - 3
		assert.Equal(t, open, GeneratedCapacity(size[0], size[1]), "%dx%d", size[0], size[1])
	}
}

func TestBuildStageGenerated(t *testing.T) {
	spec := StageSpec{
		Rows:      13,
		Columns:   15,
		RoundTime: 200,
		Enemies:   map[Kind]int{KindBalloom: 3, KindOneal: 2},
		PowerUps:  map[PowerUpType]int{PowerUpBombs: 2, PowerUpFlames: 1},
	}
	sess := NewSession(42)
	st := BuildStage(0, spec, sess, timer.NewScheduler().NewGroup())

	for x := 1; x <= st.Columns; x++ {
		assert.True(t, st.IsRock(x, 1))
		assert.True(t, st.IsRock(x, st.Rows))
	}
	for y := 1; y <= st.Rows; y++ {
		assert.True(t, st.IsRock(1, y))
		assert.True(t, st.IsRock(st.Columns, y))
	}
	assert.True(t, st.IsRock(3, 3))
	assert.True(t, st.IsRock(5, 7))
	assert.False(t, st.IsRock(4, 4))

	for _, p := range []GridPos{{2, 2}, {3, 2}, {2, 3}} {
		assert.False(t, st.IsBlock(p.X, p.Y, BlockFlags{}), "出生区 %v 应为空地", p)
	}

	door := st.Door()
	require.NotNil(t, door)
	assert.True(t, st.IsWall(door.Pos.X, door.Pos.Y))

	powerUps := st.PowerUps()
	assert.Len(t, powerUps, 3)
	for _, p := range powerUps {
		assert.True(t, st.IsWall(p.Pos.X, p.Pos.Y), "道具 %v 应在墙下", p.Pos)
		assert.NotEqual(t, door.Pos, p.Pos)
	}

	assert.Equal(t, 5, st.EnemyCount)
	enemies := st.Enemies()
	require.Len(t, enemies, 5)
	for i, e := range enemies {
		assert.Equal(t, i+1, e.ID)
		assert.GreaterOrEqual(t, e.Tile().Distance(SpawnPos), EnemySpawnDistance)
		assert.False(t, st.IsWall(e.Tile().X, e.Tile().Y))
	}
}

func TestBuildStageDeterministic(t *testing.T) {
	spec := StageSpec{Rows: 11, Columns: 11, RoundTime: 100, Enemies: map[Kind]int{KindDoll: 2}}
	a := BuildStage(0, spec, NewSession(7), timer.NewScheduler().NewGroup())
	b := BuildStage(0, spec, NewSession(7), timer.NewScheduler().NewGroup())

	assert.Equal(t, a.Tiles(), b.Tiles())
	assert.Equal(t, a.Door().Pos, b.Door().Pos)
}

func TestBuildStageLiteral(t *testing.T) {
	spec := StageSpec{
		Rows:      7,
		Columns:   7,
		RoundTime: 100,
		PowerUps:  map[PowerUpType]int{PowerUpSpeed: 1},
		Map: literal(
			"*#...",
			"..*..",
			".....",
			"....#",
			".....",
		),
	}
	st := BuildStage(0, spec, NewSession(1), timer.NewScheduler().NewGroup())

	assert.False(t, st.IsWall(2, 2), "左上角强制为空")
	assert.True(t, st.IsRock(3, 2))
	assert.True(t, st.IsWall(4, 3))
	assert.True(t, st.IsRock(6, 5))
	assert.False(t, st.IsRock(3, 3), "字面地图不生成柱子")

	require.NotNil(t, st.Door())
	assert.Equal(t, GridPos{4, 3}, st.Door().Pos)
	assert.Empty(t, st.PowerUps(), "墙不足时道具放不下")
}
