package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBordersInsets(t *testing.T) {
	c := NewEntity(0, KindCharacter, GridPos{2, 2})
	b := c.Borders(true, false)
	assert.InDelta(t, 2.2, b.Left, 1e-9)
	assert.InDelta(t, 2.8, b.Right, 1e-5)
	assert.InDelta(t, 2.25, b.Top, 1e-9)
	assert.InDelta(t, 2.95, b.Bottom, 1e-5)

	outer := c.Borders(false, false)
	assert.InDelta(t, b.Left-1, outer.Left, 1e-9)
	assert.InDelta(t, b.Bottom+1, outer.Bottom, 1e-9)

	e := NewEntity(1, KindBalloom, GridPos{4, 5})
	floored := e.Borders(true, true)
	assert.Equal(t, Borders{Left: 4, Right: 4, Top: 5, Bottom: 5}, floored)
	assert.Equal(t, GridPos{4, 5}, e.Tile())
}

func TestMoveSnapsToLattice(t *testing.T) {
	e := NewEntity(0, KindCharacter, GridPos{2, 2})
	for i := 0; i < 50; i++ {
		e.MoveRight(0.06)
	}
	assert.Equal(t, 5.0, e.X)
	assert.Equal(t, DirRight, e.Facing)

	e.MoveUp(0.5)
	assert.Equal(t, 1.5, e.Y)
	assert.Equal(t, DirUp, e.Facing)
}

func TestTryMoveStopsFlushAgainstBlock(t *testing.T) {
	e := NewEntity(1, KindBalloom, GridPos{2, 2})
	blocked := func(x, y int) bool { return x >= 4 }

	for i := 0; i < 200; i++ {
		e.TryMove(DirRight, blocked)
	}
	assert.InDelta(t, 3.05, e.X, 1e-9, "碰撞盒右边界贴住第 4 格")
	assert.False(t, e.Moving)
	assert.Equal(t, GridPos{3, 2}, e.Tile())
	assert.True(t, e.Blocked(DirRight, blocked))
	assert.False(t, e.Blocked(DirLeft, blocked))
}

func TestTryMoveTakesLargestFreeStep(t *testing.T) {
	e := NewEntity(0, KindCharacter, GridPos{2, 2})
	e.Speed = 0.06
	e.X = 2.15 // 右边界 2.95，下一格为 3
	blocked := func(x, y int) bool { return x >= 3 }

	assert.True(t, e.TryMove(DirRight, blocked))
	assert.InDelta(t, 2.2, e.X, 1e-9)
	assert.False(t, e.TryMove(DirRight, blocked))
}

func TestTryMoveLookingPose(t *testing.T) {
	e := NewEntity(0, KindCharacter, GridPos{2, 2})
	e.Moving = true
	wall := func(x, y int) bool { return true }

	assert.False(t, e.TryMove(DirLeft, wall))
	assert.Equal(t, 2.0, e.X)
	assert.False(t, e.Moving)
	assert.Equal(t, DirLeft, e.Facing)
	assert.Equal(t, "looking-left", VisualState(&e))
}
