package core

import (
	"math"

	"bomberman/pkg/timer"
)

// Character 玩家角色，跨关卡保留
type Character struct {
	Entity

	Lives         int
	MaxBombs      int
	ExplosionSize int

	BombPass   bool
	WallPass   bool
	FlamePass  bool
	Detonator  bool
	Invincible bool

	// 放置炸弹后忽略这些格的碰撞，每格直到角色离开才恢复
	bombGuards []GridPos

	invincibility *timer.Timer
	consumed      []consumption
}

// NewCharacter 创建初始能力的角色
func NewCharacter(lives int) *Character {
	return &Character{
		Entity:        NewEntity(0, KindCharacter, SpawnPos),
		Lives:         lives,
		MaxBombs:      DefaultMaxBombs,
		ExplosionSize: DefaultExplosionSize,
	}
}

// Guarded 当前是否处于放弹保护中
func (c *Character) Guarded() bool {
	return len(c.bombGuards) > 0
}

// ignoreBomb 在脚下放置炸弹后把该格加入保护，已有的保护格保留
func (c *Character) ignoreBomb(p GridPos) {
	if !c.guarding(p) {
		c.bombGuards = append(c.bombGuards, p)
	}
}

func (c *Character) guarding(p GridPos) bool {
	for _, g := range c.bombGuards {
		if g == p {
			return true
		}
	}
	return false
}

// releaseGuard 角色完全离开的保护格逐个解除
func (c *Character) releaseGuard() {
	if len(c.bombGuards) == 0 {
		return
	}
	box := c.Borders(true, false)
	kept := c.bombGuards[:0]
	for _, p := range c.bombGuards {
		if box.OverlapsTile(p) {
			kept = append(kept, p)
		}
	}
	c.bombGuards = kept
}

// respawn 回到出生点并清除临时状态
func (c *Character) respawn() {
	c.X, c.Y = float64(SpawnPos.X), float64(SpawnPos.Y)
	c.Facing = DirDown
	c.Moving = false
	c.Status = StatusAlive
	c.bombGuards = nil
	c.invincibility.Cancel()
	c.invincibility = nil
	c.Invincible = false
}

// blocker 角色的通行判断，包含放弹保护格
func (c *Character) blocker(st *Stage) Blocker {
	return func(x, y int) bool {
		flags := BlockFlags{BombPass: c.BombPass, WallPass: c.WallPass}
		if c.guarding(GridPos{X: x, Y: y}) {
			flags.BombPass = true
		}
		return st.IsBlock(x, y, flags)
	}
}

// walk 按方向尝试移动，失败时尝试拐角修正
func (c *Character) walk(dir Direction, blocked Blocker) bool {
	if c.TryMove(dir, blocked) {
		return true
	}
	return c.cornerCorrect(dir, blocked)
}

// cornerCorrect 偏离通道不超过容差且通道可通行时，向通道方向推一步
func (c *Character) cornerCorrect(dir Direction, blocked Blocker) bool {
	aligned := c.Entity
	var offset float64
	if dir.Horizontal() {
		offset = math.Round(c.Y) - c.Y
		aligned.Y = math.Round(c.Y)
	} else {
		offset = math.Round(c.X) - c.X
		aligned.X = math.Round(c.X)
	}
	if offset == 0 || math.Abs(offset) > CornerCorrectionTolerance {
		return false
	}
	if !aligned.fits(dir, StepDecrement, blocked) {
		return false
	}

	nudge := DirDown
	switch {
	case dir.Horizontal() && offset < 0:
		nudge = DirUp
	case !dir.Horizontal() && offset < 0:
		nudge = DirLeft
	case !dir.Horizontal():
		nudge = DirRight
	}
	step := snap(math.Min(math.Abs(offset), c.Speed))
	if !c.fits(nudge, step, blocked) {
		return false
	}
	c.Move(nudge, step)
	c.Facing = dir
	c.Moving = true
	return true
}
