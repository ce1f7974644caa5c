package ai

import (
	"math/rand"

	"bomberman/pkg/core"
)

// Blackboard 自动驾驶在一次决策中共享的数据
type Blackboard struct {
	Game      *core.Game
	Stage     *core.Stage
	Character *core.Character
	RNG       *rand.Rand
	Danger    *DangerField
	Config    *AutopilotConfig

	Pos       core.GridPos
	Path      []core.GridPos
	NextInput core.Input

	// 游荡方向在多帧间保持，减少抖动
	WanderDirection core.Direction
	WanderFrames    int
}

// ResetFrame 开始新一次决策；路径与游荡状态跨帧保留
func (bb *Blackboard) ResetFrame(g *core.Game) {
	bb.Game = g
	bb.Stage = g.Stage
	bb.Character = g.Character
	bb.Pos = g.Character.Tile()
	bb.NextInput = core.Input{}
}
