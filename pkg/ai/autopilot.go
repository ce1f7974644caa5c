package ai

import (
	"math"
	"math/rand"

	"bomberman/pkg/ai/bt"
	"bomberman/pkg/core"
)

// Autopilot 代替玩家操作角色（演示模式与测试使用）
type Autopilot struct {
	rnd    *rand.Rand
	config *AutopilotConfig

	thinkCounter int
	lastInDanger bool
	lastBombs    int

	blackboard Blackboard
	tree       bt.Node
	danger     DangerField
}

// NewAutopilot 创建自动驾驶；config 为 nil 时使用普通难度
func NewAutopilot(seed int64, config *AutopilotConfig) *Autopilot {
	if config == nil {
		config = &AutopilotNormal
	}
	rnd := rand.New(rand.NewSource(seed))
	a := &Autopilot{
		rnd:    rnd,
		config: config,
	}
	a.blackboard = Blackboard{
		RNG:    rnd,
		Danger: &a.danger,
		Config: config,
	}
	a.tree = &bt.Selector{Children: []bt.Node{
		&bt.Sequence{Children: []bt.Node{
			&bt.Condition{Check: condInDanger},
			&bt.Action{Do: actEscape},
		}},
		&bt.Sequence{Children: []bt.Node{
			&bt.Condition{Check: condDoorOpen},
			&bt.Action{Do: actMoveToDoor},
		}},
		&bt.Sequence{Children: []bt.Node{
			&bt.Condition{Check: condHasBomb},
			&bt.Condition{Check: condTargetInReach},
			&bt.Condition{Check: condCanEscape},
			&bt.Action{Do: actPlaceBomb},
		}},
		&bt.Sequence{Children: []bt.Node{
			&bt.Condition{Check: condHasBomb},
			&bt.Action{Do: actMoveToTarget},
		}},
		&bt.Action{Do: actWander},
	}}
	return a
}

// Decide 计算本帧的输入
func (a *Autopilot) Decide(g *core.Game) core.Input {
	c := g.Character
	if g.Stage == nil || !c.Alive() || g.Cleared() {
		return core.Input{}
	}

	a.danger.Update(g.Stage)
	pos := c.Tile()
	inDanger := a.danger.InDanger(pos)
	bombs := len(g.Stage.Bombs())
	force := (inDanger && !a.lastInDanger) || bombs != a.lastBombs
	a.lastInDanger = inDanger
	a.lastBombs = bombs

	a.blackboard.ResetFrame(g)
	a.thinkCounter++
	if force || a.thinkCounter >= a.config.ThinkIntervalFrames || len(a.blackboard.Path) == 0 {
		a.thinkCounter = 0
		a.blackboard.Path = nil
		a.tree.Tick(&a.blackboard)
	} else {
		followPath(&a.blackboard)
	}

	if a.config.MistakeRate > 0 && a.rnd.Float64() < a.config.MistakeRate {
		a.blackboard.NextInput = core.Input{}
	}
	return a.blackboard.NextInput
}

// followPath 沿路径前进；到达格子后弹出
func followPath(bb *Blackboard) bt.Status {
	c := bb.Character
	for len(bb.Path) > 0 {
		next := bb.Path[0]
		dx := float64(next.X) - c.X
		dy := float64(next.Y) - c.Y
		if math.Abs(dx) < c.Speed && math.Abs(dy) < c.Speed {
			bb.Path = bb.Path[1:]
			continue
		}
		bb.NextInput = steerToward(dx, dy, c.Speed)
		return bt.StatusRunning
	}
	return bt.StatusSuccess
}

// steerToward 每次只按一个轴，优先偏差大的轴；拐角修正负责吸附到通道
func steerToward(dx, dy, speed float64) core.Input {
	var in core.Input
	if math.Abs(dx) >= math.Abs(dy) && math.Abs(dx) >= speed {
		in.Left, in.Right = dx < 0, dx > 0
	} else if math.Abs(dy) >= speed {
		in.Up, in.Down = dy < 0, dy > 0
	}
	return in
}
