package ai

import (
	"bomberman/pkg/ai/bt"
	"bomberman/pkg/core"
)

// 游荡方向持续帧数
const wanderDirectionFrames = 30

func board(bb bt.Blackboard) *Blackboard {
	return bb.(*Blackboard)
}

// === 条件节点 ===

func condInDanger(bb bt.Blackboard) bool {
	b := board(bb)
	return b.Danger.InDanger(b.Pos)
}

func condDoorOpen(bb bt.Blackboard) bool {
	st := board(bb).Stage
	d := st.Door()
	return st.EnemyCount == 0 && d != nil && !st.IsWall(d.Pos.X, d.Pos.Y)
}

func condHasBomb(bb bt.Blackboard) bool {
	b := board(bb)
	return b.Stage.BombsAvailable > 0 && !b.Stage.IsBomb(b.Pos.X, b.Pos.Y)
}

func condTargetInReach(bb bt.Blackboard) bool {
	b := board(bb)
	return targetInReach(b, b.Pos, true)
}

func condCanEscape(bb bt.Blackboard) bool {
	b := board(bb)
	return canEscapeAfterPlacement(b.Stage, b.Character, b.Danger, b.Pos)
}

// targetInReach 在 p 放弹能否炸到墙或敌人
func targetInReach(b *Blackboard, p core.GridPos, walls bool) bool {
	cells, _ := b.Stage.BlastReach(p, b.Character.ExplosionSize)
	for _, cell := range cells {
		if walls && b.Stage.IsWall(cell.X, cell.Y) && !b.Stage.Wall(cell).Exploding {
			return true
		}
		for _, e := range b.Stage.Enemies() {
			if e.Alive() && e.Tile() == cell {
				return true
			}
		}
	}
	return false
}

// === 动作节点 ===

func actEscape(bb bt.Blackboard) bt.Status {
	b := board(bb)
	path, ok := findSafe(b.Stage, b.Character, b.Danger, b.Pos)
	if !ok {
		return bt.StatusFailure
	}
	b.Path = path
	return followPath(b)
}

func actMoveToDoor(bb bt.Blackboard) bt.Status {
	b := board(bb)
	door := b.Stage.Door().Pos
	path, ok := search(b.Stage, b.Character, b.Danger, b.Pos, func(p core.GridPos) bool { return p == door })
	if !ok {
		return bt.StatusFailure
	}
	b.Path = path
	return followPath(b)
}

func actPlaceBomb(bb bt.Blackboard) bt.Status {
	b := board(bb)
	b.NextInput = core.Input{Bomb: true}
	if path, ok := findSafe(b.Stage, b.Character, b.Danger.Add(b.Stage, b.Pos, b.Character.ExplosionSize), b.Pos); ok {
		b.Path = path
	}
	return bt.StatusSuccess
}

func actMoveToTarget(bb bt.Blackboard) bt.Status {
	b := board(bb)
	start := b.Pos
	goal := func(walls bool) func(core.GridPos) bool {
		return func(p core.GridPos) bool {
			return p != start && targetInReach(b, p, walls)
		}
	}

	var path []core.GridPos
	ok := false
	if b.Config.HuntEnemies {
		path, ok = search(b.Stage, b.Character, b.Danger, start, goal(false))
	}
	if !ok {
		path, ok = search(b.Stage, b.Character, b.Danger, start, goal(true))
	}
	if !ok {
		return bt.StatusFailure
	}
	b.Path = path
	return followPath(b)
}

func actWander(bb bt.Blackboard) bt.Status {
	b := board(bb)
	if b.WanderFrames > 0 && canWander(b, b.WanderDirection) {
		b.WanderFrames--
		b.NextInput = directionInput(b.WanderDirection)
		return bt.StatusRunning
	}

	options := make([]core.Direction, 0, 4)
	for _, d := range core.Directions {
		if canWander(b, d) {
			options = append(options, d)
		}
	}
	if len(options) == 0 {
		return bt.StatusRunning
	}
	b.WanderDirection = options[b.RNG.Intn(len(options))]
	b.WanderFrames = wanderDirectionFrames
	b.NextInput = directionInput(b.WanderDirection)
	return bt.StatusRunning
}

// canWander 相邻格可通行且不在危险场内
func canWander(b *Blackboard, d core.Direction) bool {
	next := b.Pos.Step(d, 1)
	return walkable(b.Stage, b.Character, b.Pos, next) && !b.Danger.InDanger(next)
}

func directionInput(d core.Direction) core.Input {
	switch d {
	case core.DirUp:
		return core.Input{Up: true}
	case core.DirDown:
		return core.Input{Down: true}
	case core.DirLeft:
		return core.Input{Left: true}
	default:
		return core.Input{Right: true}
	}
}
