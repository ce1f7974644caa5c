package ai

import (
	"math/rand"

	"bomberman/pkg/ai/bt"
	"bomberman/pkg/core"
)

// EnemyBrain 敌人的行为树：保持当前方向前进；撞墙后随机换一个
// 既不是反方向也没有被挡住的方向；无路可走时掉头；仍走不了就原地等待。
type EnemyBrain struct {
	tree bt.Node
}

// enemyBoard 单个敌人一帧内的黑板
type enemyBoard struct {
	enemy   *core.Entity
	blocked core.Blocker
	rng     *rand.Rand
	turns   []core.Direction
}

// NewEnemyBrain 创建敌人行为树
func NewEnemyBrain() *EnemyBrain {
	return &EnemyBrain{tree: &bt.Selector{Children: []bt.Node{
		&bt.Action{Do: actKeepHeading},
		&bt.Sequence{Children: []bt.Node{
			&bt.Condition{Check: condHasTurn},
			&bt.Action{Do: actTurn},
		}},
		&bt.Sequence{Children: []bt.Node{
			&bt.Condition{Check: condCanReverse},
			&bt.Action{Do: actReverse},
		}},
		&bt.Action{Do: actIdle},
	}}}
}

// Steer 实现 core.Steerer
func (b *EnemyBrain) Steer(e *core.Entity, blocked core.Blocker, rng *rand.Rand) {
	b.tree.Tick(&enemyBoard{enemy: e, blocked: blocked, rng: rng})
}

func actKeepHeading(bb bt.Blackboard) bt.Status {
	board := bb.(*enemyBoard)
	if board.enemy.TryMove(board.enemy.Facing, board.blocked) {
		return bt.StatusSuccess
	}
	return bt.StatusFailure
}

func condHasTurn(bb bt.Blackboard) bool {
	board := bb.(*enemyBoard)
	e := board.enemy
	board.turns = board.turns[:0]
	for _, d := range core.Directions {
		if d == e.Facing || d == e.Facing.Opposite() {
			continue
		}
		if !e.Blocked(d, board.blocked) {
			board.turns = append(board.turns, d)
		}
	}
	return len(board.turns) > 0
}

func actTurn(bb bt.Blackboard) bt.Status {
	board := bb.(*enemyBoard)
	d := board.turns[board.rng.Intn(len(board.turns))]
	board.enemy.TryMove(d, board.blocked)
	board.enemy.Facing = d
	return bt.StatusSuccess
}

func condCanReverse(bb bt.Blackboard) bool {
	board := bb.(*enemyBoard)
	return !board.enemy.Blocked(board.enemy.Facing.Opposite(), board.blocked)
}

func actReverse(bb bt.Blackboard) bt.Status {
	board := bb.(*enemyBoard)
	d := board.enemy.Facing.Opposite()
	board.enemy.TryMove(d, board.blocked)
	board.enemy.Facing = d
	return bt.StatusSuccess
}

func actIdle(bb bt.Blackboard) bt.Status {
	board := bb.(*enemyBoard)
	board.enemy.Moving = false
	return bt.StatusRunning
}
