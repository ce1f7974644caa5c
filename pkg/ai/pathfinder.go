package ai

import (
	"container/list"
	"math"
	"time"

	"bomberman/pkg/core"
)

type stepNode struct {
	Pos  core.GridPos
	Prev *stepNode
	At   time.Duration
}

// tileTime 角色走完一格所需的时间
func tileTime(c *core.Character) time.Duration {
	frames := math.Ceil(1 / c.Speed)
	return time.Duration(frames) * core.FrameDuration
}

// walkable 角色能否站在该格；脚下的炸弹不算阻挡
func walkable(st *core.Stage, c *core.Character, start, p core.GridPos) bool {
	flags := core.BlockFlags{BombPass: c.BombPass || p == start, WallPass: c.WallPass}
	return !st.IsBlock(p.X, p.Y, flags)
}

// search 从 start 出发按 BFS 寻找第一个满足 goal 的格子，途经的格子在到达时刻必须安全
// 返回不含起点的路径。
func search(st *core.Stage, c *core.Character, df *DangerField, start core.GridPos, goal func(core.GridPos) bool) ([]core.GridPos, bool) {
	step := tileTime(c)
	queue := list.New()
	visited := map[core.GridPos]bool{start: true}
	queue.PushBack(&stepNode{Pos: start})

	for queue.Len() > 0 {
		n := queue.Remove(queue.Front()).(*stepNode)
		if goal(n.Pos) {
			return unwind(n), true
		}
		for _, d := range core.Directions {
			next := n.Pos.Step(d, 1)
			if visited[next] || !walkable(st, c, start, next) {
				continue
			}
			at := n.At + step
			if df != nil && !df.SafeAt(next, at) {
				continue
			}
			visited[next] = true
			queue.PushBack(&stepNode{Pos: next, Prev: n, At: at})
		}
	}
	return nil, false
}

func unwind(n *stepNode) []core.GridPos {
	var path []core.GridPos
	for ; n.Prev != nil; n = n.Prev {
		path = append(path, n.Pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// findSafe 最近的不在危险场内的格子
func findSafe(st *core.Stage, c *core.Character, df *DangerField, start core.GridPos) ([]core.GridPos, bool) {
	return search(st, c, df, start, func(p core.GridPos) bool { return !df.InDanger(p) })
}

// canEscapeAfterPlacement 在脚下放弹后是否还有安全的退路
func canEscapeAfterPlacement(st *core.Stage, c *core.Character, df *DangerField, start core.GridPos) bool {
	_, ok := findSafe(st, c, df.Add(st, start, c.ExplosionSize), start)
	return ok
}
