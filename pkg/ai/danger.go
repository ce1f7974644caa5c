package ai

import (
	"time"

	"bomberman/pkg/core"
)

// DangerField 每个格子最早被火焰覆盖的时间（相对当前时刻）
// 现有火焰格为 0；炸弹覆盖范围取其剩余时间，连锁炸弹取触发它的最早时间。
type DangerField struct {
	earliest map[core.GridPos]time.Duration
}

// Update 按当前关卡重新计算危险场
func (df *DangerField) Update(st *core.Stage) {
	df.earliest = make(map[core.GridPos]time.Duration)

	bombs := st.Bombs()
	when := make(map[core.GridPos]time.Duration, len(bombs))
	for _, b := range bombs {
		r := b.Remaining()
		if !b.Armed() && !b.Chained() {
			// 遥控炸弹：按一次完整倒计时估计
			r = core.BombCountdown
		}
		when[b.Pos] = r
	}

	// 连锁传播直到稳定
	for changed := true; changed; {
		changed = false
		for _, b := range bombs {
			_, hits := st.BlastReach(b.Pos, b.Size)
			for _, p := range hits {
				if t, ok := when[p]; ok && t > when[b.Pos] {
					when[p] = when[b.Pos]
					changed = true
				}
			}
		}
	}

	for _, b := range bombs {
		cells, _ := st.BlastReach(b.Pos, b.Size)
		for _, p := range cells {
			df.mark(p, when[b.Pos])
		}
	}
	for _, exp := range st.Explosions() {
		for _, c := range exp.Cells() {
			df.mark(c.Pos, 0)
		}
	}
}

// Add 假设在 p 放置一个新炸弹后的危险场
func (df *DangerField) Add(st *core.Stage, p core.GridPos, size int) *DangerField {
	next := &DangerField{earliest: make(map[core.GridPos]time.Duration, len(df.earliest))}
	for k, v := range df.earliest {
		next.earliest[k] = v
	}
	cells, _ := st.BlastReach(p, size)
	for _, c := range cells {
		next.mark(c, core.BombCountdown)
	}
	return next
}

func (df *DangerField) mark(p core.GridPos, t time.Duration) {
	if cur, ok := df.earliest[p]; !ok || t < cur {
		df.earliest[p] = t
	}
}

// InDanger 该格是否会被火焰覆盖
func (df *DangerField) InDanger(p core.GridPos) bool {
	_, ok := df.earliest[p]
	return ok
}

// SafeAt 在 t 时刻经过该格是否安全
// 火焰出现前经过是安全的；火焰出现后直到消失都不安全。
func (df *DangerField) SafeAt(p core.GridPos, t time.Duration) bool {
	e, ok := df.earliest[p]
	if !ok {
		return true
	}
	return t < e || t > e+core.ExplosionDuration
}
