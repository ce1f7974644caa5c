package timer

import "time"

// Group 一组共同生命周期的定时器（例如一个关卡内的炸弹、爆炸、倒计时）
// 支持整体暂停、恢复和取消。
type Group struct {
	s      *Scheduler
	timers []*Timer
	frozen []*Timer
	paused bool
}

// NewGroup 在调度器上创建定时器组
func (s *Scheduler) NewGroup() *Group {
	return &Group{s: s}
}

// Schedule 在组内创建一次性定时器；组处于暂停时新定时器同样被冻结
func (g *Group) Schedule(fn func(), delay time.Duration) *Timer {
	return g.track(g.s.Schedule(fn, delay))
}

// ScheduleRepeating 在组内创建重复定时器
func (g *Group) ScheduleRepeating(fn func(), period time.Duration) *Timer {
	return g.track(g.s.ScheduleRepeating(fn, period))
}

func (g *Group) track(t *Timer) *Timer {
	g.prune()
	g.timers = append(g.timers, t)
	if g.paused {
		t.Pause()
		g.frozen = append(g.frozen, t)
	}
	return t
}

// PauseAll 暂停组内所有计时中的定时器
// 之前已被单独暂停的定时器不会在 ResumeAll 时被恢复。
func (g *Group) PauseAll() {
	if g.paused {
		return
	}
	g.prune()
	g.paused = true
	g.frozen = g.frozen[:0]
	for _, t := range g.timers {
		if t.state == stateScheduled {
			t.Pause()
			g.frozen = append(g.frozen, t)
		}
	}
}

// ResumeAll 恢复由 PauseAll 冻结的定时器
func (g *Group) ResumeAll() {
	if !g.paused {
		return
	}
	g.paused = false
	for _, t := range g.frozen {
		if t.Paused() {
			_ = t.Resume()
		}
	}
	g.frozen = g.frozen[:0]
}

// CancelAll 取消组内全部定时器
func (g *Group) CancelAll() {
	for _, t := range g.timers {
		t.Cancel()
	}
	g.timers = g.timers[:0]
	g.frozen = g.frozen[:0]
	g.paused = false
}

// Paused 组是否处于整体暂停
func (g *Group) Paused() bool {
	return g.paused
}

// Len 组内仍有效的定时器数量
func (g *Group) Len() int {
	g.prune()
	return len(g.timers)
}

func (g *Group) prune() {
	live := g.timers[:0]
	for _, t := range g.timers {
		if t.Active() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(g.timers); i++ {
		g.timers[i] = nil
	}
	g.timers = live
}
