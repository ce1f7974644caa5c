package timer

import (
	"errors"
	"time"
)

// ErrNotPaused 恢复一个未处于暂停状态的定时器
var ErrNotPaused = errors.New("定时器未暂停")

// minPeriod 重复定时器的最小周期，避免零周期在一次 Advance 中无限触发
const minPeriod = time.Millisecond

type timerState int

const (
	stateScheduled timerState = iota
	statePaused
	stateFired
	stateCanceled
)

// Scheduler 虚拟时钟调度器
// 不依赖任何宿主定时原语，由宿主在帧与帧之间调用 Advance 推进时间，
// 所有回调都在 Advance 内同步执行，因此不会与每帧更新重入。
type Scheduler struct {
	now    time.Duration
	seq    uint64
	active []*Timer
}

// NewScheduler 创建调度器，时钟从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now 当前虚拟时间（自调度器创建起）
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Schedule 在 delay 之后执行一次 fn
func (s *Scheduler) Schedule(fn func(), delay time.Duration) *Timer {
	return s.add(fn, delay, 0)
}

// ScheduleRepeating 每隔 period 执行一次 fn，直到取消
func (s *Scheduler) ScheduleRepeating(fn func(), period time.Duration) *Timer {
	if period < minPeriod {
		period = minPeriod
	}
	return s.add(fn, period, period)
}

func (s *Scheduler) add(fn func(), delay, period time.Duration) *Timer {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Timer{
		s:      s,
		fn:     fn,
		due:    s.now + delay,
		period: period,
		seq:    s.seq,
		state:  stateScheduled,
	}
	s.active = append(s.active, t)
	return t
}

// Advance 推进时钟 d，按到期时间顺序触发所有到期的定时器
// 回调中新建的到期定时器会在同一次 Advance 中触发。
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			next.state = stateFired
			s.remove(next)
		}
		if next.fn != nil {
			next.fn()
		}
	}
	s.now = target
}

// Pending 当前仍在计时的定时器数量（不含暂停的）
func (s *Scheduler) Pending() int {
	return len(s.active)
}

func (s *Scheduler) nextDue(limit time.Duration) *Timer {
	var best *Timer
	for _, t := range s.active {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) remove(t *Timer) {
	for i, other := range s.active {
		if other == t {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}

// Timer 可取消、可暂停、可恢复的定时器句柄
type Timer struct {
	s         *Scheduler
	fn        func()
	due       time.Duration
	period    time.Duration
	remaining time.Duration
	seq       uint64
	state     timerState
}

// Cancel 取消定时器；已触发或已取消时为空操作
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	switch t.state {
	case stateScheduled:
		t.s.remove(t)
		t.state = stateCanceled
	case statePaused:
		t.state = stateCanceled
	}
}

// Pause 冻结剩余时间并停止触发；重复调用是安全的
func (t *Timer) Pause() {
	if t == nil || t.state != stateScheduled {
		return
	}
	t.remaining = t.due - t.s.now
	t.s.remove(t)
	t.state = statePaused
}

// Resume 从冻结的剩余时间重新开始计时
func (t *Timer) Resume() error {
	if t == nil || t.state != statePaused {
		return ErrNotPaused
	}
	t.due = t.s.now + t.remaining
	t.remaining = 0
	t.state = stateScheduled
	t.s.active = append(t.s.active, t)
	return nil
}

// Remaining 距离下次触发的时间
func (t *Timer) Remaining() time.Duration {
	if t == nil {
		return 0
	}
	switch t.state {
	case stateScheduled:
		return t.due - t.s.now
	case statePaused:
		return t.remaining
	}
	return 0
}

// Active 定时器是否仍会触发（计时中或暂停中）
func (t *Timer) Active() bool {
	return t != nil && (t.state == stateScheduled || t.state == statePaused)
}

// Paused 定时器是否处于暂停状态
func (t *Timer) Paused() bool {
	return t != nil && t.state == statePaused
}
