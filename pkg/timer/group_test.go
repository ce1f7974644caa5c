package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_PauseAllResumeAll(t *testing.T) {
	s := NewScheduler()
	g := s.NewGroup()

	var a, b time.Duration
	g.Schedule(func() { a = s.Now() }, 100*time.Millisecond)
	g.Schedule(func() { b = s.Now() }, 300*time.Millisecond)

	s.Advance(50 * time.Millisecond)
	g.PauseAll()
	assert.True(t, g.Paused())

	s.Advance(time.Second)
	assert.Zero(t, a)
	assert.Zero(t, b)

	g.ResumeAll()
	s.Advance(time.Second)
	assert.Equal(t, 1100*time.Millisecond, a)
	assert.Equal(t, 1300*time.Millisecond, b)
}

func TestGroup_IndividuallyPausedStaysPaused(t *testing.T) {
	s := NewScheduler()
	g := s.NewGroup()

	fired := false
	tm := g.Schedule(func() { fired = true }, 100*time.Millisecond)
	tm.Pause()

	g.PauseAll()
	g.ResumeAll()
	s.Advance(time.Second)

	assert.False(t, fired)
	require.NoError(t, tm.Resume())
	s.Advance(time.Second)
	assert.True(t, fired)
}

func TestGroup_ScheduleWhilePaused(t *testing.T) {
	s := NewScheduler()
	g := s.NewGroup()
	g.PauseAll()

	fired := false
	g.Schedule(func() { fired = true }, 10*time.Millisecond)
	s.Advance(time.Second)
	assert.False(t, fired)

	g.ResumeAll()
	s.Advance(10 * time.Millisecond)
	assert.True(t, fired)
}

func TestGroup_CancelAll(t *testing.T) {
	s := NewScheduler()
	g := s.NewGroup()

	fired := 0
	g.Schedule(func() { fired++ }, 10*time.Millisecond)
	g.ScheduleRepeating(func() { fired++ }, 10*time.Millisecond)
	other := s.Schedule(func() { fired += 100 }, 10*time.Millisecond)

	g.CancelAll()
	s.Advance(time.Second)

	assert.Equal(t, 100, fired, "timers outside the group are untouched")
	assert.Zero(t, g.Len())
	assert.False(t, other.Active())
}

func TestGroup_LenDropsFiredTimers(t *testing.T) {
	s := NewScheduler()
	g := s.NewGroup()
	g.Schedule(func() {}, 10*time.Millisecond)
	g.Schedule(func() {}, 20*time.Millisecond)
	assert.Equal(t, 2, g.Len())

	s.Advance(15 * time.Millisecond)
	assert.Equal(t, 1, g.Len())
}
