package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain 读完一个有限音源，返回采样数
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			require.GreaterOrEqual(t, buf[i][0], -1.0)
			require.LessOrEqual(t, buf[i][0], 1.0)
		}
		total += n
		if !ok {
			return total
		}
	}
	return total
}

func TestCueDurations(t *testing.T) {
	assert.Equal(t, 3*time.Second, CueStageStart.Duration())
	assert.Equal(t, 3*time.Second, CueDeath.Duration())
	assert.Zero(t, CueStage.Duration())
	assert.Zero(t, CueNone.Duration())
	assert.True(t, CueStage.Loops())
	assert.False(t, CueDeath.Loops())
}

func TestMusicLengthMatchesDuration(t *testing.T) {
	for _, c := range []Cue{CueStageStart, CueDeath, CueStageClear, CueGameOver, CueEnding} {
		t.Run(c.String(), func(t *testing.T) {
			want := SampleRate.N(c.Duration())
			got := drain(t, newMusic(c), want*2)
			assert.Equal(t, want, got)
		})
	}
}

func TestStageMusicLoops(t *testing.T) {
	limit := SampleRate.N(20 * time.Second)
	assert.Equal(t, limit, drain(t, newMusic(CueStage), limit))
}

func TestEffectsAreShort(t *testing.T) {
	for _, e := range []Effect{EffectExplosion, EffectBombPlaced, EffectPowerUp, EffectStep, EffectMenuNavigate, EffectDoorOpen} {
		t.Run(e.String(), func(t *testing.T) {
			n := drain(t, newEffect(e), SampleRate.N(time.Second))
			assert.Greater(t, n, 0)
			assert.Less(t, n, SampleRate.N(time.Second))
		})
	}
}

func TestEnvelopeFadesOut(t *testing.T) {
	d := 100 * time.Millisecond
	s := NewEnvelope(NewOscillator(0, d, WaveSquare), d, 10*time.Millisecond, 10*time.Millisecond)
	buf := make([][2]float64, SampleRate.N(d))
	n, _ := s.Stream(buf)
	require.Equal(t, len(buf), n)
	assert.Zero(t, buf[0][0], "起音从 0 开始")
	assert.InDelta(t, 1.0, buf[n/2][0], 1e-9)
	assert.Less(t, buf[n-1][0], 0.01)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.PlayMusic(CueStage)
	r.SetPaused(true)
	r.PlayEffect(EffectStep)
	r.PlayEffect(EffectExplosion)

	assert.Equal(t, CueStage, r.Cue)
	assert.True(t, r.Paused)
	assert.Equal(t, []Effect{EffectStep, EffectExplosion}, r.Drain())
	assert.Empty(t, r.Drain())

	r.StopMusic()
	assert.Equal(t, CueNone, r.Cue)
	assert.Equal(t, 5*time.Second, r.Duration(CueGameOver))
}

func TestSpeakerWithoutDeviceIsSilent(t *testing.T) {
	s := NewSpeaker()
	s.PlayMusic(CueStage)
	s.PlayEffect(EffectBombPlaced)
	s.SetPaused(true)
	s.SetMuted(true)
	assert.True(t, s.Muted())
	s.StopMusic()
	s.Close()
	assert.Equal(t, 4*time.Second, s.Duration(CueStageClear))
}
