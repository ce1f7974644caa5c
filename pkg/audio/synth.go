package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate 采样率
const SampleRate = beep.SampleRate(44100)

// Wave 振荡器波形
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rng      *rand.Rand
}

// NewOscillator 生成固定时长的波形
func NewOscillator(freq float64, d time.Duration, wave Wave) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: SampleRate.N(d),
		wave:   wave,
		rng:    rand.New(rand.NewSource(int64(freq) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = -1
			if o.phase < 0.5 {
				v = 1
			}
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		o.phase += o.freq / float64(SampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 线性起音/释音
type envelope struct {
	s        beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope 给音源套上起音与释音
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration) beep.Streamer {
	return &envelope{
		s:       s,
		attack:  SampleRate.N(attack),
		release: SampleRate.N(release),
		total:   SampleRate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// withVolume 线性音量转为 effects.Volume，0 为静音
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone 带包络的单音
func tone(freq float64, d time.Duration, wave Wave) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave), d, 5*time.Millisecond, d/3)
}

// note 旋律中的一个音，频率为 0 表示休止
type note struct {
	freq float64
	beat float64
}

// melody 按节拍拼接音符
func melody(tempo time.Duration, wave Wave, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		d := time.Duration(n.beat * float64(tempo))
		if n.freq == 0 {
			parts = append(parts, beep.Silence(SampleRate.N(d)))
			continue
		}
		parts = append(parts, tone(n.freq, d, wave))
	}
	return beep.Seq(parts...)
}

// fit 截断或补静音到精确时长
func fit(s beep.Streamer, d time.Duration) beep.Streamer {
	return beep.Take(SampleRate.N(d), beep.Seq(s, beep.Silence(-1)))
}

const (
	c4 = 261.63
	d4 = 293.66
	e4 = 329.63
	f4 = 349.23
	g4 = 392.00
	a4 = 440.00
	b4 = 493.88
	c5 = 523.25
	e5 = 659.25
	g5 = 783.99
)

// newEffect 合成一次性音效
func newEffect(e Effect) beep.Streamer {
	switch e {
	case EffectExplosion:
		return tone(0, 400*time.Millisecond, WaveNoise)
	case EffectBombPlaced:
		return tone(110, 80*time.Millisecond, WaveSquare)
	case EffectPowerUp:
		return melody(70*time.Millisecond, WaveSine, note{c5, 1}, note{e5, 1}, note{g5, 1.5})
	case EffectStep:
		return withVolume(tone(0, 40*time.Millisecond, WaveNoise), 0.3)
	case EffectMenuNavigate:
		sine, err := generators.SineTone(SampleRate, a4*2)
		if err != nil {
			return beep.Silence(0)
		}
		return beep.Take(SampleRate.N(60*time.Millisecond), sine)
	case EffectDoorOpen:
		return melody(90*time.Millisecond, WaveSquare, note{g5, 1}, note{e5, 1}, note{g5, 2})
	}
	return beep.Silence(0)
}

// newMusic 合成阶段音乐；非循环曲目的长度等于 Cue.Duration
func newMusic(c Cue) beep.Streamer {
	const beat = 250 * time.Millisecond
	switch c {
	case CueStageStart:
		return fit(melody(beat, WaveSquare,
			note{c4, 1}, note{e4, 1}, note{g4, 1}, note{c5, 2}, note{0, 1},
			note{g4, 1}, note{c5, 3}), c.Duration())
	case CueStage:
		return beep.Iterate(func() beep.Streamer {
			return melody(beat, WaveSquare,
				note{c4, 1}, note{c4, 1}, note{g4, 1}, note{e4, 1},
				note{f4, 1}, note{f4, 1}, note{d4, 2},
				note{e4, 1}, note{g4, 1}, note{a4, 1}, note{g4, 1},
				note{e4, 2}, note{c4, 2})
		})
	case CueDeath:
		return fit(melody(beat, WaveSine,
			note{g4, 1}, note{f4, 1}, note{e4, 1}, note{d4, 1}, note{c4, 4}), c.Duration())
	case CueStageClear:
		return fit(melody(beat, WaveSquare,
			note{c5, 1}, note{g4, 1}, note{e4, 1}, note{g4, 1},
			note{c5, 1}, note{e5, 1}, note{g5, 4}), c.Duration())
	case CueGameOver:
		return fit(melody(2*beat, WaveSine,
			note{c5, 1}, note{b4, 1}, note{a4, 1}, note{g4, 1}, note{e4, 2}, note{c4, 4}), c.Duration())
	case CueEnding:
		return fit(melody(beat, WaveSquare,
			note{c4, 1}, note{e4, 1}, note{g4, 1}, note{c5, 1},
			note{e4, 1}, note{g4, 1}, note{c5, 1}, note{e5, 1},
			note{g4, 1}, note{c5, 1}, note{e5, 1}, note{g5, 5}), c.Duration())
	}
	return beep.Silence(0)
}
