package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Speaker 通过声卡播放合成音效与音乐
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	music       *beep.Ctrl
	cue         Cue
	musicVol    float64
	effectsVol  float64
	initialized bool
}

// NewSpeaker 创建播放器，需调用 Init 后才会发声
func NewSpeaker() *Speaker {
	mixer := &beep.Mixer{}
	return &Speaker{
		mixer:      mixer,
		master:     &effects.Volume{Streamer: mixer, Base: 2},
		musicVol:   1,
		effectsVol: 1,
	}
}

// Init 初始化声卡
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.master)
	s.initialized = true
	return nil
}

// Close 停止所有声音
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.music = nil
	s.initialized = false
}

// SetVolume 设置音乐与音效音量（0..1）
func (s *Speaker) SetVolume(music, effects float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.musicVol, s.effectsVol = music, effects
}

// SetMuted 静音开关，不影响曲目进度
func (s *Speaker) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	s.master.Silent = muted
}

// Muted 是否静音
func (s *Speaker) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.master.Silent
}

// PlayEffect 播放音效
func (s *Speaker) PlayEffect(e Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(withVolume(newEffect(e), s.effectsVol))
	speaker.Unlock()
}

// PlayMusic 切换音乐，之前的曲目立即停止
func (s *Speaker) PlayMusic(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cue = c
	if !s.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if s.music != nil {
		s.music.Streamer = nil
	}
	s.music = &beep.Ctrl{Streamer: withVolume(newMusic(c), s.musicVol)}
	s.mixer.Add(s.music)
}

// StopMusic 停止音乐
func (s *Speaker) StopMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cue = CueNone
	if s.music == nil {
		return
	}
	speaker.Lock()
	s.music.Streamer = nil
	speaker.Unlock()
	s.music = nil
}

// SetPaused 暂停或继续当前音乐
func (s *Speaker) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.music == nil {
		return
	}
	speaker.Lock()
	s.music.Paused = paused
	speaker.Unlock()
}

// Duration 音乐时长
func (s *Speaker) Duration(c Cue) time.Duration {
	return c.Duration()
}

// Recorder 不发声，只记录触发的音效与当前音乐
// 用于服务器（音效随帧下发）与测试。
type Recorder struct {
	Cue     Cue
	Paused  bool
	effects []Effect
}

// PlayEffect 记录音效
func (r *Recorder) PlayEffect(e Effect) {
	r.effects = append(r.effects, e)
}

// PlayMusic 记录当前音乐
func (r *Recorder) PlayMusic(c Cue) {
	r.Cue = c
	r.Paused = false
}

// StopMusic 清除当前音乐
func (r *Recorder) StopMusic() {
	r.Cue = CueNone
}

// SetPaused 记录暂停状态
func (r *Recorder) SetPaused(paused bool) {
	r.Paused = paused
}

// SetVolume 忽略
func (r *Recorder) SetVolume(music, effects float64) {}

// Duration 音乐时长
func (r *Recorder) Duration(c Cue) time.Duration {
	return c.Duration()
}

// Drain 取出并清空已记录的音效
func (r *Recorder) Drain() []Effect {
	out := r.effects
	r.effects = nil
	return out
}
