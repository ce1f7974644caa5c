package netplay

import (
	"bomberman/pkg/audio"
	"bomberman/pkg/phase"
	"bomberman/pkg/protocol"
)

// Sound 本地声音输出
type Sound interface {
	PlayEffect(e audio.Effect)
	PlayMusic(c audio.Cue)
	StopMusic()
	SetPaused(paused bool)
}

// SoundSync 把服务器帧携带的声音状态重放到本地
type SoundSync struct {
	out    Sound
	cue    audio.Cue
	paused bool
}

// NewSoundSync 创建声音同步器
func NewSoundSync(out Sound) *SoundSync {
	return &SoundSync{out: out}
}

// Apply 播放本帧音效；音乐只在曲目变化时切换
func (s *SoundSync) Apply(msg protocol.FrameMessage) {
	for _, e := range msg.Effects {
		s.out.PlayEffect(e)
	}

	if msg.Music != s.cue {
		s.cue = msg.Music
		if s.cue == audio.CueNone {
			s.out.StopMusic()
		} else {
			s.out.PlayMusic(s.cue)
			s.paused = false
		}
	}

	if paused := msg.Frame.Phase == phase.PhasePaused; paused != s.paused {
		s.paused = paused
		s.out.SetPaused(paused)
	}
}
