package audio

import "time"

// Effect 一次性音效
type Effect int

const (
	EffectExplosion Effect = iota
	EffectBombPlaced
	EffectPowerUp
	EffectStep
	EffectMenuNavigate
	EffectDoorOpen
)

func (e Effect) String() string {
	switch e {
	case EffectExplosion:
		return "explosion"
	case EffectBombPlaced:
		return "bomb-placed"
	case EffectPowerUp:
		return "power-up"
	case EffectStep:
		return "step"
	case EffectMenuNavigate:
		return "menu-navigate"
	case EffectDoorOpen:
		return "door-open"
	}
	return "unknown"
}

// Cue 阶段音乐
type Cue int

const (
	CueNone Cue = iota
	CueStageStart
	CueStage
	CueDeath
	CueStageClear
	CueGameOver
	CueEnding
)

func (c Cue) String() string {
	switch c {
	case CueNone:
		return "none"
	case CueStageStart:
		return "stage-start"
	case CueStage:
		return "stage"
	case CueDeath:
		return "death"
	case CueStageClear:
		return "stage-clear"
	case CueGameOver:
		return "game-over"
	case CueEnding:
		return "ending"
	}
	return "unknown"
}

// cueDurations 各段音乐的播放时长，阶段机据此推进
var cueDurations = map[Cue]time.Duration{
	CueStageStart: 3 * time.Second,
	CueDeath:      3 * time.Second,
	CueStageClear: 4 * time.Second,
	CueGameOver:   5 * time.Second,
	CueEnding:     6 * time.Second,
}

// Duration 音乐时长；循环曲目与 CueNone 为 0
func (c Cue) Duration() time.Duration {
	return cueDurations[c]
}

// Loops 是否循环播放
func (c Cue) Loops() bool {
	return c == CueStage
}
