package netplay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bomberman/pkg/audio"
	"bomberman/pkg/phase"
	"bomberman/pkg/protocol"
)

func TestSoundSync(t *testing.T) {
	rec := &audio.Recorder{}
	s := NewSoundSync(rec)

	s.Apply(protocol.FrameMessage{Music: audio.CueStageStart, Effects: []audio.Effect{audio.EffectMenuNavigate}})
	assert.Equal(t, audio.CueStageStart, rec.Cue)
	assert.Equal(t, []audio.Effect{audio.EffectMenuNavigate}, rec.Drain())

	s.Apply(protocol.FrameMessage{Music: audio.CueStage, Frame: phase.Frame{Phase: phase.PhaseRunning}})
	assert.Equal(t, audio.CueStage, rec.Cue)

	s.Apply(protocol.FrameMessage{Music: audio.CueStage, Frame: phase.Frame{Phase: phase.PhasePaused}})
	assert.True(t, rec.Paused)

	s.Apply(protocol.FrameMessage{Music: audio.CueStage, Frame: phase.Frame{Phase: phase.PhaseRunning}})
	assert.False(t, rec.Paused)

	s.Apply(protocol.FrameMessage{Frame: phase.Frame{Phase: phase.PhaseGameScore}})
	assert.Equal(t, audio.CueNone, rec.Cue)
}
