package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bomberman/pkg/audio"
	"bomberman/pkg/phase"
)

func TestRoomFirstJoinerControls(t *testing.T) {
	r := newTestRoom(t)

	a := join(t, r, "a")
	resp := a.joinResponse(t)
	assert.True(t, resp.Success)
	assert.Equal(t, int32(1), resp.PlayerID)
	assert.Equal(t, "test", resp.RoomID)
	assert.False(t, resp.Spectator)
	assert.Equal(t, int32(ServerTPS), resp.TPS)
	assert.NotEmpty(t, resp.SessionToken)
	assert.Equal(t, int32(1), a.ID())
	assert.Equal(t, "test", a.RoomID())

	b := join(t, r, "b")
	assert.True(t, b.joinResponse(t).Spectator)

	stats := r.Stats()
	assert.Equal(t, 2, stats.Players)
	assert.Equal(t, 1, stats.Spectators)
	assert.Equal(t, int32(1), stats.Controller)
	assert.True(t, stats.IdleSince.IsZero())
}

func TestRoomFull(t *testing.T) {
	r := newTestRoom(t)
	for i := 0; i < MaxPlayers; i++ {
		join(t, r, "p")
	}
	err := r.handleJoin(joinRequest{session: &fakeSession{}, name: "late"})
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestRoomOnlyControllerInputCounts(t *testing.T) {
	r := newTestRoom(t)
	a := join(t, r, "a")
	b := join(t, r, "b")

	r.handleInput(InputEvent{PlayerID: b.ID(), Keys: phase.Keys(phase.KeyConfirm)})
	r.tick()
	assert.Equal(t, phase.PhaseMainMenu, r.machine.Phase())

	r.handleInput(InputEvent{PlayerID: a.ID(), Keys: phase.Keys(phase.KeyConfirm)})
	r.tick()
	assert.Equal(t, phase.PhaseStageStart, r.machine.Phase())

	// 观众同样收到画面
	for _, s := range []*fakeSession{a, b} {
		msg := s.lastFrame(t)
		assert.Equal(t, phase.PhaseStageStart, msg.Frame.Phase)
		assert.Equal(t, "STAGE 1", msg.Frame.Message)
		assert.Equal(t, audio.CueStageStart, msg.Music)
		require.NotNil(t, msg.Frame.Game)
		assert.Equal(t, 7, msg.Frame.Game.Columns)
	}
}

func TestRoomLatchesShortPress(t *testing.T) {
	r := newTestRoom(t)
	a := join(t, r, "a")

	r.handleInput(InputEvent{PlayerID: a.ID(), Keys: phase.Keys(phase.KeyConfirm)})
	r.handleInput(InputEvent{PlayerID: a.ID()})
	r.tick()
	assert.Equal(t, phase.PhaseStageStart, r.machine.Phase())
}

func TestRoomFrozenWhenEmpty(t *testing.T) {
	r := newTestRoom(t)
	r.tick()
	r.tick()
	assert.Equal(t, uint32(0), r.frameID)
	assert.Equal(t, 0, r.Stats().Players)
	assert.False(t, r.Stats().IdleSince.IsZero())
}

// startGame 让操控者开始游戏并等到可操作
func startGame(t *testing.T, r *Room, controller *fakeSession) {
	t.Helper()
	r.handleInput(InputEvent{PlayerID: controller.ID(), Keys: phase.Keys(phase.KeyConfirm)})
	r.tick()
	r.handleInput(InputEvent{PlayerID: controller.ID()})
	for i := 0; i < 2*ServerTPS*int(audio.CueStageStart.Duration().Seconds()); i++ {
		if r.machine.Phase() == phase.PhaseRunning {
			break
		}
		r.tick()
	}
	require.Equal(t, phase.PhaseRunning, r.machine.Phase())
}

func TestControllerLeavePausesAndReconnectResumesControl(t *testing.T) {
	r := newTestRoom(t)
	a := join(t, r, "a")
	b := join(t, r, "b")
	startGame(t, r, a)

	r.handleLeave(leaveRequest{playerID: a.ID(), session: a})
	assert.Equal(t, phase.PhasePaused, r.machine.Phase())
	assert.Equal(t, int32(0), r.controller)

	r.tick()
	assert.Equal(t, phase.PhasePaused, b.lastFrame(t).Frame.Phase)

	back := &fakeSession{}
	require.NoError(t, r.handleJoin(joinRequest{session: back, name: "a", reclaim: 1}))
	resp := back.joinResponse(t)
	assert.Equal(t, int32(1), resp.PlayerID)
	assert.False(t, resp.Spectator)

	r.handleInput(InputEvent{PlayerID: 1, Keys: phase.Keys(phase.KeyPause)})
	r.tick()
	assert.Equal(t, phase.PhaseRunning, r.machine.Phase())
}

func TestReconnectReplacesStaleSession(t *testing.T) {
	r := newTestRoom(t)
	old := join(t, r, "a")

	fresh := &fakeSession{}
	require.NoError(t, r.handleJoin(joinRequest{session: fresh, name: "a", reclaim: old.ID()}))
	assert.True(t, old.isClosed())
	assert.Equal(t, 1, r.Stats().Players)

	// 旧连接迟到的离开请求不影响新连接
	r.handleLeave(leaveRequest{playerID: 1, session: old})
	assert.Equal(t, 1, r.Stats().Players)
	assert.Equal(t, int32(1), r.controller)

	r.handleLeave(leaveRequest{playerID: 1, session: fresh})
	assert.Equal(t, 0, r.Stats().Players)
}

func TestReclaimUnknownPlayer(t *testing.T) {
	r := newTestRoom(t)
	err := r.handleJoin(joinRequest{session: &fakeSession{}, reclaim: 7})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFrameCarriesEffects(t *testing.T) {
	r := newTestRoom(t)
	a := join(t, r, "a")
	startGame(t, r, a)

	r.handleInput(InputEvent{PlayerID: a.ID(), Keys: phase.Keys(phase.KeyBomb)})
	r.tick()

	msg := a.lastFrame(t)
	assert.Contains(t, msg.Effects, audio.EffectBombPlaced)
	assert.Equal(t, audio.CueStage, msg.Music)
	require.NotNil(t, msg.Frame.Game)
	assert.Len(t, msg.Frame.Game.Bombs, 1)
}
