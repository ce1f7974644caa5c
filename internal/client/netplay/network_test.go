package netplay

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bomberman/internal/server"
	"bomberman/pkg/core"
	"bomberman/pkg/phase"
	"bomberman/pkg/protocol"
)

func startServer(t *testing.T) string {
	t.Helper()
	srv := server.NewGameServer(server.Config{
		Addr:  "127.0.0.1:0",
		Proto: "tcp",
		Room:  server.RoomOptions{Specs: []core.StageSpec{{Rows: 7, Columns: 7, RoundTime: 100}}},
	})
	done := make(chan error, 1)
	go func() { done <- srv.Start() }()
	select {
	case <-srv.Ready():
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("服务器未启动")
	}
	t.Cleanup(func() {
		srv.Shutdown()
		<-done
	})
	return srv.Addr().String()
}

// waitPhase 持续上报按键并消费帧，直到画面进入目标阶段
func waitPhase(t *testing.T, c *Client, keys phase.KeySet, want phase.Phase) protocol.FrameMessage {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		require.NoError(t, c.SendKeys(keys))
		if msg, ok := c.NextFrame(); ok && msg.Frame.Phase == want {
			return msg
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("未进入阶段 %s", want)
	return protocol.FrameMessage{}
}

func TestClientPlaysAgainstServer(t *testing.T) {
	addr := startServer(t)

	c := NewClient(Config{Addr: addr, Name: "a"})
	require.NoError(t, c.Connect())
	defer c.Close()

	assert.Equal(t, int32(1), c.PlayerID())
	assert.Equal(t, server.DefaultRoomID, c.RoomID())
	assert.False(t, c.Spectator())

	msg := waitPhase(t, c, phase.Keys(phase.KeyConfirm), phase.PhaseStageStart)
	require.NotNil(t, msg.Frame.Game)
	assert.Equal(t, 7, msg.Frame.Game.Columns)

	watcher := NewClient(Config{Addr: addr, Name: "b"})
	require.NoError(t, watcher.Connect())
	defer watcher.Close()
	assert.True(t, watcher.Spectator())
}

func TestClientReconnectKeepsControl(t *testing.T) {
	addr := startServer(t)

	c := NewClient(Config{Addr: addr, Name: "a"})
	require.NoError(t, c.Connect())
	defer c.Close()
	id := c.PlayerID()

	require.NoError(t, c.Reconnect())
	assert.Equal(t, id, c.PlayerID())
	assert.False(t, c.Spectator())
	assert.True(t, c.Connected())

	waitPhase(t, c, phase.Keys(phase.KeyConfirm), phase.PhaseStageStart)
}

func TestClientJoinRejected(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		if _, err := protocol.ReadFrame(conn, time.Second); err != nil {
			return
		}
		_ = protocol.WriteFrame(conn, protocol.NewJoinResponsePacket(protocol.JoinResponse{Error: "房间已满"}))
	}()

	c := NewClient(Config{Addr: l.Addr().String(), Name: "a"})
	err = c.Connect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "房间已满")
	assert.False(t, c.Connected())
	assert.ErrorIs(t, c.SendKeys(0), ErrNotConnected)
}
