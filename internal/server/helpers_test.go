package server

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"bomberman/pkg/core"
	"bomberman/pkg/protocol"
)

// fakeSession 记录发送内容的内存会话
type fakeSession struct {
	mu       sync.Mutex
	playerID int32
	roomID   string
	sent     [][]byte
	closed   bool
}

func (s *fakeSession) ID() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID
}

func (s *fakeSession) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrConnClosed
	}
	s.sent = append(s.sent, data)
	return nil
}

func (s *fakeSession) Close()              { s.CloseWithoutNotify() }
func (s *fakeSession) SetPlayerID(id int32) { s.mu.Lock(); s.playerID = id; s.mu.Unlock() }
func (s *fakeSession) SetRoomID(id string)  { s.mu.Lock(); s.roomID = id; s.mu.Unlock() }

func (s *fakeSession) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func (s *fakeSession) CloseWithoutNotify() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *fakeSession) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fakeSession) packets(t *testing.T) []protocol.Packet {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.Packet, 0, len(s.sent))
	for _, data := range s.sent {
		p, err := protocol.UnmarshalPacket(data)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func (s *fakeSession) joinResponse(t *testing.T) protocol.JoinResponse {
	t.Helper()
	pkts := s.packets(t)
	require.NotEmpty(t, pkts)
	resp, err := protocol.ParseJoinResponse(pkts[0])
	require.NoError(t, err)
	return resp
}

func (s *fakeSession) lastFrame(t *testing.T) protocol.FrameMessage {
	t.Helper()
	pkts := s.packets(t)
	for i := len(pkts) - 1; i >= 0; i-- {
		if pkts[i].Type == protocol.MessageFrame {
			msg, err := protocol.ParseFrame(pkts[i])
			require.NoError(t, err)
			return msg
		}
	}
	require.FailNow(t, "没有收到帧")
	return protocol.FrameMessage{}
}

func testOptions() RoomOptions {
	return RoomOptions{Specs: []core.StageSpec{{Rows: 7, Columns: 7, RoundTime: 100}}}
}

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewRoom(ctx, "test", testOptions())
}

func join(t *testing.T, r *Room, name string) *fakeSession {
	t.Helper()
	s := &fakeSession{}
	require.NoError(t, r.handleJoin(joinRequest{session: s, name: name}))
	return s
}
