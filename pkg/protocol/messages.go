package protocol

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// JoinRequest 加入房间；带上会话令牌即为重连
type JoinRequest struct {
	PlayerName   string
	RoomID       string
	SessionToken string
}

// JoinResponse 加入结果
type JoinResponse struct {
	Success      bool
	Error        string
	PlayerID     int32
	RoomID       string
	SessionToken string
	Spectator    bool
	TPS          int32
}

// Input 客户端每帧上报的按键位图
type Input struct {
	Seq  uint32
	Keys uint32
}

// Ping 心跳
type Ping struct {
	ClientTime int64
}

// Pong 心跳响应
type Pong struct {
	ClientTime  int64
	ServerTime  int64
	ServerFrame uint32
}

// ========== 构造 ==========

// NewJoinRequestPacket 构造加入请求
func NewJoinRequestPacket(req JoinRequest) []byte {
	var e encoder
	e.string(1, req.PlayerName)
	e.string(2, req.RoomID)
	e.string(3, req.SessionToken)
	return MarshalPacket(Packet{Type: MessageJoinRequest, Payload: e.b})
}

// NewJoinResponsePacket 构造加入响应
func NewJoinResponsePacket(resp JoinResponse) []byte {
	var e encoder
	e.bool(1, resp.Success)
	e.string(2, resp.Error)
	e.sint(3, int64(resp.PlayerID))
	e.string(4, resp.RoomID)
	e.string(5, resp.SessionToken)
	e.bool(6, resp.Spectator)
	e.sint(7, int64(resp.TPS))
	return MarshalPacket(Packet{Type: MessageJoinResponse, Payload: e.b})
}

// NewInputPacket 构造输入消息
func NewInputPacket(in Input) []byte {
	var e encoder
	e.uvarint(1, uint64(in.Seq))
	e.uvarint(2, uint64(in.Keys))
	return MarshalPacket(Packet{Type: MessageInput, Payload: e.b})
}

// NewPingPacket 构造心跳
func NewPingPacket(clientTime int64) []byte {
	var e encoder
	e.sint(1, clientTime)
	return MarshalPacket(Packet{Type: MessagePing, Payload: e.b})
}

// NewPongPacket 构造心跳响应
func NewPongPacket(pong Pong) []byte {
	var e encoder
	e.sint(1, pong.ClientTime)
	e.sint(2, pong.ServerTime)
	e.uvarint(3, uint64(pong.ServerFrame))
	return MarshalPacket(Packet{Type: MessagePong, Payload: e.b})
}

// NewLeavePacket 构造离开消息
func NewLeavePacket() []byte {
	return MarshalPacket(Packet{Type: MessageLeave})
}

// ========== 解析 ==========

// ParseJoinRequest 从 Packet 中解析 JoinRequest
func ParseJoinRequest(p Packet) (JoinRequest, error) {
	var req JoinRequest
	if err := expect(p, MessageJoinRequest); err != nil {
		return req, err
	}
	err := walk(p.Payload, func(num protowire.Number, f field) error {
		switch num {
		case 1:
			req.PlayerName = f.str()
		case 2:
			req.RoomID = f.str()
		case 3:
			req.SessionToken = f.str()
		}
		return nil
	})
	return req, err
}

// ParseJoinResponse 从 Packet 中解析 JoinResponse
func ParseJoinResponse(p Packet) (JoinResponse, error) {
	var resp JoinResponse
	if err := expect(p, MessageJoinResponse); err != nil {
		return resp, err
	}
	err := walk(p.Payload, func(num protowire.Number, f field) error {
		switch num {
		case 1:
			resp.Success = f.bool()
		case 2:
			resp.Error = f.str()
		case 3:
			resp.PlayerID = int32(f.int())
		case 4:
			resp.RoomID = f.str()
		case 5:
			resp.SessionToken = f.str()
		case 6:
			resp.Spectator = f.bool()
		case 7:
			resp.TPS = int32(f.int())
		}
		return nil
	})
	return resp, err
}

// ParseInput 从 Packet 中解析 Input
func ParseInput(p Packet) (Input, error) {
	var in Input
	if err := expect(p, MessageInput); err != nil {
		return in, err
	}
	err := walk(p.Payload, func(num protowire.Number, f field) error {
		switch num {
		case 1:
			in.Seq = f.uint32()
		case 2:
			in.Keys = f.uint32()
		}
		return nil
	})
	return in, err
}

// ParsePing 从 Packet 中解析 Ping
func ParsePing(p Packet) (Ping, error) {
	var ping Ping
	if err := expect(p, MessagePing); err != nil {
		return ping, err
	}
	err := walk(p.Payload, func(num protowire.Number, f field) error {
		if num == 1 {
			ping.ClientTime = f.int()
		}
		return nil
	})
	return ping, err
}

// ParsePong 从 Packet 中解析 Pong
func ParsePong(p Packet) (Pong, error) {
	var pong Pong
	if err := expect(p, MessagePong); err != nil {
		return pong, err
	}
	err := walk(p.Payload, func(num protowire.Number, f field) error {
		switch num {
		case 1:
			pong.ClientTime = f.int()
		case 2:
			pong.ServerTime = f.int()
		case 3:
			pong.ServerFrame = f.uint32()
		}
		return nil
	})
	return pong, err
}
