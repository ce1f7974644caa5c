package protocol

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// MessageType 消息类型
type MessageType int32

const (
	MessageUnknown MessageType = iota
	MessageJoinRequest
	MessageJoinResponse
	MessageInput
	MessageFrame
	MessagePing
	MessagePong
	MessageLeave
)

func (t MessageType) String() string {
	switch t {
	case MessageJoinRequest:
		return "join-request"
	case MessageJoinResponse:
		return "join-response"
	case MessageInput:
		return "input"
	case MessageFrame:
		return "frame"
	case MessagePing:
		return "ping"
	case MessagePong:
		return "pong"
	case MessageLeave:
		return "leave"
	}
	return "unknown"
}

// ErrUnknownPacket 无法识别的消息类型
var ErrUnknownPacket = errors.New("未知的消息类型")

// Packet 消息外层：类型 + 负载
type Packet struct {
	Type    MessageType
	Payload []byte
}

// MarshalPacket 序列化消息包
func MarshalPacket(p Packet) []byte {
	var e encoder
	e.uvarint(1, uint64(p.Type))
	if len(p.Payload) > 0 {
		e.b = protowire.AppendTag(e.b, 2, protowire.BytesType)
		e.b = protowire.AppendBytes(e.b, p.Payload)
	}
	return e.b
}

// UnmarshalPacket 解析消息包
func UnmarshalPacket(data []byte) (Packet, error) {
	var p Packet
	err := walk(data, func(num protowire.Number, f field) error {
		switch num {
		case 1:
			p.Type = MessageType(f.u)
		case 2:
			p.Payload = f.b
		}
		return nil
	})
	if err != nil {
		return Packet{}, fmt.Errorf("解析包失败: %w", err)
	}
	if p.Type <= MessageUnknown || p.Type > MessageLeave {
		return p, fmt.Errorf("%w: %d", ErrUnknownPacket, p.Type)
	}
	return p, nil
}

// expect 检查消息类型
func expect(p Packet, t MessageType) error {
	if p.Type != t {
		return fmt.Errorf("期望 %s 消息，收到 %s", t, p.Type)
	}
	return nil
}
