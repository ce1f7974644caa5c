package server

import (
	"fmt"

	"bomberman/pkg/phase"
	"bomberman/pkg/protocol"
)

// DecodePacket 解析服务器收到的数据包
func DecodePacket(data []byte) (*ServerEvent, error) {
	pkt, err := protocol.UnmarshalPacket(data)
	if err != nil {
		return nil, fmt.Errorf("解析包失败: %w", err)
	}

	switch pkt.Type {
	case protocol.MessageJoinRequest:
		req, err := protocol.ParseJoinRequest(pkt)
		if err != nil {
			return nil, err
		}
		return &ServerEvent{
			Kind: EventJoin,
			Join: &JoinEvent{
				PlayerName:   req.PlayerName,
				RoomID:       req.RoomID,
				SessionToken: req.SessionToken,
			},
		}, nil

	case protocol.MessageInput:
		in, err := protocol.ParseInput(pkt)
		if err != nil {
			return nil, err
		}
		return &ServerEvent{
			Kind:  EventInput,
			Input: &InputEvent{Seq: in.Seq, Keys: phase.KeySet(in.Keys)},
		}, nil

	case protocol.MessagePing:
		ping, err := protocol.ParsePing(pkt)
		if err != nil {
			return nil, err
		}
		return &ServerEvent{
			Kind: EventPing,
			Ping: &PingEvent{ClientTime: ping.ClientTime},
		}, nil

	case protocol.MessagePong:
		pong, err := protocol.ParsePong(pkt)
		if err != nil {
			return nil, err
		}
		return &ServerEvent{
			Kind: EventPong,
			Pong: &PongEvent{ClientTime: pong.ClientTime, ServerTime: pong.ServerTime, ServerFrame: pong.ServerFrame},
		}, nil

	case protocol.MessageLeave:
		return &ServerEvent{Kind: EventLeave}, nil

	default:
		return &ServerEvent{Kind: EventUnknown}, nil
	}
}
