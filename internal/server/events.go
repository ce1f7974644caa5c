package server

import "bomberman/pkg/phase"

type EventKind int

const (
	EventUnknown EventKind = iota
	EventJoin
	EventInput
	EventPing
	EventPong
	EventLeave
)

type JoinEvent struct {
	PlayerName   string
	RoomID       string // 房间 ID，空字符串表示默认房间
	SessionToken string // 非空表示重连
}

type InputEvent struct {
	PlayerID int32
	RoomID   string
	Seq      uint32
	Keys     phase.KeySet
}

type PingEvent struct {
	ClientTime int64
}

type PongEvent struct {
	ClientTime  int64
	ServerTime  int64
	ServerFrame uint32
}

type ServerEvent struct {
	Kind  EventKind
	Join  *JoinEvent
	Input *InputEvent
	Ping  *PingEvent
	Pong  *PongEvent
}
