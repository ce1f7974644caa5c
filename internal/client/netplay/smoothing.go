package netplay

import (
	"bomberman/pkg/audio"
	"bomberman/pkg/protocol"
)

// 播放缓冲配置
const (
	// PlayoutDelay 开始播放前积攒的帧数，吸收网络抖动（约 50ms）
	PlayoutDelay = 3

	// MaxBuffered 缓冲上限，超过时丢帧追上服务器
	MaxBuffered = 12
)

// jitterBuffer 服务器帧的播放缓冲：每次渲染取一帧，
// 积压过多时丢弃旧帧，被丢帧的音效并入下一帧
type jitterBuffer struct {
	frames  []protocol.FrameMessage
	newest  uint32
	primed  bool
	pending []audio.Effect
	dropped int
}

func newJitterBuffer() *jitterBuffer {
	return &jitterBuffer{frames: make([]protocol.FrameMessage, 0, MaxBuffered+1)}
}

// push 放入一帧；乱序或重复的帧被忽略
func (b *jitterBuffer) push(msg protocol.FrameMessage) {
	if b.newest != 0 && msg.ID <= b.newest {
		return
	}
	b.newest = msg.ID
	b.frames = append(b.frames, msg)

	if len(b.frames) > MaxBuffered {
		drop := len(b.frames) - PlayoutDelay
		for _, f := range b.frames[:drop] {
			b.pending = append(b.pending, f.Effects...)
		}
		b.dropped += drop
		b.frames = append(b.frames[:0], b.frames[drop:]...)
	}
}

// pop 取出下一帧；缓冲不足时返回 false，调用方继续显示上一帧
func (b *jitterBuffer) pop() (protocol.FrameMessage, bool) {
	if !b.primed {
		if len(b.frames) < PlayoutDelay {
			return protocol.FrameMessage{}, false
		}
		b.primed = true
	}
	if len(b.frames) == 0 {
		// 缓冲耗尽，重新积攒
		b.primed = false
		return protocol.FrameMessage{}, false
	}

	msg := b.frames[0]
	b.frames = append(b.frames[:0], b.frames[1:]...)
	if len(b.pending) > 0 {
		msg.Effects = append(b.pending, msg.Effects...)
		b.pending = nil
	}
	return msg, true
}

func (b *jitterBuffer) len() int {
	return len(b.frames)
}
