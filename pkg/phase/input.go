package phase

import "bomberman/pkg/core"

// Key 逻辑按键
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyBomb
	KeyDetonate
	KeyPause
	KeyConfirm
	keyCount
)

// Input 每帧查询一次的按键状态
type Input interface {
	Held(k Key) bool
}

// KeySet 按位存储的按键集合
type KeySet uint32

// Keys 由若干按键组成集合
func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s |= 1 << k
	}
	return s
}

// Held 是否按住
func (s KeySet) Held(k Key) bool {
	return s&(1<<k) != 0
}

// Snapshot 把任意 Input 折叠为 KeySet
func Snapshot(in Input) KeySet {
	if in == nil {
		return 0
	}
	var s KeySet
	for k := Key(0); k < keyCount; k++ {
		if in.Held(k) {
			s |= 1 << k
		}
	}
	return s
}

// keyState 记录上一帧的按键，得到本帧新按下的键
type keyState struct {
	prev KeySet
}

func (ks *keyState) update(in Input) (held, pressed KeySet) {
	held = Snapshot(in)
	pressed = held &^ ks.prev
	ks.prev = held
	return held, pressed
}

// gameInput 方向键取按住状态，放弹与引爆取边沿
func gameInput(held, pressed KeySet) core.Input {
	return core.Input{
		Up:       held.Held(KeyUp),
		Down:     held.Held(KeyDown),
		Left:     held.Held(KeyLeft),
		Right:    held.Held(KeyRight),
		Bomb:     pressed.Held(KeyBomb),
		Detonate: pressed.Held(KeyDetonate),
	}
}
