package core

// Input 一帧内交给模拟的输入
// 方向键为按住状态；Bomb、Detonate 为本帧新按下。
type Input struct {
	Up       bool
	Down     bool
	Left     bool
	Right    bool
	Bomb     bool
	Detonate bool
}

// Any 是否有任何输入
func (in Input) Any() bool {
	return in.Up || in.Down || in.Left || in.Right || in.Bomb || in.Detonate
}
