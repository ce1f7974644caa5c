package core

import "math/rand"

// Session 一局游戏的全局状态：分数、音量、随机源与敌人 id 计数
// 在开局时创建，敌人 id 在每次过关时重置。
type Session struct {
	Score         int
	MusicVolume   float64
	EffectsVolume float64
	Rand          *rand.Rand

	nextEnemyID int
}

// NewSession 以给定种子创建会话
func NewSession(seed int64) *Session {
	return &Session{
		MusicVolume:   1,
		EffectsVolume: 1,
		Rand:          rand.New(rand.NewSource(seed)),
	}
}

// NextEnemyID 分配单调递增的敌人 id
func (s *Session) NextEnemyID() int {
	s.nextEnemyID++
	return s.nextEnemyID
}

// ResetEnemyIDs 重置敌人 id 计数
func (s *Session) ResetEnemyIDs() {
	s.nextEnemyID = 0
}

// AddScore 累加分数
func (s *Session) AddScore(xp int) {
	s.Score += xp
}
