package ai

// AutopilotConfig 自动驾驶的行为参数
type AutopilotConfig struct {
	// ThinkIntervalFrames 重新决策的间隔（帧）；危险变化时立即重新决策
	ThinkIntervalFrames int

	// MistakeRate 随机失误率 (0.0-1.0)
	MistakeRate float64

	// HuntEnemies 为 true 时优先追击敌人，否则优先炸墙
	HuntEnemies bool
}

// 预设配置：普通难度
var AutopilotNormal = AutopilotConfig{
	ThinkIntervalFrames: 30,
	MistakeRate:         0.05,
}

// 预设配置：困难难度
var AutopilotHard = AutopilotConfig{
	ThinkIntervalFrames: 10,
	HuntEnemies:         true,
}
