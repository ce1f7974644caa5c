package core

import "time"

// 屏幕与帧率配置
const (
	TileSize      = 32 // 每格像素
	FPS           = 60
	FrameDuration = time.Second / FPS
)

// 移动配置（单位：格/帧）
const (
	CharacterSpeed            = 0.06 // 角色初始速度
	SpeedIncrement            = 0.02 // speed 道具加速
	StepDecrement             = 0.01 // 碰撞时逐步缩小步长的减量
	CornerCorrectionTolerance = 0.3  // 拐角修正容错（格）
	positionPrecision         = 1e4  // 位置吸附精度，消除浮点累积误差
	edgeEpsilon               = 1e-6 // 右/下边界为开区间
)

// 角色初始能力
const (
	DefaultLives         = 3
	DefaultMaxBombs      = 1
	DefaultExplosionSize = 1
)

// 炸弹与爆炸时序
const (
	BombCountdown      = 2500 * time.Millisecond
	ChainDelay         = 100 * time.Millisecond // 连锁爆炸延迟
	ExplosionDuration  = 600 * time.Millisecond // 火焰可见时长，也是墙体移除延迟
	EnemyDyingDuration = time.Second
	XPMarkerDuration   = time.Second
	InvincibleDuration = 10 * time.Second // mystery 道具无敌时长
	RoundTick          = time.Second
	stepSoundFrames    = 15 // 行走音效间隔（帧）
)

// 关卡生成
const (
	WallDensity        = 0.3
	EnemySpawnDistance = 4 // 敌人出生点与角色出生点的最小曼哈顿距离
)

// 关卡尺寸约束
const (
	MinRows      = 7
	MinColumns   = 7
	MinRoundTime = 10 // 秒
)

// SpawnPos 角色出生格（左上角内部第一格）
var SpawnPos = GridPos{X: 2, Y: 2}
