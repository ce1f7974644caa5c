package core

import "bomberman/pkg/timer"

// Game 单人游戏的模拟状态（纯逻辑，不包含渲染）
// 所有定时器都挂在当前关卡的定时器组上，暂停关卡即冻结炸弹、火焰和倒计时。
type Game struct {
	Session   *Session
	Specs     []StageSpec
	Stage     *Stage
	Character *Character

	// TimeLeft 本关剩余秒数
	TimeLeft int

	clock      *timer.Scheduler
	timers     *timer.Group
	roundTimer *timer.Timer
	steerer    Steerer
	events     []Event
	markers    map[int]*XPMarker

	stageIndex   int
	nextBombID   int
	nextMarkerID int
	stepFrames   int
	cleared      bool
}

// NewGame 创建游戏并载入第一关
func NewGame(sess *Session, specs []StageSpec, clock *timer.Scheduler, lives int) *Game {
	g := &Game{
		Session:   sess,
		Specs:     specs,
		Character: NewCharacter(lives),
		clock:     clock,
	}
	g.loadStage(0)
	return g
}

// SetSteerer 设置敌人的移动策略
func (g *Game) SetSteerer(s Steerer) {
	g.steerer = s
}

// StageIndex 当前关卡序号（0 起始）
func (g *Game) StageIndex() int {
	return g.stageIndex
}

// Cleared 本关是否已经通过
func (g *Game) Cleared() bool {
	return g.cleared
}

// Markers 当前存活的经验值标记
func (g *Game) Markers() []*XPMarker {
	list := make([]*XPMarker, 0, len(g.markers))
	for id := 1; id <= g.nextMarkerID; id++ {
		if m, ok := g.markers[id]; ok {
			list = append(list, m)
		}
	}
	return list
}

// Update 推进一帧
// 顺序：放弹/遥控引爆 → 连锁处理 → 角色 → 敌人。定时器由调用方在帧与帧之间推进。
func (g *Game) Update(in Input) {
	if g.Stage == nil {
		return
	}
	if in.Bomb {
		g.PlaceBomb()
	}
	if in.Detonate {
		g.Detonate()
	}
	g.processChains()
	g.updateCharacter(in)
	g.updateEnemies()
}

// Restart 死亡后重开本关：撤销本关拾取的道具，重新生成地形与敌人
func (g *Game) Restart() {
	g.Character.undoPowerUps()
	g.Session.ResetEnemyIDs()
	g.loadStage(g.stageIndex)
}

// NextStage 过关：保留道具效果并进入下一关；没有下一关时返回 false
func (g *Game) NextStage() bool {
	g.Character.commitPowerUps()
	g.Session.ResetEnemyIDs()
	if g.stageIndex+1 >= len(g.Specs) {
		g.teardown()
		return false
	}
	g.loadStage(g.stageIndex + 1)
	return true
}

// PauseTimers 冻结本关全部定时器
func (g *Game) PauseTimers() {
	if g.timers != nil {
		g.timers.PauseAll()
	}
}

// ResumeTimers 从冻结的剩余时间继续
func (g *Game) ResumeTimers() {
	if g.timers != nil {
		g.timers.ResumeAll()
	}
}

// TimersPaused 本关定时器是否被冻结
func (g *Game) TimersPaused() bool {
	return g.timers != nil && g.timers.Paused()
}

// Close 取消本关全部定时器，游戏不再可用
func (g *Game) Close() {
	g.teardown()
	g.Stage = nil
}

func (g *Game) teardown() {
	if g.timers != nil {
		g.timers.CancelAll()
	}
	g.roundTimer = nil
	g.markers = make(map[int]*XPMarker)
	g.events = nil
}

func (g *Game) loadStage(index int) {
	g.teardown()
	g.timers = g.clock.NewGroup()
	g.stageIndex = index
	g.cleared = false
	g.stepFrames = 0
	g.nextBombID = 0
	g.nextMarkerID = 0

	spec := g.Specs[index]
	g.Stage = BuildStage(index, spec, g.Session, g.timers)
	g.Stage.BombsAvailable = g.Character.MaxBombs
	g.Character.respawn()

	g.TimeLeft = spec.RoundTime
	g.roundTimer = g.timers.ScheduleRepeating(g.tickRound, RoundTick)
}

// tickRound 倒计时，归零时角色死亡
func (g *Game) tickRound() {
	if g.TimeLeft > 0 {
		g.TimeLeft--
	}
	if g.TimeLeft == 0 {
		g.roundTimer.Cancel()
		g.emit(Event{Kind: EventTimeUp})
		g.killCharacter()
	}
}
