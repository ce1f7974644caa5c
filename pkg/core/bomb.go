package core

import (
	"time"

	"bomberman/pkg/timer"
)

// Bomb 炸弹
// 状态：armed（倒计时中）→ detonating；或被火焰波及标记 Instant，
// 在下一帧改为短暂的连锁延迟后引爆。
type Bomb struct {
	ID      int
	Pos     GridPos
	Size    int  // 爆炸半径（格）
	Instant bool // 被其他爆炸波及，需要提前引爆

	stage     *Stage
	countdown *timer.Timer
	chain     *timer.Timer
}

// NewBomb 创建炸弹
func NewBomb(id int, pos GridPos, size int) *Bomb {
	return &Bomb{
		ID:   id,
		Pos:  pos,
		Size: size,
	}
}

// Armed 是否仍在倒计时（遥控炸弹没有倒计时）
func (b *Bomb) Armed() bool {
	return b.countdown.Active()
}

// Chained 是否已进入连锁延迟
func (b *Bomb) Chained() bool {
	return b.chain != nil
}

// Remaining 距离引爆的剩余时间；遥控炸弹为 0
func (b *Bomb) Remaining() time.Duration {
	if b.chain.Active() {
		return b.chain.Remaining()
	}
	return b.countdown.Remaining()
}

// PlaceBomb 在角色所在格放置炸弹
// 该格已有炸弹、墙或岩石，或可用炸弹数为 0 时放置失败。
func (g *Game) PlaceBomb() bool {
	c := g.Character
	st := g.Stage
	if st == nil || !c.Alive() || st.BombsAvailable <= 0 {
		return false
	}
	pos := c.Tile()
	if st.IsBomb(pos.X, pos.Y) || st.IsWall(pos.X, pos.Y) || st.IsRock(pos.X, pos.Y) {
		return false
	}

	g.armBomb(pos, c.ExplosionSize, !c.Detonator)
	c.ignoreBomb(pos)
	g.emit(Event{Kind: EventBombPlaced, Pos: pos})
	return true
}

// armBomb 放置炸弹；timed 为 false 时没有倒计时，只能遥控或连锁引爆
func (g *Game) armBomb(pos GridPos, size int, timed bool) *Bomb {
	g.nextBombID++
	b := NewBomb(g.nextBombID, pos, size)
	g.Stage.AddBomb(b)
	if timed {
		b.countdown = g.timers.Schedule(func() { g.detonate(b) }, BombCountdown)
	}
	return b
}

// Detonate 遥控引爆最早放置的炸弹
func (g *Game) Detonate() bool {
	if g.Stage == nil || !g.Character.Detonator {
		return false
	}
	bombs := g.Stage.Bombs()
	for _, b := range bombs {
		if !b.Chained() {
			g.detonate(b)
			return true
		}
	}
	return false
}

// processChains 处理被标记为 Instant 的炸弹：取消原倒计时，改为连锁延迟
func (g *Game) processChains() {
	if g.Stage == nil {
		return
	}
	for _, b := range g.Stage.Bombs() {
		if !b.Instant || b.Chained() {
			continue
		}
		b.countdown.Cancel()
		bomb := b
		b.chain = g.timers.Schedule(func() { g.detonate(bomb) }, ChainDelay)
	}
}

// detonate 引爆：从网格移除炸弹、归还炸弹数并生成爆炸
func (g *Game) detonate(b *Bomb) {
	st := b.stage
	if st == nil || st != g.Stage || st.Bomb(b.Pos) != b {
		return
	}
	st.DeleteBomb(b.Pos)
	g.explode(b)
}
