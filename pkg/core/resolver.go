package core

import "math/rand"

// Steerer 敌人的移动策略
type Steerer interface {
	Steer(e *Entity, blocked Blocker, rng *rand.Rand)
}

// XPMarker 敌人死亡处漂浮的经验值
type XPMarker struct {
	ID  int
	Pos GridPos
	XP  int
}

// updateCharacter 角色每帧的碰撞结算与移动
// 顺序：敌人碰撞 → 火焰 → 出口 → 道具 → 移动。
func (g *Game) updateCharacter(in Input) {
	c := g.Character
	st := g.Stage
	if !c.Alive() || g.cleared {
		return
	}

	box := c.Borders(true, false)
	if !c.Invincible {
		for _, e := range st.Enemies() {
			if e.Alive() && e.Borders(true, false).Overlaps(box) {
				g.killCharacter()
				return
			}
		}
	}

	corners := c.Borders(true, true).Corners()
	if !c.Invincible {
		for _, p := range corners {
			if st.IsExplosion(p.X, p.Y, c.FlamePass) {
				g.killCharacter()
				return
			}
		}
	}

	if st.EnemyCount == 0 {
		for _, p := range corners {
			if st.IsExitDoor(p.X, p.Y) && !st.IsWall(p.X, p.Y) {
				g.cleared = true
				g.roundTimer.Cancel()
				g.emit(Event{Kind: EventStageCleared, Pos: p})
				return
			}
		}
	}

	for _, p := range corners {
		if st.IsPowerUp(p.X, p.Y) && !st.IsWall(p.X, p.Y) {
			t := st.PowerUp(p).Type
			st.DeletePowerUp(p)
			g.applyPowerUp(t)
			g.emit(Event{Kind: EventPowerUp, Pos: p, Value: int(t)})
		}
	}

	g.moveCharacter(in)
}

// moveCharacter 先垂直后水平；同时按住相反方向时该轴不移动
func (g *Game) moveCharacter(in Input) {
	c := g.Character
	blocked := c.blocker(g.Stage)
	c.releaseGuard()

	moved := false
	switch {
	case in.Up && !in.Down:
		moved = c.walk(DirUp, blocked) || moved
	case in.Down && !in.Up:
		moved = c.walk(DirDown, blocked) || moved
	}
	switch {
	case in.Left && !in.Right:
		moved = c.walk(DirLeft, blocked) || moved
	case in.Right && !in.Left:
		moved = c.walk(DirRight, blocked) || moved
	}
	c.Moving = moved
	c.releaseGuard()

	if moved {
		g.stepFrames++
		if g.stepFrames%stepSoundFrames == 0 {
			g.emit(Event{Kind: EventStep, Pos: c.Tile()})
		}
	} else {
		g.stepFrames = 0
	}
}

// killCharacter 角色死亡，扣除一条命
func (g *Game) killCharacter() {
	c := g.Character
	if !c.Alive() {
		return
	}
	c.Status = StatusDying
	c.Moving = false
	c.Lives--
	g.roundTimer.Cancel()
	g.emit(Event{Kind: EventCharacterDied, Pos: c.Tile(), Value: c.Lives})
}

// updateEnemies 敌人碰到火焰即死亡，否则交给移动策略
func (g *Game) updateEnemies() {
	st := g.Stage
	for _, e := range st.Enemies() {
		if !e.Alive() {
			continue
		}
		if g.inBlast(e) {
			g.killEnemy(e)
			continue
		}
		if g.steerer != nil {
			g.steerer.Steer(e, g.enemyBlocker(e), g.Session.Rand)
		}
	}
}

func (g *Game) inBlast(e *Entity) bool {
	for _, p := range e.Borders(true, true).Corners() {
		if g.Stage.IsExplosion(p.X, p.Y, false) {
			return true
		}
	}
	return false
}

// enemyBlocker 敌人受炸弹阻挡，且不能进入出口格
func (g *Game) enemyBlocker(e *Entity) Blocker {
	st := g.Stage
	flags := BlockFlags{WallPass: e.Kind.Traits().WallPass, ForEnemy: true}
	return func(x, y int) bool {
		return st.IsBlock(x, y, flags)
	}
}

// killEnemy 敌人进入死亡状态：计分、生成经验值标记，1 秒后移除
func (g *Game) killEnemy(e *Entity) {
	st := g.Stage
	e.Status = StatusDying
	e.Moving = false
	xp := e.Kind.Traits().XP
	g.Session.AddScore(xp)
	g.addMarker(e.Tile(), xp)

	st.EnemyCount--
	g.emit(Event{Kind: EventEnemyDied, Pos: e.Tile(), Value: xp})
	if st.EnemyCount == 0 {
		g.emit(Event{Kind: EventAllEnemiesDead})
	}

	id := e.ID
	g.timers.Schedule(func() {
		if st.Enemy(id) != nil {
			st.DeleteEnemy(id)
		}
	}, EnemyDyingDuration)
}

func (g *Game) addMarker(p GridPos, xp int) {
	g.nextMarkerID++
	m := &XPMarker{ID: g.nextMarkerID, Pos: p, XP: xp}
	g.markers[m.ID] = m
	g.timers.Schedule(func() { delete(g.markers, m.ID) }, XPMarkerDuration)
}
