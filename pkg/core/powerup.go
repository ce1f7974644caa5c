package core

import (
	"fmt"

	"bomberman/pkg/timer"
)

// PowerUpType 道具类型
type PowerUpType int

const (
	PowerUpBombs PowerUpType = iota
	PowerUpFlames
	PowerUpSpeed
	PowerUpWallPass
	PowerUpBombPass
	PowerUpFlamePass
	PowerUpDetonator
	PowerUpMystery
)

var powerUpNames = [...]string{
	PowerUpBombs:     "bombs",
	PowerUpFlames:    "flames",
	PowerUpSpeed:     "speed",
	PowerUpWallPass:  "wall-pass",
	PowerUpBombPass:  "bomb-pass",
	PowerUpFlamePass: "flame-pass",
	PowerUpDetonator: "detonator",
	PowerUpMystery:   "mystery",
}

func (t PowerUpType) String() string {
	if t < 0 || int(t) >= len(powerUpNames) {
		return "unknown"
	}
	return powerUpNames[t]
}

// ParsePowerUpType 按名称解析道具类型
func ParsePowerUpType(name string) (PowerUpType, error) {
	for i, n := range powerUpNames {
		if n == name {
			return PowerUpType(i), nil
		}
	}
	return 0, fmt.Errorf("未知道具类型: %q", name)
}

// PowerUpTypes 全部道具类型
func PowerUpTypes() []PowerUpType {
	types := make([]PowerUpType, len(powerUpNames))
	for i := range powerUpNames {
		types[i] = PowerUpType(i)
	}
	return types
}

// PowerUp 藏在墙下的道具
type PowerUp struct {
	Pos  GridPos
	Type PowerUpType
}

// consumption 一次已生效的拾取，记录撤销所需的旧值
type consumption struct {
	typ  PowerUpType
	prev bool
}

// applyPowerUp 使道具生效并记入本关的消耗集合
func (g *Game) applyPowerUp(t PowerUpType) {
	c := g.Character
	rec := consumption{typ: t}
	switch t {
	case PowerUpBombs:
		c.MaxBombs++
		g.Stage.BombsAvailable++
	case PowerUpFlames:
		c.ExplosionSize++
	case PowerUpSpeed:
		c.Speed = snap(c.Speed + SpeedIncrement)
	case PowerUpWallPass:
		rec.prev, c.WallPass = c.WallPass, true
	case PowerUpBombPass:
		rec.prev, c.BombPass = c.BombPass, true
	case PowerUpFlamePass:
		rec.prev, c.FlamePass = c.FlamePass, true
	case PowerUpDetonator:
		rec.prev, c.Detonator = c.Detonator, true
	case PowerUpMystery:
		rec.prev = c.Invincible
		g.startInvincibility(g.timers)
	}
	c.consumed = append(c.consumed, rec)
}

// undoPowerUps 按拾取的逆序撤销本关的全部道具效果
func (c *Character) undoPowerUps() {
	for i := len(c.consumed) - 1; i >= 0; i-- {
		rec := c.consumed[i]
		switch rec.typ {
		case PowerUpBombs:
			c.MaxBombs--
		case PowerUpFlames:
			c.ExplosionSize--
		case PowerUpSpeed:
			c.Speed = snap(c.Speed - SpeedIncrement)
		case PowerUpWallPass:
			c.WallPass = rec.prev
		case PowerUpBombPass:
			c.BombPass = rec.prev
		case PowerUpFlamePass:
			c.FlamePass = rec.prev
		case PowerUpDetonator:
			c.Detonator = rec.prev
		case PowerUpMystery:
			c.invincibility.Cancel()
			c.invincibility = nil
			c.Invincible = rec.prev
		}
	}
	c.consumed = c.consumed[:0]
}

// commitPowerUps 过关后效果保留，清空消耗集合
func (c *Character) commitPowerUps() {
	c.consumed = c.consumed[:0]
}

// startInvincibility 开启无敌；重复触发时重置计时而不是叠加
func (g *Game) startInvincibility(timers *timer.Group) {
	c := g.Character
	c.invincibility.Cancel()
	c.Invincible = true
	c.invincibility = timers.Schedule(func() {
		c.Invincible = false
		c.invincibility = nil
	}, InvincibleDuration)
}
