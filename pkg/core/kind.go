package core

import (
	"fmt"
	"sort"
)

// Kind 可移动实体的变体标签：角色或某种敌人
type Kind int

const (
	KindCharacter Kind = iota
	KindBalloom
	KindOneal
	KindDoll
	KindMinvo
	KindKondoria
	KindOvapi
	KindPass
	KindPontan
)

// Insets 碰撞盒相对于 1×1 格子的内缩（格）
type Insets struct {
	Left, Right, Top, Bottom float64
}

// Traits 每种变体的固定常量
type Traits struct {
	Name     string
	Speed    float64 // 格/帧
	WallPass bool
	XP       int
	Box      Insets
}

// 敌人的碰撞盒略小于一格；角色的碰撞盒按精灵留白不对称
var (
	enemyBox     = Insets{Left: 0.05, Right: 0.05, Top: 0.05, Bottom: 0.05}
	characterBox = Insets{Left: 0.2, Right: 0.2, Top: 0.25, Bottom: 0.05}
)

var traitsTable = map[Kind]Traits{
	KindCharacter: {Name: "bomberman", Speed: CharacterSpeed, Box: characterBox},
	KindBalloom:   {Name: "balloom", Speed: 0.02, XP: 100, Box: enemyBox},
	KindOneal:     {Name: "oneal", Speed: 0.03, XP: 200, Box: enemyBox},
	KindDoll:      {Name: "doll", Speed: 0.03, XP: 400, Box: enemyBox},
	KindMinvo:     {Name: "minvo", Speed: 0.04, XP: 800, Box: enemyBox},
	KindKondoria:  {Name: "kondoria", Speed: 0.01, WallPass: true, XP: 1000, Box: enemyBox},
	KindOvapi:     {Name: "ovapi", Speed: 0.02, WallPass: true, XP: 2000, Box: enemyBox},
	KindPass:      {Name: "pass", Speed: 0.04, XP: 4000, Box: enemyBox},
	KindPontan:    {Name: "pontan", Speed: 0.04, WallPass: true, XP: 8000, Box: enemyBox},
}

// Traits 查表获取变体常量
func (k Kind) Traits() Traits {
	return traitsTable[k]
}

// IsEnemy 是否为敌人
func (k Kind) IsEnemy() bool {
	_, ok := traitsTable[k]
	return ok && k != KindCharacter
}

func (k Kind) String() string {
	if t, ok := traitsTable[k]; ok {
		return t.Name
	}
	return "unknown"
}

// ParseEnemyKind 按名称解析敌人类型
func ParseEnemyKind(name string) (Kind, error) {
	for k, t := range traitsTable {
		if k != KindCharacter && t.Name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("未知敌人类型: %q", name)
}

// EnemyKinds 全部敌人类型（按 Kind 排序）
func EnemyKinds() []Kind {
	kinds := make([]Kind, 0, len(traitsTable)-1)
	for k := range traitsTable {
		if k != KindCharacter {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
