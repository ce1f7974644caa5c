package core

import (
	"fmt"
	"sort"

	"bomberman/pkg/timer"
)

// TileKind 关卡地形
type TileKind int

const (
	TileEmpty TileKind = iota
	TileRock
	TileWall
)

// TileKey 格子的整数键：y*(columns+1)+x
type TileKey int32

// Wall 可破坏的墙
type Wall struct {
	Pos       GridPos
	Exploding bool // 已被火焰命中，等待移除
	removal   *timer.Timer
}

// ExitDoor 出口，藏在墙下
type ExitDoor struct {
	Pos GridPos
}

// BlockFlags isBlock 的通行标志
type BlockFlags struct {
	BombPass bool
	WallPass bool
	ForEnemy bool // 敌人不能进入出口格
}

// Stage 关卡网格模型
// 各映射只由其所属组件修改：炸弹归炸弹引擎，墙归爆炸引擎，敌人归碰撞结算。
type Stage struct {
	Index     int
	Columns   int
	Rows      int
	RoundTime int

	BombsAvailable int
	EnemyCount     int

	rocks      map[TileKey]struct{}
	walls      map[TileKey]*Wall
	bombs      map[TileKey]*Bomb
	powerUps   map[TileKey]*PowerUp
	explosions map[int]*Explosion
	blast      map[TileKey]int
	enemies    map[int]*Entity
	door       *ExitDoor

	timers *timer.Group
}

// NewStage 创建空关卡（仅边界，无任何实体）
func NewStage(index, columns, rows, roundTime int, timers *timer.Group) *Stage {
	return &Stage{
		Index:      index,
		Columns:    columns,
		Rows:       rows,
		RoundTime:  roundTime,
		rocks:      make(map[TileKey]struct{}),
		walls:      make(map[TileKey]*Wall),
		bombs:      make(map[TileKey]*Bomb),
		powerUps:   make(map[TileKey]*PowerUp),
		explosions: make(map[int]*Explosion),
		blast:      make(map[TileKey]int),
		enemies:    make(map[int]*Entity),
		timers:     timers,
	}
}

// Key 格子键
func (s *Stage) Key(p GridPos) TileKey {
	return TileKey(p.Y*(s.Columns+1) + p.X)
}

// InBounds 是否在 [1, columns] × [1, rows] 内
func (s *Stage) InBounds(x, y int) bool {
	return x >= 1 && x <= s.Columns && y >= 1 && y <= s.Rows
}

// IsRock 永久岩石；越界视为岩石
func (s *Stage) IsRock(x, y int) bool {
	if !s.InBounds(x, y) {
		return true
	}
	_, ok := s.rocks[s.Key(GridPos{x, y})]
	return ok
}

// IsWall 是否有墙（含正在爆炸的墙）
func (s *Stage) IsWall(x, y int) bool {
	if !s.InBounds(x, y) {
		return false
	}
	_, ok := s.walls[s.Key(GridPos{x, y})]
	return ok
}

// IsBomb 是否有炸弹
func (s *Stage) IsBomb(x, y int) bool {
	if !s.InBounds(x, y) {
		return false
	}
	_, ok := s.bombs[s.Key(GridPos{x, y})]
	return ok
}

// IsExitDoor 是否为出口格
func (s *Stage) IsExitDoor(x, y int) bool {
	return s.door != nil && s.door.Pos.X == x && s.door.Pos.Y == y
}

// IsPowerUp 是否有道具
func (s *Stage) IsPowerUp(x, y int) bool {
	if !s.InBounds(x, y) {
		return false
	}
	_, ok := s.powerUps[s.Key(GridPos{x, y})]
	return ok
}

// IsExplosion 是否有存活的火焰格；火焰免疫时总是 false
func (s *Stage) IsExplosion(x, y int, flamePass bool) bool {
	if flamePass || !s.InBounds(x, y) {
		return false
	}
	return s.blast[s.Key(GridPos{x, y})] > 0
}

// IsBlock 统一的不可通行判断
func (s *Stage) IsBlock(x, y int, f BlockFlags) bool {
	if !s.InBounds(x, y) || s.IsRock(x, y) {
		return true
	}
	if !f.WallPass && s.IsWall(x, y) {
		return true
	}
	if !f.BombPass && s.IsBomb(x, y) {
		return true
	}
	return f.ForEnemy && s.IsExitDoor(x, y)
}

// Wall 查询墙；调用前应先确认 IsWall
func (s *Stage) Wall(p GridPos) *Wall {
	return s.walls[s.Key(p)]
}

// Bomb 查询炸弹；调用前应先确认 IsBomb
func (s *Stage) Bomb(p GridPos) *Bomb {
	return s.bombs[s.Key(p)]
}

// PowerUp 查询道具；调用前应先确认 IsPowerUp
func (s *Stage) PowerUp(p GridPos) *PowerUp {
	return s.powerUps[s.Key(p)]
}

// Door 出口
func (s *Stage) Door() *ExitDoor {
	return s.door
}

// Enemy 按 id 查询敌人
func (s *Stage) Enemy(id int) *Entity {
	return s.enemies[id]
}

// Enemies 按 id 排序的敌人列表
func (s *Stage) Enemies() []*Entity {
	list := make([]*Entity, 0, len(s.enemies))
	for _, e := range s.enemies {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Bombs 按 id 排序的炸弹列表
func (s *Stage) Bombs() []*Bomb {
	list := make([]*Bomb, 0, len(s.bombs))
	for _, b := range s.bombs {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Explosions 按 id 排序的爆炸列表
func (s *Stage) Explosions() []*Explosion {
	list := make([]*Explosion, 0, len(s.explosions))
	for _, e := range s.explosions {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Tiles 静态地形（岩石与墙），按行优先排序
func (s *Stage) Tiles() []TileSprite {
	tiles := make([]TileSprite, 0, len(s.rocks)+len(s.walls))
	for y := 1; y <= s.Rows; y++ {
		for x := 1; x <= s.Columns; x++ {
			switch {
			case s.IsRock(x, y):
				tiles = append(tiles, TileSprite{Pos: GridPos{x, y}, Kind: TileRock})
			case s.IsWall(x, y):
				w := s.Wall(GridPos{x, y})
				tiles = append(tiles, TileSprite{Pos: w.Pos, Kind: TileWall, Exploding: w.Exploding})
			}
		}
	}
	return tiles
}

// PowerUps 按键排序的道具
func (s *Stage) PowerUps() []*PowerUp {
	list := make([]*PowerUp, 0, len(s.powerUps))
	for _, p := range s.powerUps {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return s.Key(list[i].Pos) < s.Key(list[j].Pos) })
	return list
}

// TileSprite 静态地形的快照
type TileSprite struct {
	Pos       GridPos
	Kind      TileKind
	Exploding bool
}

// ===== 变更操作 =====

func (s *Stage) addRock(p GridPos) {
	s.rocks[s.Key(p)] = struct{}{}
}

func (s *Stage) addWall(p GridPos) {
	key := s.Key(p)
	if _, ok := s.walls[key]; ok {
		panic(fmt.Sprintf("格子 %v 已有墙", p))
	}
	s.walls[key] = &Wall{Pos: p}
}

func (s *Stage) addPowerUp(p GridPos, t PowerUpType) {
	s.powerUps[s.Key(p)] = &PowerUp{Pos: p, Type: t}
}

func (s *Stage) addEnemy(e *Entity) {
	s.enemies[e.ID] = e
}

// AddBomb 放置炸弹并占用一个可用炸弹数
func (s *Stage) AddBomb(b *Bomb) {
	key := s.Key(b.Pos)
	if _, ok := s.bombs[key]; ok {
		panic(fmt.Sprintf("格子 %v 已有炸弹", b.Pos))
	}
	b.stage = s
	s.bombs[key] = b
	s.BombsAvailable--
}

// DeleteWall 移除墙并释放其定时器
func (s *Stage) DeleteWall(p GridPos) {
	key := s.Key(p)
	w, ok := s.walls[key]
	if !ok {
		panic(fmt.Sprintf("删除不存在的墙 %v", p))
	}
	w.removal.Cancel()
	delete(s.walls, key)
}

// DeleteBomb 移除炸弹、释放定时器并归还可用炸弹数
func (s *Stage) DeleteBomb(p GridPos) {
	key := s.Key(p)
	b, ok := s.bombs[key]
	if !ok {
		panic(fmt.Sprintf("删除不存在的炸弹 %v", p))
	}
	b.countdown.Cancel()
	b.chain.Cancel()
	delete(s.bombs, key)
	s.BombsAvailable++
}

// DeletePowerUp 移除道具
func (s *Stage) DeletePowerUp(p GridPos) {
	key := s.Key(p)
	if _, ok := s.powerUps[key]; !ok {
		panic(fmt.Sprintf("删除不存在的道具 %v", p))
	}
	delete(s.powerUps, key)
}

// DeleteExplosion 移除爆炸及其剩余火焰格
func (s *Stage) DeleteExplosion(id int) {
	e, ok := s.explosions[id]
	if !ok {
		panic(fmt.Sprintf("删除不存在的爆炸 %d", id))
	}
	for key, cell := range e.cells {
		cell.expiry.Cancel()
		s.releaseBlast(key)
	}
	delete(s.explosions, id)
}

// DeleteEnemy 移除敌人
func (s *Stage) DeleteEnemy(id int) {
	e, ok := s.enemies[id]
	if !ok {
		panic(fmt.Sprintf("删除不存在的敌人 %d", id))
	}
	e.Status = StatusDead
	delete(s.enemies, id)
}

func (s *Stage) occupyBlast(key TileKey) {
	s.blast[key]++
}

func (s *Stage) releaseBlast(key TileKey) {
	if s.blast[key] <= 1 {
		delete(s.blast, key)
		return
	}
	s.blast[key]--
}
