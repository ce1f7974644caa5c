package core

import (
	"sort"

	"bomberman/pkg/timer"
)

// StageSpec 一个关卡的定义
// Map 为空时随机生成墙；否则按字面地图（仅内部区域，(rows-2)×(columns-2)）铺设。
type StageSpec struct {
	Rows      int
	Columns   int
	RoundTime int
	Enemies   map[Kind]int
	PowerUps  map[PowerUpType]int
	Map       [][]TileKind
}

// EnemyTotal 敌人总数
func (s StageSpec) EnemyTotal() int {
	n := 0
	for _, c := range s.Enemies {
		n += c
	}
	return n
}

// PowerUpTotal 道具总数
func (s StageSpec) PowerUpTotal() int {
	n := 0
	for _, c := range s.PowerUps {
		n += c
	}
	return n
}

// safeZone 出生点附近不生成墙和敌人，保证开局可以放弹躲避
func safeZone(p GridPos) bool {
	return p == SpawnPos || p == SpawnPos.Step(DirRight, 1) || p == SpawnPos.Step(DirDown, 1)
}

// GeneratedCapacity 随机生成的关卡里可放墙或敌人的格数：内部区域减去柱子和出生安全区
func GeneratedCapacity(rows, columns int) int {
	interior := (rows - 2) * (columns - 2)
	pillars := ((rows - 2) / 2) * ((columns - 2) / 2)
	return interior - pillars - 3
}

// BuildStage 按定义生成关卡
func BuildStage(index int, spec StageSpec, sess *Session, timers *timer.Group) *Stage {
	st := NewStage(index, spec.Columns, spec.Rows, spec.RoundTime, timers)
	rng := sess.Rand

	for y := 1; y <= st.Rows; y++ {
		for x := 1; x <= st.Columns; x++ {
			if x == 1 || y == 1 || x == st.Columns || y == st.Rows {
				st.addRock(GridPos{x, y})
			}
		}
	}

	if spec.Map != nil {
		layLiteral(st, spec.Map)
	} else {
		for y := 3; y < st.Rows; y += 2 {
			for x := 3; x < st.Columns; x += 2 {
				st.addRock(GridPos{x, y})
			}
		}
		free := st.freeTiles()
		for _, p := range free {
			if !safeZone(p) && rng.Float64() < WallDensity {
				st.addWall(p)
			}
		}
		// 墙数必须足够容纳出口和全部道具
		need := spec.PowerUpTotal() + 1
		if len(st.walls) < need {
			rest := st.freeTiles()
			rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
			for _, p := range rest {
				if len(st.walls) >= need {
					break
				}
				if !safeZone(p) {
					st.addWall(p)
				}
			}
		}
	}

	hideUnderWalls(st, spec, rng.Shuffle)
	spawnEnemies(st, spec, sess)
	return st
}

// layLiteral 铺设字面地图，左上角内部格强制为空
func layLiteral(st *Stage, rows [][]TileKind) {
	for j, row := range rows {
		for i, kind := range row {
			p := GridPos{X: i + 2, Y: j + 2}
			if p == SpawnPos || !st.InBounds(p.X, p.Y) {
				continue
			}
			switch kind {
			case TileRock:
				st.addRock(p)
			case TileWall:
				st.addWall(p)
			}
		}
	}
}

// hideUnderWalls 出口和道具放在互不相同的随机墙下
func hideUnderWalls(st *Stage, spec StageSpec, shuffle func(int, func(int, int))) {
	walls := make([]GridPos, 0, len(st.walls))
	for _, w := range st.walls {
		walls = append(walls, w.Pos)
	}
	sortPositions(walls)
	shuffle(len(walls), func(i, j int) { walls[i], walls[j] = walls[j], walls[i] })
	if len(walls) == 0 {
		return
	}
	st.door = &ExitDoor{Pos: walls[0]}
	next := 1
	for _, t := range PowerUpTypes() {
		for n := 0; n < spec.PowerUps[t] && next < len(walls); n++ {
			st.addPowerUp(walls[next], t)
			next++
		}
	}
}

// spawnEnemies 敌人生成在远离出生点的空地上；空地不足时放宽距离限制
func spawnEnemies(st *Stage, spec StageSpec, sess *Session) {
	far := make([]GridPos, 0)
	near := make([]GridPos, 0)
	for _, p := range st.freeTiles() {
		switch {
		case p.Distance(SpawnPos) >= EnemySpawnDistance:
			far = append(far, p)
		case !safeZone(p):
			near = append(near, p)
		}
	}
	sess.Rand.Shuffle(len(far), func(i, j int) { far[i], far[j] = far[j], far[i] })
	sess.Rand.Shuffle(len(near), func(i, j int) { near[i], near[j] = near[j], near[i] })
	spots := append(far, near...)
	if len(spots) == 0 {
		return
	}

	n := 0
	for _, kind := range EnemyKinds() {
		for c := 0; c < spec.Enemies[kind]; c++ {
			e := NewEntity(sess.NextEnemyID(), kind, spots[n%len(spots)])
			st.addEnemy(&e)
			st.EnemyCount++
			n++
		}
	}
}

// freeTiles 既无岩石也无墙的格子，行优先
func (s *Stage) freeTiles() []GridPos {
	tiles := make([]GridPos, 0)
	for y := 2; y < s.Rows; y++ {
		for x := 2; x < s.Columns; x++ {
			if !s.IsRock(x, y) && !s.IsWall(x, y) {
				tiles = append(tiles, GridPos{x, y})
			}
		}
	}
	return tiles
}

func sortPositions(ps []GridPos) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}
