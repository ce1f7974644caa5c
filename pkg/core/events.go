package core

// EventKind 模拟产生的离散事件
type EventKind int

const (
	EventBombPlaced EventKind = iota
	EventExplosion
	EventPowerUp
	EventStep
	EventEnemyDied
	EventAllEnemiesDead
	EventCharacterDied
	EventStageCleared
	EventTimeUp
)

func (k EventKind) String() string {
	switch k {
	case EventBombPlaced:
		return "bomb-placed"
	case EventExplosion:
		return "explosion"
	case EventPowerUp:
		return "power-up"
	case EventStep:
		return "step"
	case EventEnemyDied:
		return "enemy-died"
	case EventAllEnemiesDead:
		return "all-enemies-dead"
	case EventCharacterDied:
		return "character-died"
	case EventStageCleared:
		return "stage-cleared"
	case EventTimeUp:
		return "time-up"
	}
	return "unknown"
}

// Event 一条事件；Value 随类型不同（道具类型、经验值等）
type Event struct {
	Kind  EventKind
	Pos   GridPos
	Value int
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// DrainEvents 取出并清空待处理事件
func (g *Game) DrainEvents() []Event {
	events := g.events
	g.events = nil
	return events
}
