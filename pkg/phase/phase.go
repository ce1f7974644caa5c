package phase

// Phase 游戏所处阶段
type Phase int

const (
	PhaseIncorrectConfig Phase = iota
	PhaseMainMenu
	PhaseInitialize
	PhaseStageStart
	PhaseRunning
	PhasePaused
	PhaseDying
	PhaseStageClear
	PhaseGameScore
	PhaseEnding
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIncorrectConfig:
		return "incorrect-config"
	case PhaseMainMenu:
		return "main-menu"
	case PhaseInitialize:
		return "initialize"
	case PhaseStageStart:
		return "stage-start"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseDying:
		return "dying"
	case PhaseStageClear:
		return "stage-clear"
	case PhaseGameScore:
		return "game-score"
	case PhaseEnding:
		return "ending"
	case PhaseGameOver:
		return "game-over"
	}
	return "unknown"
}

// Event 触发阶段切换的事件
type Event int

const (
	EventConfigError Event = iota
	EventStart
	EventInitialized
	EventStageReady
	EventPause
	EventResume
	EventRestart
	EventQuit
	EventCharacterDied
	EventStageCleared
	EventRespawn
	EventOutOfLives
	EventNextStage
	EventStagesExhausted
	EventWon
	EventLost
	EventConfirm
)

func (e Event) String() string {
	switch e {
	case EventConfigError:
		return "config-error"
	case EventStart:
		return "start"
	case EventInitialized:
		return "initialized"
	case EventStageReady:
		return "stage-ready"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventRestart:
		return "restart"
	case EventQuit:
		return "quit"
	case EventCharacterDied:
		return "character-died"
	case EventStageCleared:
		return "stage-cleared"
	case EventRespawn:
		return "respawn"
	case EventOutOfLives:
		return "out-of-lives"
	case EventNextStage:
		return "next-stage"
	case EventStagesExhausted:
		return "stages-exhausted"
	case EventWon:
		return "won"
	case EventLost:
		return "lost"
	case EventConfirm:
		return "confirm"
	}
	return "unknown"
}

type edge struct {
	from Phase
	on   Event
}

// transitions 完整的阶段切换表，表中没有的组合一律忽略
var transitions = map[edge]Phase{
	{PhaseMainMenu, EventConfigError}:       PhaseIncorrectConfig,
	{PhaseMainMenu, EventStart}:             PhaseInitialize,
	{PhaseInitialize, EventInitialized}:     PhaseStageStart,
	{PhaseStageStart, EventStageReady}:      PhaseRunning,
	{PhaseRunning, EventPause}:              PhasePaused,
	{PhaseRunning, EventCharacterDied}:      PhaseDying,
	{PhaseRunning, EventStageCleared}:       PhaseStageClear,
	{PhasePaused, EventResume}:              PhaseRunning,
	{PhasePaused, EventRestart}:             PhaseInitialize,
	{PhasePaused, EventQuit}:                PhaseMainMenu,
	{PhaseDying, EventRespawn}:              PhaseStageStart,
	{PhaseDying, EventOutOfLives}:           PhaseGameScore,
	{PhaseStageClear, EventNextStage}:       PhaseStageStart,
	{PhaseStageClear, EventStagesExhausted}: PhaseGameScore,
	{PhaseGameScore, EventWon}:              PhaseEnding,
	{PhaseGameScore, EventLost}:             PhaseGameOver,
	{PhaseEnding, EventConfirm}:             PhaseMainMenu,
	{PhaseGameOver, EventConfirm}:           PhaseMainMenu,
}

// Next 查表得到下一阶段
func Next(from Phase, on Event) (Phase, bool) {
	to, ok := transitions[edge{from, on}]
	return to, ok
}
