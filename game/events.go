package game

import (
	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

type EventKind int

const (
	EventRunStarted EventKind = iota
	EventAppleEaten
	EventRareSpawn
	EventBonusTaken
	EventEffectExpired
	EventGameOver
	EventModeChanged
	EventScoresReset
)

func (k EventKind) String() string {
	switch k {
	case EventRunStarted:
		return "run-started"
	case EventAppleEaten:
		return "apple-eaten"
	case EventRareSpawn:
		return "rare-spawn"
	case EventBonusTaken:
		return "bonus-taken"
	case EventEffectExpired:
		return "effect-expired"
	case EventGameOver:
		return "game-over"
	case EventModeChanged:
		return "mode-changed"
	case EventScoresReset:
		return "scores-reset"
	}
	return "unknown"
}

// Event is emitted to subscribers as the game progresses. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind   EventKind
	RunID  string
	Mode   types.SpeedMode
	Score  int
	Gain   int
	Apple  entity.AppleKind
	Bonus  entity.BonusKind
	Spawn  manager.RareSpawn
	Reason manager.CollisionType
}

type Listener func(Event)
