package game

import (
	"time"

	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

type State int

const (
	Idle State = iota
	Running
	GameOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "game-over"
	}
	return "unknown"
}

// Snapshot is a read-only copy of everything the renderer needs
type Snapshot struct {
	RunID     string
	State     State
	Mode      types.SpeedMode
	Grid      types.Grid
	Snake     []types.Point
	Direction types.Direction
	Apples    []entity.Apple
	Bonus     *entity.BonusItem
	Score     int
	Best      int

	Turbo       bool
	DoubleScore bool
	TurboLeft   time.Duration
	DoubleLeft  time.Duration

	Run      manager.RunStats
	Interval time.Duration
	Now      time.Time
}
