package types

import (
	"errors"
	"fmt"
	"time"
)

// Point is a cell coordinate on the grid
type Point struct {
	X, Y int
}

// Add returns p moved by d
func (p Point) Add(d Direction) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Direction is a unit step on the grid
type Direction struct {
	X, Y int
}

var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	return Direction{X: -d.X, Y: -d.Y}
}

// IsOpposite reports whether d is the exact reverse of other
func (d Direction) IsOpposite(other Direction) bool {
	return d == other.Opposite()
}

// Valid reports whether d is one of the four unit directions
func (d Direction) Valid() bool {
	return d == Up || d == Down || d == Left || d == Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d,%d)", d.X, d.Y)
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the grid
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of cells on the grid
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// SpeedMode selects the base tick interval of a run
type SpeedMode int

const (
	ModeSlow SpeedMode = iota
	ModeNormal
	ModeFast
)

// Modes lists every speed mode in display order
var Modes = []SpeedMode{ModeSlow, ModeNormal, ModeFast}

var ErrUnknownMode = errors.New("unknown speed mode")

func (m SpeedMode) String() string {
	switch m {
	case ModeSlow:
		return "slow"
	case ModeNormal:
		return "normal"
	case ModeFast:
		return "fast"
	}
	return "unknown"
}

// Valid reports whether m is a known mode
func (m SpeedMode) Valid() bool {
	return m >= ModeSlow && m <= ModeFast
}

// ParseMode maps a mode name to its SpeedMode
func ParseMode(s string) (SpeedMode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeNormal, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Game constants
const (
	MinSnakeLength = 3
	ShrinkSegments = 4

	GoldenAppleTTL = 6 * time.Second
	BonusItemTTL   = 5 * time.Second

	TurboDuration       = 5 * time.Second
	DoubleScoreDuration = 10 * time.Second
	TurboFactor         = 0.6
	MinTickInterval     = 30 * time.Millisecond

	JackpotPoints    = 5
	GoldenAppleYield = 5 // normal apples spawned when a golden one is eaten

	DefaultName = "Anonymous"
	MaxNameLen  = 16
)
