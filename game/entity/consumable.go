package entity

import (
	"time"

	"snake-arcade/game/types"
)

type AppleKind int

const (
	AppleNormal AppleKind = iota
	AppleGolden
)

func (k AppleKind) String() string {
	if k == AppleGolden {
		return "golden"
	}
	return "normal"
}

// Apple is food on the grid. Only golden apples expire; a zero ExpiresAt
// means the apple stays until eaten.
type Apple struct {
	Pos       types.Point
	Kind      AppleKind
	ExpiresAt time.Time
}

// Expired reports whether the apple's expiry is strictly before now
func (a Apple) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && a.ExpiresAt.Before(now)
}

type BonusKind int

const (
	BonusTurbo BonusKind = iota
	BonusDoubleScore
	BonusJackpot
	BonusShrink
)

func (k BonusKind) String() string {
	switch k {
	case BonusTurbo:
		return "turbo"
	case BonusDoubleScore:
		return "double-score"
	case BonusJackpot:
		return "jackpot"
	case BonusShrink:
		return "shrink"
	}
	return "unknown"
}

// BonusItem is a power-up that despawns at ExpiresAt if not picked up
type BonusItem struct {
	Pos       types.Point
	Kind      BonusKind
	ExpiresAt time.Time
}

func (b BonusItem) Expired(now time.Time) bool {
	return b.ExpiresAt.Before(now)
}
