package manager

import (
	"time"

	"snake-arcade/game/entity"
	"snake-arcade/game/types"

	"golang.org/x/exp/rand"
)

// RareSpawn is the outcome of one rare-spawn roll
type RareSpawn int

const (
	RareNone RareSpawn = iota
	RareGolden
	RareTurbo
	RareDoubleScore
	RareJackpot
	RareShrink
)

// Cumulative thresholds out of 100, checked against a single draw
const (
	goldenBand  = 1.0
	turboBand   = 3.0
	doubleBand  = 6.0
	jackpotBand = 10.0
	shrinkBand  = 15.0
)

func (r RareSpawn) String() string {
	switch r {
	case RareGolden:
		return "golden"
	case RareTurbo:
		return "turbo"
	case RareDoubleScore:
		return "double-score"
	case RareJackpot:
		return "jackpot"
	case RareShrink:
		return "shrink"
	}
	return "none"
}

// SpawnManager owns the consumables on the grid and decides where and
// when new ones appear
type SpawnManager struct {
	grid   types.Grid
	rng    *rand.Rand
	roll   func() float64
	apples []entity.Apple
	bonus  *entity.BonusItem
}

func NewSpawnManager(grid types.Grid, rng *rand.Rand) *SpawnManager {
	sm := &SpawnManager{
		grid:   grid,
		rng:    rng,
		apples: make([]entity.Apple, 0),
	}
	sm.roll = func() float64 { return sm.rng.Float64() * 100 }
	return sm
}

// SetRollSource replaces the uniform [0,100) draw used by RollRare
func (sm *SpawnManager) SetRollSource(fn func() float64) {
	sm.roll = fn
}

// Reset clears the board and places the opening apple
func (sm *SpawnManager) Reset(snake *entity.Snake, now time.Time) {
	sm.apples = sm.apples[:0]
	sm.bonus = nil
	sm.SpawnApple(snake, entity.AppleNormal, now)
}

func (sm *SpawnManager) isFree(p types.Point, snake *entity.Snake) bool {
	if snake != nil && snake.Occupies(p) {
		return false
	}
	for _, a := range sm.apples {
		if a.Pos == p {
			return false
		}
	}
	return sm.bonus == nil || sm.bonus.Pos != p
}

// RandomFreeCell samples cells uniformly until one is not covered by the
// snake, an apple or the bonus item. The false return only happens on a
// saturated board.
func (sm *SpawnManager) RandomFreeCell(snake *entity.Snake) (types.Point, bool) {
	attempts := sm.grid.Cells() * 4
	for i := 0; i < attempts; i++ {
		p := types.Point{
			X: sm.rng.Intn(sm.grid.Width),
			Y: sm.rng.Intn(sm.grid.Height),
		}
		if sm.isFree(p, snake) {
			return p, true
		}
	}

	// Nearly full board, fall back to a scan
	for y := 0; y < sm.grid.Height; y++ {
		for x := 0; x < sm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if sm.isFree(p, snake) {
				return p, true
			}
		}
	}
	return types.Point{}, false
}

// SpawnApple places an apple of the given kind on a free cell
func (sm *SpawnManager) SpawnApple(snake *entity.Snake, kind entity.AppleKind, now time.Time) bool {
	pos, ok := sm.RandomFreeCell(snake)
	if !ok {
		return false
	}
	apple := entity.Apple{Pos: pos, Kind: kind}
	if kind == entity.AppleGolden {
		apple.ExpiresAt = now.Add(types.GoldenAppleTTL)
	}
	sm.apples = append(sm.apples, apple)
	return true
}

// SpawnBonus places a bonus item if none is on the board
func (sm *SpawnManager) SpawnBonus(snake *entity.Snake, kind entity.BonusKind, now time.Time) bool {
	if sm.bonus != nil {
		return false
	}
	pos, ok := sm.RandomFreeCell(snake)
	if !ok {
		return false
	}
	sm.bonus = &entity.BonusItem{
		Pos:       pos,
		Kind:      kind,
		ExpiresAt: now.Add(types.BonusItemTTL),
	}
	return true
}

// RemoveApple takes the apple at index i off the board
func (sm *SpawnManager) RemoveApple(i int) entity.Apple {
	a := sm.apples[i]
	sm.apples = append(sm.apples[:i], sm.apples[i+1:]...)
	return a
}

// TakeBonus removes and returns the bonus item
func (sm *SpawnManager) TakeBonus() (entity.BonusItem, bool) {
	if sm.bonus == nil {
		return entity.BonusItem{}, false
	}
	b := *sm.bonus
	sm.bonus = nil
	return b, true
}

// Resupply refills the board after eaten was consumed: a golden apple
// yields five normal apples, a normal apple exactly one
func (sm *SpawnManager) Resupply(snake *entity.Snake, eaten entity.Apple, now time.Time) int {
	n := 1
	if eaten.Kind == entity.AppleGolden {
		n = types.GoldenAppleYield
	}
	spawned := 0
	for i := 0; i < n; i++ {
		if sm.SpawnApple(snake, entity.AppleNormal, now) {
			spawned++
		}
	}
	return spawned
}

// RollRare draws once and applies the rare-spawn table
func (sm *SpawnManager) RollRare(snake *entity.Snake, now time.Time) RareSpawn {
	return sm.ApplyRoll(sm.roll(), snake, now)
}

// ApplyRoll resolves draw (in [0,100)) against the cumulative bands. The
// first band containing draw decides; a band whose slot is taken spawns
// nothing.
func (sm *SpawnManager) ApplyRoll(draw float64, snake *entity.Snake, now time.Time) RareSpawn {
	// Golden band, only while no golden apple is out
	if draw < goldenBand {
		if sm.HasGolden() {
			return RareNone
		}
		if sm.SpawnApple(snake, entity.AppleGolden, now) {
			return RareGolden
		}
		return RareNone
	}
	// One bonus at a time, and nothing past the last band
	if sm.bonus != nil || draw >= shrinkBand {
		return RareNone
	}

	// Pick the bonus band the draw falls in
	var kind entity.BonusKind
	var result RareSpawn
	switch {
	case draw < turboBand:
		kind, result = entity.BonusTurbo, RareTurbo
	case draw < doubleBand:
		kind, result = entity.BonusDoubleScore, RareDoubleScore
	case draw < jackpotBand:
		kind, result = entity.BonusJackpot, RareJackpot
	default:
		kind, result = entity.BonusShrink, RareShrink
	}
	// No free cell left
	if !sm.SpawnBonus(snake, kind, now) {
		return RareNone
	}
	return result
}

// PurgeExpired silently drops consumables whose expiry is before now
func (sm *SpawnManager) PurgeExpired(now time.Time) (apples int, bonus bool) {
	kept := sm.apples[:0]
	for _, a := range sm.apples {
		if a.Expired(now) {
			apples++
			continue
		}
		kept = append(kept, a)
	}
	sm.apples = kept

	if sm.bonus != nil && sm.bonus.Expired(now) {
		sm.bonus = nil
		bonus = true
	}
	return apples, bonus
}

func (sm *SpawnManager) HasGolden() bool {
	for _, a := range sm.apples {
		if a.Kind == entity.AppleGolden {
			return true
		}
	}
	return false
}

// Apples returns a copy of the apples on the board
func (sm *SpawnManager) Apples() []entity.Apple {
	out := make([]entity.Apple, len(sm.apples))
	copy(out, sm.apples)
	return out
}

// Bonus returns a copy of the bonus item, if any
func (sm *SpawnManager) Bonus() *entity.BonusItem {
	if sm.bonus == nil {
		return nil
	}
	b := *sm.bonus
	return &b
}

// AddApple puts an apple on the board as-is
func (sm *SpawnManager) AddApple(a entity.Apple) {
	sm.apples = append(sm.apples, a)
}

// PlaceBonus puts b on the board, replacing any current bonus
func (sm *SpawnManager) PlaceBonus(b entity.BonusItem) {
	sm.bonus = &b
}

// Clear removes every consumable
func (sm *SpawnManager) Clear() {
	sm.apples = sm.apples[:0]
	sm.bonus = nil
}
