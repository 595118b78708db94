// Package leaderboard keeps the ranked per-mode high score tables and
// persists them as a single JSON blob in a key-value store.
package leaderboard

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"snake-arcade/game/types"

	"golang.org/x/exp/slices"
)

// StoreKey is the KV key holding the serialized tables
const StoreKey = "snake.leaderboard"

// MaxEntries is the number of scores kept per mode
const MaxEntries = 10

type Entry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

type Leaderboard struct {
	kv        KV
	now       func() time.Time
	boards    map[types.SpeedMode][]Entry
	listeners []func(mode types.SpeedMode)
}

func New(kv KV) *Leaderboard {
	lb := &Leaderboard{
		kv:  kv,
		now: time.Now,
	}
	lb.clear()
	return lb
}

// SetClock replaces the time source used to date new entries
func (lb *Leaderboard) SetClock(now func() time.Time) {
	lb.now = now
}

// OnChange registers fn to run after every change to a table
func (lb *Leaderboard) OnChange(fn func(mode types.SpeedMode)) {
	lb.listeners = append(lb.listeners, fn)
}

func (lb *Leaderboard) clear() {
	lb.boards = make(map[types.SpeedMode][]Entry, len(types.Modes))
	for _, m := range types.Modes {
		lb.boards[m] = make([]Entry, 0, MaxEntries)
	}
}

// Load reads the tables from the store. Missing or malformed data leaves
// every mode empty.
func (lb *Leaderboard) Load() {
	lb.clear()

	blob, err := lb.kv.Get(StoreKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[leaderboard] read failed, starting empty: %v", err)
		}
		return
	}

	stored := make(map[string][]Entry)
	if err := json.Unmarshal([]byte(blob), &stored); err != nil {
		log.Printf("[leaderboard] malformed data, starting empty: %v", err)
		return
	}

	for _, m := range types.Modes {
		entries := stored[m.String()]
		if entries == nil {
			continue
		}
		lb.boards[m] = rank(entries)
	}
}

// AddScore records score under name and returns the entry's rank, or -1 if
// it did not make the table
func (lb *Leaderboard) AddScore(mode types.SpeedMode, name string, score int) int {
	if !mode.Valid() {
		log.Printf("[leaderboard] ignoring score for unknown mode %d", mode)
		return -1
	}

	entry := Entry{
		Name:  CleanName(name),
		Score: score,
		Date:  lb.now(),
	}

	// Ties keep insertion order, so the new entry lands after every
	// existing entry scoring at least as much
	pos := 0
	for _, e := range lb.boards[mode] {
		if e.Score >= score {
			pos++
		}
	}
	lb.boards[mode] = rank(append(lb.boards[mode], entry))

	lb.save()
	lb.notify(mode)

	if pos >= MaxEntries {
		return -1
	}
	return pos
}

// Reset empties every table and persists the result
func (lb *Leaderboard) Reset() {
	lb.clear()
	lb.save()
	for _, m := range types.Modes {
		lb.notify(m)
	}
}

// Entries returns a copy of a mode's table, best first
func (lb *Leaderboard) Entries(mode types.SpeedMode) []Entry {
	return slices.Clone(lb.boards[mode])
}

// Best is the top score of a mode, zero when the table is empty
func (lb *Leaderboard) Best(mode types.SpeedMode) int {
	entries := lb.boards[mode]
	if len(entries) == 0 {
		return 0
	}
	return entries[0].Score
}

func (lb *Leaderboard) save() {
	stored := make(map[string][]Entry, len(types.Modes))
	for _, m := range types.Modes {
		stored[m.String()] = lb.boards[m]
	}

	data, err := json.Marshal(stored)
	if err != nil {
		log.Printf("[leaderboard] encode failed: %v", err)
		return
	}
	if err := lb.kv.Set(StoreKey, string(data)); err != nil {
		log.Printf("[leaderboard] write failed: %v", err)
	}
}

func (lb *Leaderboard) notify(mode types.SpeedMode) {
	for _, fn := range lb.listeners {
		fn(mode)
	}
}

// rank orders entries by descending score, keeping insertion order for
// ties, and truncates to MaxEntries
func rank(entries []Entry) []Entry {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Score - a.Score
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// CleanName trims name, substitutes the default label for a blank one and
// caps its length
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.DefaultName
	}
	if utf8.RuneCountInString(name) > types.MaxNameLen {
		name = strings.TrimSpace(string([]rune(name)[:types.MaxNameLen]))
	}
	return name
}
