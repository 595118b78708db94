package manager

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

const maxScoreHistory = 50

// RunStats describes one run, from reset to game over
type RunStats struct {
	RunID        string    `json:"runId"`
	Mode         string    `json:"mode"`
	Score        int       `json:"score"`
	ApplesEaten  int       `json:"applesEaten"`
	GoldenEaten  int       `json:"goldenEaten"`
	BonusesTaken int       `json:"bonusesTaken"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
}

// Duration is how long the run lasted, zero while it is still going
func (r RunStats) Duration() time.Duration {
	if r.EndTime.IsZero() || r.EndTime.Before(r.StartTime) {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

type GameStats struct {
	GamesPlayed  int            `json:"gamesPlayed"`
	HighScores   map[string]int `json:"highScores"`
	ScoreHistory []int          `json:"scoreHistory"`
	LastRun      *RunStats      `json:"lastRun,omitempty"`
}

// StatsManager tracks the current run and the lifetime totals. An empty
// path keeps everything in memory.
type StatsManager struct {
	path  string
	stats GameStats
	run   RunStats
}

func NewStatsManager(path string) *StatsManager {
	sm := &StatsManager{
		path: path,
		stats: GameStats{
			HighScores:   make(map[string]int),
			ScoreHistory: make([]int, 0),
		},
	}
	if path == "" {
		return sm
	}

	if err := sm.LoadStats(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[stats] could not load %s: %v", path, err)
	}
	return sm
}

func (sm *StatsManager) SaveStats() error {
	if sm.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(sm.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sm.stats, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(sm.path, data, 0644)
}

func (sm *StatsManager) LoadStats() error {
	data, err := os.ReadFile(sm.path)
	if err != nil {
		return err
	}

	var stats GameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return err
	}
	if stats.HighScores == nil {
		stats.HighScores = make(map[string]int)
	}

	sm.stats = stats
	return nil
}

// StartRun opens a fresh run record
func (sm *StatsManager) StartRun(id string, mode types.SpeedMode, now time.Time) {
	sm.run = RunStats{
		RunID:     id,
		Mode:      mode.String(),
		StartTime: now,
	}
}

func (sm *StatsManager) RecordApple(kind entity.AppleKind) {
	sm.run.ApplesEaten++
	if kind == entity.AppleGolden {
		sm.run.GoldenEaten++
	}
}

func (sm *StatsManager) RecordBonus() {
	sm.run.BonusesTaken++
}

// FinishRun closes the current run, folds it into the lifetime totals and
// persists them. A save failure is logged and otherwise ignored.
func (sm *StatsManager) FinishRun(score int, now time.Time) RunStats {
	sm.run.Score = score
	sm.run.EndTime = now

	sm.stats.GamesPlayed++
	if score > sm.stats.HighScores[sm.run.Mode] {
		sm.stats.HighScores[sm.run.Mode] = score
	}
	if len(sm.stats.ScoreHistory) >= maxScoreHistory {
		sm.stats.ScoreHistory = sm.stats.ScoreHistory[1:]
	}
	sm.stats.ScoreHistory = append(sm.stats.ScoreHistory, score)
	last := sm.run
	sm.stats.LastRun = &last

	if err := sm.SaveStats(); err != nil {
		log.Printf("[stats] could not save %s: %v", sm.path, err)
	}
	return sm.run
}

// ResetHighScores forgets the best score of every mode. Games played and
// the score history are kept.
func (sm *StatsManager) ResetHighScores() {
	sm.stats.HighScores = make(map[string]int)
	if err := sm.SaveStats(); err != nil {
		log.Printf("[stats] could not save %s: %v", sm.path, err)
	}
}

// Run returns the current (or last finished) run
func (sm *StatsManager) Run() RunStats {
	return sm.run
}

func (sm *StatsManager) GamesPlayed() int {
	return sm.stats.GamesPlayed
}

func (sm *StatsManager) HighScore(mode types.SpeedMode) int {
	return sm.stats.HighScores[mode.String()]
}

// AverageScore is the mean of the recorded score history
func (sm *StatsManager) AverageScore() float64 {
	if len(sm.stats.ScoreHistory) == 0 {
		return 0
	}
	sum := 0
	for _, s := range sm.stats.ScoreHistory {
		sum += s
	}
	return float64(sum) / float64(len(sm.stats.ScoreHistory))
}

func (sm *StatsManager) ScoreHistory() []int {
	out := make([]int, len(sm.stats.ScoreHistory))
	copy(out, sm.stats.ScoreHistory)
	return out
}
