package types

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config holds the tunables of a game session
type Config struct {
	TileCount int
	TileSize  int
	Mode      SpeedMode

	SlowInterval   time.Duration
	NormalInterval time.Duration
	FastInterval   time.Duration

	DataDir string
}

func DefaultConfig() *Config {
	return &Config{
		TileCount:      20,
		TileSize:       20,
		Mode:           ModeNormal,
		SlowInterval:   150 * time.Millisecond,
		NormalInterval: 100 * time.Millisecond,
		FastInterval:   70 * time.Millisecond,
		DataDir:        "data",
	}
}

// Validate checks the config for values the game cannot run with
func (c *Config) Validate() error {
	if c.TileCount < 8 || c.TileCount > 100 {
		return fmt.Errorf("tile count %d out of range [8, 100]", c.TileCount)
	}
	if c.TileSize < 1 || c.TileSize > 64 {
		return fmt.Errorf("tile size %d out of range [1, 64]", c.TileSize)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, c.Mode)
	}
	for _, m := range Modes {
		if c.BaseInterval(m) < MinTickInterval {
			return fmt.Errorf("%s interval %v below %v", m, c.BaseInterval(m), MinTickInterval)
		}
	}
	return nil
}

func (c *Config) Copy() *Config {
	cp := *c
	return &cp
}

// Grid returns the playfield for this config
func (c *Config) Grid() Grid {
	return Grid{Width: c.TileCount, Height: c.TileCount}
}

// BaseInterval returns the tick interval bound to mode
func (c *Config) BaseInterval(mode SpeedMode) time.Duration {
	switch mode {
	case ModeSlow:
		return c.SlowInterval
	case ModeFast:
		return c.FastInterval
	}
	return c.NormalInterval
}

// StorePath is the file backing the durable key-value store
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "store.json")
}

// StatsPath is the file holding lifetime run stats
func (c *Config) StatsPath() string {
	return filepath.Join(c.DataDir, "gamestats.json")
}
