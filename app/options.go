// Package app wires a playable session out of the game, its stores and the
// input and drawing helpers. Frontends supply the window and the keys.
package app

import (
	"flag"
	"fmt"

	"snake-arcade/game/types"
)

// Options are the command-line settings shared by every frontend
type Options struct {
	Tiles    int
	TileSize int
	Mode     string
	DataDir  string
	Debug    bool
	Sound    bool
	Seed     int64
}

// RegisterFlags binds Options to fs with the defaults of types.DefaultConfig
func RegisterFlags(fs *flag.FlagSet) *Options {
	def := types.DefaultConfig()
	o := &Options{}
	fs.IntVar(&o.Tiles, "tiles", def.TileCount, "Tiles per board side")
	fs.IntVar(&o.TileSize, "tile-size", def.TileSize, "Tile size in pixels")
	fs.StringVar(&o.Mode, "mode", def.Mode.String(), "Starting speed mode: slow, normal, fast")
	fs.StringVar(&o.DataDir, "data", def.DataDir, "Directory for scores and stats")
	fs.BoolVar(&o.Debug, "debug", false, "Write a debug log to logs/")
	fs.BoolVar(&o.Sound, "sound", true, "Play sound effects")
	fs.Int64Var(&o.Seed, "seed", 0, "Random seed, 0 picks one from the clock")
	return o
}

// Config builds and validates the game config
func (o *Options) Config() (*types.Config, error) {
	cfg := types.DefaultConfig()
	cfg.TileCount = o.Tiles
	cfg.TileSize = o.TileSize
	cfg.DataDir = o.DataDir

	mode, err := types.ParseMode(o.Mode)
	if err != nil {
		return nil, err
	}
	cfg.Mode = mode

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}
