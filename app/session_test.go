package app

import (
	"errors"
	"flag"
	"image/color"
	"testing"
	"time"

	"snake-arcade/game"
	"snake-arcade/game/clock"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
	"snake-arcade/input"
	"snake-arcade/leaderboard"
	"snake-arcade/ui"
)

type nopSurface struct{}

func (nopSurface) Size() (int, int)                                 { return 640, 480 }
func (nopSurface) FillRect(x, y, w, h int, c color.RGBA)            {}
func (nopSurface) StrokeGrid(cols, rows, cell int, c color.RGBA)    {}
func (nopSurface) DrawCenteredText(string, int, int, int, color.RGBA) {}

func TestOptionsConfig(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	opts := RegisterFlags(fs)
	if err := fs.Parse([]string{"-mode", "fast", "-tiles", "30", "-data", "scores"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := opts.Config()
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if cfg.Mode != types.ModeFast || cfg.TileCount != 30 || cfg.DataDir != "scores" {
		t.Errorf("config = %+v", cfg)
	}

	opts.Mode = "ludicrous"
	if _, err := opts.Config(); !errors.Is(err, types.ErrUnknownMode) {
		t.Errorf("bad mode error = %v", err)
	}

	opts.Mode = "slow"
	opts.Tiles = 3
	if _, err := opts.Config(); err == nil {
		t.Error("tiny board accepted")
	}
}

func TestSessionPlaysARun(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.DataDir = t.TempDir()
	clk := clock.NewManualClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	s := NewSession(cfg, SessionOptions{Clock: clk, Seed: 7})
	defer s.Close()

	r := ui.NewRenderer(nopSurface{}, cfg.TileSize, ui.ASCIIGlyphs)
	sb := ui.NewScoreboard(s.Scores, 400, 0, 240, 400)
	if err := s.Attach(r, sb); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if w, _ := r.BoardSize(); w != cfg.TileCount*cfg.TileSize || s.Game.State() != game.Idle {
		t.Fatal("idle board not rendered")
	}

	if !s.HandleKey(input.KeyRight) {
		t.Fatal("direction key not consumed")
	}
	if s.Game.State() != game.Running {
		t.Fatalf("state = %v, want running", s.Game.State())
	}

	for i := 0; i < 2000 && s.Game.State() == game.Running; i++ {
		clk.Advance(10 * time.Millisecond)
		s.Update()
	}
	if s.Game.State() != game.GameOver {
		t.Fatalf("run never ended, state = %v", s.Game.State())
	}
	if !s.Prompt.Active() {
		t.Fatal("name prompt not shown")
	}
	if s.HandleKey(input.KeyUp) {
		t.Error("game key consumed while the prompt is open")
	}

	score := s.Game.Score()
	for _, ch := range "ada" {
		s.Prompt.Type(ch)
	}
	s.Prompt.Submit()

	entries := s.Scores.Entries(types.ModeNormal)
	if len(entries) != 1 || entries[0].Name != "ada" || entries[0].Score != score {
		t.Fatalf("entries = %+v, want ada with %d", entries, score)
	}
	if len(sb.Rows()) != 1 {
		t.Errorf("scoreboard rows = %q", sb.Rows())
	}

	reloaded := leaderboard.New(leaderboard.NewFileKV(cfg.StorePath()))
	reloaded.Load()
	if len(reloaded.Entries(types.ModeNormal)) != 1 {
		t.Error("score not persisted")
	}
	if got := manager.NewStatsManager(cfg.StatsPath()).GamesPlayed(); got != 1 {
		t.Errorf("persisted games played = %d, want 1", got)
	}

	// Mode keys after a run switch the panel to that mode's table
	if !s.HandleKey(input.Key3) {
		t.Fatal("mode key rejected after game over")
	}
	if s.Game.Mode() != types.ModeFast || len(sb.Rows()) != 0 {
		t.Errorf("mode = %v, rows = %q", s.Game.Mode(), sb.Rows())
	}
}

func TestSessionHiddenPanel(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.DataDir = t.TempDir()
	s := NewSession(cfg, SessionOptions{Clock: clock.NewManualClock(time.Unix(0, 0)), Seed: 1})
	defer s.Close()

	if err := s.Attach(nil, nil); !errors.Is(err, game.ErrNoSurface) {
		t.Errorf("Attach(nil) error = %v", err)
	}
	if err := s.Attach(ui.NewRenderer(nopSurface{}, 20, ui.ASCIIGlyphs), nil); err != nil {
		t.Fatal(err)
	}

	if s.TogglePanel() {
		t.Fatal("panel still visible after toggle")
	}
	if s.HandleKey(input.KeyUp) || s.Game.State() != game.Idle {
		t.Error("direction key started a run on a hidden panel")
	}
	s.TogglePanel()
	if !s.HandleKey(input.KeyUp) || s.Game.State() != game.Running {
		t.Error("direction key ignored on a visible panel")
	}
}
