package app

import (
	"log"
	"time"

	"snake-arcade/game"
	"snake-arcade/game/clock"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
	"snake-arcade/input"
	"snake-arcade/leaderboard"
	"snake-arcade/sound"
	"snake-arcade/ui"

	"golang.org/x/exp/rand"
)

// SessionOptions tune how a Session is assembled. The zero value gives a
// real clock, a time-based seed and no sound.
type SessionOptions struct {
	Clock clock.Clock
	Seed  int64
	Sound bool
}

// Session owns one game together with the stores and widgets around it
type Session struct {
	Config     *types.Config
	Scheduler  *clock.Scheduler
	Game       *game.Game
	Scores     *leaderboard.Leaderboard
	Stats      *manager.StatsManager
	Prompt     *ui.NamePrompt
	Panel      *input.Panel
	Controller *input.Controller

	player     *sound.Player
	scoreboard *ui.Scoreboard
}

func NewSession(cfg *types.Config, opts SessionOptions) *Session {
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		Config:    cfg,
		Scheduler: clock.NewScheduler(clk),
		Prompt:    ui.NewNamePrompt(),
		Panel:     input.NewPanel(true),
	}

	s.Scores = leaderboard.New(leaderboard.NewFileKV(cfg.StorePath()))
	s.Scores.SetClock(s.Scheduler.Now)
	s.Scores.Load()

	s.Stats = manager.NewStatsManager(cfg.StatsPath())

	s.Game = game.New(cfg, game.Deps{
		Scheduler: s.Scheduler,
		Rand:      rand.New(rand.NewSource(uint64(seed))),
		Scores:    s.Scores,
		Prompter:  s.Prompt,
		Stats:     s.Stats,
	})
	s.Controller = input.NewController(s.Game, s.Panel)

	if opts.Sound {
		s.player = sound.NewPlayer()
		if err := s.player.Initialize(); err != nil {
			log.Printf("[sound] audio unavailable: %v", err)
		}
		s.Game.Subscribe(s.player.Listener())
	}

	log.Printf("[main] session ready: %dx%d tiles, %s mode, seed %d, data in %s",
		cfg.TileCount, cfg.TileCount, cfg.Mode, seed, cfg.DataDir)
	return s
}

// Attach binds the renderer and the side panel, then draws the idle board
func (s *Session) Attach(r *ui.Renderer, sb *ui.Scoreboard) error {
	if sb != nil {
		s.scoreboard = sb
		sb.SetMode(s.Game.Mode())
		s.Game.Subscribe(func(e game.Event) {
			if e.Kind == game.EventModeChanged {
				sb.SetMode(e.Mode)
			}
		})
	}
	if r == nil {
		return s.Game.Init(nil)
	}
	return s.Game.Init(r)
}

// Update fires every timer that has come due
func (s *Session) Update() int {
	return s.Scheduler.Run()
}

// HandleKey routes a game key. Keys are swallowed while the name prompt is
// open.
func (s *Session) HandleKey(k input.Key) bool {
	if s.Prompt.Active() {
		return false
	}
	return s.Controller.HandleKey(k)
}

// TogglePanel shows or hides the game panel
func (s *Session) TogglePanel() bool {
	visible := s.Panel.Toggle()
	log.Printf("[main] panel visible: %v", visible)
	return visible
}

// Close cancels any open prompt and releases the audio device
func (s *Session) Close() {
	s.Prompt.Cancel()
	s.Scheduler.Clear()
	if s.player != nil {
		s.player.Close()
	}
}
