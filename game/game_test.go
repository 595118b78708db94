package game

import (
	"errors"
	"testing"
	"time"

	"snake-arcade/game/clock"
	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
	"snake-arcade/leaderboard"

	"golang.org/x/exp/rand"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type recorder struct {
	frames []Snapshot
}

func (r *recorder) Render(s Snapshot) {
	r.frames = append(r.frames, s)
}

func (r *recorder) last() Snapshot {
	return r.frames[len(r.frames)-1]
}

type stubPrompter struct {
	scores []int
	done   func(name string, ok bool)
}

func (p *stubPrompter) RequestName(score int, done func(string, bool)) {
	p.scores = append(p.scores, score)
	p.done = done
}

type harness struct {
	g      *Game
	clk    *clock.ManualClock
	sched  *clock.Scheduler
	view   *recorder
	board  *leaderboard.Leaderboard
	prompt *stubPrompter
	events []Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clk:    clock.NewManualClock(epoch),
		view:   &recorder{},
		board:  leaderboard.New(leaderboard.NewMemoryKV()),
		prompt: &stubPrompter{},
	}
	h.sched = clock.NewScheduler(h.clk)
	h.g = New(types.DefaultConfig(), Deps{
		Scheduler: h.sched,
		Rand:      rand.New(rand.NewSource(1)),
		Scores:    h.board,
		Prompter:  h.prompt,
	})
	h.g.Spawns().SetRollSource(func() float64 { return 99 })
	h.g.Subscribe(func(e Event) { h.events = append(h.events, e) })
	if err := h.g.Init(h.view); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return h
}

// clearBoard removes the random opening apple so tests control the board
func (h *harness) clearBoard() {
	h.g.spawns.Clear()
}

func (h *harness) tick() {
	h.clk.Advance(h.g.interval())
	h.sched.Run()
}

func (h *harness) countEvents(kind EventKind) int {
	n := 0
	for _, e := range h.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestInitWithoutSurface(t *testing.T) {
	g := New(nil, Deps{Scheduler: clock.NewScheduler(clock.NewManualClock(epoch))})
	if err := g.Init(nil); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("Init(nil) = %v, want ErrNoSurface", err)
	}
	g.Start()
	if g.State() != Idle {
		t.Errorf("unbound game started: %v", g.State())
	}
}

func TestInitialBoard(t *testing.T) {
	h := newHarness(t)
	snap := h.view.last()
	if snap.State != Idle {
		t.Errorf("state = %v", snap.State)
	}
	if len(snap.Snake) != types.MinSnakeLength {
		t.Errorf("snake length = %d", len(snap.Snake))
	}
	if head := snap.Snake[0]; head != (types.Point{X: 10, Y: 10}) {
		t.Errorf("head = %v", head)
	}
	if len(snap.Apples) != 1 || snap.Apples[0].Kind != entity.AppleNormal {
		t.Errorf("apples = %+v", snap.Apples)
	}
	if snap.RunID == "" {
		t.Error("no run id")
	}
}

func TestEatNormalApple(t *testing.T) {
	h := newHarness(t)
	h.clearBoard()
	h.g.spawns.AddApple(entity.Apple{Pos: types.Point{X: 11, Y: 10}})
	h.g.Start()
	h.tick()

	snap := h.view.last()
	if snap.Score != 1 {
		t.Errorf("score = %d, want 1", snap.Score)
	}
	if len(snap.Snake) != 4 {
		t.Errorf("length = %d, want 4", len(snap.Snake))
	}
	if len(snap.Apples) != 1 || snap.Apples[0].Kind != entity.AppleNormal {
		t.Errorf("apples after eating = %+v", snap.Apples)
	}
	if h.countEvents(EventAppleEaten) != 1 {
		t.Error("no apple event")
	}
}

func TestEatWithEffects(t *testing.T) {
	tests := []struct {
		name   string
		turbo  bool
		double bool
		want   int
	}{
		{"double score", false, true, 2},
		{"turbo", true, false, 2},
		{"turbo and double score", true, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.clearBoard()
			h.g.spawns.AddApple(entity.Apple{Pos: types.Point{X: 11, Y: 10}})
			h.g.Start()
			if tt.turbo {
				h.g.effects.ActivateTurbo()
			}
			if tt.double {
				h.g.effects.ActivateDoubleScore()
			}
			h.tick()
			if h.g.Score() != tt.want {
				t.Errorf("score = %d, want %d", h.g.Score(), tt.want)
			}
		})
	}
}

func TestGoldenAppleYieldsFive(t *testing.T) {
	h := newHarness(t)
	h.clearBoard()
	h.g.spawns.AddApple(entity.Apple{
		Pos:       types.Point{X: 11, Y: 10},
		Kind:      entity.AppleGolden,
		ExpiresAt: epoch.Add(types.GoldenAppleTTL),
	})
	h.g.Start()
	h.tick()

	apples := h.view.last().Apples
	if len(apples) != types.GoldenAppleYield {
		t.Errorf("apples = %d, want %d", len(apples), types.GoldenAppleYield)
	}
}

func TestRareRollOnEat(t *testing.T) {
	h := newHarness(t)
	h.g.Spawns().SetRollSource(func() float64 { return 0.5 })
	h.clearBoard()
	h.g.spawns.AddApple(entity.Apple{Pos: types.Point{X: 11, Y: 10}})
	h.g.spawns.AddApple(entity.Apple{Pos: types.Point{X: 12, Y: 10}})
	h.g.Start()

	h.tick()
	if !h.g.spawns.HasGolden() {
		t.Fatal("draw of 0.5 did not spawn a golden apple")
	}
	before := len(h.g.spawns.Apples())

	h.tick()
	golden := 0
	for _, a := range h.g.spawns.Apples() {
		if a.Kind == entity.AppleGolden {
			golden++
		}
	}
	if golden != 1 {
		t.Errorf("golden apples = %d, want 1", golden)
	}
	if got := len(h.g.spawns.Apples()); got != before {
		t.Errorf("apples went from %d to %d, want only the resupply", before, got)
	}
	if h.countEvents(EventRareSpawn) != 1 {
		t.Errorf("rare spawn events = %d", h.countEvents(EventRareSpawn))
	}
}

func TestReverseDirectionIgnored(t *testing.T) {
	h := newHarness(t)
	h.clearBoard()
	h.g.Start()
	if h.g.Steer(types.Left) {
		t.Error("reverse direction accepted")
	}
	h.tick()
	if head := h.view.last().Snake[0]; head != (types.Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, want (11,10)", head)
	}
	if !h.g.Steer(types.Up) {
		t.Error("perpendicular direction rejected")
	}
}

func TestWallCollisionEndsRun(t *testing.T) {
	h := newHarness(t)
	h.clearBoard()
	h.g.Start()
	h.g.effects.ActivateDoubleScore()

	for i := 0; i < 9; i++ {
		h.tick()
		if h.g.State() != Running {
			t.Fatalf("run ended early at tick %d", i)
		}
		if n := len(h.view.last().Snake); n != types.MinSnakeLength {
			t.Fatalf("length changed to %d without eating", n)
		}
	}
	h.tick()

	if h.g.State() != GameOver {
		t.Fatalf("state = %v, want game-over", h.g.State())
	}
	if h.g.effects.DoubleScore() || h.g.effects.Turbo() {
		t.Error("effects survived game over")
	}
	if h.sched.Pending() != 0 {
		t.Errorf("%d timers still scheduled", h.sched.Pending())
	}
	if h.view.last().State != GameOver {
		t.Error("game-over view not rendered")
	}

	frames := len(h.view.frames)
	h.clk.Advance(time.Second)
	h.sched.Run()
	if len(h.view.frames) != frames {
		t.Error("ticks continued after game over")
	}

	var over Event
	for _, e := range h.events {
		if e.Kind == EventGameOver {
			over = e
		}
	}
	if over.Reason != manager.WallCollision {
		t.Errorf("game over reason = %v", over.Reason)
	}
}

func TestStalledFrameMovesOneCell(t *testing.T) {
	h := newHarness(t)
	h.clearBoard()
	h.g.Start()
	frames := len(h.view.frames)

	h.clk.Advance(time.Second)
	h.sched.Run()

	if h.g.State() != Running {
		t.Fatalf("state = %v after a stalled frame", h.g.State())
	}
	if got := len(h.view.frames) - frames; got != 1 {
		t.Errorf("rendered %d ticks in one frame, want 1", got)
	}
	if head := h.view.last().Snake[0]; head != (types.Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, want one cell ahead", head)
	}
}

func TestSelfCollisionEndsRun(t *testing.T) {
	h := newHarness(t)
	h.clearBoard()
	h.g.snake = entity.NewSnake(types.Point{X: 10, Y: 10}, types.Right, 5)
	h.g.Start()

	for _, d := range []types.Direction{types.Up, types.Left, types.Down} {
		h.g.Steer(d)
		h.tick()
	}
	if h.g.State() != GameOver {
		t.Fatalf("state = %v, want game-over", h.g.State())
	}
}

func TestNamePromptRecordsScore(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		ok       bool
		wantName string
		recorded bool
	}{
		{"named", "ada", true, "ada", true},
		{"blank", "   ", true, types.DefaultName, true},
		{"cancelled", "ignored", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.clearBoard()
			h.g.spawns.AddApple(entity.Apple{Pos: types.Point{X: 11, Y: 10}})
			h.g.Start()
			h.tick()
			h.clearBoard()
			for h.g.State() == Running {
				h.tick()
			}
			if len(h.prompt.scores) != 1 || h.prompt.scores[0] != 1 {
				t.Fatalf("prompted with %v", h.prompt.scores)
			}
			h.prompt.done(tt.input, tt.ok)

			entries := h.board.Entries(types.ModeNormal)
			if !tt.recorded {
				if len(entries) != 0 {
					t.Errorf("cancelled prompt recorded %+v", entries)
				}
				return
			}
			if len(entries) != 1 || entries[0].Name != tt.wantName || entries[0].Score != 1 {
				t.Errorf("entries = %+v", entries)
			}
		})
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	h := newHarness(t)
	h.clearBoard()
	h.g.spawns.AddApple(entity.Apple{Pos: types.Point{X: 11, Y: 10}})
	h.g.Start()
	for h.g.State() == Running {
		h.tick()
	}
	oldRun := h.view.last().RunID
	if h.g.Score() == 0 {
		t.Fatal("setup did not score")
	}

	h.g.Start()
	snap := h.view.last()
	if snap.State != Running || snap.Score != 0 {
		t.Errorf("after restart state=%v score=%d", snap.State, snap.Score)
	}
	if len(snap.Snake) != types.MinSnakeLength {
		t.Errorf("length after restart = %d", len(snap.Snake))
	}
	if snap.RunID == oldRun {
		t.Error("restart kept the old run id")
	}
	if h.countEvents(EventRunStarted) != 2 {
		t.Errorf("run started events = %d", h.countEvents(EventRunStarted))
	}
}

func TestSetMode(t *testing.T) {
	h := newHarness(t)
	if err := h.g.SetMode(types.ModeFast); err != nil {
		t.Fatalf("SetMode while idle: %v", err)
	}
	if err := h.g.SetMode(types.SpeedMode(9)); !errors.Is(err, types.ErrUnknownMode) {
		t.Errorf("SetMode(9) = %v", err)
	}

	h.g.Start()
	if h.g.interval() != 70*time.Millisecond {
		t.Errorf("fast interval = %v", h.g.interval())
	}
	if err := h.g.SetMode(types.ModeSlow); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("SetMode while running = %v", err)
	}
	if h.g.Mode() != types.ModeFast {
		t.Errorf("mode = %v", h.g.Mode())
	}
}

func TestShrinkBonusClamps(t *testing.T) {
	h := newHarness(t)
	h.clearBoard()
	h.g.snake = entity.NewSnake(types.Point{X: 10, Y: 10}, types.Right, 5)
	h.g.spawns.PlaceBonus(entity.BonusItem{
		Pos:       types.Point{X: 11, Y: 10},
		Kind:      entity.BonusShrink,
		ExpiresAt: epoch.Add(types.BonusItemTTL),
	})
	h.g.Start()
	h.tick()

	if n := len(h.view.last().Snake); n != types.MinSnakeLength {
		t.Errorf("length after shrink = %d, want %d", n, types.MinSnakeLength)
	}
	if h.view.last().Bonus != nil {
		t.Error("bonus still on the board")
	}
}

func TestJackpotAndAppleSameTick(t *testing.T) {
	h := newHarness(t)
	h.clearBoard()
	target := types.Point{X: 11, Y: 10}
	h.g.spawns.AddApple(entity.Apple{Pos: target})
	h.g.spawns.PlaceBonus(entity.BonusItem{Pos: target, Kind: entity.BonusJackpot, ExpiresAt: epoch.Add(time.Minute)})
	h.g.Start()
	h.tick()

	if h.g.Score() != 1+types.JackpotPoints {
		t.Errorf("score = %d, want %d", h.g.Score(), 1+types.JackpotPoints)
	}
}

// steerSquare keeps the head on a 5x5 loop right of the start cell
func steerSquare(g *Game) {
	head := g.snake.GetHead()
	switch {
	case g.snake.Direction == types.Right && head.X == 17:
		g.Steer(types.Down)
	case g.snake.Direction == types.Down && head.Y == 15:
		g.Steer(types.Left)
	case g.snake.Direction == types.Left && head.X == 12:
		g.Steer(types.Up)
	case g.snake.Direction == types.Up && head.Y == 10:
		g.Steer(types.Right)
	}
}

func TestTurboReschedulesWithoutTouchingState(t *testing.T) {
	h := newHarness(t)
	h.clearBoard()
	h.g.spawns.AddApple(entity.Apple{Pos: types.Point{X: 11, Y: 10}})
	h.g.Start()
	h.tick()
	h.clearBoard()

	body := h.view.last().Snake
	h.g.spawns.PlaceBonus(entity.BonusItem{Pos: types.Point{X: 12, Y: 10}, Kind: entity.BonusTurbo, ExpiresAt: epoch.Add(time.Minute)})
	h.tick()

	if !h.g.effects.Turbo() {
		t.Fatal("turbo not active")
	}
	if h.g.tick.Interval() != 60*time.Millisecond {
		t.Errorf("tick interval = %v, want 60ms", h.g.tick.Interval())
	}
	if h.g.Score() != 1 || len(h.view.last().Snake) != len(body) {
		t.Errorf("reschedule changed state: score=%d len=%d", h.g.Score(), len(h.view.last().Snake))
	}

	deadline := h.clk.Now().Add(types.TurboDuration + 100*time.Millisecond)
	for h.clk.Now().Before(deadline) {
		h.clk.Advance(60 * time.Millisecond)
		h.sched.Run()
		steerSquare(h.g)
	}

	if h.g.State() != Running {
		t.Fatalf("run ended while circling: %v", h.g.State())
	}
	if h.g.effects.Turbo() {
		t.Fatal("turbo did not expire")
	}
	if h.g.tick.Interval() != 100*time.Millisecond {
		t.Errorf("tick interval after expiry = %v", h.g.tick.Interval())
	}
	if h.g.Score() != 1 {
		t.Errorf("score changed to %d", h.g.Score())
	}
}

func TestExpiredConsumablesPurged(t *testing.T) {
	h := newHarness(t)
	h.clearBoard()
	h.g.spawns.AddApple(entity.Apple{Pos: types.Point{X: 0, Y: 0}, Kind: entity.AppleGolden, ExpiresAt: epoch.Add(50 * time.Millisecond)})
	h.g.spawns.PlaceBonus(entity.BonusItem{Pos: types.Point{X: 0, Y: 1}, Kind: entity.BonusTurbo, ExpiresAt: epoch.Add(100 * time.Millisecond)})
	h.g.Start()

	h.tick()
	snap := h.view.last()
	if len(snap.Apples) != 0 {
		t.Errorf("expired golden apple kept: %+v", snap.Apples)
	}
	if snap.Bonus == nil {
		t.Error("bonus purged at its exact expiry")
	}

	h.tick()
	if h.view.last().Bonus != nil {
		t.Error("expired bonus kept")
	}
	if h.g.Score() != 0 {
		t.Error("expiry changed the score")
	}
}

func TestEmptySnakeResets(t *testing.T) {
	h := newHarness(t)
	h.g.Start()
	h.g.snake.Body = nil
	h.tick()

	if h.g.State() != Running {
		t.Errorf("state = %v, want running", h.g.State())
	}
	if n := len(h.view.last().Snake); n != types.MinSnakeLength {
		t.Errorf("length after recovery = %d", n)
	}
}

func TestResetScores(t *testing.T) {
	h := newHarness(t)
	h.board.AddScore(types.ModeNormal, "x", 5)
	h.g.stats.StartRun("old", types.ModeNormal, epoch)
	h.g.stats.FinishRun(7, epoch.Add(time.Minute))
	if best := h.g.Snapshot().Best; best != 7 {
		t.Fatalf("best before reset = %d, want 7", best)
	}

	h.g.ResetScores()
	if h.board.Best(types.ModeNormal) != 0 {
		t.Error("scores not reset")
	}
	if best := h.view.last().Best; best != 0 {
		t.Errorf("best after reset = %d, want 0", best)
	}
	if h.countEvents(EventScoresReset) != 1 {
		t.Error("no reset event")
	}
}

// Random play with every rare spawn enabled must keep the board invariants
func TestInvariantsUnderRandomPlay(t *testing.T) {
	h := newHarness(t)
	rng := rand.New(rand.NewSource(42))
	h.g.Spawns().SetRollSource(func() float64 { return rng.Float64() * 20 })
	dirs := []types.Direction{types.Up, types.Down, types.Left, types.Right}

	h.g.Start()
	for i := 0; i < 3000; i++ {
		if h.g.State() != Running {
			h.g.Start()
		}
		prev := h.view.last()
		if rng.Intn(4) == 0 {
			h.g.Steer(dirs[rng.Intn(len(dirs))])
		}
		h.tick()
		cur := h.view.last()
		if cur.State != Running || cur.RunID != prev.RunID {
			continue
		}

		if cur.Score < prev.Score {
			t.Fatalf("score dropped from %d to %d", prev.Score, cur.Score)
		}
		golden := 0
		for _, a := range cur.Apples {
			if a.Kind == entity.AppleGolden {
				golden++
			}
		}
		if golden > 1 {
			t.Fatalf("%d golden apples on the board", golden)
		}
		if len(cur.Snake) < types.MinSnakeLength {
			t.Fatalf("snake shorter than %d", types.MinSnakeLength)
		}
		if cur.Score == prev.Score && len(cur.Snake) > len(prev.Snake) {
			t.Fatalf("snake grew without scoring")
		}
		seen := make(map[types.Point]bool, len(cur.Snake))
		for _, p := range cur.Snake {
			if seen[p] {
				t.Fatalf("segments overlap at %v", p)
			}
			seen[p] = true
		}
	}
}
