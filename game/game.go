package game

import (
	"errors"
	"log"
	"time"

	"snake-arcade/game/clock"
	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

var (
	ErrNoSurface     = errors.New("no drawing surface")
	ErrRunInProgress = errors.New("run in progress")
)

// Renderer draws a snapshot of the game
type Renderer interface {
	Render(snap Snapshot)
}

// NamePrompter asks the player for a leaderboard name after a run. done is
// called once, with ok false when the player cancelled.
type NamePrompter interface {
	RequestName(score int, done func(name string, ok bool))
}

// ScoreKeeper records finished runs
type ScoreKeeper interface {
	AddScore(mode types.SpeedMode, name string, score int) int
	Best(mode types.SpeedMode) int
	Reset()
}

// Deps are the collaborators a Game is built from. Only Scheduler is
// required.
type Deps struct {
	Scheduler *clock.Scheduler
	Rand      *rand.Rand
	Scores    ScoreKeeper
	Prompter  NamePrompter
	Stats     *manager.StatsManager
}

// Game is one play session: the snake, the board and the tick loop
type Game struct {
	cfg   *types.Config
	grid  types.Grid
	sched *clock.Scheduler

	collisions *manager.CollisionManager
	spawns     *manager.SpawnManager
	effects    *manager.EffectManager
	stats      *manager.StatsManager

	scores   ScoreKeeper
	prompter NamePrompter
	renderer Renderer

	snake     *entity.Snake
	state     State
	mode      types.SpeedMode
	score     int
	runID     string
	tick      *clock.Handle
	listeners []Listener
}

func New(cfg *types.Config, deps Deps) *Game {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	cfg = cfg.Copy()

	sched := deps.Scheduler
	if sched == nil {
		sched = clock.NewScheduler(clock.RealClock{})
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	stats := deps.Stats
	if stats == nil {
		stats = manager.NewStatsManager("")
	}

	grid := cfg.Grid()
	g := &Game{
		cfg:        cfg,
		grid:       grid,
		sched:      sched,
		collisions: manager.NewCollisionManager(grid),
		spawns:     manager.NewSpawnManager(grid, rng),
		effects:    manager.NewEffectManager(sched),
		stats:      stats,
		scores:     deps.Scores,
		prompter:   deps.Prompter,
		state:      Idle,
		mode:       cfg.Mode,
	}
	g.effects.OnSpeedChange(g.speedChanged)
	g.effects.OnExpire(func(kind entity.BonusKind) {
		g.emit(Event{Kind: EventEffectExpired, Bonus: kind})
	})
	return g
}

// Init binds the game to its renderer and draws the opening board.
// Without a renderer the game stays inert.
func (g *Game) Init(r Renderer) error {
	if r == nil {
		log.Printf("[game] init aborted: %v", ErrNoSurface)
		return ErrNoSurface
	}
	g.renderer = r
	g.reset(g.sched.Now())
	g.render()
	return nil
}

// Spawns exposes the spawn manager, mainly so callers can swap the roll
// source
func (g *Game) Spawns() *manager.SpawnManager {
	return g.spawns
}

// Subscribe registers l for every future event
func (g *Game) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
}

func (g *Game) emit(e Event) {
	if e.RunID == "" {
		e.RunID = g.runID
	}
	if e.Score == 0 {
		e.Score = g.score
	}
	e.Mode = g.mode
	for _, l := range g.listeners {
		l(e)
	}
}

func (g *Game) State() State {
	return g.state
}

func (g *Game) Mode() types.SpeedMode {
	return g.mode
}

func (g *Game) Score() int {
	return g.score
}

// SetMode picks the speed mode for the next run
func (g *Game) SetMode(mode types.SpeedMode) error {
	if !mode.Valid() {
		return types.ErrUnknownMode
	}
	if g.state == Running {
		return ErrRunInProgress
	}
	if mode == g.mode {
		return nil
	}
	g.mode = mode
	g.emit(Event{Kind: EventModeChanged})
	g.render()
	return nil
}

// ResetScores wipes every leaderboard table and the lifetime best scores
func (g *Game) ResetScores() {
	g.stats.ResetHighScores()
	if g.scores != nil {
		g.scores.Reset()
	}
	g.emit(Event{Kind: EventScoresReset})
	g.render()
}

// Start begins a run. Coming from GameOver the board is reset first.
func (g *Game) Start() {
	if g.renderer == nil || g.state == Running {
		return
	}
	now := g.sched.Now()
	if g.state == GameOver || g.snake == nil {
		g.reset(now)
	}
	g.state = Running
	g.stats.StartRun(g.runID, g.mode, now)
	g.restartLoop()
	log.Printf("[game] run %s started in %s mode", g.runID, g.mode)
	g.emit(Event{Kind: EventRunStarted})
	g.render()
}

// Steer buffers dir for the next tick. A reverse of the active direction
// is ignored.
func (g *Game) Steer(dir types.Direction) bool {
	if g.snake == nil {
		return false
	}
	return g.snake.SetDirection(dir)
}

func (g *Game) reset(now time.Time) {
	c := g.cfg.TileCount / 2
	g.snake = entity.NewSnake(types.Point{X: c, Y: c}, types.Right, types.MinSnakeLength)
	g.score = 0
	g.effects.Clear()
	g.spawns.Reset(g.snake, now)
	g.runID = uuid.NewString()
}

func (g *Game) interval() time.Duration {
	return g.effects.Interval(g.cfg.BaseInterval(g.mode))
}

// restartLoop replaces the tick timer with one at the current interval.
// Board state is untouched.
func (g *Game) restartLoop() {
	g.tick.Cancel()
	g.tick = g.sched.Every(g.interval(), g.step)
}

func (g *Game) stopLoop() {
	g.tick.Cancel()
	g.tick = nil
}

func (g *Game) speedChanged() {
	if g.state == Running {
		g.restartLoop()
	}
}

func (g *Game) addScore(points int) {
	if points > 0 {
		g.score += points
	}
}

func (g *Game) step(now time.Time) {
	if g.state != Running {
		return
	}
	// Recover from an empty body with a full reset
	if g.snake == nil || g.snake.Len() == 0 {
		log.Printf("[game] run %s has an empty snake, resetting", g.runID)
		g.reset(now)
		g.stats.StartRun(g.runID, g.mode, now)
		g.restartLoop()
		g.render()
		return
	}

	// Apply the buffered direction
	g.snake.CommitDirection()
	head := g.snake.NextHead()

	// Check wall and self collisions
	if hit := g.collisions.CheckCollision(head, g.snake); hit != manager.NoCollision {
		g.finish(now, hit)
		return
	}
	g.snake.Move(head)

	// Check apple collisions
	if i := g.collisions.CheckAppleCollision(head, g.spawns.Apples()); i >= 0 {
		apple := g.spawns.RemoveApple(i)
		gain := g.effects.AppleGain()
		g.addScore(gain)
		g.stats.RecordApple(apple.Kind)
		// Refill the board, then one rare roll
		g.spawns.Resupply(g.snake, apple, now)
		g.emit(Event{Kind: EventAppleEaten, Apple: apple.Kind, Gain: gain})

		if spawn := g.spawns.RollRare(g.snake, now); spawn != manager.RareNone {
			g.emit(Event{Kind: EventRareSpawn, Spawn: spawn})
		}
	} else {
		// No apple, so the tail follows
		g.snake.RemoveTail()
	}

	// Check bonus collision
	if g.collisions.CheckBonusCollision(head, g.spawns.Bonus()) {
		bonus, _ := g.spawns.TakeBonus()
		points := g.effects.Apply(bonus.Kind, g.snake)
		g.addScore(points)
		g.stats.RecordBonus()
		g.emit(Event{Kind: EventBonusTaken, Bonus: bonus.Kind, Gain: points})
	}

	// Drop expired golden apples and bonuses
	g.spawns.PurgeExpired(now)
	g.render()
}

func (g *Game) finish(now time.Time, reason manager.CollisionType) {
	g.state = GameOver
	// Stop ticking and drop any running effect timers
	g.stopLoop()
	g.effects.Clear()

	// Close the run record
	run := g.stats.FinishRun(g.score, now)
	log.Printf("[game] run %s over (%s): score %d, %d apples in %v",
		run.RunID, reason, run.Score, run.ApplesEaten, run.Duration().Round(time.Second))

	g.render()
	g.emit(Event{Kind: EventGameOver, Reason: reason})

	// Ask for a name for the leaderboard
	g.requestName(g.mode, g.score)
}

func (g *Game) requestName(mode types.SpeedMode, score int) {
	if g.scores == nil {
		return
	}
	if g.prompter == nil {
		g.scores.AddScore(mode, types.DefaultName, score)
		return
	}
	g.prompter.RequestName(score, func(name string, ok bool) {
		if !ok {
			return
		}
		g.scores.AddScore(mode, name, score)
		g.render()
	})
}

func (g *Game) render() {
	if g.renderer != nil {
		g.renderer.Render(g.Snapshot())
	}
}

// Snapshot copies the current state for drawing
func (g *Game) Snapshot() Snapshot {
	now := g.sched.Now()
	snap := Snapshot{
		RunID:       g.runID,
		State:       g.state,
		Mode:        g.mode,
		Grid:        g.grid,
		Apples:      g.spawns.Apples(),
		Bonus:       g.spawns.Bonus(),
		Score:       g.score,
		Turbo:       g.effects.Turbo(),
		DoubleScore: g.effects.DoubleScore(),
		Run:         g.stats.Run(),
		Interval:    g.interval(),
		Now:         now,
	}
	if g.snake != nil {
		snap.Snake = g.snake.Cells()
		snap.Direction = g.snake.Direction
	}
	snap.TurboLeft, snap.DoubleLeft = g.effects.Remaining(now)
	if g.scores != nil {
		snap.Best = g.scores.Best(g.mode)
	}
	if hs := g.stats.HighScore(g.mode); hs > snap.Best {
		snap.Best = hs
	}
	return snap
}
