// Package pacman implements a grid chase game: a maze, a player and three
// pursuing ghosts advanced on a fixed tick.
package pacman

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/config"
)

// RunRecorder is implemented by stores that also keep per-run dot counts.
type RunRecorder interface {
	SaveRun(score, dots int) error
}

// Engine owns all simulation state. Every method except SetDirectionIntent
// must be called from the goroutine that drives Tick.
type Engine struct {
	cfg        config.PacmanConfig
	gen        GenParams
	rng        *rand.Rand
	logger     *log.Logger
	store      PersistenceStore
	strategies map[GhostKind]Strategy

	level          int
	procedural     []Point
	haveProcedural bool

	grid   *Grid
	player Player
	ghosts []*Ghost

	timers timerQueue
	epoch  uint64

	// intent is written from any goroutine and swapped into the player
	// at the start of each tick.
	intent atomic.Int32

	score     int
	dots      int
	highScore int
	unsaved   bool
	gameOver  bool
	tick      uint64

	paused     bool
	resuming   bool
	resumeLeft time.Duration

	// clock is game time: the sum of tick deltas while not paused.
	clock   time.Duration
	lastNow time.Time
	started bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the generator and the ghosts' random fallback.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStore attaches the persistence collaborator.
func WithStore(s PersistenceStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithStrategy replaces the pursuit strategy of one ghost kind.
func WithStrategy(k GhostKind, s Strategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.strategies[k] = s
		}
	}
}

// WithLevel selects the starting level.
func WithLevel(level int) Option {
	return func(e *Engine) {
		e.level = level
	}
}

// NewEngine builds an engine and starts its first level.
func NewEngine(cfg config.PacmanConfig, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg: cfg,
		gen: GenParams{
			WallProbability: cfg.Generator.WallProbability,
			MaxAttempts:     cfg.Generator.MaxAttempts,
		},
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:     log.New(io.Discard),
		strategies: DefaultStrategies(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if !ValidLevel(e.level) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, e.level)
	}

	if e.store != nil {
		hs, err := e.store.HighScore()
		if err != nil {
			e.logger.Warn("failed to load high score", "err", err)
		} else {
			e.highScore = hs
		}
	}

	if err := e.startLevel(e.level); err != nil {
		return nil, err
	}
	return e, nil
}

// Tick advances the simulation by one logical step and returns the
// resulting state. now is any monotonic timestamp; only deltas matter.
func (e *Engine) Tick(now time.Time) Snapshot {
	dt := e.elapsed(now)

	if e.paused {
		if e.resuming {
			e.resumeLeft -= dt
			if e.resumeLeft <= 0 {
				e.paused = false
				e.resuming = false
				e.resumeLeft = 0
				e.logger.Debug("resumed")
			}
		}
		return e.Snapshot()
	}

	e.clock += dt

	if !e.gameOver {
		e.tick++
		e.applyIntent()
		e.stepPlayer()
		e.stepGhosts()
		e.resolveCollisions()
	}

	e.fireTimers()
	return e.Snapshot()
}

func (e *Engine) elapsed(now time.Time) time.Duration {
	if !e.started {
		e.started = true
		e.lastNow = now
		return 0
	}
	dt := now.Sub(e.lastNow)
	if dt < 0 {
		return 0
	}
	e.lastNow = now
	return dt
}

// SetDirectionIntent queues a turn for the next tick. Only unit
// axis-aligned deltas are accepted; anything else is ignored.
// Safe to call from any goroutine; the last write before a tick wins.
func (e *Engine) SetDirectionIntent(dx, dy int) bool {
	d, ok := DirectionFromDelta(dx, dy)
	if !ok {
		return false
	}
	e.intent.Store(int32(d))
	return true
}

// Listen feeds intents from src into the engine until ctx is done or the
// source closes its channel.
func (e *Engine) Listen(ctx context.Context, src InputSource) error {
	ch := src.Intents()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-ch:
			if !ok {
				return nil
			}
			e.SetDirectionIntent(in.DX, in.DY)
		}
	}
}

func (e *Engine) applyIntent() {
	if d := Direction(e.intent.Swap(int32(DirNone))); d != DirNone {
		e.player.Next = d
	}
}

// Pause freezes the simulation, cancelling any resume countdown.
func (e *Engine) Pause() {
	e.paused = true
	e.resuming = false
	e.resumeLeft = 0
}

// Resume starts the countdown after which play continues.
func (e *Engine) Resume() {
	if !e.paused || e.resuming {
		return
	}
	delay := e.cfg.Timing.Resume()
	if delay <= 0 {
		e.paused = false
		return
	}
	e.resuming = true
	e.resumeLeft = delay
}

// Paused reports whether the simulation is frozen, including during a
// resume countdown.
func (e *Engine) Paused() bool {
	return e.paused
}

// Level returns the current level index.
func (e *Engine) Level() int {
	return e.level
}

// Score returns the current run's score.
func (e *Engine) Score() int {
	return e.score
}

// HighScore returns the best of the stored high score and the current run.
func (e *Engine) HighScore() int {
	return max(e.highScore, e.score)
}

// Maze renders the current layout as ASCII (see Grid.String).
func (e *Engine) Maze() string {
	return e.grid.String()
}

// SelectLevel switches level, ending the current run.
func (e *Engine) SelectLevel(level int) error {
	return e.Reset(level)
}

// RegenerateProceduralLayout draws a new random layout. It takes effect
// immediately when the random level is being played, otherwise the next
// time it is selected.
func (e *Engine) RegenerateProceduralLayout() error {
	e.generateProcedural()
	if e.level == LevelProcedural {
		return e.Reset(LevelProcedural)
	}
	return nil
}

// Reset persists the current score, zeroes it and restarts the given level.
// Pending timers are invalidated and a resume countdown is cancelled.
func (e *Engine) Reset(level int) error {
	if !ValidLevel(level) {
		return fmt.Errorf("%w: %d", ErrUnknownLevel, level)
	}
	e.persistScore()
	e.score = 0
	e.dots = 0
	e.tick = 0
	return e.startLevel(level)
}

// Finish persists the current run. Call it before discarding the engine.
func (e *Engine) Finish() {
	e.persistScore()
}

func (e *Engine) startLevel(level int) error {
	grid, err := e.buildLevel(level)
	if err != nil {
		return err
	}

	e.level = level
	e.grid = grid
	e.player = Player{Pos: PlayerSpawn(grid)}
	e.ghosts = make([]*Ghost, 0, len(ghostOrder))
	for _, k := range ghostOrder {
		e.ghosts = append(e.ghosts, newGhost(k, grid))
	}

	e.epoch++
	e.gameOver = false
	e.intent.Store(int32(DirNone))
	if e.resuming {
		e.resuming = false
		e.resumeLeft = 0
	}

	e.logger.Info("level started",
		"level", level,
		"name", LevelName(level),
		"dots", grid.Count(TileDot),
	)
	return nil
}

func (e *Engine) buildLevel(level int) (*Grid, error) {
	if level == LevelProcedural && !e.haveProcedural {
		e.generateProcedural()
	}
	return BuildLayout(level, e.procedural)
}

func (e *Engine) generateProcedural() {
	walls, err := GenerateProceduralLayout(e.rng, e.gen)
	if err != nil {
		e.logger.Warn("procedural layout unavailable, using template",
			"err", err,
			"template", LevelName(LevelCorridors),
		)
		walls = TemplateWalls(LevelCorridors)
	}
	e.procedural = walls
	e.haveProcedural = true
}

func (e *Engine) persistScore() {
	if e.score > e.highScore {
		e.highScore = e.score
	}
	if !e.unsaved || e.score <= 0 || e.store == nil {
		e.unsaved = false
		return
	}
	e.unsaved = false

	var err error
	if rr, ok := e.store.(RunRecorder); ok {
		err = rr.SaveRun(e.score, e.dots)
	} else {
		err = e.store.SaveScore(e.score)
	}
	if err != nil {
		e.logger.Error("failed to save score", "score", e.score, "err", err)
	}
}

func (e *Engine) addScore(points int) {
	if points <= 0 {
		return
	}
	e.score += points
	e.unsaved = true
}

func (e *Engine) stepPlayer() {
	switch e.player.advance(e.grid) {
	case CollectDot:
		e.dots++
		e.addScore(e.cfg.Scoring.Dot)
	case CollectPellet:
		e.addScore(e.cfg.Scoring.Pellet)
		e.powerUp()
	}
}

func (e *Engine) powerUp() {
	d := e.cfg.Timing.Power()
	e.player.Powered = true
	e.player.PowerExpiry = e.clock + d
	for _, g := range e.ghosts {
		if g.Alive {
			g.StunnedUntil = e.clock + d/2
		}
	}
	e.timers.schedule(timerEvent{
		due:   e.player.PowerExpiry,
		epoch: e.epoch,
		kind:  timerPowerExpiry,
	})
	e.logger.Debug("powered up", "until", e.player.PowerExpiry)
}

func (e *Engine) stepGhosts() {
	v := View{
		Grid:              e.grid,
		Player:            e.player.Pos,
		PlayerDir:         e.player.Dir,
		AmbushLookahead:   e.cfg.Ghosts.AmbushLookahead,
		OpportunistRadius: e.cfg.Ghosts.OpportunistRadius,
	}

	for _, g := range e.ghosts {
		if !g.Alive || g.Stunned(e.clock) {
			continue
		}
		s := e.strategies[g.Kind]
		if s == nil {
			s = ChaseStrategy()
		}
		d, ok := chooseMove(g, s, v, e.ghosts, e.rng)
		if !ok {
			g.Dir = DirNone
			continue
		}
		g.Dir = d
		g.Pos = g.Pos.Add(d)
	}
}

func (e *Engine) fireTimers() {
	for _, ev := range e.timers.popDue(e.clock) {
		if ev.epoch != e.epoch {
			e.logger.Debug("discarding stale timer", "kind", ev.kind, "due", ev.due)
			continue
		}

		switch ev.kind {
		case timerPowerExpiry:
			// A later pellet pushes the expiry out; only the last event ends power.
			if e.player.Powered && e.clock >= e.player.PowerExpiry {
				e.player.Powered = false
			}
		case timerRespawn:
			if ev.ghost >= 0 && ev.ghost < len(e.ghosts) {
				e.ghosts[ev.ghost].respawn()
			}
		case timerGameOverReset:
			if err := e.Reset(e.level); err != nil {
				e.logger.Error("reset after game over failed", "err", err)
			}
		}
	}
}
