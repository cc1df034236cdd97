package pacman

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

// Mode selects which levels a registered game plays.
type Mode int

const (
	ModeClassic Mode = iota // Start on the selected level
	ModeRandom              // Always play the procedural level
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Game adapts an Engine to the platform's registry.Game. Each Step
// advances a virtual clock by the current tick interval, so the engine
// sees exact deltas regardless of wall-clock jitter.
type Game struct {
	mode       Mode
	cfg        config.PacmanConfig
	engine     *Engine
	difficulty *config.DifficultyManager
	store      PersistenceStore
	logger     *log.Logger

	clock time.Time
	last  Snapshot
}

// New creates a game starting on the level chosen in RuntimeConfig.
func New() *Game {
	return &Game{mode: ModeClassic, logger: log.New(io.Discard)}
}

// NewRandom creates a game that plays procedural layouts only.
func NewRandom() *Game {
	return &Game{mode: ModeRandom, logger: log.New(io.Discard)}
}

func init() {
	registry.Register(IDClassic, titleClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDRandom, titleRandom, func() registry.Game {
		return NewRandom()
	})
}

// Registered mode IDs.
const (
	IDClassic = "pacman"
	IDRandom  = "pacman_random"
)

const (
	titleClassic = "Pac-Man"
	titleRandom  = "Pac-Man (Random Mazes)"
)

// GameIDForLevel returns the mode scores for level are ranked under.
func GameIDForLevel(level int) string {
	if level == LevelProcedural {
		return IDRandom
	}
	return IDClassic
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeRandom {
		return IDRandom
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeRandom {
		return titleRandom
	}
	return titleClassic
}

// SetPersistence attaches the store used from the next Reset on.
func (g *Game) SetPersistence(s PersistenceStore) {
	g.store = s
}

// SetLogger routes engine logs. Takes effect on the next Reset.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Engine exposes the running engine, e.g. for Listen. Nil before Reset.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Reset finishes any running session and starts a new one.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.Finish()

	// Load game config
	cfg, err := config.LoadPacman(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultPacmanConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyPacmanPreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	level := rc.Level
	if g.mode == ModeRandom {
		level = LevelProcedural
	}
	if !ValidLevel(level) {
		level = LevelCorridors
	}

	opts := []Option{
		WithSeed(rc.Seed),
		WithLevel(level),
		WithLogger(g.logger),
	}
	if g.store != nil {
		opts = append(opts, WithStore(g.store))
	}

	engine, err := NewEngine(cfg, opts...)
	if err != nil {
		g.logger.Error("failed to start engine", "level", level, "err", err)
		g.engine = nil
		return
	}
	g.engine = engine
	g.clock = time.Unix(0, 0)
	g.last = engine.Snapshot()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionUp):
		g.engine.SetDirectionIntent(0, -1)
	case in.Has(core.ActionDown):
		g.engine.SetDirectionIntent(0, 1)
	case in.Has(core.ActionLeft):
		g.engine.SetDirectionIntent(-1, 0)
	case in.Has(core.ActionRight):
		g.engine.SetDirectionIntent(1, 0)
	}

	if in.Has(core.ActionPause) {
		if g.engine.Paused() && g.last.ResumeIn == 0 {
			g.engine.Resume()
		} else {
			g.engine.Pause()
		}
	}

	if in.Has(core.ActionRestart) {
		if err := g.engine.Reset(g.engine.Level()); err != nil {
			g.logger.Error("restart failed", "err", err)
		}
	}

	if in.Has(core.ActionRegenerate) {
		if err := g.engine.RegenerateProceduralLayout(); err != nil {
			g.logger.Error("regenerate failed", "err", err)
		}
	}

	g.clock = g.clock.Add(g.TickInterval())
	g.last = g.engine.Tick(g.clock)
	return core.StepResult{State: g.State()}
}

// TickInterval returns the grid step period at the current difficulty.
func (g *Game) TickInterval() time.Duration {
	if g.difficulty == nil {
		return config.DefaultPacmanConfig().Timing.Tick()
	}
	return g.difficulty.TickInterval(g.cfg.Timing.Tick(), g.last.Score, int(g.last.Tick))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.last.Score,
		GameOver: g.last.GameOver,
		Paused:   g.last.Paused,
	}
}

// Snapshot returns the state after the latest Step.
func (g *Game) Snapshot() Snapshot {
	return g.last
}

// Finish persists the running session's score.
func (g *Game) Finish() {
	if g.engine != nil {
		g.engine.Finish()
	}
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}
	renderSnapshot(dst, g.last, g.Title())
}
