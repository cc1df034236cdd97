// Package config provides YAML-based game configuration loading and
// difficulty management for the maze game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// PacmanConfig contains all configuration for the maze game.
type PacmanConfig struct {
	Timing     PacmanTiming     `yaml:"timing"`
	Scoring    PacmanScoring    `yaml:"scoring"`
	Ghosts     PacmanGhosts     `yaml:"ghosts"`
	Generator  PacmanGenerator  `yaml:"generator"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PacmanTiming holds every duration the simulation uses, in milliseconds.
type PacmanTiming struct {
	TickMS     int `yaml:"tick_ms"`
	PowerMS    int `yaml:"power_ms"`
	RespawnMS  int `yaml:"respawn_ms"`
	GameOverMS int `yaml:"game_over_ms"`
	ResumeMS   int `yaml:"resume_ms"`
}

// Tick returns the grid step period.
func (t PacmanTiming) Tick() time.Duration { return ms(t.TickMS) }

// Power returns how long a pellet keeps the player powered.
func (t PacmanTiming) Power() time.Duration { return ms(t.PowerMS) }

// Respawn returns the delay before a captured ghost returns home.
func (t PacmanTiming) Respawn() time.Duration { return ms(t.RespawnMS) }

// GameOver returns the pause between game over and the automatic reset.
func (t PacmanTiming) GameOver() time.Duration { return ms(t.GameOverMS) }

// Resume returns the countdown before play continues after a pause.
func (t PacmanTiming) Resume() time.Duration { return ms(t.ResumeMS) }

// PacmanScoring defines points per event.
type PacmanScoring struct {
	Dot     int `yaml:"dot"`
	Pellet  int `yaml:"pellet"`
	Capture int `yaml:"capture"`
}

// PacmanGhosts tunes the pursuit strategies.
type PacmanGhosts struct {
	AmbushLookahead   int `yaml:"ambush_lookahead"`
	OpportunistRadius int `yaml:"opportunist_radius"`
}

// PacmanGenerator tunes the procedural layout generator.
type PacmanGenerator struct {
	WallProbability float64 `yaml:"wall_probability"`
	MaxAttempts     int     `yaml:"max_attempts"`
}

// Validate rejects settings the simulation cannot run with.
func (c PacmanConfig) Validate() error {
	var errs []error
	if c.Timing.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_ms must be positive, got %d", c.Timing.TickMS))
	}
	if c.Timing.PowerMS < 0 || c.Timing.RespawnMS < 0 || c.Timing.GameOverMS < 0 || c.Timing.ResumeMS < 0 {
		errs = append(errs, errors.New("timing values must not be negative"))
	}
	if c.Scoring.Dot < 0 || c.Scoring.Pellet < 0 || c.Scoring.Capture < 0 {
		errs = append(errs, errors.New("scoring values must not be negative"))
	}
	if p := c.Generator.WallProbability; p < 0 || p > 1 {
		errs = append(errs, fmt.Errorf("generator.wall_probability must be in [0,1], got %g", p))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	MinTickMS       int     `yaml:"min_tick_ms"`      // Fastest allowed grid step
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
