package config

import (
	_ "embed"
)

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

// DefaultPacmanConfig returns the default maze game configuration.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Timing: PacmanTiming{
			TickMS:     200,
			PowerMS:    8000,
			RespawnMS:  3000,
			GameOverMS: 1000,
			ResumeMS:   3000,
		},
		Scoring: PacmanScoring{
			Dot:     1,
			Pellet:  5,
			Capture: 10,
		},
		Ghosts: PacmanGhosts{
			AmbushLookahead:   4,
			OpportunistRadius: 8,
		},
		Generator: PacmanGenerator{
			WallProbability: 0.25,
			MaxAttempts:     1000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				MinTickMS:       120,
			},
		},
	}
}
