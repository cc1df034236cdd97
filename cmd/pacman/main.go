// pacman is a terminal Pac-Man with hand-made and procedurally generated mazes.
//
// Usage:
//
//	pacman levels            - List the levels
//	pacman play [level]      - Play a level (menu when no level is given)
//	pacman generate          - Print a procedural layout for a seed
//	pacman scores [game]     - Show high scores and statistics
//	pacman settings          - Show or change stored settings
//	pacman serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.pacman/scores.db)
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

func main() {
	loadDotEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pacman",
	Short: "Pac-Man in your terminal",
	Long: `Pac-Man in your terminal: eat every dot, grab a power pellet to stun
the ghosts, and don't get caught.

Available commands:
  levels    - Show all levels
  play      - Play a level
  generate  - Print a procedural maze
  scores    - View high scores and statistics
  settings  - View or change settings
  serve     - Start SSH server for remote play

Environment (also read from .env):
  PACMAN_SEED, PACMAN_DB, PACMAN_CONFIG, PACMAN_DIFFICULTY

Examples:
  pacman play
  pacman play pillars --difficulty hard
  pacman generate --seed 42
  pacman serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := applyEnv(cmd); err != nil {
			return err
		}
		pacman.SetConfigPath(flagConfig)
		pacman.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pacman/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write game logs to this file")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
}
