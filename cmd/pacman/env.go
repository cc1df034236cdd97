package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/config"
)

// Environment variables that default the global flags.
const (
	envSeed       = "PACMAN_SEED"
	envDB         = "PACMAN_DB"
	envConfig     = "PACMAN_CONFIG"
	envDifficulty = "PACMAN_DIFFICULTY"
)

// loadDotEnv reads .env from the working directory if there is one.
// Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}
}

// applyEnv fills flags the user did not set from the environment.
func applyEnv(cmd *cobra.Command) error {
	unset := func(name string) bool {
		f := cmd.Flag(name)
		return f == nil || !f.Changed
	}

	if v, ok := os.LookupEnv(envSeed); ok && unset("seed") {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", envSeed, err)
		}
		flagSeed = seed
	}
	if v, ok := os.LookupEnv(envDB); ok && unset("db") {
		flagDBPath = v
	}
	if v, ok := os.LookupEnv(envConfig); ok && unset("config") {
		flagConfig = v
	}
	if v, ok := os.LookupEnv(envDifficulty); ok && unset("difficulty") {
		flagDifficulty = v
	}

	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}
	return nil
}

// newLogger writes to the --log file, or to fallback without one.
// The returned closer must be called on exit.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func()) {
	w := fallback
	closer := func() {}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			w = f
			closer = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return logger, closer
}
