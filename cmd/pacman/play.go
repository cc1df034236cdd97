package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/platform/feed"
	"github.com/vovakirdan/tui-pacman/internal/platform/tui"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var (
	flagFeedAddr string
	flagFeedPath string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing. Without a level a menu lets you pick one; after each
game you return to it.

Controls:
  Arrows/WASD  - Move
  P/Space      - Pause, press again to resume after a countdown
  R            - Restart the level
  N            - New random maze (Random level)
  B/Esc        - Back to the menu (while paused or after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower steps, longer power-ups
  normal - Default timing, speeds up with score
  hard   - Faster steps, shorter power-ups, ghosts flee later
  fixed  - No speed-up

Examples:
  pacman play
  pacman play cross
  pacman play 4 --seed 42
  pacman play --difficulty hard
  pacman play --feed :8090`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "Serve a WebSocket snapshot feed on this address (e.g. :8090)")
	playCmd.Flags().StringVar(&flagFeedPath, "feed-path", "/feed", "HTTP path of the snapshot feed")
}

func runPlay(cmd *cobra.Command, args []string) error {
	level := -1
	if len(args) == 1 {
		l, err := pacman.ParseLevel(args[0])
		if err != nil {
			return fmt.Errorf("%w (run 'pacman levels')", err)
		}
		level = l
	}

	logger, closeLog := newLogger("pacman", io.Discard)
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
		applyStoredDifficulty(store)
	}

	cfg := runtimeConfig()
	opts := []tui.ModelOption{tui.WithLogger(logger)}

	if flagFeedAddr != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		hub := feed.NewHub(logger)
		go func() {
			if err := hub.ListenAndServe(ctx, flagFeedAddr, flagFeedPath); err != nil {
				logger.Error("snapshot feed stopped", "err", err)
			}
		}()
		opts = append(opts, tui.WithPublisher(hub))
	}

	if level >= 0 {
		cfg.Level = level
		game, err := registry.Create(gameForLevel(level))
		if err != nil {
			return err
		}
		_, err = tui.Run(game, store, cfg, opts...)
		return err
	}

	return menuLoop(store, cfg, opts, logger)
}

// menuLoop alternates between the level menu, the scoreboard and games
// until the user quits.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig, opts []tui.ModelOption, logger *log.Logger) error {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "err", err)
			continue
		}

		// Fresh maze rolls for each game unless a seed was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, store, cfg, opts...)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}
}

// openStore opens the scores database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// applyStoredDifficulty uses the saved difficulty when no flag or env set one.
func applyStoredDifficulty(store *storage.Store) {
	if flagDifficulty != "" {
		return
	}
	st, err := store.LoadSettings()
	if err != nil || st.Difficulty == "" {
		return
	}
	pacman.SetDifficultyPreset(st.Difficulty)
}
