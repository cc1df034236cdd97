package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Pac-Man over SSH",
	Long: `Start an SSH server where every connection gets its own game,
starting at the level menu. All sessions share the leaderboard in --db.

The host key is read from --host-key, or generated at ~/.pacman/host_key
on first start. Connection events are logged to stderr (or --log).

Examples:
  pacman serve                      # listen on :23234
  pacman serve --ssh :2222 --max-sessions 20
  pacman serve --db ./scores.db

Connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Host key file (generated if missing)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Minutes without input before a session is closed")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Concurrent session cap (0 = unlimited)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, closeLog := newLogger("pacman-ssh", os.Stderr)
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	} else {
		logger.Warn("serving without a leaderboard")
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		Store:       store,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		MaxSessions: flagMaxSessions,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving Pac-Man on %s (Ctrl+C to stop)\n", server.Addr())
	return server.ListenAndServe(ctx)
}
