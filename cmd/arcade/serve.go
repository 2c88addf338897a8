package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/siege-arcade/internal/assets"
	"github.com/vovakirdan/siege-arcade/internal/logging"
	"github.com/vovakirdan/siege-arcade/internal/platform/tui"
	"github.com/vovakirdan/siege-arcade/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the arcade over SSH",
	Long: `Run an SSH server where every connection gets its own arcade.

All players share the high score and duel tables. Hunt progress and the
menu planet are kept per SSH user name. Sound is never played remotely.

The host key is created on first start at ~/.arcade/host_key unless
--host-key points elsewhere.

Examples:
  arcade serve
  arcade serve --ssh :2222 --idle-timeout 10m
  arcade serve --db ./scores.db --log-level debug

Connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "host key file (default ~/.arcade/host_key)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "disconnect idle players after this long")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := logging.New(os.Stderr, logging.Options{Prefix: "arcade-ssh", Level: flagLogLevel})

	lib := assets.NewLibrary(flagAssets)
	preloadCtx, cancel := context.WithTimeout(cmd.Context(), preloadTimeout)
	lib.Preload(preloadCtx, append(registry.AllAssets(), tui.MenuAssets()...), logger)
	cancel()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagFPS,
		Assets:      lib,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(os.Stderr, "arcade listening on %s, Ctrl+C to stop\n", flagSSHAddr)
	return server.Serve(ctx)
}
