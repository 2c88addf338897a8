package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/siege-arcade/internal/assets"
	"github.com/vovakirdan/siege-arcade/internal/audio"
	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/logging"
	"github.com/vovakirdan/siege-arcade/internal/platform/tui"
	"github.com/vovakirdan/siege-arcade/internal/registry"
	"github.com/vovakirdan/siege-arcade/internal/storage"
)

// preloadTimeout bounds the asset preload before the first frame.
const preloadTimeout = 5 * time.Second

// arcadeEnv holds everything an interactive command needs.
type arcadeEnv struct {
	cfg     core.RuntimeConfig
	opts    tui.Options
	logger  *log.Logger
	closers []io.Closer
	player  audio.Player
}

// openEnv wires logging, assets, audio and storage from the global flags.
// Failures are logged and degrade to a game without that feature.
func openEnv() *arcadeEnv {
	logger, logCloser, err := logging.NewFile(flagLogFile, logging.Options{Prefix: "arcade", Level: flagLogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	env := &arcadeEnv{logger: logger, closers: []io.Closer{logCloser}}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	lib := assets.NewLibrary(flagAssets)
	ctx, cancel := context.WithTimeout(context.Background(), preloadTimeout)
	refs := append(registry.AllAssets(), tui.MenuAssets()...)
	lib.Preload(ctx, refs, logger)
	cancel()
	for _, ref := range lib.Missing() {
		if ref.Required {
			logger.Error("running with fallback art", "asset", ref.Name)
		}
	}

	acfg := audio.DefaultConfig()
	acfg.Dir = flagAudioDir
	acfg.Enabled = !flagMute
	player, err := audio.New(acfg, logger)
	if err != nil {
		logger.Warn("sound disabled", "error", err)
	}
	env.player = player

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	env.cfg = core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Assets:   lib,
		Profile:  flagProfile,
	}
	if store != nil {
		env.cfg.Store = store
		env.closers = append(env.closers, store)
	}
	env.opts = tui.Options{
		Store:  store,
		Audio:  player,
		Logger: logger,
	}
	logger.Debug("arcade ready", "width", width, "height", height, "assets", len(refs), "missing", len(lib.Missing()))
	return env
}

// Close releases everything openEnv acquired.
func (e *arcadeEnv) Close() {
	if e.player != nil {
		e.player.Close()
	}
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			e.logger.Warn("close failed", "error", err)
		}
	}
}
