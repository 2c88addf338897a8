package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick games from an interactive menu",
	Long: `Open the arcade menu. Finishing a game, or pressing Esc while it is
paused, brings you back here.

Menu keys:
  Up/Down, j/k   move
  Enter, Space   play
  Tab            scoreboards and duel history
  q              quit

Examples:
  arcade menu
  arcade menu --profile alice --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	env := openEnv()
	defer env.Close()

	cfg := env.cfg
	for {
		res, err := tui.RunMenu(cfg, env.opts)
		if err != nil {
			return err
		}
		cfg = res.Config

		var back bool
		switch {
		case res.Quit || (res.GameID == "" && !res.WantsScoreboard):
			return nil
		case res.WantsScoreboard:
			back, err = tui.RunScoreboard(env.opts.Store, cfg.ScreenW, cfg.ScreenH)
		default:
			back, err = playFromMenu(env, res.GameID, &cfg)
		}
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

// playFromMenu runs one game. Setup problems are logged and lead back to
// the menu; only a crashed program is returned as an error.
func playFromMenu(env *arcadeEnv, gameID string, cfg *core.RuntimeConfig) (bool, error) {
	game, err := prepareGame(gameID, *cfg, "")
	if err != nil {
		env.logger.Error("cannot start game", "game", gameID, "error", err)
		return true, nil
	}
	if game == nil {
		return true, nil
	}
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	env.logger.Info("game started", "game", gameID)
	return tui.Run(game, *cfg, env.opts)
}
