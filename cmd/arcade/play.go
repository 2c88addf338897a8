package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/siege-arcade/internal/config"
	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/games/artillery"
	"github.com/vovakirdan/siege-arcade/internal/games/hunt"
	"github.com/vovakirdan/siege-arcade/internal/multiplayer"
	"github.com/vovakirdan/siege-arcade/internal/platform/tui"
	"github.com/vovakirdan/siege-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMode       string
	flagLevels     string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Artillery controls:
  Arrows       - Pick a fighter
  Up/Down      - Aim
  Space        - Start charging, press again to fire
  Mouse        - Aim, hold and release to fire
  Esc          - Cancel a charge
  P            - Pause (Esc while paused returns to the menu)
  R            - Rematch after the duel
  M            - Mute
  Q/Ctrl+C     - Quit

Hunt controls:
  Arrows/Mouse - Move the crosshair, or browse the level list
  Space/Enter  - Search under the crosshair, or open a level
  Esc          - Back to the level list, or skip a cutscene
  X            - Reset saved progress (level list)

Modes (artillery):
  cpu      - Fight the computer
  hotseat  - Two players share the keyboard

Difficulty options (artillery vs CPU):
  easy   - Sloppy aim, long thinking
  normal - Starts at 30% and sharpens during the duel
  hard   - Starts at 70% and sharpens during the duel
  fixed  - No progression, stays at the config's initial level

Without --mode, artillery asks for mode and difficulty first.

Examples:
  arcade play artillery
  arcade play artillery --mode hotseat
  arcade play artillery --mode cpu --difficulty hard
  arcade play artillery --config ./my-artillery.yaml
  arcade play hunt --levels ./my-levels`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Artillery mode: cpu, hotseat (asks when empty)")
	playCmd.Flags().StringVar(&flagLevels, "levels", "", "Directory of hunt level files replacing the built-in pack")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	env := openEnv()
	defer env.Close()

	game, err := prepareGame(gameID, env.cfg, flagMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	// User pressed back or quit
	if game == nil {
		return
	}

	env.logger.Info("game started", "game", gameID)
	if _, err := tui.Run(game, env.cfg, env.opts); err != nil {
		env.logger.Error("game crashed", "game", gameID, "error", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
	}
}

// prepareGame applies the command line settings and creates the game.
// A nil game without error means the player backed out of the setup.
func prepareGame(gameID string, cfg core.RuntimeConfig, mode string) (registry.Game, error) {
	switch gameID {
	case "artillery":
		artillery.SetConfigPath(flagConfig)
		artillery.SetDifficultyPreset(flagDifficulty)
	case "hunt":
		hunt.SetConfigPath(flagConfig)
		hunt.SetLevelsDir(flagLevels)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}

	duel, ok := game.(*artillery.Game)
	if !ok {
		return game, nil
	}

	if mode != "" {
		m, err := multiplayer.ParseMatchMode(mode)
		if err != nil {
			return nil, err
		}
		artillery.SetMode(m)
		return game, nil
	}

	// Show the duel setup
	selection, err := tui.RunDuelSelector(cfg)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		return nil, nil
	}
	preset := selection.Difficulty
	if preset == "" {
		preset = config.ParsePreset(flagDifficulty)
	}
	duel.Configure(selection.Mode, preset)
	return game, nil
}
