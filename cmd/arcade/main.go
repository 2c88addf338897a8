// arcade is a terminal arcade with an artillery duel and a hidden-object hunt.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores or duel history
//	arcade progress          - Show or reset hunt progress
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--assets <dir>      - Directory with sprite overrides
//	--audio-dir <dir>   - Directory with WAV clips and music
//	--mute              - Start with sound off
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/vovakirdan/siege-arcade/internal/games/artillery"
	_ "github.com/vovakirdan/siege-arcade/internal/games/hunt"
)

// Persistent flags shared by every command.
var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagAssets   string
	flagAudioDir string
	flagMute     bool
	flagLogLevel string
	flagLogFile  string
	flagProfile  string
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "arcade",
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "Siege Arcade - artillery duels and hidden-object hunts in your terminal",
	Long: `Siege Arcade is a terminal game collection with two games:

  artillery  - A turn-based duel. Charge a shot, lob it over the towers,
               knock the other fighter out.
  hunt       - Find the hidden objects in each scene to unlock the next
               level and its cutscene.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores and duel history
  progress  - Show or reset hunt progress

Examples:
  arcade list
  arcade play artillery --mode hotseat
  arcade play hunt --levels ./my-levels
  arcade menu
  arcade serve --ssh :2222
  arcade scores --duels`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "simulation ticks per second")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed, 0 picks one from the clock")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "scores and progress database")
	pf.StringVar(&flagAssets, "assets", "", "directory with sprite overrides")
	pf.StringVar(&flagAudioDir, "audio-dir", "", "directory with clips/ and music/ WAV files")
	pf.BoolVar(&flagMute, "mute", false, "start with sound off")
	pf.StringVar(&flagLogLevel, "log-level", "info", "debug, info, warn or error")
	pf.StringVar(&flagLogFile, "log-file", "~/.arcade/arcade.log", "log file for interactive commands")
	pf.StringVar(&flagProfile, "profile", "", "player profile for saved progress")

	rootCmd.AddCommand(listCmd, playCmd, menuCmd, serveCmd, scoresCmd, progressCmd)
}
