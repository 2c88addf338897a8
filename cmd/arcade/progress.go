package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/siege-arcade/internal/config"
	"github.com/vovakirdan/siege-arcade/internal/games/hunt"
	"github.com/vovakirdan/siege-arcade/internal/storage"
)

var (
	flagReset       bool
	flagAllProfiles bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset hidden-object hunt progress",
	Long: `Show the unlocked levels and collected sticky notes of the hunt.

Progress is kept per profile (see --profile). SSH players get the profile
of their user name.

Examples:
  arcade progress
  arcade progress --profile alice
  arcade progress --all
  arcade progress --profile alice --reset`,
	Run: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the saved progress of the profile")
	progressCmd.Flags().BoolVar(&flagAllProfiles, "all", false, "List every saved profile")
	progressCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom hunt config YAML")
}

func runProgress(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadHunt(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.DefaultHuntConfig()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	keys := []string{hunt.ProgressKey(cfg.ProgressKey, flagProfile)}
	if flagAllProfiles {
		keys, err = store.Keys(cfg.ProgressKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(keys) == 0 {
			fmt.Println("No saved progress.")
			return
		}
	}

	for _, key := range keys {
		if key != cfg.ProgressKey && !strings.HasPrefix(key, cfg.ProgressKey+"/") {
			continue
		}
		ps := hunt.NewProgressStore(store, key)
		if flagReset {
			if err := ps.Reset(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Reset progress for %s.\n", profileName(cfg.ProgressKey, key))
			continue
		}

		p, err := ps.Load(0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		found := 0
		for _, n := range p.StickiesFoundInLevels {
			if n > 0 {
				found++
			}
		}
		fmt.Printf("%s: level %d unlocked, %d sticky notes from %d levels\n",
			profileName(cfg.ProgressKey, key), p.MaxUnlockedLevel+1, p.StickyNotes, found)
	}
}

// profileName recovers the profile from a progress key.
func profileName(base, key string) string {
	if key == base {
		return "default profile"
	}
	return "profile " + key[len(base)+1:]
}
