package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/siege-arcade/internal/registry"
	"github.com/vovakirdan/siege-arcade/internal/storage"
)

var (
	flagDuels bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and duel history",
	Long: `Display the top 10 high scores for a game, the recent artillery duels,
or a summary of every game when no game is given.

Examples:
  arcade scores
  arcade scores artillery
  arcade scores --duels
  arcade scores artillery --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagDuels, "duels", false, "Show recent duels and fighter records")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the game")
}

func runScores(cmd *cobra.Command, args []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagDuels:
		err = printDuels(store)
	case len(args) == 0:
		err = printSummary(store)
	default:
		err = printGameScores(store, args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printGameScores(store *storage.Store, gameID string) error {
	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	title := game.Title()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-6s  %-6s  %s\n", "Game", "Games", "Best", "Last played")
	fmt.Printf("  %-12s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----------")
	for _, id := range ids {
		gs := all[id]
		fmt.Printf("  %-12s  %-6d  %-6d  %s\n", id, gs.GamesCount, gs.HighScore, gs.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printDuels(store *storage.Store) error {
	duels, err := store.RecentDuels(10)
	if err != nil {
		return err
	}

	fmt.Println("Recent Duels")
	fmt.Println()
	if len(duels) == 0 {
		fmt.Println("No duels recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arcade play artillery' to fight the first one!")
		return nil
	}

	fmt.Printf("  %-16s  %-8s  %-24s  %-12s  %s\n", "Date", "Mode", "Fighters", "Winner", "Shots")
	for _, d := range duels {
		winner := d.Winner
		if d.EndReason != "completed" {
			winner = "(" + d.EndReason + ")"
		}
		fighters := fmt.Sprintf("%s vs %s", d.Player, d.Opponent)
		fmt.Printf("  %-16s  %-8s  %-24s  %-12s  %d\n", d.CreatedAt.Format("2006-01-02 15:04"), d.Mode, fighters, winner, d.Shots)
	}

	stats, err := store.CharacterStats()
	if err != nil || len(stats) == 0 {
		return err
	}
	fmt.Println()
	fmt.Println("Fighters")
	for _, st := range stats {
		fmt.Printf("  %-12s  %d won of %d\n", st.Name, st.Won, st.Played)
	}
	return nil
}
