package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/siege-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games in the arcade",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		games := registry.List()
		if len(games) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No games registered.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE")
		for _, g := range games {
			fmt.Fprintf(w, "%s\t%s\n", g.ID, g.Title)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "\nStart one with: arcade play <id>\n")
		return nil
	},
}
