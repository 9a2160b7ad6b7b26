package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/go-tennis-metrics/internal/clock"
	"github.com/courtside/go-tennis-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'tennismetrics analyze' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-22s  %-22s  %-22s  %-24s  %-14s  %6s  %s\n",
		"MATCH", "PLAYER 1", "PLAYER 2", "SCORE", "WINNER", "POINTS", "TIME")
	fmt.Fprintf(os.Stdout, "%-22s  %-22s  %-22s  %-24s  %-14s  %6s  %s\n",
		"──────────────────────", "──────────────────────", "──────────────────────",
		"────────────────────────", "──────────────", "──────", "────────")
	for _, m := range matches {
		duration := "—"
		if m.Duration > 0 {
			duration = clock.FormatClock(m.Duration)
		}
		winner := m.Winner
		if len(winner) > 14 {
			winner = winner[:14]
		}
		fmt.Fprintf(os.Stdout, "%-22s  %-22s  %-22s  %-24s  %-14s  %6d  %s\n",
			m.MatchID, m.Player1, m.Player2, m.FinalScore, winner, m.TotalPoints, duration)
	}
	return nil
}
