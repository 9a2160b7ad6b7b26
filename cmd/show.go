package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/go-tennis-metrics/internal/report"
	"github.com/courtside/go-tennis-metrics/internal/storage"
)

var showTop int

var showCmd = &cobra.Command{
	Use:   "show <match-id-prefix>",
	Short: "Show stored match stats by id prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().IntVar(&showTop, "top", 5, "number of shifts to print, 0 for all in point order")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	stats, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if stats == nil {
		fmt.Fprintf(os.Stderr, "No match found with id prefix %q\n", prefix)
		return nil
	}

	moments, err := db.GetKeyMoments(stats.MatchID)
	if err != nil {
		return fmt.Errorf("get key moments: %w", err)
	}

	report.PrintMatchHeader(os.Stdout, stats)
	report.PrintMomentumTable(os.Stdout, stats)
	fmt.Fprintln(os.Stdout)
	report.PrintSetTable(os.Stdout, stats.SetBreakdown)
	fmt.Fprintln(os.Stdout)
	report.PrintShiftsTable(os.Stdout, moments.MomentumShifts, showTop)
	fmt.Fprintln(os.Stdout)
	report.PrintPeaksTable(os.Stdout, moments.PeakMoments)
	return nil
}
