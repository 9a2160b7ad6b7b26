package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/go-tennis-metrics/internal/analyzer"
	"github.com/courtside/go-tennis-metrics/internal/report"
	"github.com/courtside/go-tennis-metrics/internal/storage"
)

// moments command flags.
var (
	momentsThreshold float64
	momentsTop       int
	momentsSave      bool
)

var momentsCmd = &cobra.Command{
	Use:   "moments",
	Short: "Re-detect key moments at a custom sensitivity",
	Long: `Reloads a match from CSV data and runs the key-moment detector with
the given threshold, without touching the stored statistics. Use --save
to replace the stored moments with the new detection.

A lower threshold flags more shifts; the default of 2.0 keeps only
changes at least twice the match's median point-to-point change.`,
	Args: cobra.NoArgs,
	RunE: runMoments,
}

func init() {
	addMatchFlags(momentsCmd)
	momentsCmd.Flags().Float64Var(&momentsThreshold, "threshold", analyzer.DefaultShiftThreshold, "momentum shift sensitivity multiplier")
	momentsCmd.Flags().IntVar(&momentsTop, "top", 0, "number of shifts to print, 0 for all in point order")
	momentsCmd.Flags().BoolVar(&momentsSave, "save", false, "replace stored key moments with this detection")
}

func runMoments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := resolveMatch(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	moments := analyzer.KeyMoments(m, momentsThreshold)

	fmt.Fprintf(os.Stdout, "\n%s vs %s  |  ID: %s  |  Threshold: %.2f\n\n",
		m.Player1, m.Player2, m.ID, momentsThreshold)
	report.PrintShiftsTable(os.Stdout, moments.MomentumShifts, momentsTop)
	fmt.Fprintln(os.Stdout)
	report.PrintPeaksTable(os.Stdout, moments.PeakMoments)

	if momentsSave {
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
		if err := db.InsertKeyMoments(m.ID, moments); err != nil {
			return fmt.Errorf("save key moments: %w", err)
		}
		fmt.Fprintf(os.Stdout, "\nSaved %d shifts and %d peaks for %s.\n",
			len(moments.MomentumShifts), len(moments.PeakMoments), m.ID)
	}
	return nil
}
