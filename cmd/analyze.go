package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/courtside/go-tennis-metrics/internal/analyzer"
	"github.com/courtside/go-tennis-metrics/internal/config"
	"github.com/courtside/go-tennis-metrics/internal/ingest"
	"github.com/courtside/go-tennis-metrics/internal/model"
	"github.com/courtside/go-tennis-metrics/internal/report"
	"github.com/courtside/go-tennis-metrics/internal/slam"
	"github.com/courtside/go-tennis-metrics/internal/storage"
)

// analyze command flags, shared with moments via matchFlags.
var (
	analyzeTournament string
	analyzeYear       int
	analyzePlayer1    string
	analyzePlayer2    string
	analyzeMatchID    string
	analyzePoints     string
	analyzeMatches    string

	analyzeThreshold float64
	analyzeSmooth    bool
	analyzeWindow    int
	analyzeTop       int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a match and store its momentum metrics",
	Long: `Loads one match from point-by-point CSV data, computes momentum
statistics, consistency scores, and key moments, stores them, and prints
the report tables.

The match is selected either by --match (a dataset match id) or by
--player1/--player2 name lookup. Data comes from local --points/--matches
files or is downloaded for --tournament/--year.

Examples:
  tennismetrics analyze --tournament wimbledon --year 2019 --player1 "Novak Djokovic" --player2 "Roger Federer"
  tennismetrics analyze --points 2019-wimbledon-points.csv --matches 2019-wimbledon-matches.csv --match 2019-wimbledon-1701`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	addMatchFlags(analyzeCmd)
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", analyzer.DefaultShiftThreshold, "momentum shift sensitivity multiplier")
	analyzeCmd.Flags().BoolVar(&analyzeSmooth, "smooth", false, "smooth momentum series before analysis")
	analyzeCmd.Flags().IntVar(&analyzeWindow, "window", 0, "smoothing window size (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 5, "number of shifts to print, 0 for all in point order")
}

func addMatchFlags(c *cobra.Command) {
	c.Flags().StringVar(&analyzeTournament, "tournament", "", "tournament key (ausopen, frenchopen, wimbledon, usopen)")
	c.Flags().IntVar(&analyzeYear, "year", 0, "tournament year")
	c.Flags().StringVar(&analyzePlayer1, "player1", "", "first player name")
	c.Flags().StringVar(&analyzePlayer2, "player2", "", "second player name")
	c.Flags().StringVar(&analyzeMatchID, "match", "", "dataset match id, e.g. 2019-wimbledon-1701")
	c.Flags().StringVar(&analyzePoints, "points", "", "local points CSV (overrides download)")
	c.Flags().StringVar(&analyzeMatches, "matches", "", "local matches CSV (overrides download)")
}

// resolveMatch turns the shared flags into a loaded match: local files
// win over downloads, an explicit match id wins over a name lookup.
func resolveMatch(ctx context.Context, cfg *config.Config) (*model.Match, error) {
	pointsPath, matchesPath := analyzePoints, analyzeMatches
	if pointsPath == "" || matchesPath == "" {
		if analyzeTournament == "" || analyzeYear == 0 {
			return nil, fmt.Errorf("need either --points/--matches or --tournament/--year")
		}
		if _, ok := cfg.Tournaments[analyzeTournament]; !ok {
			return nil, fmt.Errorf("unknown tournament %q", analyzeTournament)
		}
		if !cfg.ValidYear(analyzeYear) {
			return nil, fmt.Errorf("year %d outside supported range %d-%d",
				analyzeYear, cfg.Data.SupportedYears.Min, cfg.Data.SupportedYears.Max)
		}

		client := slam.NewClient(cfg.Timeout())
		client.Retries = cfg.Data.MaxRetries
		files, err := client.DownloadTournament(ctx, cacheDir(), analyzeTournament, analyzeYear)
		if err != nil {
			return nil, fmt.Errorf("download tournament: %w", err)
		}
		pointsPath, matchesPath = files.Points, files.Matches
	}

	matchID := analyzeMatchID
	if matchID == "" {
		if analyzePlayer1 == "" || analyzePlayer2 == "" {
			return nil, fmt.Errorf("need either --match or --player1/--player2")
		}
		if err := ingest.ValidatePlayers(analyzePlayer1, analyzePlayer2); err != nil {
			return nil, err
		}
		var err error
		matchID, err = ingest.FindMatchID(matchesPath, analyzePlayer1, analyzePlayer2)
		if err != nil {
			return nil, err
		}
	}

	return ingest.LoadMatch(pointsPath, matchesPath, matchID)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := resolveMatch(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if analyzeSmooth {
		window := analyzeWindow
		if window == 0 {
			window = cfg.Visualization.Momentum.WindowSize
		}
		m = analyzer.Smooth(m, window)
	}

	stats := analyzer.Analyze(m)
	moments := analyzer.KeyMoments(m, analyzeThreshold)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	exists, err := db.MatchExists(m.ID)
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists {
		fmt.Fprintf(os.Stdout, "Match %s already stored, replacing.\n", m.ID)
	}
	if err := db.InsertMatchStats(stats, analyzeTournament, analyzeYear); err != nil {
		return fmt.Errorf("insert match stats: %w", err)
	}
	if err := db.InsertKeyMoments(m.ID, moments); err != nil {
		return fmt.Errorf("insert key moments: %w", err)
	}

	report.PrintMatchHeader(os.Stdout, stats)
	report.PrintMomentumTable(os.Stdout, stats)
	fmt.Fprintln(os.Stdout)
	report.PrintSetTable(os.Stdout, stats.SetBreakdown)
	fmt.Fprintln(os.Stdout)
	report.PrintShiftsTable(os.Stdout, moments.MomentumShifts, analyzeTop)
	fmt.Fprintln(os.Stdout)
	report.PrintPeaksTable(os.Stdout, moments.PeakMoments)
	return nil
}
