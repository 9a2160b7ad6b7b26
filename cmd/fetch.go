package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/go-tennis-metrics/internal/slam"
)

// fetch command flags.
var (
	// fetchTournament is the dataset tournament key (ausopen, frenchopen, wimbledon, usopen).
	fetchTournament string
	// fetchYear is the tournament edition year.
	fetchYear int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download point-by-point data for a tournament",
	Long: `Downloads the points and matches CSV files for one Grand Slam edition
into the local cache. Already-downloaded files are skipped.

Examples:
  tennismetrics fetch --tournament wimbledon --year 2019
  tennismetrics fetch --tournament usopen --year 2021`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchTournament, "tournament", "", "tournament key (ausopen, frenchopen, wimbledon, usopen)")
	fetchCmd.Flags().IntVar(&fetchYear, "year", 0, "tournament year")
	fetchCmd.MarkFlagRequired("tournament")
	fetchCmd.MarkFlagRequired("year")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, ok := cfg.Tournaments[fetchTournament]; !ok {
		return fmt.Errorf("unknown tournament %q, expected one of ausopen, frenchopen, wimbledon, usopen", fetchTournament)
	}
	if !cfg.ValidYear(fetchYear) {
		return fmt.Errorf("year %d outside supported range %d-%d",
			fetchYear, cfg.Data.SupportedYears.Min, cfg.Data.SupportedYears.Max)
	}

	client := slam.NewClient(cfg.Timeout())
	client.Retries = cfg.Data.MaxRetries

	fmt.Fprintf(os.Stdout, "Fetching %s %d (%s)...\n", cfg.TournamentName(fetchTournament), fetchYear, fetchTournament)
	files, err := client.DownloadTournament(cmd.Context(), cacheDir(), fetchTournament, fetchYear)
	if err != nil {
		return fmt.Errorf("download tournament: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Points:  %s\nMatches: %s\n", files.Points, files.Matches)
	return nil
}
