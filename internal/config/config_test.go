package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}
	if cfg.Data.DownloadTimeout != 30 {
		t.Errorf("DownloadTimeout: want 30, got %d", cfg.Data.DownloadTimeout)
	}
	if cfg.Data.SupportedYears.Min != 2011 || cfg.Data.SupportedYears.Max != 2024 {
		t.Errorf("SupportedYears: want 2011–2024, got %+v", cfg.Data.SupportedYears)
	}
	if cfg.Visualization.Momentum.WindowSize != 5 {
		t.Errorf("WindowSize: want 5, got %d", cfg.Visualization.Momentum.WindowSize)
	}
	if len(cfg.Tournaments) != 4 {
		t.Errorf("expected 4 default tournaments, got %d", len(cfg.Tournaments))
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("data:\n  download_timeout: 60\n  supported_years:\n    min: 2015\n    max: 2020\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.DownloadTimeout != 60 {
		t.Errorf("DownloadTimeout: want 60, got %d", cfg.Data.DownloadTimeout)
	}
	if !cfg.ValidYear(2015) || cfg.ValidYear(2021) {
		t.Errorf("year range not applied: %+v", cfg.Data.SupportedYears)
	}
	// Untouched keys keep their defaults.
	if cfg.Visualization.Momentum.WindowSize != 5 {
		t.Errorf("WindowSize default lost: got %d", cfg.Visualization.Momentum.WindowSize)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TENNIS_DATA__DOWNLOAD_TIMEOUT", "45")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.DownloadTimeout != 45 {
		t.Errorf("env override: want 45, got %d", cfg.Data.DownloadTimeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for explicitly named missing config file")
	}
}

func TestValidYear(t *testing.T) {
	cfg := Default()
	cases := []struct {
		year int
		want bool
	}{
		{2010, false},
		{2011, true},
		{2019, true},
		{2024, true},
		{2025, false},
	}
	for _, c := range cases {
		if got := cfg.ValidYear(c.year); got != c.want {
			t.Errorf("ValidYear(%d): want %v, got %v", c.year, c.want, got)
		}
	}
}

func TestTournamentName(t *testing.T) {
	cfg := Default()
	if got := cfg.TournamentName("wimbledon"); got != "Wimbledon" {
		t.Errorf("TournamentName(wimbledon): got %q", got)
	}
	if got := cfg.TournamentName("exhibition"); got != "exhibition" {
		t.Errorf("unknown key should fall back to itself, got %q", got)
	}
}
