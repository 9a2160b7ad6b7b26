// Package config defines tool configuration with hard-coded defaults,
// optionally overlaid from a YAML file and environment variables.
package config

import "time"

// Tournament describes one supported Grand Slam event.
type Tournament struct {
	// Name is the display name, e.g. "Wimbledon".
	Name string `koanf:"name"`
	// URL is the slug used in the source repository's file names.
	URL string `koanf:"url"`
}

// YearRange bounds the years for which point-by-point data exists.
type YearRange struct {
	Min int `koanf:"min"`
	Max int `koanf:"max"`
}

// Config holds all tool configuration.
type Config struct {
	Data struct {
		// DownloadTimeout is the HTTP timeout for CSV downloads, in seconds.
		DownloadTimeout int `koanf:"download_timeout"`
		// MaxRetries caps download retry attempts.
		MaxRetries int `koanf:"max_retries"`
		// SupportedYears is the inclusive year range of the source data.
		SupportedYears YearRange `koanf:"supported_years"`
	} `koanf:"data"`

	Visualization struct {
		Momentum struct {
			// WindowSize is the centered smoothing window for the optional
			// momentum smoothing pre-pass.
			WindowSize int `koanf:"window_size"`
		} `koanf:"momentum"`
	} `koanf:"visualization"`

	// Tournaments maps tournament keys (e.g. "wimbledon") to their metadata.
	Tournaments map[string]Tournament `koanf:"tournaments"`
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.Data.DownloadTimeout = 30
	c.Data.MaxRetries = 3
	c.Data.SupportedYears = YearRange{Min: 2011, Max: 2024}
	c.Visualization.Momentum.WindowSize = 5
	c.Tournaments = map[string]Tournament{
		"ausopen":    {Name: "Australian Open", URL: "ausopen"},
		"frenchopen": {Name: "French Open", URL: "frenchopen"},
		"wimbledon":  {Name: "Wimbledon", URL: "wimbledon"},
		"usopen":     {Name: "US Open", URL: "usopen"},
	}
	return c
}

// Timeout returns the download timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Data.DownloadTimeout) * time.Second
}

// ValidYear reports whether year falls in the supported range.
func (c *Config) ValidYear(year int) bool {
	return year >= c.Data.SupportedYears.Min && year <= c.Data.SupportedYears.Max
}

// TournamentName returns the display name for a tournament key, falling
// back to the key itself when unknown.
func (c *Config) TournamentName(key string) string {
	if t, ok := c.Tournaments[key]; ok && t.Name != "" {
		return t.Name
	}
	return key
}
