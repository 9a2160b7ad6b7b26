package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering sources, lowest precedence first:
//  1. built-in defaults (Default)
//  2. YAML file at path, if path is non-empty (missing file is an error;
//     an empty path just means "defaults only")
//  3. environment variables prefixed TENNIS_, with "__" as the nesting
//     separator: TENNIS_DATA__DOWNLOAD_TIMEOUT → data.download_timeout
func Load(path string) (*Config, error) {
	base := Default()

	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	envProvider := env.Provider("TENNIS_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "TENNIS_"))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Data.DownloadTimeout <= 0 {
		return nil, errors.New("data.download_timeout must be positive")
	}
	if cfg.Data.SupportedYears.Min > cfg.Data.SupportedYears.Max {
		return nil, errors.New("data.supported_years min exceeds max")
	}
	return &cfg, nil
}
