// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Chart ChartConfig `toml:"chart"`
	Data  DataConfig  `toml:"data"`
	Serve ServeConfig `toml:"serve"`
}

// ChartConfig maps chart-related settings.
type ChartConfig struct {
	Headline     *string `toml:"headline"`
	Subheadline  *string `toml:"subheadline"`
	Fallback     *string `toml:"fallback"`
	Width        *int    `toml:"width"`
	Top          *int    `toml:"top"`
	InvalidCount *string `toml:"invalid-count"`
}

// DataConfig maps dataset settings.
type DataConfig struct {
	Path         *string `toml:"path"`
	Format       *string `toml:"format"`
	Table        *string `toml:"table"`
	ReasonColumn *string `toml:"reason-column"`
	CountColumn  *string `toml:"count-column"`
	Timeout      *string `toml:"timeout"`
}

// ServeConfig maps HTTP server settings.
type ServeConfig struct {
	Host    *string `toml:"host"`
	Port    *int    `toml:"port"`
	Metrics *bool   `toml:"metrics"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
