// =============================================================================
// Payment Analytics - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file and
// applies defaults for anything left unset. The configuration supplies file
// paths and presentation settings only; it carries no data-integrity
// responsibility.
//
// CONFIGURATION FILE (config.yaml):
//
//   input_file: ./data/raw/transactions.xlsx
//   output_workbook: ./data/processed/analysis.xlsx
//   output_chart: ./data/results/plots/combined.png
//   log_level: info
//   chart:
//     width: 1600
//     height: 1200
//     dpi: 150
//     top_n: 10
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// InputFile is the path to the input workbook containing the data,
	// country and method_group sheets.
	// Default: "./data/raw/transactions.xlsx"
	InputFile string `yaml:"input_file"`

	// OutputWorkbook is the path the summary workbook is written to.
	// Default: "./data/processed/analysis.xlsx"
	OutputWorkbook string `yaml:"output_workbook"`

	// OutputChart is the path the combined chart image is written to.
	// Default: "./data/results/plots/combined.png"
	OutputChart string `yaml:"output_chart"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// Chart holds the presentation settings for the chart sink.
	Chart ChartConfig `yaml:"chart"`
}

// ChartConfig holds presentation settings for the combined chart image.
type ChartConfig struct {
	// Width is the image width in pixels. Default: 1600
	Width int `yaml:"width"`

	// Height is the image height in pixels. Default: 1200
	Height int `yaml:"height"`

	// DPI is the rendering resolution. Default: 150
	DPI int `yaml:"dpi"`

	// TopN limits the country bar panels to the N largest buckets.
	// Default: 10
	TopN int `yaml:"top_n"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file and applies defaults.
// A missing file is not an error: the defaults alone form a valid
// configuration, matching how the CLI behaves with no config at all.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = "./data/raw/transactions.xlsx"
	}
	if cfg.OutputWorkbook == "" {
		cfg.OutputWorkbook = "./data/processed/analysis.xlsx"
	}
	if cfg.OutputChart == "" {
		cfg.OutputChart = "./data/results/plots/combined.png"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Chart.Width == 0 {
		cfg.Chart.Width = 1600
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = 1200
	}
	if cfg.Chart.DPI == 0 {
		cfg.Chart.DPI = 150
	}
	if cfg.Chart.TopN == 0 {
		cfg.Chart.TopN = 10
	}
}
