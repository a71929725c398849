// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"defect-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// History contains dataset archive configuration
	History HistoryConfig `json:"history"`

	// Chart contains chart rendering configuration
	Chart ChartConfig `json:"chart"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Vocabulary is the path to an HCL role vocabulary file.
	// Empty means the built-in vocabulary.
	Vocabulary string `json:"vocabulary,omitempty"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// HistoryConfig contains dataset archive settings
type HistoryConfig struct {
	// Directory is where ingested datasets are archived
	Directory string `json:"directory"`

	// Keep is how many archived datasets to retain (0 = unlimited)
	Keep int `json:"keep"`
}

// ChartConfig contains chart rendering settings
type ChartConfig struct {
	// ProductionColor is the fill color for production wedges
	ProductionColor string `json:"production_color"`

	// OfficeColor is the fill color for office wedges
	OfficeColor string `json:"office_color"`

	// InnerRadius is the donut hole fraction of the outer radius
	InnerRadius float64 `json:"inner_radius"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowRoles shows the per-role breakdown table
	ShowRoles bool `json:"show_roles"`

	// Currency is the display currency code
	Currency string `json:"currency"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	historyDir := filepath.Join(homeDir, ".defect-cost", "history")

	return &Config{
		Version: "1.0",
		History: HistoryConfig{
			Directory: historyDir,
			Keep:      0,
		},
		Chart: ChartConfig{
			ProductionColor: "royalblue",
			OfficeColor:     "darkorange",
			InnerRadius:     0.6,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowRoles:     true,
			Currency:      "RUB",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
