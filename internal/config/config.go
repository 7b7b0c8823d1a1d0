// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	perrors "policy-lookup/internal/errors"
	"policy-lookup/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Data contains dataset source configuration
	Data DataConfig `json:"data"`

	// Ordering contains option ordering configuration
	Ordering OrderingConfig `json:"ordering"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// DataConfig contains dataset settings
type DataConfig struct {
	// Source is a file path or http(s) URL of the policy payload
	Source string `json:"source"`

	// TimeoutSeconds bounds the one-time load; zero disables the timeout
	TimeoutSeconds int `json:"timeout_seconds"`
}

// Timeout returns the load timeout as a duration
func (d DataConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// OrderingConfig contains option ordering settings
type OrderingConfig struct {
	// File is an optional HCL order catalog; empty uses the built-in orders
	File string `json:"file,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// Unit is appended to formatted amounts
	Unit string `json:"unit"`

	// Placeholder is shown for missing amounts
	Placeholder string `json:"placeholder"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Data: DataConfig{
			Source:         "policy.json",
			TimeoutSeconds: 30,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			Unit:          "만원",
			Placeholder:   "-",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".policy-lookup.json")
}

// Load loads configuration from a file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, perrors.Config("failed to read config", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, perrors.Config("failed to parse config "+path, err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
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
