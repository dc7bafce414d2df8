// Package config holds the user configuration loaded from ~/.go-life-tracker/config.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/constants"
	"github.com/penwyp/go-life-tracker/internal/util"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "~/.go-life-tracker/config.yaml"
	DefaultDataFile   = "~/.go-life-tracker/state.json"
	DefaultLogFile    = "~/.go-life-tracker/logs/app.log"
	DefaultExportDir  = "."
)

// Config contains the settings shared by every command
type Config struct {
	// Storage
	DataFile  string `yaml:"data_file"`
	ExportDir string `yaml:"export_dir"`

	// Display settings
	Timezone string `yaml:"timezone"`

	// Windows, in local days
	WeekDays   int `yaml:"week_days"`
	StreakDays int `yaml:"streak_days"`

	// Dashboard refresh
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	LogFormat string `yaml:"log_format"`
}

// Load reads a YAML config file. A missing file is not an error; the returned
// config is validated either way.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(util.ExpandPath(path))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path = util.ExpandPath(path)
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate fills defaults and rejects values that cannot work
func (c *Config) Validate() error {
	if c.DataFile == "" {
		c.DataFile = DefaultDataFile
	}
	if c.ExportDir == "" {
		c.ExportDir = DefaultExportDir
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.WeekDays == 0 {
		c.WeekDays = constants.WeeklyWindowDays
	}
	if c.StreakDays == 0 {
		c.StreakDays = constants.StreakWindowDays
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = constants.TickInterval
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	if c.LogFormat == "" {
		c.LogFormat = string(util.FormatText)
	}

	if c.WeekDays < 0 || c.StreakDays < 0 {
		return fmt.Errorf("week_days and streak_days must be positive")
	}
	if c.RefreshInterval < 100*time.Millisecond {
		return fmt.Errorf("refresh_interval must be at least 100ms, got %s", c.RefreshInterval)
	}
	if c.Timezone != "Local" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
		}
	}
	switch util.LogFormat(c.LogFormat) {
	case util.FormatText, util.FormatJSON:
	default:
		return fmt.Errorf("unknown log_format %q (text, json)", c.LogFormat)
	}
	return nil
}
