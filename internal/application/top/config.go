package top

import (
	"fmt"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/constants"
)

// TopConfig contains configuration for the top command
type TopConfig struct {
	// Storage
	DataFile string

	// Display settings
	Timezone string

	// Windows, in local days
	WeekDays   int
	StreakDays int

	// Refresh settings
	RefreshInterval time.Duration

	// Watch reloads the dashboard when another process writes the data file.
	Watch bool
}

// Validate checks if the configuration is valid
func (c *TopConfig) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data file is required")
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.WeekDays <= 0 {
		c.WeekDays = constants.WeeklyWindowDays
	}
	if c.StreakDays <= 0 {
		c.StreakDays = constants.StreakWindowDays
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = constants.TickInterval
	}
	return nil
}
