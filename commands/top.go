package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/penwyp/go-life-tracker/internal/application/top"
	"github.com/spf13/cobra"
)

var (
	// Display related flags
	topRefresh time.Duration
	topNoWatch bool
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Live dashboard",
	Long: `Full-screen dashboard with the running interval, today's totals, the weekly
chart and streaks. Keys 1-8 start a category, s stops with a note prompt
(enter saves, tab skips, esc keeps running), q quits.

Changes made from other terminals show up immediately.`,
	Args: cobra.NoArgs,
	RunE: runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().DurationVar(&topRefresh, "refresh", 0,
		"Refresh interval (default: refresh_interval from config)")
	topCmd.Flags().BoolVar(&topNoWatch, "no-watch", false,
		"Do not reload when the data file changes")
}

func runTop(cmd *cobra.Command, args []string) error {
	refresh := cfg.RefreshInterval
	if cmd.Flags().Changed("refresh") {
		if topRefresh < 100*time.Millisecond {
			return fmt.Errorf("--refresh must be at least 100ms, got %s", topRefresh)
		}
		refresh = topRefresh
	}

	config := &top.TopConfig{
		DataFile:        cfg.DataFile,
		Timezone:        cfg.Timezone,
		WeekDays:        cfg.WeekDays,
		StreakDays:      cfg.StreakDays,
		RefreshInterval: refresh,
		Watch:           !topNoWatch,
	}
	o, err := top.NewOrchestrator(config, clock)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return o.Run(ctx)
}
