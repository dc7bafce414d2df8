package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/streak"
	"github.com/penwyp/go-life-tracker/internal/core/timeline"
	"github.com/penwyp/go-life-tracker/internal/data/aggregator"
	"github.com/penwyp/go-life-tracker/internal/data/report"
	"github.com/penwyp/go-life-tracker/internal/presentation/formatter"
	"github.com/penwyp/go-life-tracker/internal/util"
	"github.com/spf13/cobra"
)

var (
	// History command flags
	historyFrom string
	historyTo   string

	// Calendar command flags
	calendarDay string

	// Export command flags
	exportOut string
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's time per category against daily goals",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the weekly summary and per-day chart",
	Args:  cobra.NoArgs,
	RunE:  runWeek,
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show goal streaks",
	Long: `Shows the current and best run of consecutive days meeting each category's
daily goal. Today counts once its goal is met; until then the current streak
reads 0.`,
	Args: cobra.NoArgs,
	RunE: runStreak,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished time grouped by day, category and project",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show one day's intervals in order",
	Args:  cobra.NoArgs,
	RunE:  runCalendar,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every interval as CSV",
	Long: `Writes every interval, the running one ending now, to
time-tracker-<date>.csv in the export directory. Use --out - for stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(todayCmd, weekCmd, streakCmd, historyCmd, calendarCmd, exportCmd)

	addOutputFlag(todayCmd, "Output format (table, json)")
	addOutputFlag(weekCmd, "Output format (table, json)")
	addOutputFlag(streakCmd, "Output format (table, json)")
	addOutputFlag(historyCmd, "Output format (table, json, csv)")
	addOutputFlag(calendarCmd, "Output format (table, json)")

	historyCmd.Flags().StringVar(&historyFrom, "from", "",
		"First day, YYYY-MM-DD (default: start of the weekly window)")
	historyCmd.Flags().StringVar(&historyTo, "to", "",
		"Last day, YYYY-MM-DD (default: today)")
	calendarCmd.Flags().StringVar(&calendarDay, "day", "",
		"Day to show, YYYY-MM-DD (default: today)")
	exportCmd.Flags().StringVar(&exportOut, "out", "",
		"Output file (default: <export_dir>/time-tracker-<date>.csv)")
}

type runningView struct {
	IntervalID string `json:"intervalId"`
	Label      string `json:"label"`
	Start      int64  `json:"start"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

type todayView struct {
	Day        string                   `json:"day"`
	Running    *runningView             `json:"running"`
	Categories []formatter.CategoryLine `json:"categories"`
}

func runToday(cmd *cobra.Command, args []string) error {
	if err := checkOutput("table", "json"); err != nil {
		return err
	}
	state, err := loadState()
	if err != nil {
		return err
	}
	t := now()
	nowMs := t.UnixMilli()
	totals := aggregator.ComputeTotals(state, t)
	lines := formatter.CategoryLines(state, totals, aggregator.LiveToday(state, totals, t), nowMs)

	if outputFormat == "json" {
		view := todayView{Day: timeline.DayKey(t), Categories: lines}
		if r := state.Running; r != nil {
			view.Running = &runningView{
				IntervalID: r.ID,
				Label:      report.Label(state, r.CategoryID, r.ProjectID),
				Start:      r.Start,
				ElapsedMs:  r.Elapsed(nowMs),
			}
		}
		return printJSON(cmd, view)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.RunningLine(state, nowMs))
	fmt.Fprintln(out)
	return printTable(cmd, formatter.TodayTable(lines))
}

type weekView struct {
	Days    []string           `json:"days"`
	Summary aggregator.Summary `json:"summary"`
	Minutes map[string][]int64 `json:"minutes"`
}

func runWeek(cmd *cobra.Command, args []string) error {
	if err := checkOutput("table", "json"); err != nil {
		return err
	}
	state, err := loadState()
	if err != nil {
		return err
	}
	g := aggregator.DailyGrid(state, now(), cfg.WeekDays)
	summary := aggregator.WeeklySummary(g, state.Categories)

	if outputFormat == "json" {
		view := weekView{Days: g.Days(), Summary: summary, Minutes: map[string][]int64{}}
		for _, c := range state.Categories {
			view.Minutes[c.ID] = g.Column(c.ID)
		}
		return printJSON(cmd, view)
	}
	return formatter.NewSummaryFormatter(cmd.OutOrStdout(), util.IsTerminal()).
		Weekly(g, state.Categories, summary)
}

type streakView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GoalMinutes int    `json:"goalMinutes"`
	Configured  bool   `json:"configured"`
	Current     int    `json:"current"`
	Best        int    `json:"best"`
}

func runStreak(cmd *cobra.Command, args []string) error {
	if err := checkOutput("table", "json"); err != nil {
		return err
	}
	state, err := loadState()
	if err != nil {
		return err
	}
	results := streak.Compute(aggregator.DailyGrid(state, now(), cfg.StreakDays), state.Categories)

	if outputFormat == "json" {
		views := make([]streakView, 0, len(state.Categories))
		for _, c := range state.Categories {
			r := results[c.ID]
			views = append(views, streakView{
				ID:          c.ID,
				Name:        c.Name,
				GoalMinutes: c.GoalMinutes,
				Configured:  r.Configured,
				Current:     r.Current,
				Best:        r.Best,
			})
		}
		return printJSON(cmd, views)
	}
	return formatter.NewSummaryFormatter(cmd.OutOrStdout(), util.IsTerminal()).
		Streaks(state.Categories, results)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := checkOutput("table", "json", "csv"); err != nil {
		return err
	}
	t := now()
	from := timeline.AddDays(timeline.StartOfDay(t), 1-cfg.WeekDays)
	to := t
	var err error
	if historyFrom != "" {
		if from, err = parseDay("from", historyFrom, t.Location()); err != nil {
			return err
		}
	}
	if historyTo != "" {
		if to, err = parseDay("to", historyTo, t.Location()); err != nil {
			return err
		}
	}
	if timeline.DayKey(from) > timeline.DayKey(to) {
		return fmt.Errorf("--from %s is after --to %s", timeline.DayKey(from), timeline.DayKey(to))
	}

	state, err := loadState()
	if err != nil {
		return err
	}
	rows := report.History(state, from, to)

	switch outputFormat {
	case "json":
		if rows == nil {
			rows = []report.Row{}
		}
		return printJSON(cmd, rows)
	case "csv":
		return formatter.NewCSVFormatter(cmd.OutOrStdout()).FormatHistory(rows)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "History %s to %s\n", timeline.DayKey(from), timeline.DayKey(to))
	return printTable(cmd, formatter.HistoryTable(rows))
}

func runCalendar(cmd *cobra.Command, args []string) error {
	if err := checkOutput("table", "json"); err != nil {
		return err
	}
	t := now()
	day := t
	if calendarDay != "" {
		var err error
		if day, err = parseDay("day", calendarDay, t.Location()); err != nil {
			return err
		}
	}
	state, err := loadState()
	if err != nil {
		return err
	}
	segs := report.CalendarDay(state, day, t)

	if outputFormat == "json" {
		if segs == nil {
			segs = []report.DaySegment{}
		}
		return printJSON(cmd, segs)
	}
	fmt.Fprintln(cmd.OutOrStdout(), day.Format("Monday, 2006-01-02"))
	if len(segs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing tracked")
		return nil
	}
	return printTable(cmd, formatter.CalendarTable(segs))
}

func runExport(cmd *cobra.Command, args []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	t := now()
	rows := report.ExportRows(state, t)

	if exportOut == "-" {
		if err := formatter.NewCSVFormatter(cmd.OutOrStdout()).FormatExport(rows); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	}

	path := exportOut
	if path == "" {
		path = filepath.Join(cfg.ExportDir, report.ExportFileName(t))
	}
	path = util.ExpandPath(path)
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(formatter.RenderExport(rows)), 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d intervals to %s\n", len(rows), path)
	util.LogInfo("Export written", util.F("path", path), util.F("rows", len(rows)))
	return nil
}

func parseDay(flag, value string, loc *time.Location) (time.Time, error) {
	day, err := timeline.ParseDayKey(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", flag, value)
	}
	return day, nil
}
