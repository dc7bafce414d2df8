package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-life-tracker/internal/core/ledger"
	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/data/report"
	"github.com/penwyp/go-life-tracker/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Stop command flags
	stopNote string
	stopSkip bool
)

var startCmd = &cobra.Command{
	Use:   "start <category> [project]",
	Short: "Start tracking, closing whatever is running",
	Long: `Starts a new interval. The category may be given by id (p-work), short id
(work) or part of its name. Without a project the category's last used project
is tracked.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runStart,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running interval",
	Long: `Stops the running interval. On a terminal you are asked for an optional
note; --note and --skip answer without asking.`,
	Args: cobra.NoArgs,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)

	stopCmd.Flags().StringVarP(&stopNote, "note", "n", "",
		"Note to attach to the interval")
	stopCmd.Flags().BoolVar(&stopSkip, "skip", false,
		"Stop without a note")
	stopCmd.MarkFlagsMutuallyExclusive("note", "skip")
}

func runStart(cmd *cobra.Command, args []string) error {
	l, err := openLedger()
	if err != nil {
		return err
	}
	state := l.State()

	cat, err := resolveCategory(state, args[0])
	if err != nil {
		return err
	}
	var (
		proj model.Project
		ok   bool
	)
	if len(args) == 2 {
		proj, ok = state.ResolveProject(cat.ID, args[1])
		if !ok {
			return model.ErrUnknownProject.New("%q matches no single project in %s", args[1], cat.Name)
		}
	} else {
		proj, ok = state.DefaultProject(cat.ID)
		if !ok {
			return model.ErrUnknownProject.New("%s has no projects", cat.Name)
		}
	}

	res, err := l.Do(ledger.Start{CategoryID: cat.ID, ProjectID: proj.ID})
	if err != nil {
		return err
	}

	logDiscarded(res)
	out := cmd.OutOrStdout()
	if f := res.Closed; f != nil {
		fmt.Fprintf(out, "Stopped %s after %s\n",
			report.Label(state, f.CategoryID, f.ProjectID), util.FormatHMS(f.Duration()))
	}
	fmt.Fprintf(out, "Tracking %s\n", report.Label(state, cat.ID, proj.ID))
	util.LogInfo("Tracking started", util.F("category", cat.ID), util.F("project", proj.ID))
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	l, err := openLedger()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if _, err := l.RequestStop(); err != nil {
		if model.ErrNoRunningInterval.Has(err) {
			fmt.Fprintln(out, "Nothing is being tracked")
			return nil
		}
		return err
	}

	note := stopNote
	if !stopSkip && !cmd.Flags().Changed("note") && util.IsTerminal() {
		if note, err = promptNote(cmd); err != nil {
			l.CancelStop()
			return err
		}
	}

	state := l.State()
	res, err := l.CommitStop(note)
	if err != nil {
		return err
	}
	logDiscarded(res)
	f := res.Closed
	if f == nil {
		fmt.Fprintln(out, "Stopped")
		return nil
	}
	fmt.Fprintf(out, "Stopped %s after %s\n",
		report.Label(state, f.CategoryID, f.ProjectID), util.FormatHMS(f.Duration()))
	if f.Note != "" {
		fmt.Fprintf(out, "Note: %s\n", f.Note)
	}
	util.LogInfo("Tracking stopped", util.F("interval", f.ID), util.F("durationMs", f.Duration()))
	return nil
}

// logDiscarded records a running interval that was dropped instead of closed,
// which happens when it is stopped at its start time or the clock went backwards.
func logDiscarded(res ledger.Result) {
	if r := res.Discarded; r != nil {
		util.LogWarn("Discarded empty interval",
			util.F("interval", r.ID), util.F("category", r.CategoryID), util.F("start", r.Start))
	}
}

// promptNote reads one line; an empty answer skips the note.
func promptNote(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Note (enter to skip): ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read note: %w", err)
	}
	return strings.TrimSpace(line), nil
}
