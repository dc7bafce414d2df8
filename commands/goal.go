package commands

import (
	"fmt"
	"strconv"

	"github.com/penwyp/go-life-tracker/internal/core/ledger"
	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/presentation/formatter"
	"github.com/penwyp/go-life-tracker/internal/util"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage daily goals",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <category> <minutes>",
	Short: "Set a category's daily goal in minutes; 0 clears it",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalSet,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List daily goals",
	Args:  cobra.NoArgs,
	RunE:  runGoalList,
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalListCmd)

	addOutputFlag(goalListCmd, "Output format (table, json)")
}

func runGoalSet(cmd *cobra.Command, args []string) error {
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		return model.ErrInvalidGoal.New("%q is not a number of minutes", args[1])
	}
	l, err := openLedger()
	if err != nil {
		return err
	}
	cat, err := resolveCategory(l.State(), args[0])
	if err != nil {
		return err
	}
	if _, err := l.Do(ledger.SetGoal{CategoryID: cat.ID, Minutes: minutes}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if minutes == 0 {
		fmt.Fprintf(out, "Cleared daily goal for %s\n", cat.Name)
	} else {
		fmt.Fprintf(out, "Daily goal for %s: %d min\n", cat.Name, minutes)
	}
	util.LogInfo("Goal set", util.F("category", cat.ID), util.F("minutes", minutes))
	return nil
}

type goalView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GoalMinutes int    `json:"goalMinutes"`
}

func runGoalList(cmd *cobra.Command, args []string) error {
	if err := checkOutput("table", "json"); err != nil {
		return err
	}
	state, err := loadState()
	if err != nil {
		return err
	}
	if outputFormat == "json" {
		views := make([]goalView, 0, len(state.Categories))
		for _, c := range state.Categories {
			views = append(views, goalView{ID: c.ID, Name: c.Name, GoalMinutes: c.GoalMinutes})
		}
		return printJSON(cmd, views)
	}
	return printTable(cmd, formatter.GoalsTable(state.Categories))
}
