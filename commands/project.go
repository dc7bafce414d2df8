package commands

import (
	"fmt"

	"github.com/penwyp/go-life-tracker/internal/core/ledger"
	"github.com/penwyp/go-life-tracker/internal/data/aggregator"
	"github.com/penwyp/go-life-tracker/internal/presentation/formatter"
	"github.com/penwyp/go-life-tracker/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Project command flags
	projectSelect bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage the projects inside each category",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <category> <name>",
	Short: "Add a project to a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectAdd,
}

var projectListCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List projects with today's and all-time totals",
	Long:  `Lists projects. The default project of each category, used by "start <category>", is starred.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProjectList,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)

	projectAddCmd.Flags().BoolVar(&projectSelect, "select", false,
		"Make the new project the category's default")
	addOutputFlag(projectListCmd, "Output format (table, json)")
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	l, err := openLedger()
	if err != nil {
		return err
	}
	cat, err := resolveCategory(l.State(), args[0])
	if err != nil {
		return err
	}
	res, err := l.Do(ledger.AddProject{CategoryID: cat.ID, Name: args[1], Select: projectSelect})
	if err != nil {
		return err
	}
	p := res.Project
	fmt.Fprintf(cmd.OutOrStdout(), "Added project %s (%s) to %s\n", p.Name, p.ID, cat.Name)
	util.LogInfo("Project added", util.F("category", cat.ID), util.F("project", p.ID))
	return nil
}

type projectView struct {
	ID        string `json:"id"`
	Category  string `json:"categoryId"`
	Name      string `json:"name"`
	Default   bool   `json:"default"`
	TodayMs   int64  `json:"todayMs"`
	AllTimeMs int64  `json:"allTimeMs"`
}

func runProjectList(cmd *cobra.Command, args []string) error {
	if err := checkOutput("table", "json"); err != nil {
		return err
	}
	state, err := loadState()
	if err != nil {
		return err
	}
	categoryID := ""
	if len(args) == 1 {
		cat, err := resolveCategory(state, args[0])
		if err != nil {
			return err
		}
		categoryID = cat.ID
	}
	totals := aggregator.ComputeTotals(state, now())

	if outputFormat == "json" {
		views := []projectView{}
		for _, c := range state.Categories {
			if categoryID != "" && c.ID != categoryID {
				continue
			}
			def, _ := state.DefaultProject(c.ID)
			for _, p := range state.ProjectsIn(c.ID) {
				views = append(views, projectView{
					ID:        p.ID,
					Category:  p.CategoryID,
					Name:      p.Name,
					Default:   p.ID == def.ID,
					TodayMs:   totals.ProjectToday[p.ID],
					AllTimeMs: totals.ProjectAllTime[p.ID],
				})
			}
		}
		return printJSON(cmd, views)
	}
	return printTable(cmd, formatter.ProjectsTable(state, categoryID, totals))
}
