package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/penwyp/go-life-tracker/internal/config"
	"github.com/penwyp/go-life-tracker/internal/core/ledger"
	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/data/store"
	"github.com/penwyp/go-life-tracker/internal/presentation/formatter"
	"github.com/penwyp/go-life-tracker/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Configuration
	configFile string
	dataFile   string
	timezone   string

	// Output related
	outputFormat string

	// cfg is the validated configuration of the running command.
	cfg *config.Config

	// clock overrides the time provider; tests pin it.
	clock util.Clock

	rootCmd = &cobra.Command{
		Use:   "go-life-tracker [command]",
		Short: "Track where your time goes across life categories",
		Long: `go-life-tracker records time against eight fixed life categories and the
projects inside them. One thing runs at a time; starting another closes it.

Without a command it prints today's totals.

Examples:
  go-life-tracker start work                   # Track the last used Work project
  go-life-tracker start health "Morning run"   # Track a specific project
  go-life-tracker stop --note "5k, easy pace"  # Stop with a note
  go-life-tracker goal set health 30           # 30 minutes a day
  go-life-tracker week                         # Weekly summary and chart
  go-life-tracker history --from 2024-03-01    # Grouped history
  go-life-tracker export                       # Write time-tracker-<date>.csv
  go-life-tracker top                          # Live dashboard`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runToday,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultConfigFile,
		"Config file path")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "",
		"State file path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone for local days, e.g. Asia/Shanghai, UTC (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	addOutputFlag(rootCmd, "Output format (table, json)")
}

// addOutputFlag binds -o/--output on cmd to the shared outputFormat.
func addOutputFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", usage)
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if dataFile != "" {
		c.DataFile = dataFile
	}
	if timezone != "" {
		c.Timezone = timezone
	}
	if debug {
		c.LogLevel = "debug"
	}
	if err := c.Validate(); err != nil {
		return err
	}

	logFile := util.ExpandPath(c.LogFile)
	if err := util.EnsureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(c.LogLevel, logFile, util.LogFormat(c.LogFormat), debug); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := util.InitializeTimeProvider(c.Timezone); err != nil {
		return err
	}

	cfg = c
	util.LogDebug("Configuration loaded",
		util.F("command", cmd.Name()),
		util.F("dataFile", c.DataFile),
		util.F("timezone", c.Timezone))
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func currentClock() util.Clock {
	if clock != nil {
		return clock
	}
	return util.GetTimeProvider()
}

// now is the current time in the configured timezone; local days are taken from it.
func now() time.Time {
	return util.GetTimeProvider().In(currentClock().Now())
}

func openStore() *store.Store {
	return store.New(util.ExpandPath(cfg.DataFile), store.WithClock(currentClock()))
}

// loadState reads the state, persisting the document whenever the file is absent
// after loading so seeded project ids stay stable between invocations.
func loadState() (model.State, error) {
	st := openStore()
	state, err := st.Load()
	if err != nil {
		return model.State{}, err
	}
	if _, statErr := os.Stat(st.Path()); errors.Is(statErr, fs.ErrNotExist) {
		if err := st.Save(state); err != nil {
			return model.State{}, err
		}
		util.LogInfo("Created state file", util.F("path", st.Path()))
	}
	return state, nil
}

// openLedger returns a ledger whose commands are read-modify-writes of the state file.
func openLedger() (*ledger.Ledger, error) {
	state, err := loadState()
	if err != nil {
		return nil, err
	}
	return ledger.New(state, currentClock(), ledger.WithBackend(openStore())), nil
}

func checkOutput(allowed ...string) error {
	for _, a := range allowed {
		if outputFormat == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format %q (%v)", outputFormat, allowed)
}

func printTable(cmd *cobra.Command, t formatter.Table) error {
	return formatter.NewTableFormatter(cmd.OutOrStdout()).Format(t)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	return formatter.NewJSONFormatter(cmd.OutOrStdout()).Format(v)
}

func resolveCategory(state model.State, ref string) (model.Category, error) {
	c, ok := state.ResolveCategory(ref)
	if !ok {
		ids := make([]string, 0, len(state.Categories))
		for _, c := range state.Categories {
			ids = append(ids, c.ID)
		}
		return model.Category{}, model.ErrUnknownCategory.New("%q matches no single category (one of %v)", ref, ids)
	}
	return c, nil
}
