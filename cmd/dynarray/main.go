package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/dynarray/internal/config"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	limitBytes int64
	asJSON     bool
	save       bool
	frameRate  int

	logger log.Logger = log.NewNopLogger()
)

// main registers the dynarray commands and executes the root command,
// exiting with status 1 if it fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "dynarray",
		Short:         "growable array lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
		RunE: runDemo,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().Int64Var(&limitBytes, "limit", 0, "refuse allocations beyond this many live bytes (0 = no limit)")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "copy an array, mutate the original and print both",
		Args:  cobra.NoArgs,
		RunE:  runDemo,
	}
	demoCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	growCmd := &cobra.Command{
		Use:   "grow [appends]",
		Short: "append integers and show how capacity grows",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGrow,
	}
	growCmd.Flags().BoolVar(&save, "save", false, "store the trace in the data directory")

	liveCmd := &cobra.Command{
		Use:   "live [appends]",
		Short: "watch an array grow one append per frame",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 10, "appends per second")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved traces",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time append runs of increasing length",
		Args:  cobra.NoArgs,
		RunE:  benchAppend,
	}

	rootCmd.AddCommand(demoCmd, growCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		level.Error(newLogger(verbose)).Log("msg", "command failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	allow := level.AllowInfo()
	if verbose {
		allow = level.AllowDebug()
	}
	l = level.NewFilter(l, allow)
	return log.With(l, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// loadConfig applies, in increasing priority: defaults, --preset,
// --config, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("limit") {
		cfg.LimitBytes = limitBytes
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level.Debug(logger).Log("msg", "config resolved", "values", len(cfg.Values), "appends", cfg.Appends, "limit_bytes", cfg.LimitBytes, "data_dir", cfg.DataDir)
	return cfg, nil
}
