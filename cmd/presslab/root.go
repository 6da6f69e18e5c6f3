package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/presslab/aggregate"
	"github.com/katalvlaran/presslab/config"
)

// solveFlags mirrors config.Config; only flags the user set override the file.
type solveFlags struct {
	configPath      string
	workers         int
	failFast        bool
	toggleStrategy  string
	joltageStrategy string
	timeLimit       time.Duration
	maxStates       int
	logLevel        string
	logFormat       string
	metricsFile     string
	timeout         time.Duration
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "presslab",
		Short:         "Minimum button presses for toggle and joltage machines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSolveCmd())

	return root
}

func newSolveCmd() *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve <input>",
		Short: "Sum the minimum toggle and joltage presses over every machine in a file",
		Long: `Reads one machine per line, for example

  [.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}

and prints the summed minimum presses that light each goal pattern and the
summed minimum presses that meet each joltage requirement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			return runSolve(cmd.Context(), cfg, f.timeout, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "path to a YAML configuration file")
	fl.IntVar(&f.workers, "workers", 0, "machines solved concurrently (0 = number of CPUs)")
	fl.BoolVar(&f.failFast, "fail-fast", true, "abort on the first failed machine")
	fl.StringVar(&f.toggleStrategy, "toggle-strategy", "", "toggle algorithm: bfs or sat")
	fl.StringVar(&f.joltageStrategy, "joltage-strategy", "", "joltage solver: branch-and-bound, enumerate or rounding")
	fl.DurationVar(&f.timeLimit, "time-limit", 0, "time budget per joltage solve (0 = unlimited)")
	fl.IntVar(&f.maxStates, "max-states", 0, "state budget per toggle search (0 = unlimited)")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: panic, fatal, error, warn, info, debug or trace")
	fl.StringVar(&f.logFormat, "log-format", "", "log format: text or json")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	fl.DurationVar(&f.timeout, "timeout", 0, "deadline for the whole run (0 = none)")

	return cmd
}

// resolve loads the configuration file, if any, and applies changed flags.
func (f *solveFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("fail-fast") {
		cfg.FailFast = f.failFast
	}
	if changed("toggle-strategy") {
		cfg.Toggle.Strategy = f.toggleStrategy
	}
	if changed("max-states") {
		cfg.Toggle.MaxStates = f.maxStates
	}
	if changed("joltage-strategy") {
		cfg.Joltage.Strategy = f.joltageStrategy
	}
	if changed("time-limit") {
		cfg.Joltage.TimeLimit = f.timeLimit
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if f.timeout < 0 {
		return cfg, fmt.Errorf("%w: timeout cannot be negative (%s)", config.ErrInvalidConfig, f.timeout)
	}

	return cfg, cfg.Validate()
}

func runSolve(ctx context.Context, cfg config.Config, timeout time.Duration, input string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return err
	}
	strategy, err := cfg.ToggleStrategy()
	if err != nil {
		return err
	}
	solver, err := cfg.JoltageSolver()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := aggregate.NewMetrics(reg)
	if err != nil {
		return errors.Wrap(err, "register metrics")
	}

	r := &aggregate.Runner{
		Workers:    cfg.Workers,
		FailFast:   cfg.FailFast,
		Toggle:     strategy,
		ToggleOpts: cfg.ToggleOptions(),
		Joltage:    solver,
		Logger:     log,
		Metrics:    metrics,
	}
	totals, runErr := r.RunFile(ctx, input)

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			log.WithError(err).WithField("path", cfg.MetricsFile).Error("writing metrics")
		}
	}
	if runErr != nil {
		return errors.Wrapf(runErr, "solve %s", input)
	}

	fmt.Fprintf(stdout, "toggle presses: %d\n", totals.Toggle)
	fmt.Fprintf(stdout, "joltage presses: %d\n", totals.Joltage)
	if n := len(totals.Failures); n > 0 {
		fmt.Fprintf(stdout, "failed solves: %d\n", n)
	}

	return nil
}
