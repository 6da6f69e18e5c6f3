// Package config loads presslab settings from YAML and turns them into
// solver options, runners and loggers.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/presslab/ilp"
	"github.com/katalvlaran/presslab/toggle"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the top-level configuration.
type Config struct {
	// Workers bounds concurrent machines; 0 means runtime.NumCPU().
	Workers int `yaml:"workers"`

	// FailFast aborts the run on the first failed solve.
	FailFast bool `yaml:"fail_fast"`

	Toggle  ToggleConfig  `yaml:"toggle"`
	Joltage JoltageConfig `yaml:"joltage"`
	Log     LogConfig     `yaml:"log"`

	// MetricsFile, if set, receives the Prometheus text exposition after a run.
	MetricsFile string `yaml:"metrics_file"`
}

// ToggleConfig selects and bounds the toggle search.
type ToggleConfig struct {
	Strategy  string `yaml:"strategy"`
	MaxStates int    `yaml:"max_states"`
}

// JoltageConfig selects and bounds the joltage solver.
type JoltageConfig struct {
	Strategy  string        `yaml:"strategy"`
	TimeLimit time.Duration `yaml:"time_limit"`
	NodeLimit int           `yaml:"node_limit"`
}

// LogConfig controls the logrus logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		FailFast: true,
		Toggle:   ToggleConfig{Strategy: string(toggle.BFS)},
		Joltage: JoltageConfig{
			Strategy:  ilp.StrategyBranchAndBound,
			TimeLimit: 30 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: FormatText},
	}
}

// Load reads path over Default and validates the result. Keys missing from
// the file keep their default values.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads YAML from r over Default and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	switch {
	case c.Workers < 0:
		return fmt.Errorf("%w: workers cannot be negative (%d)", ErrInvalidConfig, c.Workers)
	case c.Toggle.MaxStates < 0:
		return fmt.Errorf("%w: toggle.max_states cannot be negative (%d)", ErrInvalidConfig, c.Toggle.MaxStates)
	case c.Joltage.TimeLimit < 0:
		return fmt.Errorf("%w: joltage.time_limit cannot be negative (%s)", ErrInvalidConfig, c.Joltage.TimeLimit)
	case c.Joltage.NodeLimit < 0:
		return fmt.Errorf("%w: joltage.node_limit cannot be negative (%d)", ErrInvalidConfig, c.Joltage.NodeLimit)
	case c.Log.Format != FormatText && c.Log.Format != FormatJSON:
		return fmt.Errorf("%w: log.format must be %q or %q, got %q", ErrInvalidConfig, FormatText, FormatJSON, c.Log.Format)
	}
	if _, err := toggle.ParseStrategy(c.Toggle.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.JoltageSolver(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// ToggleStrategy returns the configured toggle algorithm.
func (c Config) ToggleStrategy() (toggle.Strategy, error) {
	return toggle.ParseStrategy(c.Toggle.Strategy)
}

// ToggleOptions returns the search options implied by the configuration.
func (c Config) ToggleOptions() []toggle.Option {
	return []toggle.Option{toggle.WithMaxStates(c.Toggle.MaxStates)}
}

// JoltageSolver builds the configured joltage solver.
func (c Config) JoltageSolver() (ilp.Solver, error) {
	return ilp.New(c.Joltage.Strategy,
		ilp.WithTimeLimit(c.Joltage.TimeLimit),
		ilp.WithNodeLimit(c.Joltage.NodeLimit),
	)
}

// NewLogger builds a logger writing to w with the configured level and format.
func (c LogConfig) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	if c.Format == FormatJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	return l, nil
}
