// Package config holds the settings of the percolate command and loads them
// with viper from, in increasing precedence, built-in defaults, an optional
// YAML file, PERCOLATE_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/amonclus/percolate/percolation"
	"github.com/amonclus/percolate/report"
)

// EnvPrefix prefixes every environment override, e.g. PERCOLATE_GRAPH_ROWS.
const EnvPrefix = "PERCOLATE"

// Graph source kinds.
const (
	KindGrid = "grid"
	KindER   = "er"
	KindFile = "file"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Graph selects where the graph comes from.
type Graph struct {
	Kind      string  `mapstructure:"kind" yaml:"kind"`
	File      string  `mapstructure:"file" yaml:"file"`
	Rows      int     `mapstructure:"rows" yaml:"rows"`
	Cols      int     `mapstructure:"cols" yaml:"cols"`
	N         int     `mapstructure:"n" yaml:"n"`
	P         float64 `mapstructure:"p" yaml:"p"`
	Connected bool    `mapstructure:"connected" yaml:"connected"`
}

// Ensemble configures Monte Carlo runs. Workers 0 means one per CPU; Runs 0
// means run until the threshold variance stabilises. FitPcMax 0 disables the
// β fit.
type Ensemble struct {
	Runs     int     `mapstructure:"runs" yaml:"runs"`
	MaxRuns  int     `mapstructure:"max_runs" yaml:"max_runs"`
	Workers  int     `mapstructure:"workers" yaml:"workers"`
	Window   int     `mapstructure:"window" yaml:"window"`
	Epsilon  float64 `mapstructure:"epsilon" yaml:"epsilon"`
	FitPc    float64 `mapstructure:"fit_pc" yaml:"fit_pc"`
	FitPcMax float64 `mapstructure:"fit_pc_max" yaml:"fit_pc_max"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Config is the complete command configuration.
type Config struct {
	Graph    Graph    `mapstructure:"graph" yaml:"graph"`
	Mode     string   `mapstructure:"mode" yaml:"mode"`
	Step     float64  `mapstructure:"step" yaml:"step"`
	Seed     int64    `mapstructure:"seed" yaml:"seed"`
	Output   string   `mapstructure:"output" yaml:"output"`
	Format   string   `mapstructure:"format" yaml:"format"`
	Metrics  string   `mapstructure:"metrics_file" yaml:"metrics_file"`
	Log      Log      `mapstructure:"log" yaml:"log"`
	Ensemble Ensemble `mapstructure:"ensemble" yaml:"ensemble"`
}

// Default returns a 32×32 bond sweep with step 0.01, table output to stdout
// and info-level text logs. Seed 0 asks the command to pick a seed.
func Default() Config {
	return Config{
		Graph:  Graph{Kind: KindGrid, Rows: 32, Cols: 32, P: 0.5},
		Mode:   string(percolation.ModeBond),
		Step:   0.01,
		Format: string(report.FormatTable),
		Log:    Log{Level: "info", Format: "text"},
		Ensemble: Ensemble{
			MaxRuns: 10000,
			Window:  15,
			Epsilon: 1e-7,
		},
	}
}

// SetDefaults registers Default() on v so that every key is known to viper
// and can be overridden from the environment.
func SetDefaults(v *viper.Viper) {
	d := Default()
	// An empty kind is resolved by Load from the presence of a file.
	v.SetDefault("graph.kind", "")
	v.SetDefault("graph.file", d.Graph.File)
	v.SetDefault("graph.rows", d.Graph.Rows)
	v.SetDefault("graph.cols", d.Graph.Cols)
	v.SetDefault("graph.n", d.Graph.N)
	v.SetDefault("graph.p", d.Graph.P)
	v.SetDefault("graph.connected", d.Graph.Connected)
	v.SetDefault("mode", d.Mode)
	v.SetDefault("step", d.Step)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("output", d.Output)
	v.SetDefault("format", d.Format)
	v.SetDefault("metrics_file", d.Metrics)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("ensemble.runs", d.Ensemble.Runs)
	v.SetDefault("ensemble.max_runs", d.Ensemble.MaxRuns)
	v.SetDefault("ensemble.workers", d.Ensemble.Workers)
	v.SetDefault("ensemble.window", d.Ensemble.Window)
	v.SetDefault("ensemble.epsilon", d.Ensemble.Epsilon)
	v.SetDefault("ensemble.fit_pc", d.Ensemble.FitPc)
	v.SetDefault("ensemble.fit_pc_max", d.Ensemble.FitPcMax)
}

// Load reads path (if non-empty) into v, applies environment overrides and
// returns the validated configuration. Flags must already be bound to v.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("Load(%s): %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}
	// A file path without an explicit kind selects the file source.
	if c.Graph.Kind == "" {
		c.Graph.Kind = KindGrid
		if c.Graph.File != "" {
			c.Graph.Kind = KindFile
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks every field and returns the first problem wrapped in
// ErrInvalidConfig.
func (c Config) Validate() error {
	if _, err := percolation.ParseMode(c.Mode); err != nil {
		return invalid("mode", err)
	}
	if math.IsNaN(c.Step) || c.Step <= 0 || c.Step > 1 {
		return invalid("step", fmt.Errorf("%g not in (0,1]", c.Step))
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return invalid("format", err)
	}
	if err := c.Graph.validate(); err != nil {
		return err
	}
	if err := c.Log.validate(); err != nil {
		return err
	}

	return c.Ensemble.validate()
}

func (g Graph) validate() error {
	switch g.Kind {
	case KindGrid:
		if g.Rows < 1 || g.Cols < 1 {
			return invalid("graph", fmt.Errorf("grid %dx%d needs rows and cols ≥ 1", g.Rows, g.Cols))
		}
	case KindER:
		if g.N < 1 {
			return invalid("graph.n", fmt.Errorf("%d < 1", g.N))
		}
		if math.IsNaN(g.P) || g.P < 0 || g.P > 1 {
			return invalid("graph.p", fmt.Errorf("%g not in [0,1]", g.P))
		}
	case KindFile:
		if g.File == "" {
			return invalid("graph.file", errors.New("empty path"))
		}
	default:
		return invalid("graph.kind", fmt.Errorf("%q (want %s, %s or %s)", g.Kind, KindGrid, KindER, KindFile))
	}

	return nil
}

func (l Log) validate() error {
	if _, err := l.level(); err != nil {
		return invalid("log.level", err)
	}
	if l.Format != "text" && l.Format != "json" {
		return invalid("log.format", fmt.Errorf("%q (want text or json)", l.Format))
	}

	return nil
}

func (e Ensemble) validate() error {
	switch {
	case e.Runs < 0:
		return invalid("ensemble.runs", fmt.Errorf("%d < 0", e.Runs))
	case e.MaxRuns < 1:
		return invalid("ensemble.max_runs", fmt.Errorf("%d < 1", e.MaxRuns))
	case e.Workers < 0:
		return invalid("ensemble.workers", fmt.Errorf("%d < 0", e.Workers))
	case e.Window < 2:
		return invalid("ensemble.window", fmt.Errorf("%d < 2", e.Window))
	case e.Epsilon < 0:
		return invalid("ensemble.epsilon", fmt.Errorf("%g < 0", e.Epsilon))
	case e.FitPcMax != 0 && e.FitPcMax <= e.FitPc:
		return invalid("ensemble.fit_pc_max", fmt.Errorf("%g ≤ fit_pc %g", e.FitPcMax, e.FitPc))
	}

	return nil
}

func (l Log) level() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(l.Level))

	return lvl, err
}

// NewLogger builds a text or JSON slog handler on w at the configured level.
func (l Log) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := l.level()
	if err != nil {
		return nil, invalid("log.level", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func invalid(key string, err error) error {
	return fmt.Errorf("%s: %w: %w", key, ErrInvalidConfig, err)
}
