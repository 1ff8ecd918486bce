package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/amonclus/percolate/config"
	"github.com/amonclus/percolate/dimacs"
	"github.com/amonclus/percolate/lattice"
	"github.com/amonclus/percolate/percolation"
	"github.com/amonclus/percolate/report"
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"mode":         "mode",
	"step":         "step",
	"seed":         "seed",
	"format":       "format",
	"output":       "output",
	"metrics-file": "metrics_file",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"graph":        "graph.file",
	"kind":         "graph.kind",
	"rows":         "graph.rows",
	"cols":         "graph.cols",
	"n":            "graph.n",
	"p":            "graph.p",
	"connected":    "graph.connected",
	"runs":         "ensemble.runs",
	"max-runs":     "ensemble.max_runs",
	"workers":      "ensemble.workers",
	"window":       "ensemble.window",
	"epsilon":      "ensemble.epsilon",
	"fit-pc":       "ensemble.fit_pc",
	"fit-pc-max":   "ensemble.fit_pc_max",
}

// app is the state shared by every subcommand of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *slog.Logger
	seed    int64
}

// NewRootCmd assembles the command tree. Every call returns an independent
// tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	d := config.Default()

	root := &cobra.Command{
		Use:   "percolate",
		Short: "Bond and site percolation on graphs",
		Long: titleStyle.Render("percolate") + `

Sweeps the occupation probability q over [0,1] on a grid, an Erdős–Rényi
graph or a DIMACS edge file, tracking connected components, the largest
cluster and the first q at which the top boundary reaches the bottom.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML configuration file")
	pf.String("mode", d.Mode, "percolation mode: bond or site")
	pf.Float64("step", d.Step, "q increment in (0,1]")
	pf.Int64("seed", d.Seed, "random seed (0 picks one from the clock)")
	pf.String("format", d.Format, "output format: table, csv, json or yaml")
	pf.StringP("output", "o", d.Output, "write results to this file instead of stdout")
	pf.String("metrics-file", d.Metrics, "write Prometheus metrics in textfile format")
	pf.String("log-level", d.Log.Level, "log level: debug, info, warn or error")
	pf.String("log-format", d.Log.Format, "log format: text or json")
	addGraphFlags(pf, d.Graph)

	root.AddCommand(newRunCmd(a), newEnsembleCmd(a), newGenerateCmd(a))

	return root
}

func addGraphFlags(fs *pflag.FlagSet, d config.Graph) {
	fs.StringP("graph", "g", d.File, "DIMACS edge file")
	fs.String("kind", "", "graph source: grid, er or file (default grid, or file when --graph is set)")
	fs.Int("rows", d.Rows, "grid rows")
	fs.Int("cols", d.Cols, "grid columns")
	fs.Int("n", d.N, "Erdős–Rényi vertex count")
	fs.Float64("p", d.P, "Erdős–Rényi edge probability")
	fs.Bool("connected", d.Connected, "join Erdős–Rényi components into one")
}

// load binds the flags visible to cmd, loads the configuration and builds
// the logger.
func (a *app) load(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.log, err = cfg.Log.NewLogger(cmd.ErrOrStderr()); err != nil {
		return err
	}
	a.seed = cfg.Seed
	if a.seed == 0 {
		a.seed = time.Now().UnixNano()
	}
	a.log.Debug("configuration loaded", "file", a.cfgFile, "seed", a.seed)

	return nil
}

// graph builds the configured graph.
func (a *app) graph() (*lattice.Graph, error) {
	g := a.cfg.Graph
	switch g.Kind {
	case config.KindFile:
		return dimacs.ReadFile(g.File)
	case config.KindER:
		opts := []lattice.Option{lattice.WithSeed(a.seed)}
		if g.Connected {
			opts = append(opts, lattice.WithConnected())
		}
		return lattice.Build(lattice.ErdosRenyi(g.N, g.P), opts...)
	default:
		return lattice.Build(lattice.Grid(g.Rows, g.Cols))
	}
}

func (a *app) mode() percolation.Mode {
	return percolation.Mode(a.cfg.Mode)
}

func (a *app) format() report.Format {
	f, _ := report.ParseFormat(a.cfg.Format)
	return f
}

// output opens the configured destination. The returned close function must
// be called once writing is done.
func (a *app) output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if a.cfg.Output == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(a.cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("output: %w", err)
	}

	return f, f.Close, nil
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))
