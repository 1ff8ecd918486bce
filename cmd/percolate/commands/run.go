package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/amonclus/percolate/metrics"
	"github.com/amonclus/percolate/percolation"
	"github.com/amonclus/percolate/report"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a single percolation sweep",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd)
		},
	}
}

func (a *app) run(cmd *cobra.Command) error {
	g, err := a.graph()
	if err != nil {
		return err
	}
	mode := a.mode()
	rec := metrics.NewRecorder()
	opts := []percolation.Option{
		percolation.WithSeed(a.seed),
		percolation.WithLogger(a.log),
		percolation.WithOnStep(rec.StepHook(mode)),
	}

	started := time.Now()
	var (
		results []percolation.Result
		qc      float64
		ok      bool
	)
	switch mode {
	case percolation.ModeSite:
		s, err := percolation.NewSite(g, opts...)
		if err != nil {
			return err
		}
		if results, err = s.Sweep(s.GenerateConfiguration(), a.cfg.Step); err != nil {
			return err
		}
		qc, ok = s.CriticalQ()
	default:
		b, err := percolation.NewBondForGraph(g, opts...)
		if err != nil {
			return err
		}
		if results, err = b.Sweep(b.GenerateConfiguration(g.Edges), a.cfg.Step); err != nil {
			return err
		}
		qc, ok = b.CriticalQ()
	}
	elapsed := time.Since(started)
	rec.ObserveSweep(mode, elapsed, qc, ok)
	a.log.Info("sweep finished", "mode", string(mode), "n", g.N, "edges", len(g.Edges),
		"percolated", ok, "q_c", qc, "elapsed", elapsed)

	w, closeOut, err := a.output(cmd)
	if err != nil {
		return err
	}
	err = report.WriteSweep(w, a.format(), report.Sweep{
		Mode:       mode,
		N:          g.N,
		Edges:      len(g.Edges),
		Step:       a.cfg.Step,
		Seed:       a.seed,
		Percolated: ok,
		CriticalQ:  qc,
		Elapsed:    elapsed,
		Results:    results,
	})
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	return a.writeMetrics(rec)
}

func (a *app) writeMetrics(rec *metrics.Recorder) error {
	if a.cfg.Metrics == "" {
		return nil
	}

	return rec.WriteTextfile(a.cfg.Metrics)
}
