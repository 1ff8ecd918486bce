package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/amonclus/percolate/ensemble"
	"github.com/amonclus/percolate/metrics"
	"github.com/amonclus/percolate/report"
)

func newEnsembleCmd(a *app) *cobra.Command {
	d := ensemble.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "ensemble",
		Short: "Run a Monte Carlo ensemble of sweeps",
		Long: `Runs independent sweeps, each with its own random configuration, until
--runs repetitions have completed or, without --runs, until the variance of
the percolation threshold stabilises (at most --max-runs repetitions).
With --fit-pc-max the critical exponent β is fitted to the averaged curve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.ensemble(cmd)
		},
	}

	f := cmd.Flags()
	f.Int("runs", 0, "fixed number of repetitions (0 waits for stabilisation)")
	f.Int("max-runs", d.MaxRuns, "upper bound on repetitions")
	f.Int("workers", 0, "concurrent repetitions (0 uses one per CPU)")
	f.Int("window", d.Window, "stabilisation window")
	f.Float64("epsilon", d.Epsilon, "stabilisation threshold on the mean variance change")
	f.Float64("fit-pc", 0, "critical point for the β fit")
	f.Float64("fit-pc-max", 0, "upper q of the β fit (0 disables the fit)")

	return cmd
}

func (a *app) ensemble(cmd *cobra.Command) error {
	g, err := a.graph()
	if err != nil {
		return err
	}
	ec := a.cfg.Ensemble
	workers := ec.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	mode := a.mode()
	rec := metrics.NewRecorder()

	sum, err := ensemble.Run(cmd.Context(), g,
		ensemble.WithMode(mode),
		ensemble.WithStep(a.cfg.Step),
		ensemble.WithRuns(ec.Runs),
		ensemble.WithMaxRuns(ec.MaxRuns),
		ensemble.WithStabilization(ec.Window, ec.Epsilon),
		ensemble.WithWorkers(workers),
		ensemble.WithSeed(a.seed),
		ensemble.WithLogger(a.log),
		ensemble.WithOnStep(rec.StepHook(mode)),
		ensemble.WithOnRun(func(r ensemble.RunResult) {
			rec.ObserveSweep(mode, r.Elapsed, r.CriticalQ, r.Percolated)
		}),
	)
	if err != nil {
		return err
	}

	out := report.Ensemble{Summary: sum}
	if ec.FitPcMax > 0 {
		fit, err := ensemble.FitBeta(sum.Curve, ec.FitPc, ec.FitPcMax)
		if err != nil {
			a.log.Warn("beta fit skipped", "err", err)
		} else {
			out.Fit = fit
		}
	}

	w, closeOut, err := a.output(cmd)
	if err != nil {
		return err
	}
	err = report.WriteSummary(w, a.format(), out)
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	return a.writeMetrics(rec)
}
