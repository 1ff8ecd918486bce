package ensemble

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/amonclus/percolate/lattice"
	"github.com/amonclus/percolate/percolation"
)

// RunResult is the outcome of one repetition.
type RunResult struct {
	Index      int                  `json:"index" yaml:"index"`
	ID         uuid.UUID            `json:"id" yaml:"id"`
	Seed       int64                `json:"seed" yaml:"seed"`
	Percolated bool                 `json:"percolated" yaml:"percolated"`
	CriticalQ  float64              `json:"q_c" yaml:"q_c"`
	Elapsed    time.Duration        `json:"elapsed" yaml:"elapsed"`
	Curve      []percolation.Result `json:"curve,omitempty" yaml:"curve,omitempty"`
}

// CurvePoint averages one q of the sweep over every repetition.
type CurvePoint struct {
	Q              float64 `json:"q" yaml:"q"`
	MeanComponents float64 `json:"mean_components" yaml:"mean_components"`
	MeanLargest    float64 `json:"mean_largest" yaml:"mean_largest"`
	MeanNormalized float64 `json:"mean_nsc" yaml:"mean_nsc"`
	StdNormalized  float64 `json:"std_nsc" yaml:"std_nsc"`
}

// Summary aggregates an ensemble.
type Summary struct {
	ID    uuid.UUID        `json:"id" yaml:"id"`
	Mode  percolation.Mode `json:"mode" yaml:"mode"`
	N     int              `json:"n" yaml:"n"`
	Edges int              `json:"edges" yaml:"edges"`
	Step  float64          `json:"step" yaml:"step"`
	Seed  int64            `json:"seed" yaml:"seed"`

	Runs       int `json:"runs" yaml:"runs"`
	Percolated int `json:"percolated" yaml:"percolated"`

	// Statistics over the thresholds of runs that percolated.
	Thresholds []float64 `json:"thresholds" yaml:"thresholds"`
	MeanQc     float64   `json:"mean_q_c" yaml:"mean_q_c"`
	VarianceQc float64   `json:"variance_q_c" yaml:"variance_q_c"`
	StdErrQc   float64   `json:"stderr_q_c" yaml:"stderr_q_c"`

	// VarianceHistory holds the population variance after every run.
	VarianceHistory []float64 `json:"variance_history" yaml:"variance_history"`
	Stabilized      bool      `json:"stabilized" yaml:"stabilized"`
	StabilizedAt    int       `json:"stabilized_at,omitempty" yaml:"stabilized_at,omitempty"`

	Curve   []CurvePoint  `json:"curve" yaml:"curve"`
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Run executes the ensemble described by opts on g.
//
// Errors:
//   - ErrNilGraph, or any g.Validate error.
//   - percolation.ErrInvalidStep for a step outside (0,1].
//   - ErrInvalidRuns, ErrInvalidWorkers, ErrInvalidWindow for bad options.
//   - the context error once ctx is cancelled.
func Run(ctx context.Context, g *lattice.Graph, opts ...Option) (*Summary, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// 1) Validate inputs before spawning anything.
	if err := validate(g, &o); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	resolveBoundary(g, &o)

	target := o.Runs
	if target == 0 {
		target = o.MaxRuns
	}

	started := time.Now()
	sum := &Summary{
		ID:    uuid.New(),
		Mode:  o.Mode,
		N:     g.N,
		Edges: len(g.Edges),
		Step:  o.Step,
		Seed:  o.Seed,
	}
	acc := newAccumulator()
	log := o.Logger.With("ensemble", sum.ID.String(), "mode", string(o.Mode))
	log.Info("ensemble started", "n", g.N, "edges", len(g.Edges), "target_runs", target, "workers", o.Workers)

	// 2) Run batches of Workers repetitions; fold each batch in index order.
	for start := 0; start < target; start += o.Workers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("Run: after %d runs: %w", sum.Runs, err)
		}

		batch := make([]RunResult, min(o.Workers, target-start))
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(o.Workers)
		for j := range batch {
			j := j // per-iteration copy (pre-Go 1.22 loop semantics)
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				r, err := runOnce(g, &o, start+j)
				if err != nil {
					return err
				}
				batch[j] = r

				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}

		// 3) Fold and test the stop rule after every single run so the stop
		// index does not depend on the batch size.
		for _, r := range batch {
			acc.add(r)
			sum.Runs++
			if r.Percolated {
				sum.Percolated++
			}
			sum.VarianceHistory = append(sum.VarianceHistory, acc.popVariance())
			if o.OnRun != nil {
				o.OnRun(r)
			}
			if o.Runs == 0 && stabilized(sum.VarianceHistory, o.Window, o.Epsilon) {
				sum.Stabilized = true
				sum.StabilizedAt = sum.Runs
				break
			}
		}
		if sum.Stabilized {
			log.Info("variance stabilised", "runs", sum.Runs)
			break
		}
	}

	// 4) Summarise.
	sum.Thresholds = acc.thresholds
	sum.MeanQc, sum.VarianceQc, sum.StdErrQc = acc.thresholdStats()
	sum.Curve = acc.curve()
	sum.Elapsed = time.Since(started)
	log.Info("ensemble finished",
		"runs", sum.Runs, "percolated", sum.Percolated,
		"mean_q_c", sum.MeanQc, "stderr_q_c", sum.StdErrQc, "elapsed", sum.Elapsed)

	return sum, nil
}

func validate(g *lattice.Graph, o *Options) error {
	if g == nil {
		return ErrNilGraph
	}
	if err := g.Validate(); err != nil {
		return err
	}
	if _, err := percolation.ParseMode(string(o.Mode)); err != nil {
		return err
	}
	if math.IsNaN(o.Step) || o.Step <= 0 || o.Step > 1 {
		return fmt.Errorf("step=%g: %w", o.Step, percolation.ErrInvalidStep)
	}
	if o.Runs < 0 || (o.Runs == 0 && o.MaxRuns < 1) {
		return fmt.Errorf("runs=%d max_runs=%d: %w", o.Runs, o.MaxRuns, ErrInvalidRuns)
	}
	if o.Workers < 1 {
		return fmt.Errorf("workers=%d: %w", o.Workers, ErrInvalidWorkers)
	}
	if o.Runs == 0 && (o.Window < 2 || o.Epsilon < 0) {
		return fmt.Errorf("window=%d epsilon=%g: %w", o.Window, o.Epsilon, ErrInvalidWindow)
	}

	return nil
}

// resolveBoundary fixes the square fallback once so that a non-grid graph is
// reported a single time instead of once per repetition.
func resolveBoundary(g *lattice.Graph, o *Options) {
	if o.Boundary != nil || g.IsGrid() {
		return
	}
	b, square := percolation.SquareBoundary(g.N)
	if !square {
		o.Logger.Warn("vertex count is not a perfect square; boundary rows are a guess",
			"n", g.N, "side", len(b.Top))
	}
	o.Boundary = &b
}

// runOnce builds a fresh engine for repetition index and sweeps it.
func runOnce(g *lattice.Graph, o *Options, index int) (RunResult, error) {
	r := RunResult{Index: index, ID: uuid.New(), Seed: o.Seed + int64(index)}
	started := time.Now()

	popts := []percolation.Option{
		percolation.WithSeed(r.Seed),
		percolation.WithLogger(o.Logger.With("run", index)),
	}
	if o.Boundary != nil {
		popts = append(popts, percolation.WithBoundary(*o.Boundary))
	}
	if o.OnStep != nil {
		popts = append(popts, percolation.WithOnStep(o.OnStep))
	}

	var (
		curve []percolation.Result
		err   error
	)
	switch o.Mode {
	case percolation.ModeSite:
		var s *percolation.Site
		if s, err = percolation.NewSite(g, popts...); err != nil {
			return r, err
		}
		if curve, err = s.Sweep(s.GenerateConfiguration(), o.Step); err != nil {
			return r, err
		}
		r.CriticalQ, r.Percolated = s.CriticalQ()
	default:
		var b *percolation.Bond
		if b, err = percolation.NewBondForGraph(g, popts...); err != nil {
			return r, err
		}
		if curve, err = b.Sweep(b.GenerateConfiguration(g.Edges), o.Step); err != nil {
			return r, err
		}
		r.CriticalQ, r.Percolated = b.CriticalQ()
	}
	r.Curve = curve
	r.Elapsed = time.Since(started)

	return r, nil
}

// stabilized reports whether the mean absolute change over the last
// window−1 consecutive pairs of history is below epsilon. It needs more than
// window values.
func stabilized(history []float64, window int, epsilon float64) bool {
	if len(history) <= window {
		return false
	}
	var total float64
	last := len(history) - 1
	for k := 0; k < window-1; k++ {
		total += math.Abs(history[last-k] - history[last-k-1])
	}

	return total/float64(window-1) < epsilon
}
