package ensemble_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/amonclus/percolate/ensemble"
	"github.com/amonclus/percolate/lattice"
	"github.com/amonclus/percolate/percolation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() ensemble.Option {
	return ensemble.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustGrid(t *testing.T, rows, cols int) *lattice.Graph {
	t.Helper()
	g, err := lattice.Build(lattice.Grid(rows, cols))
	require.NoError(t, err)

	return g
}

// TestRun_FixedRuns runs a fixed number of repetitions on a grid.
func TestRun_FixedRuns(t *testing.T) {
	g := mustGrid(t, 6, 6)
	var folded []int

	sum, err := ensemble.Run(context.Background(), g,
		ensemble.WithRuns(10), ensemble.WithWorkers(3), ensemble.WithStep(0.1), ensemble.WithSeed(5), quiet(),
		ensemble.WithOnRun(func(r ensemble.RunResult) { folded = append(folded, r.Index) }))
	require.NoError(t, err)

	assert.Equal(t, 10, sum.Runs)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, folded, "folded in index order")
	// A full grid always spans at q=1.
	assert.Equal(t, 10, sum.Percolated)
	assert.Len(t, sum.Thresholds, 10)
	assert.Len(t, sum.VarianceHistory, 10)
	assert.Equal(t, 0.0, sum.VarianceHistory[0])
	assert.False(t, sum.Stabilized)

	assert.Greater(t, sum.MeanQc, 0.0)
	assert.LessOrEqual(t, sum.MeanQc, 1.0)
	assert.GreaterOrEqual(t, sum.VarianceQc, 0.0)

	require.Len(t, sum.Curve, 11)
	assert.Equal(t, 36.0, sum.Curve[0].MeanComponents)
	last := sum.Curve[len(sum.Curve)-1]
	assert.Equal(t, 1.0, last.MeanComponents)
	assert.Equal(t, 36.0, last.MeanLargest)
	assert.Equal(t, 1.0, last.MeanNormalized)
	assert.Equal(t, 0.0, last.StdNormalized)
}

// TestRun_ReproducibleAcrossWorkers: the seed alone determines the result.
func TestRun_ReproducibleAcrossWorkers(t *testing.T) {
	g := mustGrid(t, 5, 5)
	run := func(workers int) *ensemble.Summary {
		sum, err := ensemble.Run(context.Background(), g,
			ensemble.WithRuns(12), ensemble.WithWorkers(workers), ensemble.WithStep(0.05), ensemble.WithSeed(77), quiet())
		require.NoError(t, err)

		return sum
	}
	a, b := run(1), run(4)

	assert.Equal(t, a.Thresholds, b.Thresholds)
	assert.Equal(t, a.VarianceHistory, b.VarianceHistory)
	assert.Equal(t, a.Curve, b.Curve)
	assert.NotEqual(t, a.ID, b.ID)
}

// TestRun_Stabilizes: on a single vertex every run percolates at q=0, so the
// variance history is flat and the rule fires right after the window fills.
func TestRun_Stabilizes(t *testing.T) {
	g := mustGrid(t, 1, 1)

	sum, err := ensemble.Run(context.Background(), g,
		ensemble.WithMaxRuns(1000), ensemble.WithStabilization(5, 1e-7), ensemble.WithWorkers(4), quiet())
	require.NoError(t, err)

	assert.True(t, sum.Stabilized)
	assert.Equal(t, 6, sum.StabilizedAt)
	assert.Equal(t, 6, sum.Runs)
	assert.Len(t, sum.VarianceHistory, 6)
	assert.Equal(t, 0.0, sum.MeanQc)
}

// TestRun_MaxRunsCap stops at MaxRuns when the variance keeps moving.
func TestRun_MaxRunsCap(t *testing.T) {
	g := mustGrid(t, 4, 4)

	sum, err := ensemble.Run(context.Background(), g,
		ensemble.WithMaxRuns(7), ensemble.WithStabilization(15, 1e-7), ensemble.WithStep(0.1), quiet())
	require.NoError(t, err)

	assert.False(t, sum.Stabilized)
	assert.Equal(t, 7, sum.Runs)
}

// TestRun_SiteMode exercises the site engine through the ensemble.
func TestRun_SiteMode(t *testing.T) {
	g := mustGrid(t, 5, 5)

	sum, err := ensemble.Run(context.Background(), g,
		ensemble.WithMode(percolation.ModeSite), ensemble.WithRuns(4), ensemble.WithStep(0.25), quiet())
	require.NoError(t, err)

	assert.Equal(t, percolation.ModeSite, sum.Mode)
	require.Len(t, sum.Curve, 5)
	assert.Equal(t, 0.0, sum.Curve[0].MeanLargest)
	assert.Equal(t, 25.0, sum.Curve[4].MeanLargest)
}

// TestRun_OnStepCalledConcurrently counts steps from all workers.
func TestRun_OnStepCalledConcurrently(t *testing.T) {
	g := mustGrid(t, 3, 3)
	steps := make(chan struct{}, 1000)

	_, err := ensemble.Run(context.Background(), g,
		ensemble.WithRuns(6), ensemble.WithWorkers(3), ensemble.WithStep(0.5), quiet(),
		ensemble.WithOnStep(func(percolation.Result, int) { steps <- struct{}{} }))
	require.NoError(t, err)
	assert.Len(t, steps, 6*3)
}

// TestRun_Cancelled returns the context error.
func TestRun_Cancelled(t *testing.T) {
	g := mustGrid(t, 3, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ensemble.Run(ctx, g, ensemble.WithRuns(5), quiet())
	assert.ErrorIs(t, err, context.Canceled)
}

// TestRun_InvalidOptions covers validation.
func TestRun_InvalidOptions(t *testing.T) {
	g := mustGrid(t, 3, 3)
	tests := []struct {
		name string
		g    *lattice.Graph
		opts []ensemble.Option
		want error
	}{
		{"nil graph", nil, nil, ensemble.ErrNilGraph},
		{"bad step", g, []ensemble.Option{ensemble.WithStep(0)}, percolation.ErrInvalidStep},
		{"negative runs", g, []ensemble.Option{ensemble.WithRuns(-1)}, ensemble.ErrInvalidRuns},
		{"zero max runs", g, []ensemble.Option{ensemble.WithMaxRuns(0)}, ensemble.ErrInvalidRuns},
		{"zero workers", g, []ensemble.Option{ensemble.WithWorkers(0)}, ensemble.ErrInvalidWorkers},
		{"tiny window", g, []ensemble.Option{ensemble.WithStabilization(1, 1e-7)}, ensemble.ErrInvalidWindow},
		{"bad graph", &lattice.Graph{N: 2, Edges: []lattice.Edge{{U: 0, V: 5}}}, nil, lattice.ErrVertexOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ensemble.Run(context.Background(), tc.g, append(tc.opts, quiet())...)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestFitBeta recovers a synthetic power law.
func TestFitBeta(t *testing.T) {
	const (
		pc   = 0.5
		a    = 2.0
		beta = 0.4
	)
	var curve []ensemble.CurvePoint
	for i := 0; i <= 100; i++ {
		q := float64(i) / 100
		nsc := 0.0
		if q > pc {
			nsc = a * math.Pow(q-pc, beta)
		}
		curve = append(curve, ensemble.CurvePoint{Q: q, MeanNormalized: nsc})
	}

	fit, err := ensemble.FitBeta(curve, pc, 0.6)
	require.NoError(t, err)
	assert.Equal(t, 10, fit.Points)
	assert.InDelta(t, beta, fit.Beta, 1e-9)
	assert.InDelta(t, a, fit.A, 1e-9)
	assert.InDelta(t, 0, fit.BetaErr, 1e-6)
	assert.InDelta(t, 1, fit.R2, 1e-9)
}

// TestFitBeta_Errors covers the empty range and the point minimum.
func TestFitBeta_Errors(t *testing.T) {
	curve := []ensemble.CurvePoint{
		{Q: 0.5, MeanNormalized: 0.1},
		{Q: 0.6, MeanNormalized: 0.2},
		{Q: 0.7, MeanNormalized: 0.3},
	}

	_, err := ensemble.FitBeta(curve, 0.6, 0.6)
	assert.ErrorIs(t, err, ensemble.ErrInvalidFitRange)

	// Only q=0.6 and q=0.7 lie strictly above pc=0.5.
	_, err = ensemble.FitBeta(curve, 0.5, 1)
	assert.ErrorIs(t, err, ensemble.ErrTooFewPoints)
}
