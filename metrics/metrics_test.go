package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amonclus/percolate/lattice"
	"github.com/amonclus/percolate/metrics"
	"github.com/amonclus/percolate/percolation"
)

// TestStepHook counts steps and activations from a real sweep.
func TestStepHook(t *testing.T) {
	rec := metrics.NewRecorder()
	b, err := percolation.NewBond(2,
		percolation.WithBoundary(percolation.Boundary{Top: []int{0}, Bottom: []int{1}}),
		percolation.WithOnStep(rec.StepHook(percolation.ModeBond)))
	require.NoError(t, err)

	cfg := percolation.Configuration{{Edge: lattice.Edge{U: 0, V: 1}, Weight: 0.3}}
	_, err = b.Sweep(cfg, 0.5)
	require.NoError(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(rec.StepsTotal.WithLabelValues("bond")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.ActivatedTotal.WithLabelValues("bond")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.LastNormalized.WithLabelValues("bond")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.StepsTotal.WithLabelValues("site")))
}

// TestObserveSweep only observes q_c for percolating sweeps.
func TestObserveSweep(t *testing.T) {
	rec := metrics.NewRecorder()
	rec.ObserveSweep(percolation.ModeSite, 20*time.Millisecond, 0.59, true)
	rec.ObserveSweep(percolation.ModeBond, 10*time.Millisecond, 0, false)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.SweepsTotal.WithLabelValues("site")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.SweepsTotal.WithLabelValues("bond")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.PercolationsTotal.WithLabelValues("site")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.PercolationsTotal.WithLabelValues("bond")))
	// One series per mode that was observed.
	assert.Equal(t, 2, testutil.CollectAndCount(rec.SweepSeconds))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.CriticalQ))

	n, err := testutil.GatherAndCount(rec.Registry(), "percolate_sweeps_total", "percolate_critical_q")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

// TestWriteTextfile exports the registry.
func TestWriteTextfile(t *testing.T) {
	rec := metrics.NewRecorder()
	rec.ObserveSweep(percolation.ModeBond, time.Second, 0.5, true)

	path := filepath.Join(t.TempDir(), "percolate.prom")
	require.NoError(t, rec.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `percolate_sweeps_total{mode="bond"} 1`), text)
	assert.Contains(t, text, "# TYPE percolate_critical_q histogram")

	err = rec.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	assert.Error(t, err)
}
