// Package metrics records percolation activity as Prometheus metrics on a
// private registry and exports them in node-exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/amonclus/percolate/percolation"
)

const (
	metricsNamespace = "percolate"
	labelMode        = "mode"
)

// Recorder owns a registry and the collectors registered on it.
// All methods are safe for concurrent use.
type Recorder struct {
	reg *prometheus.Registry

	SweepsTotal       *prometheus.CounterVec
	StepsTotal        *prometheus.CounterVec
	ActivatedTotal    *prometheus.CounterVec
	PercolationsTotal *prometheus.CounterVec
	CriticalQ         *prometheus.HistogramVec
	SweepSeconds      *prometheus.HistogramVec
	LastNormalized    *prometheus.GaugeVec
}

// NewRecorder registers every collector on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,
		SweepsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sweeps_total",
			Help:      "Completed sweeps by percolation mode",
		}, []string{labelMode}),
		StepsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "steps_total",
			Help:      "Successful incremental steps by percolation mode",
		}, []string{labelMode}),
		ActivatedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "activated_total",
			Help:      "Edges (bond) or vertices (site) activated",
		}, []string{labelMode}),
		PercolationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "percolations_total",
			Help:      "Sweeps in which top and bottom boundaries became connected",
		}, []string{labelMode}),
		CriticalQ: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "critical_q",
			Help:      "Occupation probability at which percolation was first detected",
			Buckets:   prometheus.LinearBuckets(0.05, 0.05, 20),
		}, []string{labelMode}),
		SweepSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "sweep_duration_seconds",
			Help:      "Wall time of one sweep",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 60},
		}, []string{labelMode}),
		LastNormalized: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "largest_cluster_fraction",
			Help:      "Largest cluster fraction of the most recent step",
		}, []string{labelMode}),
	}
}

// Registry exposes the private registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// StepHook returns an engine step hook that counts steps and activations
// for mode and tracks the largest cluster fraction.
func (r *Recorder) StepHook(mode percolation.Mode) percolation.StepHook {
	steps := r.StepsTotal.WithLabelValues(string(mode))
	activated := r.ActivatedTotal.WithLabelValues(string(mode))
	nsc := r.LastNormalized.WithLabelValues(string(mode))

	return func(res percolation.Result, n int) {
		steps.Inc()
		activated.Add(float64(n))
		nsc.Set(res.NormalizedLargest)
	}
}

// ObserveSweep records one finished sweep. qc is only observed when ok.
func (r *Recorder) ObserveSweep(mode percolation.Mode, elapsed time.Duration, qc float64, ok bool) {
	m := string(mode)
	r.SweepsTotal.WithLabelValues(m).Inc()
	r.SweepSeconds.WithLabelValues(m).Observe(elapsed.Seconds())
	if ok {
		r.PercolationsTotal.WithLabelValues(m).Inc()
		r.CriticalQ.WithLabelValues(m).Observe(qc)
	}
}

// WriteTextfile writes the current state of the registry to path in the
// text exposition format, atomically via a temporary file.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("WriteTextfile(%s): %w", path, err)
	}

	return nil
}
