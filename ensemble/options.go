package ensemble

import (
	"log/slog"
	"runtime"

	"github.com/amonclus/percolate/percolation"
)

const (
	// DefaultStep is the q increment of every sweep.
	DefaultStep = 0.01
	// DefaultMaxRuns caps an ensemble that waits for stabilisation.
	DefaultMaxRuns = 10000
	// DefaultWindow is the number of variance values inspected for stability.
	DefaultWindow = 15
	// DefaultEpsilon is the mean absolute variance change regarded as stable.
	DefaultEpsilon = 1e-7
)

// Options configures Run.
type Options struct {
	Mode percolation.Mode
	Step float64

	// Runs fixes the number of repetitions; 0 runs until stabilisation or
	// MaxRuns.
	Runs    int
	MaxRuns int
	Window  int
	Epsilon float64

	Workers int
	Seed    int64

	// Boundary overrides the engine default for every repetition.
	Boundary *percolation.Boundary

	Logger *slog.Logger

	// OnStep observes every step of every repetition. It is called from
	// worker goroutines and must be safe for concurrent use.
	OnStep percolation.StepHook

	// OnRun observes every folded repetition, in index order.
	OnRun func(RunResult)
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns bond mode, step 0.01, stabilisation with window 15,
// epsilon 1e-7 and at most 10000 runs, one worker per CPU and seed 1.
func DefaultOptions() Options {
	return Options{
		Mode:    percolation.ModeBond,
		Step:    DefaultStep,
		MaxRuns: DefaultMaxRuns,
		Window:  DefaultWindow,
		Epsilon: DefaultEpsilon,
		Workers: runtime.NumCPU(),
		Seed:    1,
		Logger:  slog.Default(),
	}
}

// WithMode selects bond or site percolation.
func WithMode(m percolation.Mode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithStep sets the sweep increment.
func WithStep(step float64) Option {
	return func(o *Options) { o.Step = step }
}

// WithRuns fixes the number of repetitions and disables early stopping.
func WithRuns(n int) Option {
	return func(o *Options) { o.Runs = n }
}

// WithMaxRuns caps a stabilising ensemble.
func WithMaxRuns(n int) Option {
	return func(o *Options) { o.MaxRuns = n }
}

// WithStabilization sets the stop rule's window and epsilon.
func WithStabilization(window int, epsilon float64) Option {
	return func(o *Options) {
		o.Window = window
		o.Epsilon = epsilon
	}
}

// WithWorkers bounds the number of concurrent repetitions.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithSeed sets the base seed; repetition i uses seed+i.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithBoundary binds every engine to b.
func WithBoundary(b percolation.Boundary) Option {
	return func(o *Options) { o.Boundary = &b }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnStep installs a concurrent-safe step observer.
func WithOnStep(fn percolation.StepHook) Option {
	return func(o *Options) { o.OnStep = fn }
}

// WithOnRun installs a per-repetition observer.
func WithOnRun(fn func(RunResult)) Option {
	return func(o *Options) { o.OnRun = fn }
}
