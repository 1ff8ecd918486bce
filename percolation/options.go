package percolation

import (
	"log/slog"
	"math/rand"
)

// StepHook is invoked after every successful Step with the step's result row
// and the number of edges (bond) or vertices (site) activated by that step.
type StepHook func(res Result, activated int)

// Options holds the configurable parameters of an engine.
type Options struct {
	// Boundary, if non-nil, overrides the default boundary resolution.
	Boundary *Boundary

	// Rand drives configuration generation. Nil means the engine seeds its
	// own source from the wall clock at construction.
	Rand *rand.Rand

	// Logger receives diagnostics (ordering violations, percolation events,
	// boundary fallbacks). Defaults to slog.Default().
	Logger *slog.Logger

	// OnStep, if non-nil, observes every successful Step.
	OnStep StepHook
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns Options with:
//   - default boundary resolution (grid shape or ⌊√N⌋ square fallback)
//   - a wall-clock seeded RNG created per engine
//   - slog.Default() as logger
//   - no step hook
func DefaultOptions() Options {
	return Options{
		Boundary: nil,
		Rand:     nil,
		Logger:   slog.Default(),
		OnStep:   nil,
	}
}

// WithBoundary binds Top and Bottom to explicit vertex sets.
func WithBoundary(b Boundary) Option {
	return func(o *Options) {
		o.Boundary = &b
	}
}

// WithRand installs the RNG used by GenerateConfiguration. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("percolation: WithRand(nil)")
	}
	return func(o *Options) {
		o.Rand = r
	}
}

// WithSeed installs a new RNG seeded with seed, making configurations
// reproducible.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rand = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the diagnostic logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnStep installs a step observer.
func WithOnStep(fn StepHook) Option {
	return func(o *Options) {
		o.OnStep = fn
	}
}
