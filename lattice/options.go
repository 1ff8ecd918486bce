// SPDX-License-Identifier: MIT
// Package: percolate/lattice
//
// options.go — functional options and the resolved build configuration.
//
// Contract:
//   • Options mutate a private config; later options override earlier ones.
//   • Option constructors PANIC on meaningless inputs (nil RNG).
//   • Seeding is explicit: WithSeed or WithRand. Without either, the config
//     carries no RNG and stochastic constructors fail with ErrNeedRandSource.

package lattice

import "math/rand"

// config aggregates the knobs read by constructors. Passed by value.
type config struct {
	// rng drives stochastic constructors; nil means "no randomness".
	rng *rand.Rand
	// connected asks ErdosRenyi to join all components into one.
	connected bool
}

// Option customizes a build by mutating the config before the constructor runs.
type Option func(*config)

// WithSeed installs a new *rand.Rand seeded with seed (reproducible draws).
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand installs an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("lattice: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// WithConnected makes ErdosRenyi patch the sampled graph into a single
// component. Other constructors ignore it.
func WithConnected() Option {
	return func(c *config) {
		c.connected = true
	}
}

// newConfig applies opts in order over the deterministic defaults.
func newConfig(opts ...Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
