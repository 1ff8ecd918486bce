// Package ensemble runs independent percolation sweeps on one graph and
// aggregates them.
//
// Every repetition draws its own configuration from a source seeded with
// Seed+i and owns its engine, so an ensemble is reproducible from a single
// seed regardless of how many workers execute it. Repetitions run on an
// errgroup in batches of Workers and are folded in index order.
//
// Without a fixed run count the ensemble stops once the population variance
// of the collected thresholds has stabilised: when the history holds more
// than Window values and the mean absolute change over the last Window−1
// consecutive pairs is below Epsilon.
//
// FitBeta estimates the critical exponent β from an averaged curve by a
// least-squares fit in log-log space.
package ensemble
