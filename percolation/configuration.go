package percolation

import (
	"math/rand"

	"github.com/amonclus/percolate/lattice"
)

// NewConfiguration draws one independent uniform weight in [0,1) per edge
// from rng and returns them in input order.
// Complexity: O(E).
func NewConfiguration(edges []lattice.Edge, rng *rand.Rand) Configuration {
	cfg := make(Configuration, len(edges))
	for i, e := range edges {
		cfg[i] = WeightedEdge{Edge: e, Weight: rng.Float64()}
	}

	return cfg
}

// NewSiteConfiguration draws one independent uniform weight in [0,1) per
// vertex from rng.
// Complexity: O(n).
func NewSiteConfiguration(n int, rng *rand.Rand) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = rng.Float64()
	}

	return weights
}
