// SPDX-License-Identifier: MIT
// Package: percolate/lattice
//
// impl_erdos_renyi.go — implementation of ErdosRenyi(n, p).
//
// Contract:
//   • n ≥ 1 (else ErrTooFewVertices); 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   • An RNG is required when 0 < p < 1 (else ErrNeedRandSource); p ∈ {0,1}
//     is deterministic and needs none.
//   • Trials run over unordered pairs {i,j}, i<j, i asc then j asc; each pair
//     is kept independently with probability p.
//   • WithConnected: components are ordered by their smallest vertex and each
//     one after the first is joined to the first by an edge between the two
//     smallest vertices. Patch edges are appended after sampled edges.
//
// Complexity: O(n²) Bernoulli trials; connectivity patching O(n α(n)).

package lattice

import (
	"fmt"

	"github.com/amonclus/percolate/dsu"
)

const (
	methodErdosRenyi      = "ErdosRenyi"
	minErdosRenyiVertices = 1
	probMin               = 0.0
	probMax               = 1.0
)

// ErdosRenyi returns a Constructor that samples G(n,p).
func ErdosRenyi(n int, p float64) Constructor {
	return func(cfg config) (*Graph, error) {
		// 1) Validate size, probability, then RNG presence.
		if n < minErdosRenyiVertices {
			return nil, fmt.Errorf("%s: n=%d < min=%d: %w",
				methodErdosRenyi, n, minErdosRenyiVertices, ErrTooFewVertices)
		}
		if p < probMin || p > probMax {
			return nil, fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodErdosRenyi, p, probMin, probMax, ErrInvalidProbability)
		}
		stochastic := p > probMin && p < probMax
		if stochastic && cfg.rng == nil {
			return nil, fmt.Errorf("%s: %w", methodErdosRenyi, ErrNeedRandSource)
		}

		// 2) Bernoulli trial per unordered pair.
		var edges []Edge
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				keep := p == probMax
				if stochastic {
					keep = cfg.rng.Float64() < p
				}
				if keep {
					edges = append(edges, Edge{U: i, V: j})
				}
			}
		}

		// 3) Optional connectivity patch.
		if cfg.connected {
			edges = append(edges, bridges(n, edges)...)
		}

		return &Graph{N: n, Edges: edges}, nil
	}
}

// bridges returns the edges that join every component of (n, edges) to the
// component of vertex 0. The representative of a component is its smallest
// vertex, so the patch is deterministic for a given edge set.
func bridges(n int, edges []Edge) []Edge {
	f := dsu.New(n)
	for _, e := range edges {
		f.Union(e.U, e.V)
	}
	if f.Count() == 1 {
		return nil
	}

	// Scanning vertices in ascending order meets each component first at its
	// smallest vertex.
	var (
		out  []Edge
		seen = make(map[int]bool, f.Count())
	)
	seen[f.Find(0)] = true
	for v := 1; v < n; v++ {
		r := f.Find(v)
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, Edge{U: 0, V: v})
	}

	return out
}
