package percolation

import (
	"fmt"

	"github.com/amonclus/percolate/lattice"
)

// Site is an incremental site-percolation engine over the vertices of a
// graph. A vertex becomes occupied once q rises past its weight; clusters
// are the connected components of the subgraph induced by occupied vertices.
//
// Like Bond, a Site is single-use.
type Site struct {
	*engine
	adj      [][]int
	occupied []bool
	onTop    []bool
	onBottom []bool
	clusters int
}

// NewSite returns a site engine over g. Without WithBoundary the boundary is
// the first and last row when g is a known grid, SquareBoundary(g.N)
// otherwise.
//
// Errors:
//   - ErrNilGraph if g is nil.
//   - ErrTooFewVertices if g.N < 1.
//   - ErrEmptyBoundary / ErrBoundaryOutOfRange for a bad boundary.
//   - any error from g.Validate.
func NewSite(g *lattice.Graph, opts ...Option) (*Site, error) {
	if g == nil {
		return nil, fmt.Errorf("NewSite: %w", ErrNilGraph)
	}
	e, err := newEngine(ModeSite, g.N, gridShape(g), opts)
	if err != nil {
		return nil, err
	}
	if err = g.Validate(); err != nil {
		return nil, fmt.Errorf("NewSite: %w", err)
	}

	s := &Site{
		engine:   e,
		adj:      g.Adjacency(),
		occupied: make([]bool, g.N),
		onTop:    make([]bool, g.N),
		onBottom: make([]bool, g.N),
	}
	for _, v := range e.boundary.Top {
		s.onTop[v] = true
	}
	for _, v := range e.boundary.Bottom {
		s.onBottom[v] = true
	}

	return s, nil
}

// GenerateConfiguration draws a weight for every vertex from the engine's RNG.
func (s *Site) GenerateConfiguration() []float64 {
	return NewSiteConfiguration(s.n, s.rng)
}

// Occupied reports whether vertex v is occupied.
func (s *Site) Occupied(v int) bool {
	return s.occupied[v]
}

// Step occupies every vertex whose weight lies in (CurrentQ, q] and returns
// the number of occupied clusters.
// The first Step also occupies vertices of weight exactly 0.
//
// Errors:
//   - ErrConfigurationSize if len(weights) != N (state unchanged).
//   - ErrOrderingViolation if q < CurrentQ (state unchanged).
//   - ErrInvalidQ if q is NaN (state unchanged).
//
// Complexity: O((N + E)·α(N)) per call.
func (s *Site) Step(weights []float64, q float64) (int, error) {
	if len(weights) != s.n {
		return s.clusters, fmt.Errorf("Site.Step: %d weights for N=%d: %w", len(weights), s.n, ErrConfigurationSize)
	}
	if err := s.checkQ(q); err != nil {
		return s.clusters, err
	}

	activated := 0
	for v, w := range weights {
		if s.occupied[v] || !s.admits(w, q) {
			continue
		}
		s.occupy(v)
		activated++
	}

	s.advance(q, s.clusters, activated)

	return s.clusters, nil
}

// Sweep steps q over 0, step, 2·step, … up to 1 and returns one Result per
// step. step must lie in (0,1], otherwise ErrInvalidStep is returned.
func (s *Site) Sweep(weights []float64, step float64) ([]Result, error) {
	if len(weights) != s.n {
		return nil, fmt.Errorf("Site.Sweep: %d weights for N=%d: %w", len(weights), s.n, ErrConfigurationSize)
	}

	return s.sweep(step, func(q float64) (int, error) {
		return s.Step(weights, q)
	})
}

// occupy marks v occupied and merges it with its occupied neighbours in both
// forests. Boundary vertices are bound to their supernode in the augmented
// forest only.
func (s *Site) occupy(v int) {
	s.occupied[v] = true
	s.clusters++

	for _, u := range s.adj[v] {
		if !s.occupied[u] {
			continue
		}
		if s.real.Union(v, u) {
			s.clusters--
		}
		s.aug.Union(v, u)
	}
	if s.onTop[v] {
		s.aug.Union(s.superTop, v)
	}
	if s.onBottom[v] {
		s.aug.Union(s.superBot, v)
	}

	if size := s.real.Size(v); size > s.largest {
		s.largest = size
	}
}
