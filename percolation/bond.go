package percolation

import (
	"fmt"

	"github.com/amonclus/percolate/lattice"
)

// Bond is an incremental bond-percolation engine over N vertices.
// Edges are activated as q rises past their weight; components and the
// largest cluster are tracked in a real forest, boundary connectivity in an
// augmented forest that also holds the Top and Bottom supernodes.
//
// A Bond is single-use: once q has advanced it cannot be rewound. Build a
// new engine for every sweep.
type Bond struct {
	*engine
	seeded bool // supernodes already bound
}

// NewBond returns a bond engine over n vertices.
// Without WithBoundary the boundary is SquareBoundary(n).
//
// Errors:
//   - ErrTooFewVertices if n < 1.
//   - ErrEmptyBoundary / ErrBoundaryOutOfRange for a bad boundary.
func NewBond(n int, opts ...Option) (*Bond, error) {
	e, err := newEngine(ModeBond, n, nil, opts)
	if err != nil {
		return nil, err
	}
	// Every vertex is a singleton cluster before any edge is active.
	e.largest = 1

	return &Bond{engine: e}, nil
}

// NewBondForGraph returns a bond engine sized for g. When g is a known grid
// and no explicit boundary is given, its first and last rows are used.
func NewBondForGraph(g *lattice.Graph, opts ...Option) (*Bond, error) {
	if g == nil {
		return nil, fmt.Errorf("NewBond: %w", ErrNilGraph)
	}
	e, err := newEngine(ModeBond, g.N, gridShape(g), opts)
	if err != nil {
		return nil, err
	}
	e.largest = 1

	return &Bond{engine: e}, nil
}

// GenerateConfiguration draws a weight for every edge from the engine's RNG.
func (b *Bond) GenerateConfiguration(edges []lattice.Edge) Configuration {
	return NewConfiguration(edges, b.rng)
}

// InitializeSupernodes binds Top and Bottom to their boundary vertices in the
// augmented forest. The real forest is untouched. Calling it again is a no-op.
func (b *Bond) InitializeSupernodes() {
	if b.seeded {
		return
	}
	for _, v := range b.boundary.Top {
		b.aug.Union(b.superTop, v)
	}
	for _, v := range b.boundary.Bottom {
		b.aug.Union(b.superBot, v)
	}
	b.seeded = true
}

// Step activates every edge whose weight lies in (CurrentQ, q] and returns
// the number of connected components over the N real vertices.
// The first Step also activates edges of weight exactly 0.
//
// If q < CurrentQ the state is left unchanged and the current count is
// returned together with an error wrapping ErrOrderingViolation; a NaN q is
// rejected the same way with ErrInvalidQ.
// Complexity: O(E·α(N)) per call.
func (b *Bond) Step(cfg Configuration, q float64) (int, error) {
	if err := b.checkQ(q); err != nil {
		return b.real.Count(), err
	}

	activated := 0
	for _, we := range cfg {
		if !b.admits(we.Weight, q) {
			continue
		}
		b.real.Union(we.U, we.V)
		b.aug.Union(we.U, we.V)
		if s := b.real.Size(we.U); s > b.largest {
			b.largest = s
		}
		activated++
	}

	components := b.real.Components(b.n)
	b.advance(q, components, activated)

	return components, nil
}

// Sweep binds the supernodes and steps q over 0, step, 2·step, … up to 1,
// returning one Result per step.
// step must lie in (0,1], otherwise ErrInvalidStep is returned.
func (b *Bond) Sweep(cfg Configuration, step float64) ([]Result, error) {
	b.InitializeSupernodes()

	return b.sweep(step, func(q float64) (int, error) {
		return b.Step(cfg, q)
	})
}

// gridShape returns the row boundary of g when g is a known grid.
func gridShape(g *lattice.Graph) *Boundary {
	if g == nil || !g.IsGrid() {
		return nil
	}
	b := GridBoundary(g.Rows, g.Cols)

	return &b
}
