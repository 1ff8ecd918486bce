package percolation

import (
	"fmt"
	"math"

	"github.com/amonclus/percolate/lattice"
)

// Mode names the percolation variant.
type Mode string

const (
	// ModeBond activates edges.
	ModeBond Mode = "bond"
	// ModeSite activates vertices.
	ModeSite Mode = "site"
)

// ParseMode converts "bond" or "site" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBond, ModeSite:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("percolation: unknown mode %q (want %q or %q)", s, ModeBond, ModeSite)
	}
}

// WeightedEdge pairs an edge with its activation threshold in [0,1).
type WeightedEdge struct {
	lattice.Edge
	Weight float64
}

// Configuration is one random realisation of edge thresholds. It is generated
// once and reused for a whole sweep.
type Configuration []WeightedEdge

// Result is one row of a sweep.
type Result struct {
	// Q is the occupation probability of this step.
	Q float64 `json:"q" yaml:"q"`
	// Components is the number of connected components (bond) or occupied
	// clusters (site).
	Components int `json:"components" yaml:"components"`
	// LargestCluster is the largest component size seen so far.
	LargestCluster int `json:"largest_cluster" yaml:"largest_cluster"`
	// NormalizedLargest is LargestCluster / N.
	NormalizedLargest float64 `json:"nsc" yaml:"nsc"`
}

// Boundary lists the vertices bound to the Top and Bottom supernodes.
type Boundary struct {
	Top    []int
	Bottom []int
}

// GridBoundary returns the first and last rows of a row-major rows×cols grid.
func GridBoundary(rows, cols int) Boundary {
	n := rows * cols
	b := Boundary{Top: make([]int, 0, cols), Bottom: make([]int, 0, cols)}
	for c := 0; c < cols; c++ {
		b.Top = append(b.Top, c)
		b.Bottom = append(b.Bottom, n-cols+c)
	}

	return b
}

// SquareBoundary assumes the n vertices start with a row-major square grid of
// side s = ⌊√n⌋ and returns Top = [0,s) and Bottom = [n−s,n).
// The second result reports whether n really is a perfect square.
func SquareBoundary(n int) (Boundary, bool) {
	s := int(math.Sqrt(float64(n)))
	// Guard against floating point rounding on large n.
	for s*s > n {
		s--
	}
	for (s+1)*(s+1) <= n {
		s++
	}
	b := Boundary{Top: make([]int, 0, s), Bottom: make([]int, 0, s)}
	for i := 0; i < s; i++ {
		b.Top = append(b.Top, i)
		b.Bottom = append(b.Bottom, n-s+i)
	}

	return b, s*s == n
}

// validate checks that both sets are non-empty and inside [0,n).
func (b Boundary) validate(n int) error {
	if len(b.Top) == 0 || len(b.Bottom) == 0 {
		return fmt.Errorf("Boundary: top=%d bottom=%d vertices: %w", len(b.Top), len(b.Bottom), ErrEmptyBoundary)
	}
	for _, set := range [][]int{b.Top, b.Bottom} {
		for _, v := range set {
			if v < 0 || v >= n {
				return fmt.Errorf("Boundary: vertex %d with N=%d: %w", v, n, ErrBoundaryOutOfRange)
			}
		}
	}

	return nil
}
