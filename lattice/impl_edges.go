package lattice

import "fmt"

const methodFromEdges = "FromEdges"

// FromEdges returns a Constructor wrapping an existing edge list over n
// vertices. The slice is copied; endpoints are checked by Build.
func FromEdges(n int, edges []Edge) Constructor {
	return func(_ config) (*Graph, error) {
		if n < 1 {
			return nil, fmt.Errorf("%s: n=%d: %w", methodFromEdges, n, ErrTooFewVertices)
		}
		cp := make([]Edge, len(edges))
		copy(cp, edges)

		return &Graph{N: n, Edges: cp}, nil
	}
}
