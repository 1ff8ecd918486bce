package lattice

import "fmt"

// Edge is an unordered pair of vertex indexes in [0,N).
// Self-loops are representable; percolation treats them as no-op unions.
type Edge struct {
	U, V int
}

// Graph is an undirected multigraph over vertices 0..N-1.
// Rows and Cols are both non-zero only when the vertices are known to form a
// row-major Rows×Cols grid (vertex r*Cols+c sits at row r, column c).
type Graph struct {
	N     int
	Edges []Edge
	Rows  int
	Cols  int
}

// IsGrid reports whether the graph carries a grid shape consistent with N.
func (g *Graph) IsGrid() bool {
	return g.Rows > 0 && g.Cols > 0 && g.Rows*g.Cols == g.N
}

// Validate checks N ≥ 1 and that every endpoint lies in [0,N).
// The first offending edge is reported with its position.
// Complexity: O(E).
func (g *Graph) Validate() error {
	if g.N < 1 {
		return fmt.Errorf("Graph: N=%d: %w", g.N, ErrTooFewVertices)
	}
	for i, e := range g.Edges {
		if e.U < 0 || e.U >= g.N || e.V < 0 || e.V >= g.N {
			return fmt.Errorf("Graph: edge %d (%d,%d) with N=%d: %w", i, e.U, e.V, g.N, ErrVertexOutOfRange)
		}
	}

	return nil
}

// Adjacency returns, for every vertex, the list of its neighbours in edge
// order. Parallel edges yield repeated entries; a self-loop appears once.
// Complexity: O(N + E) time and memory.
func (g *Graph) Adjacency() [][]int {
	adj := make([][]int, g.N)
	for _, e := range g.Edges {
		adj[e.U] = append(adj[e.U], e.V)
		if e.U != e.V {
			adj[e.V] = append(adj[e.V], e.U)
		}
	}

	return adj
}
