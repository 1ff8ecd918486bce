// Package dimacs reads and writes undirected graphs in the DIMACS edge format
// used by the percolation tools.
//
// Format:
//
//	c <free text>          comment, ignored
//	c grid <rows> <cols>   optional: vertices form a row-major grid
//	p edge <N> <M>         problem line, exactly once, before any edge
//	e <u> <v>              edge between 1-based vertices u and v
//
// Vertices are 1-based on disk and 0-based in lattice.Graph. The edge count M
// must match the number of "e" lines. "p col" is accepted as a synonym of
// "p edge" for files produced by colouring benchmarks.
//
// Errors carry the 1-based line number and wrap one of ErrMissingProblem,
// ErrDuplicateProblem, ErrMalformedLine, ErrEdgeCountMismatch or
// lattice.ErrVertexOutOfRange.
package dimacs
