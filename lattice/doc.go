// Package lattice models the integer-indexed graphs that percolation runs on
// and builds the canonical test topologies.
//
// What:
//
//   - Graph holds a vertex count N, an undirected edge list over [0,N), and,
//     when known, the row-major grid shape (Rows×Cols) the vertices form.
//   - Build resolves functional options and runs one Constructor.
//   - Grid(rows, cols) emits an orthogonal 4-neighbour grid.
//   - ErdosRenyi(n, p) samples G(n,p); WithConnected joins every component to
//     the first one so the result is connected.
//   - FromEdges(n, edges) wraps an existing edge list after validation.
//
// Determinism:
//
//   - Vertex order is index order; edge emission order is documented per
//     constructor and stable for a fixed seed.
//   - Stochastic constructors draw only from the RNG supplied by WithSeed or
//     WithRand. There is no package-level random state.
//
// Errors:
//
//   - ErrTooFewVertices:     size parameter below the constructor minimum.
//   - ErrInvalidProbability: p outside [0,1].
//   - ErrNeedRandSource:     stochastic constructor without an RNG.
//   - ErrVertexOutOfRange:   an edge endpoint outside [0,N).
//   - ErrNilConstructor:     Build called with a nil Constructor.
package lattice
