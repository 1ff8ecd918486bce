// Package percolation simulates bond and site percolation on a lattice.Graph
// with an incremental union-find sweep over the occupation probability q.
//
// What:
//
//   - Bond assigns every edge a uniform threshold in [0,1) and, as q grows,
//     activates edges whose threshold falls in (previous q, q].
//   - Site does the same for vertices: an occupied vertex joins its occupied
//     neighbours.
//   - Both engines keep two dsu.Forest instances in lockstep: a real forest
//     over the N vertices (component count and sizes) and an augmented forest
//     over N+2 elements where two supernodes, Top (index N) and Bottom
//     (index N+1), are bound to the boundary vertex sets. The system has
//     percolated exactly when Top and Bottom share a root.
//
// Incremental invariant:
//
//	Every weight is examined by exactly one Step across a sweep: a Step to q
//	admits weights w with current < w ≤ q (the first Step also admits w = 0)
//	and then sets current = q. A full sweep therefore costs O(E) unions plus
//	O(E) scan per step, instead of re-running union-find from scratch at
//	every q.
//
// Boundary:
//
//   - WithBoundary supplies explicit Top/Bottom vertex sets; GridBoundary
//     derives them from a rows×cols row-major grid.
//   - NewSite and NewBondForGraph use the first and last row when the graph
//     carries a grid shape.
//   - Otherwise the engines fall back to SquareBoundary(N) (side ⌊√N⌋) and
//     log a warning when N is not a perfect square, because the vertex set is
//     then not a square grid and the fallback boundary is arbitrary.
//
// Errors:
//
//   - ErrTooFewVertices:      N < 1.
//   - ErrOrderingViolation:   Step with q below the current q (non-fatal; the
//     call reports the unchanged component count).
//   - ErrInvalidStep:         sweep step outside (0,1].
//   - ErrBoundaryOutOfRange:  boundary vertex outside [0,N).
//   - ErrEmptyBoundary:       Top or Bottom set empty.
//   - ErrConfigurationSize:   site weights slice of the wrong length.
//   - ErrNilGraph:            nil graph passed to a constructor.
//
// Concurrency:
//
// Engines are single-threaded and must not be shared between goroutines.
// Independent repetitions each need their own engine and configuration; see
// package ensemble.
package percolation
