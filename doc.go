// Package percolate is a toolkit for bond and site percolation on graphs:
// incremental sweeps of the occupation probability q, critical threshold
// detection and Monte Carlo ensembles.
//
// What it gives you:
//
//   - dsu: a size-augmented disjoint-set forest with path compression
//   - percolation: Bond and Site engines that activate edges (or vertices) as
//     q rises, tracking components, the largest cluster and the first q at
//     which the Top boundary reaches the Bottom boundary
//   - lattice: grid, Erdős–Rényi and explicit edge-list graph constructors
//   - dimacs: DIMACS "p edge" reading and writing, grid shape preserved
//   - ensemble: parallel repetitions, threshold statistics, variance
//     stabilisation and β fitting
//   - metrics, report, config: Prometheus export, table/CSV/JSON/YAML output
//     and viper configuration for the percolate command
//
// Boundary detection keeps two forests in lockstep: a real forest over the N
// vertices and an augmented forest with two extra supernodes bound to the
// Top and Bottom vertex sets. The system percolates once both supernodes
// share a root.
//
// Quick ASCII example, a 3×3 grid with Top and Bottom rows:
//
//	 T───T───T      ← Top supernode
//	 │   │   │
//	 ·───·───·
//	 │   │   │
//	 B───B───B      ← Bottom supernode
//
// Command line:
//
//	go install github.com/amonclus/percolate/cmd/percolate@latest
//	percolate run --rows 64 --cols 64 --step 0.01
//	percolate ensemble --graph lattice.dimacs --fit-pc 0.5 --fit-pc-max 0.57
package percolate
