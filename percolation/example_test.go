package percolation_test

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/amonclus/percolate/lattice"
	"github.com/amonclus/percolate/percolation"
)

// ExampleBond_Sweep sweeps a 2-vertex chain whose single edge opens at q=0.3.
func ExampleBond_Sweep() {
	b, _ := percolation.NewBond(2,
		percolation.WithBoundary(percolation.Boundary{Top: []int{0}, Bottom: []int{1}}),
		percolation.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	cfg := percolation.Configuration{{Edge: lattice.Edge{U: 0, V: 1}, Weight: 0.3}}

	res, _ := b.Sweep(cfg, 0.25)
	for _, r := range res {
		fmt.Printf("q=%.2f components=%d largest=%d nsc=%.1f\n", r.Q, r.Components, r.LargestCluster, r.NormalizedLargest)
	}
	qc, ok := b.CriticalQ()
	fmt.Println("percolated:", ok, "q_c:", qc)

	// Output:
	// q=0.00 components=2 largest=1 nsc=0.5
	// q=0.25 components=2 largest=1 nsc=0.5
	// q=0.50 components=1 largest=2 nsc=1.0
	// q=0.75 components=1 largest=2 nsc=1.0
	// q=1.00 components=1 largest=2 nsc=1.0
	// percolated: true q_c: 0.5
}
