package percolation_test

import (
	"testing"

	"github.com/amonclus/percolate/percolation"
)

// BenchmarkBond_Sweep measures a full 0.01-step sweep on a 64×64 grid.
func BenchmarkBond_Sweep(b *testing.B) {
	g := mustGrid(b, 64, 64)
	cfg := percolation.NewConfiguration(g.Edges, newRand(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := percolation.NewBondForGraph(g, quiet())
		_, _ = e.Sweep(cfg, 0.01)
	}
}

// BenchmarkSite_Sweep measures the site variant on the same grid.
func BenchmarkSite_Sweep(b *testing.B) {
	g := mustGrid(b, 64, 64)
	weights := percolation.NewSiteConfiguration(g.N, newRand(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := percolation.NewSite(g, quiet())
		_, _ = e.Sweep(weights, 0.01)
	}
}
