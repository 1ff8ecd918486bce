package ensemble

import (
	"gonum.org/v1/gonum/stat"
)

// accumulator folds repetitions in index order.
type accumulator struct {
	thresholds []float64

	// Per grid point: q and the values of every run.
	q          []float64
	components [][]float64
	largest    [][]float64
	normalized [][]float64
}

func newAccumulator() *accumulator {
	return &accumulator{}
}

func (a *accumulator) add(r RunResult) {
	if r.Percolated {
		a.thresholds = append(a.thresholds, r.CriticalQ)
	}
	if a.q == nil {
		n := len(r.Curve)
		a.q = make([]float64, n)
		a.components = make([][]float64, n)
		a.largest = make([][]float64, n)
		a.normalized = make([][]float64, n)
		for i, row := range r.Curve {
			a.q[i] = row.Q
		}
	}
	// Every run of one ensemble sweeps the same q grid.
	for i, row := range r.Curve {
		a.components[i] = append(a.components[i], float64(row.Components))
		a.largest[i] = append(a.largest[i], float64(row.LargestCluster))
		a.normalized[i] = append(a.normalized[i], row.NormalizedLargest)
	}
}

// popVariance is the population variance of the thresholds so far, 0 while
// fewer than two exist.
func (a *accumulator) popVariance() float64 {
	if len(a.thresholds) < 2 {
		return 0
	}

	return stat.PopVariance(a.thresholds, nil)
}

// thresholdStats returns the mean, sample variance and standard error of the
// thresholds. Variance and error are 0 below two samples.
func (a *accumulator) thresholdStats() (mean, variance, stderr float64) {
	switch len(a.thresholds) {
	case 0:
		return 0, 0, 0
	case 1:
		return a.thresholds[0], 0, 0
	}
	mean, std := stat.MeanStdDev(a.thresholds, nil)

	return mean, std * std, stat.StdErr(std, float64(len(a.thresholds)))
}

// curve averages every grid point over all runs.
func (a *accumulator) curve() []CurvePoint {
	out := make([]CurvePoint, len(a.q))
	for i, q := range a.q {
		meanNsc, stdNsc := stat.PopMeanStdDev(a.normalized[i], nil)
		out[i] = CurvePoint{
			Q:              q,
			MeanComponents: stat.Mean(a.components[i], nil),
			MeanLargest:    stat.Mean(a.largest[i], nil),
			MeanNormalized: meanNsc,
			StdNormalized:  stdNsc,
		}
	}

	return out
}
