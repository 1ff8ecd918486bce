package ensemble

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// BetaFit is the result of fitting NormalizedLargest ≈ A·(q−pc)^β.
type BetaFit struct {
	A       float64 `json:"a" yaml:"a"`
	Beta    float64 `json:"beta" yaml:"beta"`
	BetaErr float64 `json:"beta_err" yaml:"beta_err"`
	R2      float64 `json:"r2" yaml:"r2"`
	Points  int     `json:"points" yaml:"points"`
	Pc      float64 `json:"pc" yaml:"pc"`
	PcMax   float64 `json:"pc_max" yaml:"pc_max"`
}

// FitBeta fits ln(nsc) = ln(A) + β·ln(q−pc) by ordinary least squares over
// the curve points with pc < q ≤ pcMax and a positive mean fraction.
// BetaErr is the standard error of the slope.
//
// Errors:
//   - ErrInvalidFitRange if pcMax ≤ pc.
//   - ErrTooFewPoints if fewer than three points qualify.
func FitBeta(curve []CurvePoint, pc, pcMax float64) (*BetaFit, error) {
	if !(pcMax > pc) {
		return nil, fmt.Errorf("FitBeta: pc=%g pc_max=%g: %w", pc, pcMax, ErrInvalidFitRange)
	}

	// 1) Select points strictly above pc and transform to log-log space.
	var xs, ys []float64
	for _, p := range curve {
		if p.Q <= pc || p.Q > pcMax || p.MeanNormalized <= 0 {
			continue
		}
		xs = append(xs, math.Log(p.Q-pc))
		ys = append(ys, math.Log(p.MeanNormalized))
	}
	if len(xs) < 3 {
		return nil, fmt.Errorf("FitBeta: %d points in (%g,%g]: %w", len(xs), pc, pcMax, ErrTooFewPoints)
	}

	// 2) y = alpha + beta·x.
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	// 3) Standard error of the slope from the residuals.
	var rss float64
	for i, x := range xs {
		r := ys[i] - (alpha + beta*x)
		rss += r * r
	}
	meanX := stat.Mean(xs, nil)
	var sxx float64
	for _, x := range xs {
		sxx += (x - meanX) * (x - meanX)
	}
	var betaErr float64
	if sxx > 0 {
		betaErr = math.Sqrt(rss / float64(len(xs)-2) / sxx)
	}

	return &BetaFit{
		A:       math.Exp(alpha),
		Beta:    beta,
		BetaErr: betaErr,
		R2:      stat.RSquared(xs, ys, nil, alpha, beta),
		Points:  len(xs),
		Pc:      pc,
		PcMax:   pcMax,
	}, nil
}
