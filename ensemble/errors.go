package ensemble

import "errors"

var (
	// ErrNilGraph indicates Run was called without a graph.
	ErrNilGraph = errors.New("ensemble: nil graph")

	// ErrInvalidRuns indicates a negative run count or a max run count < 1.
	ErrInvalidRuns = errors.New("ensemble: invalid run count")

	// ErrInvalidWorkers indicates a worker count < 1.
	ErrInvalidWorkers = errors.New("ensemble: workers must be ≥ 1")

	// ErrInvalidWindow indicates a stabilisation window < 2 or a negative epsilon.
	ErrInvalidWindow = errors.New("ensemble: invalid stabilisation window")

	// ErrTooFewPoints indicates fewer than three usable points for a fit.
	ErrTooFewPoints = errors.New("ensemble: too few points for fit")

	// ErrInvalidFitRange indicates pcMax ≤ pc.
	ErrInvalidFitRange = errors.New("ensemble: fit range is empty")
)
