package percolation

import "errors"

var (
	// ErrTooFewVertices indicates an engine was requested for N < 1.
	ErrTooFewVertices = errors.New("percolation: at least one vertex required")

	// ErrOrderingViolation indicates Step was called with q below the
	// engine's current q. The engine state is left unchanged.
	ErrOrderingViolation = errors.New("percolation: q below current q")

	// ErrInvalidQ indicates Step was called with q = NaN. The engine state
	// is left unchanged.
	ErrInvalidQ = errors.New("percolation: q is NaN")

	// ErrInvalidStep indicates a sweep step outside (0,1].
	ErrInvalidStep = errors.New("percolation: step must be in (0,1]")

	// ErrBoundaryOutOfRange indicates a boundary vertex outside [0,N).
	ErrBoundaryOutOfRange = errors.New("percolation: boundary vertex out of range")

	// ErrEmptyBoundary indicates an empty Top or Bottom vertex set.
	ErrEmptyBoundary = errors.New("percolation: empty boundary")

	// ErrConfigurationSize indicates a site configuration whose length is not N.
	ErrConfigurationSize = errors.New("percolation: configuration size mismatch")
)

// ErrNilGraph indicates a nil *lattice.Graph was passed to a constructor.
var ErrNilGraph = errors.New("percolation: nil graph")
