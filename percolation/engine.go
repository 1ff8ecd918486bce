package percolation

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/amonclus/percolate/dsu"
)

// qEpsilon absorbs floating point error in the sweep's stop condition.
const qEpsilon = 1e-10

// engine is the state shared by Bond and Site: the two forests kept in
// lockstep, the monotone sweep position and the latched critical threshold.
type engine struct {
	mode     Mode
	n        int
	real     *dsu.Forest // vertices 0..n-1
	aug      *dsu.Forest // vertices 0..n-1 plus superTop=n, superBottom=n+1
	superTop int
	superBot int
	boundary Boundary

	currentQ  float64
	started   bool // false until the first successful Step
	largest   int
	processed int

	percolated bool
	qc         float64

	rng    *rand.Rand
	logger *slog.Logger
	onStep StepHook
}

// newEngine validates n and the boundary and allocates both forests.
// shaped reports whether the caller derived a boundary from a known grid;
// when neither shaped nor an explicit boundary is available the square
// fallback is used and a non-square n is logged.
func newEngine(mode Mode, n int, shaped *Boundary, opts []Option) (*engine, error) {
	if n < 1 {
		return nil, fmt.Errorf("New%s: n=%d: %w", modeTitle(mode), n, ErrTooFewVertices)
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Boundary precedence: explicit option, known grid shape, square fallback.
	var b Boundary
	switch {
	case o.Boundary != nil:
		b = *o.Boundary
	case shaped != nil:
		b = *shaped
	default:
		var square bool
		b, square = SquareBoundary(n)
		if !square {
			o.Logger.Warn("vertex count is not a perfect square; boundary rows are a guess",
				"mode", string(mode), "n", n, "side", len(b.Top))
		}
	}
	if err := b.validate(n); err != nil {
		return nil, fmt.Errorf("New%s: %w", modeTitle(mode), err)
	}

	rng := o.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &engine{
		mode:     mode,
		n:        n,
		real:     dsu.New(n),
		aug:      dsu.New(n + 2),
		superTop: n,
		superBot: n + 1,
		boundary: b,
		rng:      rng,
		logger:   o.Logger,
		onStep:   o.OnStep,
	}, nil
}

// N returns the number of real vertices.
func (e *engine) N() int {
	return e.n
}

// CurrentQ returns the highest q processed so far (0 before any Step).
func (e *engine) CurrentQ() float64 {
	return e.currentQ
}

// Largest returns the largest cluster size observed so far.
func (e *engine) Largest() int {
	return e.largest
}

// Processed returns how many edges (bond) or vertices (site) have been
// activated across all steps.
func (e *engine) Processed() int {
	return e.processed
}

// Boundary returns the boundary the supernodes are bound to.
func (e *engine) Boundary() Boundary {
	return e.boundary
}

// HasPercolated reports whether Top and Bottom share a component in the
// augmented forest.
// Complexity: O(α(N)).
func (e *engine) HasPercolated() bool {
	return e.aug.Connected(e.superTop, e.superBot)
}

// CriticalQ returns the q of the step during which percolation was first
// detected. ok is false while the system has not percolated.
func (e *engine) CriticalQ() (qc float64, ok bool) {
	return e.qc, e.percolated
}

// admits reports whether weight w falls inside the window of a Step to q.
// The window is (current, q]; before the first Step it is [0, q] so that a
// weight of exactly 0 is not skipped forever.
func (e *engine) admits(w, q float64) bool {
	if !e.started {
		return w <= q
	}

	return w > e.currentQ && w <= q
}

// checkQ validates the target of a Step to q. A NaN q or a q below the
// current position is logged and rejected; nil means the step may proceed.
func (e *engine) checkQ(q float64) error {
	switch {
	case math.IsNaN(q):
		e.logger.Warn("step rejected: q is NaN", "mode", string(e.mode), "current_q", e.currentQ)

		return fmt.Errorf("%s.Step(q=NaN): %w", modeTitle(e.mode), ErrInvalidQ)
	case q < e.currentQ:
		e.logger.Warn("step rejected: q below current q",
			"mode", string(e.mode), "q", q, "current_q", e.currentQ)

		return fmt.Errorf("%s.Step(q=%g): current q=%g: %w", modeTitle(e.mode), q, e.currentQ, ErrOrderingViolation)
	}

	return nil
}

// advance finishes a successful Step: it moves the sweep position, latches
// the critical threshold on the first detection and notifies the hook.
func (e *engine) advance(q float64, components, activated int) {
	e.currentQ = q
	e.started = true
	e.processed += activated

	if !e.percolated && e.HasPercolated() {
		e.percolated = true
		e.qc = q
		e.logger.Info("percolation detected", "mode", string(e.mode), "q_c", q, "n", e.n)
	}

	if e.onStep != nil {
		e.onStep(e.row(q, components), activated)
	}
}

// row builds the result record for q.
func (e *engine) row(q float64, components int) Result {
	return Result{
		Q:                 q,
		Components:        components,
		LargestCluster:    e.largest,
		NormalizedLargest: float64(e.largest) / float64(e.n),
	}
}

// sweep drives stepFn over q = i·step for i = 0,1,… while q ≤ 1 (+ε).
// Multiplying instead of accumulating keeps the q grid of a sweep with step
// s/2 a superset of the grid with step s. Ordering violations are logged by
// stepFn and the degenerate row is kept; any other error aborts.
func (e *engine) sweep(step float64, stepFn func(q float64) (int, error)) ([]Result, error) {
	if math.IsNaN(step) || step <= 0 || step > 1 {
		return nil, fmt.Errorf("%s.Sweep(step=%g): %w", modeTitle(e.mode), step, ErrInvalidStep)
	}

	results := make([]Result, 0, int(1/step)+1)
	for i := 0; ; i++ {
		q := float64(i) * step
		if q > 1+qEpsilon {
			break
		}
		components, err := stepFn(q)
		if err != nil && !errors.Is(err, ErrOrderingViolation) {
			return results, err
		}
		results = append(results, e.row(q, components))
	}

	return results, nil
}

func modeTitle(m Mode) string {
	switch m {
	case ModeSite:
		return "Site"
	default:
		return "Bond"
	}
}
