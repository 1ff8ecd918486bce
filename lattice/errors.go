// SPDX-License-Identifier: MIT
// Package: percolate/lattice
//
// errors.go — sentinel errors for the lattice package.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with errors.Is.
//   • Constructors attach context with %w: "Grid: rows=0, cols=3 ...: <sentinel>".
//   • Option constructors panic on meaningless input; constructors never panic.

package lattice

import "errors"

// ErrTooFewVertices indicates a size parameter (n, rows, cols) below the
// constructor minimum, or a Graph with N < 1.
var ErrTooFewVertices = errors.New("lattice: parameter too small")

// ErrInvalidProbability indicates an edge probability outside [0,1].
var ErrInvalidProbability = errors.New("lattice: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without an RNG
// (set one with WithSeed or WithRand).
var ErrNeedRandSource = errors.New("lattice: rng is required")

// ErrVertexOutOfRange indicates an edge endpoint outside [0,N).
var ErrVertexOutOfRange = errors.New("lattice: vertex out of range")

// ErrNilConstructor indicates Build was called without a constructor.
var ErrNilConstructor = errors.New("lattice: nil constructor")
