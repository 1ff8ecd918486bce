// SPDX-License-Identifier: MIT
// Package: percolate/lattice
//
// api.go — public entry point for graph construction.
//
// Each factory (Grid, ErdosRenyi, FromEdges) returns a Constructor closure;
// Build resolves options once and runs it. Constructors validate their
// parameters first and return wrapped sentinels; they never panic.

package lattice

import "fmt"

// Constructor produces a Graph from the resolved build configuration.
type Constructor func(cfg config) (*Graph, error)

// Build resolves opts and runs ctor, wrapping any error as "Build: %w".
// The returned graph has passed Validate.
func Build(ctor Constructor, opts ...Option) (*Graph, error) {
	if ctor == nil {
		return nil, fmt.Errorf("Build: %w", ErrNilConstructor)
	}
	cfg := newConfig(opts...)

	g, err := ctor(cfg)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	if err = g.Validate(); err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	return g, nil
}
