// SPDX-License-Identifier: MIT
// Package: percolate/lattice
//
// impl_grid.go — implementation of Grid(rows, cols).
//
// Contract:
//   • rows ≥ 1 and cols ≥ 1 (else ErrTooFewVertices).
//   • Vertex r*cols+c is the cell at row r, column c (row-major).
//   • For each cell in row-major order emit Right (r,c+1) then Bottom (r+1,c)
//     where those neighbours exist.
//   • The graph records Rows/Cols so percolation can wire the first and last
//     rows as its boundary.
//
// Complexity: O(rows*cols) time and memory; exactly
// rows*(cols-1) + cols*(rows-1) edges.

package lattice

import "fmt"

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that builds a rows×cols orthogonal grid.
func Grid(rows, cols int) Constructor {
	return func(_ config) (*Graph, error) {
		// 1) Validate dimensions before allocating anything.
		if rows < minGridDim || cols < minGridDim {
			return nil, fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}

		// 2) Emit edges in a stable order: Right then Bottom per cell.
		edges := make([]Edge, 0, rows*(cols-1)+cols*(rows-1))
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := r*cols + c
				if c+1 < cols {
					edges = append(edges, Edge{U: u, V: u + 1})
				}
				if r+1 < rows {
					edges = append(edges, Edge{U: u, V: u + cols})
				}
			}
		}

		return &Graph{N: rows * cols, Edges: edges, Rows: rows, Cols: cols}, nil
	}
}
