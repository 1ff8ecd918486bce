package dimacs_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonclus/percolate/dimacs"
	"github.com/amonclus/percolate/lattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRead_Basic parses a small file with comments and blank lines.
func TestRead_Basic(t *testing.T) {
	src := `c triangle plus a pendant
p edge 4 4

e 1 2
e 2 3
e 3 1
e 3 4
`
	g, err := dimacs.Read(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 4, g.N)
	assert.Equal(t, []lattice.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 0}, {U: 2, V: 3}}, g.Edges)
	assert.False(t, g.IsGrid())
}

// TestRoundTrip_Grid writes a grid to disk and reads it back with its shape.
func TestRoundTrip_Grid(t *testing.T) {
	g, err := lattice.Build(lattice.Grid(3, 4))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "grid.dimacs")
	require.NoError(t, dimacs.WriteFile(path, g))

	back, err := dimacs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, g.N, back.N)
	assert.Equal(t, g.Edges, back.Edges)
	assert.Equal(t, 3, back.Rows)
	assert.Equal(t, 4, back.Cols)
}

// TestWrite_Format pins the exact on-disk layout.
func TestWrite_Format(t *testing.T) {
	g, err := lattice.Build(lattice.Grid(1, 2))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dimacs.Write(&buf, g))
	assert.Equal(t, "c grid 1 2\np edge 2 1\ne 1 2\n", buf.String())
}

// TestRead_GridCommentIgnoredOnMismatch keeps the graph shapeless when the
// annotation disagrees with N.
func TestRead_GridCommentIgnoredOnMismatch(t *testing.T) {
	g, err := dimacs.Read(strings.NewReader("c grid 3 3\np edge 4 0\n"))
	require.NoError(t, err)
	assert.Zero(t, g.Rows)
	assert.Zero(t, g.Cols)
}

// TestRead_Errors covers every sentinel.
func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", dimacs.ErrMissingProblem},
		{"edge before problem", "e 1 2\np edge 2 1\n", dimacs.ErrMissingProblem},
		{"two problems", "p edge 2 0\np edge 2 0\n", dimacs.ErrDuplicateProblem},
		{"bad problem kind", "p sp 2 0\n", dimacs.ErrMalformedLine},
		{"bad vertex count", "p edge x 0\n", dimacs.ErrMalformedLine},
		{"short edge", "p edge 2 1\ne 1\n", dimacs.ErrMalformedLine},
		{"non-numeric edge", "p edge 2 1\ne a b\n", dimacs.ErrMalformedLine},
		{"unknown line", "p edge 2 0\nx 1 2\n", dimacs.ErrMalformedLine},
		{"bad grid comment", "c grid 0 2\np edge 2 0\n", dimacs.ErrMalformedLine},
		{"vertex zero", "p edge 2 1\ne 0 1\n", lattice.ErrVertexOutOfRange},
		{"vertex too large", "p edge 2 1\ne 1 3\n", lattice.ErrVertexOutOfRange},
		{"too few edges", "p edge 3 2\ne 1 2\n", dimacs.ErrEdgeCountMismatch},
		{"too many edges", "p edge 3 1\ne 1 2\ne 2 3\n", dimacs.ErrEdgeCountMismatch},
		{"huge declared edge count", "p edge 2 99999999999999999\ne 1 2\n", dimacs.ErrEdgeCountMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dimacs.Read(strings.NewReader(tc.src))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestRead_LineNumbers ensures errors point at the offending line.
func TestRead_LineNumbers(t *testing.T) {
	_, err := dimacs.Read(strings.NewReader("c header\np edge 2 1\ne 1 9\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

// TestReadFile_Missing wraps the filesystem error.
func TestReadFile_Missing(t *testing.T) {
	_, err := dimacs.ReadFile(filepath.Join(t.TempDir(), "nope.dimacs"))
	assert.Error(t, err)
}

// TestWrite_InvalidGraph refuses graphs that fail validation.
func TestWrite_InvalidGraph(t *testing.T) {
	var buf bytes.Buffer
	err := dimacs.Write(&buf, &lattice.Graph{N: 2, Edges: []lattice.Edge{{U: 0, V: 5}}})
	assert.ErrorIs(t, err, lattice.ErrVertexOutOfRange)
	assert.Zero(t, buf.Len())
}
