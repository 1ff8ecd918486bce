package dimacs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/amonclus/percolate/lattice"
)

var (
	// ErrMissingProblem indicates an edge line before the "p" line, or no "p" line at all.
	ErrMissingProblem = errors.New("dimacs: missing problem line")
	// ErrDuplicateProblem indicates more than one "p" line.
	ErrDuplicateProblem = errors.New("dimacs: duplicate problem line")
	// ErrMalformedLine indicates a line that does not parse.
	ErrMalformedLine = errors.New("dimacs: malformed line")
	// ErrEdgeCountMismatch indicates the number of edges differs from the declared M.
	ErrEdgeCountMismatch = errors.New("dimacs: edge count mismatch")
)

const (
	gridComment = "grid"

	// maxPrealloc caps the edge slice reserved from the declared M; the
	// header is untrusted until the edges have actually been read.
	maxPrealloc = 1 << 20
)

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*lattice.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dimacs: open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// Read parses a DIMACS edge stream into a validated lattice.Graph.
// A "c grid R C" comment is honoured only when R*C equals N.
func Read(r io.Reader) (*lattice.Graph, error) {
	var (
		g        *lattice.Graph
		declared int
		rows     int
		cols     int
		lineNo   int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "c":
			// Only the grid annotation is meaningful; other comments are skipped.
			if len(fields) == 4 && fields[1] == gridComment {
				rr, errR := strconv.Atoi(fields[2])
				cc, errC := strconv.Atoi(fields[3])
				if errR != nil || errC != nil || rr < 1 || cc < 1 {
					return nil, fmt.Errorf("line %d: bad grid comment %q: %w", lineNo, sc.Text(), ErrMalformedLine)
				}
				rows, cols = rr, cc
			}

		case "p":
			if g != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrDuplicateProblem)
			}
			if len(fields) != 4 || (fields[1] != "edge" && fields[1] != "col") {
				return nil, fmt.Errorf("line %d: %q: %w", lineNo, sc.Text(), ErrMalformedLine)
			}
			n, errN := strconv.Atoi(fields[2])
			m, errM := strconv.Atoi(fields[3])
			if errN != nil || errM != nil || n < 1 || m < 0 {
				return nil, fmt.Errorf("line %d: %q: %w", lineNo, sc.Text(), ErrMalformedLine)
			}
			g = &lattice.Graph{N: n, Edges: make([]lattice.Edge, 0, min(m, maxPrealloc))}
			declared = m

		case "e":
			if g == nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingProblem)
			}
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: %q: %w", lineNo, sc.Text(), ErrMalformedLine)
			}
			u, errU := strconv.Atoi(fields[1])
			v, errV := strconv.Atoi(fields[2])
			if errU != nil || errV != nil {
				return nil, fmt.Errorf("line %d: %q: %w", lineNo, sc.Text(), ErrMalformedLine)
			}
			if u < 1 || u > g.N || v < 1 || v > g.N {
				return nil, fmt.Errorf("line %d: edge (%d,%d) with N=%d: %w", lineNo, u, v, g.N, lattice.ErrVertexOutOfRange)
			}
			g.Edges = append(g.Edges, lattice.Edge{U: u - 1, V: v - 1})

		default:
			return nil, fmt.Errorf("line %d: unknown line type %q: %w", lineNo, fields[0], ErrMalformedLine)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dimacs: read: %w", err)
	}

	if g == nil {
		return nil, ErrMissingProblem
	}
	if len(g.Edges) != declared {
		return nil, fmt.Errorf("declared %d edges, read %d: %w", declared, len(g.Edges), ErrEdgeCountMismatch)
	}
	if rows*cols == g.N {
		g.Rows, g.Cols = rows, cols
	}

	return g, nil
}

// WriteFile creates (or truncates) path and writes g to it.
func WriteFile(path string, g *lattice.Graph) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dimacs: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("dimacs: close %s: %w", path, cerr)
		}
	}()

	return Write(f, g)
}

// Write emits g as DIMACS with 1-based vertices. Grid graphs get a
// "c grid R C" comment ahead of the problem line.
func Write(w io.Writer, g *lattice.Graph) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("dimacs: %w", err)
	}

	bw := bufio.NewWriter(w)
	if g.IsGrid() {
		fmt.Fprintf(bw, "c %s %d %d\n", gridComment, g.Rows, g.Cols)
	}
	fmt.Fprintf(bw, "p edge %d %d\n", g.N, len(g.Edges))
	for _, e := range g.Edges {
		fmt.Fprintf(bw, "e %d %d\n", e.U+1, e.V+1)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("dimacs: write: %w", err)
	}

	return nil
}
