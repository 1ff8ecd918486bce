package dsu

import "fmt"

// Forest is a disjoint-set forest with union by size and path compression.
// parent[i] == i marks a root; size[r] is meaningful only for roots r.
// The zero value is an empty forest; use New to allocate n singletons.
type Forest struct {
	parent []int
	size   []int
	count  int // number of live roots
}

// New returns a Forest of n singleton components.
// Panics if n < 0.
// Complexity: O(n) time and memory.
func New(n int) *Forest {
	if n < 0 {
		panic(fmt.Sprintf("dsu: New(%d): negative size", n))
	}
	f := &Forest{
		parent: make([]int, n),
		size:   make([]int, n),
		count:  n,
	}
	for i := range f.parent {
		f.parent[i] = i // every element starts as its own root
		f.size[i] = 1
	}

	return f
}

// Len returns the number of tracked elements.
func (f *Forest) Len() int {
	return len(f.parent)
}

// Count returns the number of live components over the whole universe.
// Complexity: O(1).
func (f *Forest) Count() int {
	return f.count
}

// Find returns the root of x's component.
// Every node on the walked path is re-pointed directly at the root.
// Complexity: O(α(n)) amortized.
func (f *Forest) Find(x int) int {
	f.check(x)

	// 1. Walk up to the root.
	root := x
	for f.parent[root] != root {
		root = f.parent[root]
	}
	// 2. Second pass: compress the path so later finds are O(1).
	for f.parent[x] != root {
		x, f.parent[x] = f.parent[x], root
	}

	return root
}

// Union merges the components containing x and y.
// It returns true when two distinct components were merged and false when
// x and y were already connected (a valid no-op).
// The smaller root is attached under the larger; the surviving root's size
// becomes the exact sum of both sizes.
// Complexity: O(α(n)) amortized.
func (f *Forest) Union(x, y int) bool {
	rx, ry := f.Find(x), f.Find(y)
	if rx == ry {
		return false
	}
	// Keep rx as the larger tree; ties keep the first argument's root.
	if f.size[rx] < f.size[ry] {
		rx, ry = ry, rx
	}
	f.parent[ry] = rx
	f.size[rx] += f.size[ry]
	f.count--

	return true
}

// Size returns the number of elements in x's component.
// Complexity: O(α(n)) amortized.
func (f *Forest) Size(x int) int {
	return f.size[f.Find(x)]
}

// Connected reports whether x and y share a component.
func (f *Forest) Connected(x, y int) bool {
	return f.Find(x) == f.Find(y)
}

// Components returns the number of distinct roots among elements [0,total).
// With total == Len() this is Count(). A smaller total excludes trailing
// synthetic elements: components that contain only excluded elements are
// not counted, components touching the prefix are counted once.
// Panics if total is outside [0, Len()].
// Complexity: O(1) for total == Len(), otherwise O(total·α(n)) time and
// O(Len()) memory.
func (f *Forest) Components(total int) int {
	if total < 0 || total > len(f.parent) {
		panic(fmt.Sprintf("dsu: Components(%d): total out of range [0,%d]", total, len(f.parent)))
	}
	if total == len(f.parent) {
		return f.count
	}

	seen := make([]bool, len(f.parent))
	distinct := 0
	for i := 0; i < total; i++ {
		r := f.Find(i)
		if !seen[r] {
			seen[r] = true
			distinct++
		}
	}

	return distinct
}

// check panics when x is not a valid element index.
func (f *Forest) check(x int) {
	if x < 0 || x >= len(f.parent) {
		panic(fmt.Sprintf("dsu: index %d out of range [0,%d)", x, len(f.parent)))
	}
}
