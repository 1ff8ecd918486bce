// Package dsu provides a size-augmented disjoint-set forest (union-find)
// over a fixed universe of integer elements 0..n-1.
//
// What:
//
//   - Forest tracks a partition of n elements into disjoint components.
//   - Find returns the component representative and compresses the path.
//   - Union merges two components, attaching the smaller root under the larger.
//   - Size reports the component size of any element, not only roots.
//   - Components counts distinct roots among a prefix of the universe, so that
//     callers appending synthetic elements (e.g. boundary supernodes) can
//     exclude them from the count.
//
// Why:
//
//   - Percolation sweeps: edges are only ever added, so connectivity is
//     maintained incrementally in near-constant amortized time per edge.
//   - Clustering and Kruskal-style MST builds over index-addressed vertices.
//
// Complexity:
//
//   - New:        O(n) time and memory.
//   - Find/Union: O(α(n)) amortized (union by size + full path compression).
//   - Size:       O(α(n)) amortized.
//   - Components: O(1) for the whole universe, O(total·α(n)) for a prefix.
//
// Preconditions:
//
// Indexes are trusted. An element outside [0,n) is a programming error and
// makes every operation panic with a descriptive message; no error value is
// returned because no public percolation API can produce such an index once
// n is fixed.
package dsu
