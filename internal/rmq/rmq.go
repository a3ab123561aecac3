// SPDX-License-Identifier: MIT

// Package rmq implements a static range-minimum-query structure: given an
// array that never changes after Build, answer "index of the minimum value
// in [lo, hi]" in O(1).
//
// It is a sparse table (Bender–Farach-Colton style), the same "precompute a
// lookup table, answer in O(1)" shape as a longest-prefix-match allotment
// table: O(n log n) space and build time, O(1) query, no
// update support — exactly the trade the LCA engine needs, since a Tree's
// Euler walk and depth array are only ever rebuilt wholesale, never patched
// in place.
package rmq

import "math/bits"

// Table answers range-minimum queries over the array passed to Build, by the
// index of the minimum element.
type Table struct {
	values []int  // the original array, kept for comparisons
	sparse [][]int // sparse[k][i] = index of min over values[i : i+2^k]
}

// Build constructs a Table over values. values must not be mutated afterward;
// Build keeps a reference, not a copy.
func Build(values []int) *Table {
	n := len(values)
	if n == 0 {
		return &Table{values: values}
	}

	k := bits.Len(uint(n)) // number of levels needed, log2(n)+1
	sparse := make([][]int, k)

	sparse[0] = make([]int, n)
	for i := range values {
		sparse[0][i] = i
	}

	for j := 1; j < k; j++ {
		width := 1 << j
		half := width >> 1
		row := make([]int, n-width+1)
		prev := sparse[j-1]
		for i := range row {
			left := prev[i]
			right := prev[i+half]
			if values[right] < values[left] {
				row[i] = right
			} else {
				row[i] = left
			}
		}
		sparse[j] = row
	}

	return &Table{values: values, sparse: sparse}
}

// ArgMin returns the index of the minimum value in values[lo:hi+1].
// lo and hi must satisfy 0 <= lo <= hi < len(values).
func (t *Table) ArgMin(lo, hi int) int {
	if lo == hi {
		return lo
	}
	j := bits.Len(uint(hi-lo+1)) - 1 // largest j with 2^j <= (hi-lo+1)
	row := t.sparse[j]
	width := 1 << j

	left := row[lo]
	right := row[hi-width+1]
	if t.values[right] < t.values[left] {
		return right
	}
	return left
}

// Len returns the size of the array the table was built over.
func (t *Table) Len() int { return len(t.values) }
