// SPDX-License-Identifier: MIT

// Package golden holds slow-but-obviously-correct reference
// implementations and random-tree generators used to property-test the
// fast algorithms in the parent module.
package golden

import "math/rand/v2"

// RandomParentArray returns a random rooted tree over n nodes, described
// as a parent array: node 0 is the root (Parent[0] == -1), and for every
// i > 0, Parent[i] is a uniformly chosen node in [0, i) — the standard
// "random recursive tree" construction, which guarantees acyclicity by
// construction since every parent id is strictly smaller than its child's.
func RandomParentArray(prng *rand.Rand, n int) []int {
	if n <= 0 {
		return nil
	}
	parent := make([]int, n)
	parent[0] = -1
	for i := 1; i < n; i++ {
		parent[i] = prng.IntN(i)
	}
	return parent
}

// Children derives, from a parent array, the ordered children lists (in
// increasing node-id order, since RandomParentArray assigns no other
// order) for every node.
func Children(parent []int) [][]int {
	children := make([][]int, len(parent))
	for i, p := range parent {
		if p < 0 {
			continue
		}
		children[p] = append(children[p], i)
	}
	return children
}

// Leaves returns the ids with no children.
func Leaves(parent []int) []int {
	hasChild := make([]bool, len(parent))
	for _, p := range parent {
		if p >= 0 {
			hasChild[p] = true
		}
	}
	var out []int
	for i, got := range hasChild {
		if !got {
			out = append(out, i)
		}
	}
	return out
}
