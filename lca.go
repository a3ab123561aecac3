// SPDX-License-Identifier: MIT

package phylotree

import (
	"fmt"

	"github.com/arborix/phylotree/internal/rmq"
)

// Precompute builds the Euler walk, first-appearance index, depth array,
// and range-minimum-query table that let LCA answer in O(1). It runs in
// O(n log n), the cost of building the sparse table. Any subsequent mutation invalidates the result; Precompute must be
// called again before LCA can use the fast path.
func (t *Tree) Precompute() {
	euler := t.eulerWalkSlice(t.root)
	depthOf := t.depthsFromRoot()

	firstSeen := make(map[ID]int, t.size)
	depth := make([]int, len(euler))
	for i, id := range euler {
		depth[i] = depthOf[id]
		if _, seen := firstSeen[id]; !seen {
			firstSeen[id] = i
		}
	}

	t.eulerWalk = euler
	t.firstSeen = firstSeen
	t.depth = depth
	t.table = rmq.Build(depth)
}

// depthsFromRoot returns the unweighted depth (root = 0) of every live node,
// computed with a single breadth-first pass.
func (t *Tree) depthsFromRoot() map[ID]int {
	depth := make(map[ID]int, t.size)
	depth[t.root] = 0
	for id := range t.BFS(t.root) {
		d := depth[id]
		for _, c := range t.MustGet(id).children {
			depth[c] = d + 1
		}
	}
	return depth
}

// LCA returns the lowest common ancestor of a non-empty set of node ids.
// For a single-node set it returns that node. If Precompute has been run
// and is still valid, this is O(1); otherwise it rebuilds the Euler walk
// and depth array on the fly in O(n), producing identical results.
func (t *Tree) LCA(ids ...ID) (ID, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: LCA of an empty set", ErrInvalidOperation)
	}
	for _, id := range ids {
		if !t.Live(id) {
			return 0, fmt.Errorf("%w: %d", ErrUnknownNode, id)
		}
	}
	if len(ids) == 1 {
		return ids[0], nil
	}

	if t.hasLCAPrecomputation() {
		return t.lcaFast(ids), nil
	}
	return t.lcaFallback(ids), nil
}

func (t *Tree) lcaFast(ids []ID) ID {
	lo, hi := t.firstSeen[ids[0]], t.firstSeen[ids[0]]
	for _, id := range ids[1:] {
		if i := t.firstSeen[id]; i < lo {
			lo = i
		} else if i > hi {
			hi = i
		}
	}
	return t.eulerWalk[t.table.ArgMin(lo, hi)]
}

// lcaFallback rebuilds the Euler walk, first-appearance array, and depth
// array on the fly and answers with a direct scan, without touching the
// tree's (possibly absent) cached precomputation.
func (t *Tree) lcaFallback(ids []ID) ID {
	euler := t.eulerWalkSlice(t.root)
	depthOf := t.depthsFromRoot()

	firstSeen := make(map[ID]int, len(ids))
	for _, id := range ids {
		if _, ok := firstSeen[id]; !ok {
			for i, e := range euler {
				if e == id {
					firstSeen[id] = i
					break
				}
			}
		}
	}

	lo, hi := firstSeen[ids[0]], firstSeen[ids[0]]
	for _, id := range ids[1:] {
		if i := firstSeen[id]; i < lo {
			lo = i
		} else if i > hi {
			hi = i
		}
	}

	best := lo
	for i := lo + 1; i <= hi; i++ {
		if depthOf[euler[i]] < depthOf[euler[best]] {
			best = i
		}
	}
	return euler[best]
}

// Depth returns the unweighted depth of n (root = 0), the length of the
// path from the root.
func (t *Tree) Depth(n ID) (int, error) {
	if !t.Live(n) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNode, n)
	}
	return len(t.NodeToRoot(n)) - 1, nil
}

// WeightedDepth returns the sum of edge weights from the root to n. Edge
// weights that are unset are treated as 1, so unweighted trees still
// produce a meaningful weighted depth.
func (t *Tree) WeightedDepth(n ID) (float64, error) {
	if !t.Live(n) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNode, n)
	}
	var sum float64
	for _, id := range t.RootToNode(n)[1:] { // skip root, whose own weight is meaningless
		node := t.MustGet(id)
		if w, ok := node.Weight(); ok {
			sum += w
		} else {
			sum++
		}
	}
	return sum, nil
}
