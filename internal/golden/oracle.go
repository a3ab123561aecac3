// SPDX-License-Identifier: MIT

package golden

// BruteForceLCA returns the lowest common ancestor of a and b in the tree
// described by parent, computed the obvious O(depth) way: walk both
// ancestor chains to the root and find where they first coincide. It
// exists so fast LCA implementations (Euler walk + RMQ) have something
// unimpeachable to check themselves against.
func BruteForceLCA(parent []int, a, b int) int {
	ancestors := make(map[int]bool)
	for n := a; n != -1; n = parent[n] {
		ancestors[n] = true
	}
	for n := b; ; n = parent[n] {
		if ancestors[n] {
			return n
		}
		if n == -1 {
			panic("golden: parent array has no common root for the given nodes")
		}
	}
}

// BruteForceCluster returns the set of leaves in the subtree rooted at n,
// scanning every node rather than walking the subtree directly.
func BruteForceCluster(parent []int, leaves []int, n int) map[int]bool {
	isDescendant := func(x int) bool {
		for y := x; y != -1; y = parent[y] {
			if y == n {
				return true
			}
		}
		return false
	}
	out := make(map[int]bool)
	for _, l := range leaves {
		if isDescendant(l) {
			out[l] = true
		}
	}
	return out
}

// BruteForceRF computes the Robinson–Foulds distance between two trees,
// each given as a parent array plus a label per node (label[i] is only
// meaningful when i is a leaf), restricted to the leaf labels both trees
// share, by materializing every nontrivial bipartition as a label set and
// counting the symmetric difference directly — an O(n³)-ish restatement of
// the same definition the fast path computes via bitsets, used only to
// cross-check it.
func BruteForceRF(parentA []int, labelA []string, parentB []int, labelB []string) int {
	inB := make(map[string]bool)
	for _, l := range Leaves(parentB) {
		inB[labelB[l]] = true
	}
	shared := make(map[string]bool)
	for _, l := range Leaves(parentA) {
		if inB[labelA[l]] {
			shared[labelA[l]] = true
		}
	}
	bipsA := bruteForceBipartitions(parentA, labelA, shared)
	bipsB := bruteForceBipartitions(parentB, labelB, shared)

	dist := 0
	for _, a := range bipsA {
		if !containsBip(bipsB, a) {
			dist++
		}
	}
	for _, b := range bipsB {
		if !containsBip(bipsA, b) {
			dist++
		}
	}
	return dist
}

// bruteForceBipartitions returns the distinct nontrivial bipartitions
// induced by any edge of the tree, over the leaf labels in all. A rooted
// binary tree's two root-child edges induce the same unrooted split once
// canonicalized, so duplicate sets are collapsed: an oracle that counted
// them twice would silently agree with a fast path that has the identical
// bug instead of catching it.
func bruteForceBipartitions(parent []int, label []string, all map[string]bool) []map[string]bool {
	leaves := Leaves(parent)

	var out []map[string]bool
	for n := range parent {
		if parent[n] == -1 {
			continue
		}
		cluster := BruteForceCluster(parent, leaves, n)
		names := make(map[string]bool, len(cluster))
		for l := range cluster {
			if all[label[l]] {
				names[label[l]] = true
			}
		}

		other := len(all) - len(names)
		if len(names) <= 1 || other <= 1 {
			continue
		}
		canon := canonicalizeBip(names, all)
		if !containsBip(out, canon) {
			out = append(out, canon)
		}
	}
	return out
}

// canonicalizeBip picks the side of the bipartition that excludes
// whichever taxon sorts first in all, so that the two orientations of the
// same edge's bipartition always compare equal.
func canonicalizeBip(side, all map[string]bool) map[string]bool {
	var first string
	for name := range all {
		if first == "" || name < first {
			first = name
		}
	}
	if side[first] {
		complement := make(map[string]bool, len(all)-len(side))
		for name := range all {
			if !side[name] {
				complement[name] = true
			}
		}
		return complement
	}
	return side
}

func containsBip(bips []map[string]bool, b map[string]bool) bool {
	for _, c := range bips {
		if sameSet(c, b) {
			return true
		}
	}
	return false
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
