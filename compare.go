// SPDX-License-Identifier: MIT

package phylotree

import (
	"sort"

	"github.com/arborix/phylotree/internal/cluster"
)

// sharedTaxaIndex returns a dense 0..n index over the taxa common to both
// trees, in sorted order for determinism. Topology comparisons restrict
// silently to this intersection.
func sharedTaxaIndex(a, b *Tree) map[string]uint {
	bTaxa := make(map[string]bool, len(b.taxaToID))
	for taxon := range b.taxaToID {
		bTaxa[taxon] = true
	}

	var shared []string
	for taxon := range a.taxaToID {
		if bTaxa[taxon] {
			shared = append(shared, taxon)
		}
	}
	sort.Strings(shared)

	idx := make(map[string]uint, len(shared))
	for i, taxon := range shared {
		idx[taxon] = uint(i)
	}
	return idx
}

// subtreeCluster returns the cluster.Set of taxa under n, restricted to
// taxonIndex, and the number of bits set.
func (t *Tree) subtreeCluster(n ID, taxonIndex map[string]uint) (cluster.Set, int) {
	s := cluster.New(uint(len(taxonIndex)))
	count := 0
	for id := range t.PreOrder(n) {
		node := t.MustGet(id)
		if !node.IsLeaf() {
			continue
		}
		taxon, ok := node.Taxon()
		if !ok {
			continue
		}
		idx, ok := taxonIndex[taxon]
		if !ok {
			continue
		}
		s.Add(idx)
		count++
	}
	return s, count
}

// nontrivialBipartitions returns the distinct child-side clusters of every
// non-root node's parent edge, canonicalized (the side excluding taxon
// index 0) and restricted to the edges whose bipartition separates at
// least two taxa on each side — the edges that actually distinguish one
// topology from another. A rooted binary tree's two root-child edges
// induce the same unrooted split once canonicalized, so equal sets are
// collapsed to a single entry: RF compares distinct splits, not edges.
func (t *Tree) nontrivialBipartitions(taxonIndex map[string]uint) []cluster.Set {
	n := uint(len(taxonIndex))
	var out []cluster.Set
	for id := range t.PreOrder(t.root) {
		node := t.MustGet(id)
		if node.IsRoot() {
			continue
		}
		s, count := t.subtreeCluster(id, taxonIndex)
		other := int(n) - count
		if count <= 1 || other <= 1 {
			continue // trivial: one side is a single taxon (or empty)
		}
		c := canonicalize(s, n)
		if !containsSet(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// canonicalize picks one of {s, complement(s)} consistently, so that two
// representations of the same bipartition compare equal regardless of
// which side was walked to produce them: taxon index 0 is always excluded
// from the canonical form (it exists in every non-empty universe by
// construction of sharedTaxaIndex).
func canonicalize(s cluster.Set, n uint) cluster.Set {
	if n == 0 {
		return s
	}
	if s.Test(0) {
		return s.Complement()
	}
	return s
}

// nontrivialClusters returns the cluster.Set of every node whose subtree
// contains more than one taxon and fewer than all of them — the clusters
// cluster affinity compares directly (unlike Robinson–Foulds, these are
// one-sided and not complement-normalized).
func (t *Tree) nontrivialClusters(taxonIndex map[string]uint) []cluster.Set {
	n := uint(len(taxonIndex))
	var out []cluster.Set
	for id := range t.PreOrder(t.root) {
		s, count := t.subtreeCluster(id, taxonIndex)
		if uint(count) <= 1 || uint(count) >= n {
			continue
		}
		out = append(out, s)
	}
	return out
}

// RobinsonFoulds returns the Robinson–Foulds distance between t and other:
// the size of the symmetric difference between their nontrivial
// bipartition sets, restricted to their shared taxa. Identical topologies
// (up to sibling order) have distance 0.
func (t *Tree) RobinsonFoulds(other *Tree) int {
	idx := sharedTaxaIndex(t, other)
	a := t.nontrivialBipartitions(idx)
	b := other.nontrivialBipartitions(idx)

	dist := 0
	for _, x := range a {
		if !containsSet(b, x) {
			dist++
		}
	}
	for _, y := range b {
		if !containsSet(a, y) {
			dist++
		}
	}
	return dist
}

func containsSet(sets []cluster.Set, s cluster.Set) bool {
	for _, c := range sets {
		if c.Equal(s) {
			return true
		}
	}
	return false
}

// ClusterAffinity returns Σ over every nontrivial cluster C of t of
// min over every nontrivial cluster C' of other of |C \ C'| — how much of
// each of t's clusters is unaccounted for by its best match in other.
// Restricted to t and other's shared taxa. Zero iff every nontrivial
// cluster of t also appears, as a subset, inside some cluster of other
// (in particular, zero for identical trees).
func (t *Tree) ClusterAffinity(other *Tree) int {
	idx := sharedTaxaIndex(t, other)
	a := t.nontrivialClusters(idx)
	b := other.nontrivialClusters(idx)

	sum := 0
	for _, c := range a {
		best := -1
		for _, cp := range b {
			d := setMinus(c, cp)
			if best < 0 || d < best {
				best = d
			}
		}
		if best < 0 {
			best = c.Len() // other has no nontrivial clusters at all
		}
		sum += best
	}
	return sum
}

// ClusterAffinitySymmetric is the symmetric-sum variant of ClusterAffinity:
// ClusterAffinity(t, other) + ClusterAffinity(other, t).
func (t *Tree) ClusterAffinitySymmetric(other *Tree) int {
	return t.ClusterAffinity(other) + other.ClusterAffinity(t)
}

// setMinus returns |a \ b| = |a| - |a ∩ b|.
func setMinus(a, b cluster.Set) int {
	return a.Len() - a.IntersectionCardinality(b)
}
