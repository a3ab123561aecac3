// SPDX-License-Identifier: MIT

// Package cluster represents sets of leaves ("clusters" in the phylogenetic
// sense) as bitsets over a dense taxon index, so that the set operations
// topology comparison needs — equality for Robinson–Foulds, intersection
// cardinality for cluster affinity — are single bitset operations instead
// of map diffs.
//
// It is built directly on [github.com/bits-and-blooms/bitset]
// rather than reinventing it: a cluster is small and read-mostly, so the
// generic library pulls its weight here in a way a hand-rolled, hot-path
// bitset would not.
package cluster

import "github.com/bits-and-blooms/bitset"

// Set is a bitset over a dense taxon index: bit i is set iff taxon i
// (as assigned by some external numbering, usually a sorted taxa list) is a
// member of the cluster.
type Set struct {
	bits *bitset.BitSet
	n    uint // universe size, for Complement
}

// New returns an empty Set over a universe of n taxa.
func New(n uint) Set {
	return Set{bits: bitset.New(n), n: n}
}

// Add marks taxon i as a member.
func (s Set) Add(i uint) { s.bits.Set(i) }

// Test reports whether taxon i is a member.
func (s Set) Test(i uint) bool { return s.bits.Test(i) }

// Len returns the number of member taxa.
func (s Set) Len() int { return int(s.bits.Count()) }

// Clone returns an independent copy.
func (s Set) Clone() Set {
	return Set{bits: s.bits.Clone(), n: s.n}
}

// Equal reports whether s and o contain exactly the same taxa.
func (s Set) Equal(o Set) bool { return s.bits.Equal(o.bits) }

// Complement returns the set of taxa in the universe not present in s.
func (s Set) Complement() Set {
	return Set{bits: s.bits.Complement(), n: s.n}
}

// SymmetricDifferenceCardinality returns |s △ o|.
func (s Set) SymmetricDifferenceCardinality(o Set) int {
	return int(s.bits.SymmetricDifference(o.bits).Count())
}

// IntersectionCardinality returns |s ∩ o|.
func (s Set) IntersectionCardinality(o Set) int {
	return int(s.bits.IntersectionCardinality(o.bits))
}

// Union returns the union of s and o.
func (s Set) Union(o Set) Set {
	return Set{bits: s.bits.Union(o.bits), n: s.n}
}

// IsTrivial reports whether the cluster is a single taxon or the whole
// universe — the clusters Robinson–Foulds and cluster affinity ignore.
func (s Set) IsTrivial() bool {
	c := s.Len()
	return c <= 1 || uint(c) >= s.n
}
