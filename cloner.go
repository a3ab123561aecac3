// SPDX-License-Identifier: MIT

package phylotree

import "slices"

// Clone returns an independent deep copy of t: every node slot is
// duplicated, so mutating the clone never affects t and vice versa. The
// clone's LCA precomputation is not carried over — call Precompute again
// on it if needed.
//
// Clone is the basis of the engine's read-only-snapshot concurrency model:
// take a Clone before handing a tree to a goroutine that will mutate it,
// and the original remains safe to read concurrently.
func (t *Tree) Clone() *Tree {
	cp := &Tree{
		root:     t.root,
		size:     t.size,
		slots:    make([]*Node, len(t.slots)),
		taxaToID: make(map[string]ID, len(t.taxaToID)),
	}
	for id, n := range t.slots {
		if n == nil {
			continue
		}
		nc := n.Clone()
		nc.children = slices.Clone(n.children)
		cp.slots[id] = &nc
	}
	for taxon, id := range t.taxaToID {
		cp.taxaToID[taxon] = id
	}
	return cp
}

// Equal reports whether t and other have the same topology, taxa, weights,
// and zeta annotations, up to sibling order: every node's taxon/weight/zeta
// must match and every node's children must match as a multiset (not
// necessarily in the same order), recursively from each tree's root.
func (t *Tree) Equal(other *Tree) bool {
	if t.size != other.size {
		return false
	}
	return t.nodeEqual(t.root, other, other.root)
}

func (t *Tree) nodeEqual(a ID, other *Tree, b ID) bool {
	na, err := t.Get(a)
	if err != nil {
		return false
	}
	nb, err := other.Get(b)
	if err != nil {
		return false
	}

	if na.taxon != nb.taxon || na.hasTaxon != nb.hasTaxon {
		return false
	}
	if na.weight != nb.weight || na.hasWeight != nb.hasWeight {
		return false
	}
	if na.zeta != nb.zeta || na.hasZeta != nb.hasZeta {
		return false
	}
	if len(na.children) != len(nb.children) {
		return false
	}

	matched := make([]bool, len(nb.children))
	for _, ca := range na.children {
		found := false
		for j, cb := range nb.children {
			if matched[j] {
				continue
			}
			if t.nodeEqual(ca, other, cb) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
