// SPDX-License-Identifier: MIT

package phylotree

// ZetaFunc assigns a real-valued "height" to a node, used by the cophenetic
// distance machinery. Implementations typically depend only on id's depth
// or accumulated branch length within t, but the tree is passed so a zeta
// function can also look at children, siblings, or taxa.
type ZetaFunc func(t *Tree, id ID) float64

// ApplyZeta populates every live node's zeta value by calling fn bottom-up
// (post-order), so a zeta function may assume its children's zeta values
// are already set when it runs.
func (t *Tree) ApplyZeta(fn ZetaFunc) {
	for id := range t.PostOrder(t.root) {
		v := fn(t, id)
		n := t.MustGet(id)
		n.zeta, n.hasZeta = v, true
		t.slots[id] = &n
	}
}

// ZetaUnweightedDepth is a ZetaFunc assigning each node its unweighted
// depth from the root (root = 0).
func ZetaUnweightedDepth(t *Tree, id ID) float64 {
	d, err := t.Depth(id)
	if err != nil {
		return 0
	}
	return float64(d)
}

// ZetaWeightedDepth is a ZetaFunc assigning each node the sum of edge
// weights from the root, absent weights counted as 1.
func ZetaWeightedDepth(t *Tree, id ID) float64 {
	d, err := t.WeightedDepth(id)
	if err != nil {
		return 0
	}
	return d
}

// Zeta returns id's zeta value, or ErrZetaUnset if the node carries none
// (e.g. ApplyZeta has not been run, or the node was created after it ran).
// Mutations do not clear zeta values a node already carries.
func (t *Tree) Zeta(id ID) (float64, error) {
	n, err := t.Get(id)
	if err != nil {
		return 0, err
	}
	z, ok := n.Zeta()
	if !ok {
		return 0, ErrZetaUnset
	}
	return z, nil
}
