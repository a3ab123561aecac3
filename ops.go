// SPDX-License-Identifier: MIT

package phylotree

import "fmt"

// Induce returns the minimal subtree containing every id in leaves and
// their ancestors up to lca(leaves), with every other node removed and
// unifurcations suppressed. The result is a fresh tree rooted at lca(leaves);
// ids are preserved from the source tree.
func (t *Tree) Induce(leaves []ID) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("%w: Induce over an empty leaf set", ErrInvalidOperation)
	}
	for _, l := range leaves {
		if !t.Live(l) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownNode, l)
		}
	}

	lca, err := t.LCA(leaves...)
	if err != nil {
		return nil, err
	}

	targets := make(map[ID]bool, len(leaves))
	for _, l := range leaves {
		targets[l] = true
	}

	relevant := t.markAncestorsOf(lca, targets)
	sub := t.filteredSubtreeCopy(lca, relevant)
	sub.SuppressUnifurcations()
	return sub, nil
}

// Contract returns the tree on exactly leaves, whose internal nodes are
// {lca(S) : S ⊆ leaves, |S| ≥ 2}. The result is a fresh tree rooted at
// lca(leaves).
//
// By construction this reaches the same topology Induce does when leaves
// are genuine tree leaves (drop everything but ancestors of the target
// set, then suppress unifurcations leaves exactly the LCA-of-subsets
// internal nodes) — the two operations are kept distinct in the API since
// callers reach for them in different situations, but they share this
// implementation.
func (t *Tree) Contract(leaves []ID) (*Tree, error) {
	return t.Induce(leaves)
}

// markAncestorsOf returns the set of ids in the subtree rooted at s that
// are either in targets, or have a descendant in targets.
func (t *Tree) markAncestorsOf(s ID, targets map[ID]bool) map[ID]bool {
	relevant := make(map[ID]bool, len(targets))
	for id := range t.PostOrder(s) {
		n := t.MustGet(id)
		if targets[id] {
			relevant[id] = true
			continue
		}
		for _, c := range n.children {
			if relevant[c] {
				relevant[id] = true
				break
			}
		}
	}
	return relevant
}

// filteredSubtreeCopy builds a fresh Tree from the subtree rooted at s,
// keeping only nodes present in keep and preserving their ids, with each
// kept node's children list filtered down to kept children.
func (t *Tree) filteredSubtreeCopy(s ID, keep map[ID]bool) *Tree {
	sub := &Tree{taxaToID: make(map[string]ID)}

	for id := range t.PreOrder(s) {
		if !keep[id] {
			continue
		}
		n := t.MustGet(id)

		var kids []ID
		for _, c := range n.children {
			if keep[c] {
				kids = append(kids, c)
			}
		}
		n.children = kids
		if id == s {
			n.parent = noParent
		}

		sub.growTo(id)
		sub.slots[id] = &n
		sub.size++
		if n.hasTaxon {
			sub.taxaToID[n.taxon] = id
		}
	}
	sub.root = s
	return sub
}

// Prune detaches the subtree rooted at n from t and returns it as a new
// tree rooted at n. Orphaned ids are removed from t.
func (t *Tree) Prune(n ID) (*Tree, error) {
	node, err := t.Get(n)
	if err != nil {
		return nil, err
	}
	if node.IsRoot() {
		return nil, fmt.Errorf("%w: cannot prune the root", ErrInvalidOperation)
	}

	all := make(map[ID]bool)
	for id := range t.PreOrder(n) {
		all[id] = true
	}
	pruned := t.filteredSubtreeCopy(n, all)

	if _, err := t.RemoveNode(n); err != nil {
		return nil, err
	}
	for id := range all {
		t.DeleteNode(id)
	}
	t.invalidateLCA()

	return pruned, nil
}

// Graft splits the edge (p, c) with a fresh internal node m, then attaches
// other's root as a child of m. Every id in other is rewritten to a fresh
// id in t; other is left unmodified (it is copied, not consumed).
func (t *Tree) Graft(other *Tree, p, c ID) error {
	if !t.Live(p) || !t.Live(c) {
		return fmt.Errorf("%w: edge (%d, %d) not in tree", ErrUnknownNode, p, c)
	}

	m, err := t.SplitEdge(p, c, Node{})
	if err != nil {
		return err
	}

	remap := make(map[ID]ID, other.size)
	for id := range other.PreOrder(other.root) {
		n := other.MustGet(id)
		fresh := t.nextFreeID()
		remap[id] = fresh

		cp := n
		if id == other.root {
			cp.parent = m
		} else {
			cp.parent = remap[n.parent]
		}
		cp.id = fresh
		cp.children = nil // rebuilt below once every id has a remapped id

		t.growTo(fresh)
		t.slots[fresh] = &cp
		t.size++
	}

	// second pass: now that every id is remapped, fix up children lists and
	// the taxa index (done in a second pass because PreOrder reaches a node
	// before its children, so their remapped ids are not yet known then).
	for oldID, newID := range remap {
		n := other.MustGet(oldID)
		cp := *t.slots[newID]
		cp.children = make([]ID, len(n.children))
		for i, oc := range n.children {
			cp.children[i] = remap[oc]
		}
		t.slots[newID] = &cp
		if cp.hasTaxon {
			t.taxaToID[cp.taxon] = newID
		}
	}

	if err := t.SetChild(m, remap[other.root]); err != nil {
		return err
	}
	t.invalidateLCA()
	return nil
}

// SPR performs a subtree-prune-regraft: prune the subtree rooted at
// e1Child, then graft it onto the edge (e2Parent, e2Child).
func (t *Tree) SPR(e1Child, e2Parent, e2Child ID) error {
	sub, err := t.Prune(e1Child)
	if err != nil {
		return err
	}
	return t.Graft(sub, e2Parent, e2Child)
}

// NNI performs a nearest-neighbor interchange on the binary internal edge
// (parent(internalNode), internalNode), where internalNode is itself
// internal: one child of internalNode is swapped with internalNode's
// sibling. swapLeft selects which of internalNode's two children is
// swapped.
//
// Fails with InvalidOperation if internalNode is a leaf, the root, or
// either internalNode or its parent is not binary.
func (t *Tree) NNI(internalNode ID, swapLeft bool) error {
	v, err := t.Get(internalNode)
	if err != nil {
		return err
	}
	if v.IsLeaf() || v.IsRoot() {
		return fmt.Errorf("%w: NNI requires an internal, non-root node", ErrInvalidOperation)
	}
	if v.Degree() != 2 {
		return fmt.Errorf("%w: NNI requires a binary node", ErrInvalidOperation)
	}

	u := t.MustGet(v.parent)
	if u.Degree() != 2 {
		return fmt.Errorf("%w: NNI requires a binary parent edge", ErrInvalidOperation)
	}

	var sibling ID
	for _, c := range u.children {
		if c != internalNode {
			sibling = c
		}
	}

	childIdx := 0
	if !swapLeft {
		childIdx = 1
	}
	swapChild := v.children[childIdx]

	// swap: sibling becomes a child of v, swapChild becomes a child of u.
	vNode := t.MustGet(internalNode)
	vNode.children[childIdx] = sibling
	t.slots[internalNode] = &vNode

	uNode := t.MustGet(v.parent)
	for i, c := range uNode.children {
		if c == sibling {
			uNode.children[i] = swapChild
		}
	}
	t.slots[v.parent] = &uNode

	sibNode := t.MustGet(sibling)
	sibNode.parent = internalNode
	t.slots[sibling] = &sibNode

	swapNode := t.MustGet(swapChild)
	swapNode.parent = v.parent
	t.slots[swapChild] = &swapNode

	t.invalidateLCA()
	return nil
}

// Balance rearranges a four-leaf binary tree so that its two cherries are
// balanced: ((A,B),(C,D)) rather than the ladder (A,(B,(C,D))) (in either
// left-right orientation). Fails with Precondition unless t has exactly
// four leaves and every internal node, including the root, is binary.
func (t *Tree) Balance() error {
	var leaves []ID
	internals := 0
	for id := range t.PreOrder(t.root) {
		n := t.MustGet(id)
		if n.IsLeaf() {
			leaves = append(leaves, id)
			continue
		}
		internals++
		if n.Degree() != 2 {
			return fmt.Errorf("%w: Balance requires every internal node to be binary", ErrPrecondition)
		}
	}
	if len(leaves) != 4 || internals != 3 {
		return fmt.Errorf("%w: Balance requires a four-leaf binary tree", ErrPrecondition)
	}

	root := t.MustGet(t.root)

	// With four leaves and every internal node binary, root's two children
	// are either both internal cherries — ((A,B),(C,D)), already balanced —
	// or one leaf and one internal ladder — (A,(B,(C,D))), which needs
	// rearranging. Root having two leaf children would leave only two
	// leaves total, which the four-leaf check above already rules out.
	if !t.MustGet(root.children[0]).IsLeaf() && !t.MustGet(root.children[1]).IsLeaf() {
		if t.bothChildrenAreLeaves(t.MustGet(root.children[0])) && t.bothChildrenAreLeaves(t.MustGet(root.children[1])) {
			return nil // already balanced
		}
		return fmt.Errorf("%w: Balance requires a four-leaf binary tree", ErrPrecondition)
	}

	var leafChild, ladder ID
	var haveLeafChild, haveLadder bool
	for _, c := range root.children {
		if t.MustGet(c).IsLeaf() {
			leafChild, haveLeafChild = c, true
		} else {
			ladder, haveLadder = c, true
		}
	}
	if !haveLeafChild || !haveLadder {
		return fmt.Errorf("%w: Balance requires a four-leaf binary tree", ErrPrecondition)
	}

	ladderNode := t.MustGet(ladder)

	var innerLeaf, innerInternal ID
	var haveInnerLeaf, haveInnerInternal bool
	for _, c := range ladderNode.children {
		if t.MustGet(c).IsLeaf() {
			innerLeaf, haveInnerLeaf = c, true
		} else {
			innerInternal, haveInnerInternal = c, true
		}
	}
	if !haveInnerLeaf || !haveInnerInternal || !t.bothChildrenAreLeaves(t.MustGet(innerInternal)) {
		return fmt.Errorf("%w: Balance requires a four-leaf binary tree", ErrPrecondition)
	}

	// Rearrange in place: ladder becomes the (leafChild, innerLeaf) cherry,
	// attached under root alongside innerInternal (the (C,D) cherry), which
	// moves up from under ladder to directly under root.
	a, b, y := leafChild, innerLeaf, innerInternal

	aNode := t.MustGet(a)
	bNode := t.MustGet(b)
	yNode := t.MustGet(y)
	ladderNode = t.MustGet(ladder)
	rootNode := t.MustGet(t.root)

	aNode.parent = ladder
	bNode.parent = ladder
	ladderNode.children = []ID{a, b}
	yNode.parent = t.root
	rootNode.children = []ID{ladder, y}

	t.slots[a] = &aNode
	t.slots[b] = &bNode
	t.slots[y] = &yNode
	t.slots[ladder] = &ladderNode
	t.slots[t.root] = &rootNode

	t.invalidateLCA()
	return nil
}

func (t *Tree) bothChildrenAreLeaves(n Node) bool {
	if n.Degree() != 2 {
		return false
	}
	for _, c := range n.children {
		if !t.MustGet(c).IsLeaf() {
			return false
		}
	}
	return true
}

// Reroot makes n the new root, reversing parent pointers along the path
// from the old root to n.
func (t *Tree) Reroot(n ID) error {
	if !t.Live(n) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, n)
	}
	path := t.RootToNode(n) // old root ... n

	for i := len(path) - 1; i > 0; i-- {
		child, parent := path[i], path[i-1]

		cNode := t.MustGet(child)
		pNode := t.MustGet(parent)

		// remove child from parent's children, add parent as child's child
		for j, c := range pNode.children {
			if c == child {
				pNode.children = append(pNode.children[:j], pNode.children[j+1:]...)
				break
			}
		}
		cNode.children = append(cNode.children, parent)
		pNode.parent = child
		// cNode.parent is left untouched here: it was already set correctly
		// by the previous (child-ward) iteration, or — for the very first
		// iteration, where child == n — is fixed up once below.

		t.slots[child] = &cNode
		t.slots[parent] = &pNode
	}

	final := t.MustGet(n)
	final.parent = noParent
	t.slots[n] = &final
	t.root = n

	t.invalidateLCA()
	return nil
}

// RerootAtEdge splits the edge (p, c) with a fresh node and makes that node
// the new root.
func (t *Tree) RerootAtEdge(p, c ID) error {
	m, err := t.SplitEdge(p, c, Node{})
	if err != nil {
		return err
	}
	return t.Reroot(m)
}
