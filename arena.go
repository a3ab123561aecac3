// SPDX-License-Identifier: MIT

package phylotree

import "fmt"

// SetNode inserts n (keyed by n.ID()) or replaces the node currently stored
// there. The backing arena is extended if n.ID() >= Len(). If n carries a
// taxon, the taxa index is updated; if the replaced node carried a
// different taxon, its entry is removed first.
//
// SetNode does not touch parent/children linkage — use [Tree.SetChild] or
// [Tree.AddChild] to wire a node into the tree shape. Any call invalidates
// LCA precomputation.
func (t *Tree) SetNode(n Node) {
	t.growTo(n.id)

	if old := t.slots[n.id]; old != nil && old.hasTaxon {
		delete(t.taxaToID, old.taxon)
	}
	if old := t.slots[n.id]; old == nil {
		t.size++
	}

	cp := n
	t.slots[n.id] = &cp

	if n.hasTaxon {
		t.taxaToID[n.taxon] = n.id
	}
	t.invalidateLCA()
}

// SetChild appends child to parent's children list and sets child's parent
// to parent. It does not check for duplicates or acyclicity — the caller
// must ensure child is not already a child of parent and that no cycle is
// introduced. Invalidates LCA precomputation.
func (t *Tree) SetChild(parent, child ID) error {
	p, err := t.Get(parent)
	if err != nil {
		return err
	}
	c, err := t.Get(child)
	if err != nil {
		return err
	}

	p.children = append(p.children, child)
	c.parent = parent

	t.slots[parent] = &p
	t.slots[child] = &c
	t.invalidateLCA()
	return nil
}

// AddChild assigns n a fresh id, stores it, and attaches it as the last
// child of parent. It returns the assigned id. Equivalent to SetNode
// followed by SetChild.
func (t *Tree) AddChild(parent ID, n Node) (ID, error) {
	if !t.Live(parent) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNode, parent)
	}

	n.id = t.nextFreeID()
	n.parent = parent
	t.SetNode(n)

	if err := t.SetChild(parent, n.id); err != nil {
		return 0, err
	}
	return n.id, nil
}

// nextFreeID returns an id one past the end of the arena; ids are never
// reused within a tree's lifetime even across deletions.
func (t *Tree) nextFreeID() ID {
	return ID(len(t.slots))
}

// RemoveNode detaches id from its parent's children list, vacates its slot,
// and returns the removed node. Any children id had become orphaned: they
// remain live in the arena with id as a now-dangling parent pointer; the
// caller must reattach them (e.g. via SetChild) or drop them, now
// unreachable from the root, with Clean. Invalidates LCA precomputation.
//
// Removing the root is rejected with ErrInvalidOperation; reroot the tree
// first if that is really what's wanted.
func (t *Tree) RemoveNode(id ID) (Node, error) {
	n, err := t.Get(id)
	if err != nil {
		return Node{}, err
	}
	if n.IsRoot() {
		return Node{}, fmt.Errorf("%w: cannot remove the root", ErrInvalidOperation)
	}

	p := t.MustGet(n.parent)
	for i, c := range p.children {
		if c == id {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	t.slots[n.parent] = &p

	t.deleteSlot(id)
	t.invalidateLCA()
	return n, nil
}

// DeleteNode vacates id's slot without touching its parent's children list
// or any child's parent pointer. It is a lower-level primitive than
// RemoveNode, meant for bulk operations (Induce, Contract) that rebuild
// linkage themselves afterward. Invalidates LCA precomputation.
func (t *Tree) DeleteNode(id ID) {
	t.deleteSlot(id)
	t.invalidateLCA()
}

func (t *Tree) deleteSlot(id ID) {
	if int(id) < len(t.slots) && t.slots[id] != nil {
		if t.slots[id].hasTaxon {
			delete(t.taxaToID, t.slots[id].taxon)
		}
		t.slots[id] = nil
		t.size--
	}
}

// SplitEdge inserts newNode between parent and child, splitting the edge
// (parent, child): newNode becomes a new child of parent, and child
// becomes newNode's sole child. newNode is assigned a fresh id, which is
// returned. Invalidates LCA precomputation.
func (t *Tree) SplitEdge(parent, child ID, newNode Node) (ID, error) {
	p, err := t.Get(parent)
	if err != nil {
		return 0, err
	}
	c, err := t.Get(child)
	if err != nil {
		return 0, err
	}

	idx := -1
	for i, id := range p.children {
		if id == child {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("%w: %d is not a child of %d", ErrInvalidOperation, child, parent)
	}

	newNode.id = t.nextFreeID()
	newNode.parent = parent
	newNode.children = []ID{child}
	t.SetNode(newNode)

	p.children[idx] = newNode.id
	c.parent = newNode.id
	t.slots[parent] = &p
	t.slots[child] = &c

	t.invalidateLCA()
	return newNode.id, nil
}

// SuppressUnifurcations removes every non-root, non-leaf node of degree
// one, reconnecting its sole child directly to its parent. It runs in
// post-order, so a chain of degree-one nodes collapses in a single pass.
//
// If the root itself becomes a unifurcation (degree one), it is replaced
// by its sole child, which becomes the new, parentless root.
func (t *Tree) SuppressUnifurcations() {
	order := t.postOrderIDs(t.root)
	for _, id := range order {
		if !t.Live(id) {
			continue
		}
		n := t.MustGet(id)
		if n.IsLeaf() || n.Degree() != 1 {
			continue
		}

		sole := n.children[0]
		soleNode := t.MustGet(sole)

		if n.IsRoot() {
			soleNode.parent = noParent
			t.slots[sole] = &soleNode
			t.root = sole
			t.DeleteNode(id)
			continue
		}

		parent := t.MustGet(n.parent)
		for i, c := range parent.children {
			if c == id {
				parent.children[i] = sole
				break
			}
		}
		soleNode.parent = n.parent
		t.slots[n.parent] = &parent
		t.slots[sole] = &soleNode
		t.DeleteNode(id)
	}
	t.invalidateLCA()
}

// Clean removes every node unreachable from the root.
func (t *Tree) Clean() {
	reachable := make(map[ID]bool, t.size)
	for id := range t.PreOrder(t.root) {
		reachable[id] = true
	}
	for id := range t.slots {
		id := ID(id)
		if t.Live(id) && !reachable[id] {
			t.deleteSlot(id)
		}
	}
	t.invalidateLCA()
}

// postOrderIDs returns a plain slice post-order walk of the subtree rooted
// at s, for internal use by mutation primitives that must not hold open
// iterators while they edit the arena.
func (t *Tree) postOrderIDs(s ID) []ID {
	var out []ID
	for id := range t.PostOrder(s) {
		out = append(out, id)
	}
	return out
}
