// SPDX-License-Identifier: MIT

package phylotree

import (
	"fmt"

	"github.com/arborix/phylotree/internal/rmq"
)

// Tree is an arena-backed rooted, labeled tree: a flat, indexable slice of
// node slots plus a root id and a taxa↔id index.
//
// A Tree must not be copied by value; take [Tree.Clone] for an independent
// snapshot instead. The zero value is not ready to use — construct one with
// [New] or [NewWithCapacity].
type Tree struct {
	root  ID
	slots []*Node // index = id; nil means the slot is empty (deleted, or never used)
	size  int     // count of live slots

	taxaToID map[string]ID

	// LCA precomputation. All four are jointly valid or all nil; any
	// mutation sets them all back to nil atomically.
	eulerWalk []ID
	firstSeen map[ID]int
	depth     []int
	table     *rmq.Table
}

// New returns a tree containing a single root node with the given id.
func New(rootID ID) *Tree {
	t := &Tree{taxaToID: make(map[string]ID)}
	t.growTo(rootID)
	t.slots[rootID] = &Node{id: rootID, parent: noParent}
	t.root = rootID
	t.size = 1
	return t
}

// NewWithCapacity returns a tree containing a single root node with id 0,
// pre-sizing the backing arena to hold n nodes.
func NewWithCapacity(n int) *Tree {
	t := &Tree{
		slots:    make([]*Node, 0, n),
		taxaToID: make(map[string]ID, n),
	}
	t.growTo(0)
	t.slots[0] = &Node{id: 0, parent: noParent}
	t.root = 0
	t.size = 1
	return t
}

// Root returns the id of the root node.
func (t *Tree) Root() ID { return t.root }

// Len returns the number of live nodes.
func (t *Tree) Len() int { return t.size }

// growTo extends the backing arena so that id is a valid index.
func (t *Tree) growTo(id ID) {
	if int(id) < len(t.slots) {
		return
	}
	grown := make([]*Node, id+1)
	copy(grown, t.slots)
	t.slots = grown
}

// Get returns the node stored at id.
func (t *Tree) Get(id ID) (Node, error) {
	if int(id) >= len(t.slots) || t.slots[id] == nil {
		return Node{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return *t.slots[id], nil
}

// MustGet returns the node stored at id, panicking if the slot is absent.
// Reserved for call sites where an absent slot is an arena-internal
// invariant violation rather than a caller mistake (e.g. walking a
// children list).
func (t *Tree) MustGet(id ID) Node {
	n, err := t.Get(id)
	if err != nil {
		panic(fmt.Sprintf("phylotree: invariant violated: %v", err))
	}
	return n
}

// Live reports whether id names a live slot.
func (t *Tree) Live(id ID) bool {
	return int(id) < len(t.slots) && t.slots[id] != nil
}

// TaxonID returns the id of the node carrying the given taxon label.
func (t *Tree) TaxonID(taxon string) (ID, bool) {
	id, ok := t.taxaToID[taxon]
	return id, ok
}

// Taxa returns every taxon label present in the tree, in no particular order.
func (t *Tree) Taxa() []string {
	out := make([]string, 0, len(t.taxaToID))
	for taxon := range t.taxaToID {
		out = append(out, taxon)
	}
	return out
}

// invalidateLCA drops any precomputed Euler walk / depth / RMQ structures.
// Every mutation primitive must call this.
func (t *Tree) invalidateLCA() {
	t.eulerWalk = nil
	t.firstSeen = nil
	t.depth = nil
	t.table = nil
}

// hasLCAPrecomputation reports whether Precompute has been run since the
// last mutation.
func (t *Tree) hasLCAPrecomputation() bool {
	return t.table != nil
}
