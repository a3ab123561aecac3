// SPDX-License-Identifier: MIT

package phylotree

import "fmt"

// Sampler supplies the randomness tree simulators consume. IntN must
// return a pseudo-random integer in [0, n); passing the program's own PRNG
// through this interface, rather than reaching for one internally, keeps
// simulation runs reproducible from the caller's seed.
type Sampler interface {
	IntN(n int) int
}

// Yule builds a random binary tree over n labeled leaves under the Yule
// (pure-birth) model: starting from a single root node (the first leaf), at each of n−1 steps a
// uniformly random current leaf is split into two new leaves. Leaves are
// labeled "t1".."tn" in the order they are created. n must be >= 1.
func Yule(n int, sample Sampler) (*Tree, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: Yule requires n >= 1, got %d", ErrInvalidOperation, n)
	}

	t := NewWithCapacity(2*n - 1)
	root := t.root
	leaves := []ID{root}
	taxonOf := func(i int) string { return fmt.Sprintf("t%d", i+1) }

	if n == 1 {
		n0 := t.MustGet(root).WithTaxon(taxonOf(0))
		t.slots[root] = &n0
		t.taxaToID[taxonOf(0)] = root
		return t, nil
	}

	for step := 0; step < n-1; step++ {
		i := sample.IntN(len(leaves))
		splitting := leaves[i]
		leaves = append(leaves[:i], leaves[i+1:]...)

		left := t.nextFreeID()
		t.growTo(left)
		t.slots[left] = &Node{id: left, parent: splitting}
		t.size++

		right := t.nextFreeID()
		t.growTo(right)
		t.slots[right] = &Node{id: right, parent: splitting}
		t.size++

		parent := t.MustGet(splitting)
		parent.children = []ID{left, right}
		t.slots[splitting] = &parent

		leaves = append(leaves, left, right)
	}

	for i, id := range leaves {
		taxon := taxonOf(i)
		leaf := t.MustGet(id).WithTaxon(taxon)
		t.slots[id] = &leaf
		t.taxaToID[taxon] = id
	}

	t.invalidateLCA()
	return t, nil
}

// Uniform builds a random binary tree topology over n labeled leaves using
// the random-joining construction: maintain a pool of roots, repeatedly
// pick two distinct pool members uniformly and replace them with a new
// internal node parenting both, until one root remains. Leaves are labeled
// "t1".."tn" before joining begins. n must be >= 1.
//
// The resulting topologies follow the random-joining distribution, not the
// uniform distribution over all labeled binary tree shapes: for n = 4, a
// balanced shape comes out with probability 1/3 rather than 3/15.
func Uniform(n int, sample Sampler) (*Tree, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: Uniform requires n >= 1, got %d", ErrInvalidOperation, n)
	}

	t := NewWithCapacity(2*n - 1)
	if n == 1 {
		root := t.root
		leaf := t.MustGet(root).WithTaxon("t1")
		t.slots[root] = &leaf
		t.taxaToID["t1"] = root
		return t, nil
	}

	pool := make([]ID, n)
	pool[0] = t.root
	for i := 1; i < n; i++ {
		id := t.nextFreeID()
		t.growTo(id)
		t.slots[id] = &Node{id: id, parent: noParent}
		t.size++
		pool[i] = id
	}
	for i, id := range pool {
		taxon := fmt.Sprintf("t%d", i+1)
		leaf := t.MustGet(id).WithTaxon(taxon)
		t.slots[id] = &leaf
		t.taxaToID[taxon] = id
	}

	for len(pool) > 1 {
		i := sample.IntN(len(pool))
		a := pool[i]
		pool = append(pool[:i], pool[i+1:]...)
		j := sample.IntN(len(pool))
		b := pool[j]
		pool = append(pool[:j], pool[j+1:]...)

		parent := t.nextFreeID()
		t.growTo(parent)
		aNode := t.MustGet(a)
		bNode := t.MustGet(b)
		aNode.parent, bNode.parent = parent, parent
		t.slots[parent] = &Node{id: parent, parent: noParent, children: []ID{a, b}}
		t.slots[a] = &aNode
		t.slots[b] = &bNode
		t.size++

		pool = append(pool, parent)
	}

	t.root = pool[0]
	final := t.MustGet(t.root)
	final.parent = noParent
	t.slots[t.root] = &final

	t.invalidateLCA()
	return t, nil
}
