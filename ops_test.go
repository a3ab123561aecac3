// SPDX-License-Identifier: MIT

package phylotree

import (
	"errors"
	"testing"
)

// checkInvariants verifies the structural invariants every reachable tree
// must satisfy, regardless of which operation produced it.
func checkInvariants(t *testing.T, tr *Tree) {
	t.Helper()

	parentless := 0
	visited := 0
	for id := range tr.PreOrder(tr.root) {
		visited++
		n := tr.MustGet(id)
		if n.IsRoot() {
			parentless++
		}
		seen := 0
		for _, c := range n.children {
			cn := tr.MustGet(c)
			if p, ok := cn.Parent(); !ok || p != id {
				t.Errorf("child %d of %d does not point back to its parent", c, id)
			}
			seen++
		}
		_ = seen
	}
	if parentless != 1 {
		t.Errorf("expected exactly one parentless node reachable from root, got %d", parentless)
	}
	if visited != tr.Len() {
		t.Errorf("traversal reached %d of %d live nodes: unreachable nodes present", visited, tr.Len())
	}
}

func TestInduceEquivalentToSuppressedOriginal(t *testing.T) {
	tr, err := ParseNewick([]byte("((A,B),C);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	a, _ := tr.TaxonID("A")

	// Insert an artificial unifurcation above A.
	parentOfA := tr.MustGet(a).parent
	if _, err := tr.SplitEdge(parentOfA, a, Node{}); err != nil {
		t.Fatalf("SplitEdge: %v", err)
	}

	var leaves []ID
	for _, name := range tr.Taxa() {
		id, _ := tr.TaxonID(name)
		leaves = append(leaves, id)
	}

	induced, err := tr.Induce(leaves)
	if err != nil {
		t.Fatalf("Induce: %v", err)
	}
	checkInvariants(t, induced)

	suppressed := tr.Clone()
	suppressed.SuppressUnifurcations()

	if !induced.Equal(suppressed) {
		t.Errorf("Induce(all leaves) = %s, want %s", induced.Newick(), suppressed.Newick())
	}
}

func TestContractRestrictsToGivenLeaves(t *testing.T) {
	tr, err := ParseNewick([]byte("(((A,B),C),(D,E));"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	a, _ := tr.TaxonID("A")
	d, _ := tr.TaxonID("D")
	e, _ := tr.TaxonID("E")

	contracted, err := tr.Contract([]ID{a, d, e})
	if err != nil {
		t.Fatalf("Contract: %v", err)
	}
	checkInvariants(t, contracted)

	taxa := contracted.Taxa()
	want := map[string]bool{"A": true, "D": true, "E": true}
	if len(taxa) != len(want) {
		t.Fatalf("contracted tree has %d taxa, want %d", len(taxa), len(want))
	}
	for _, name := range taxa {
		if !want[name] {
			t.Errorf("unexpected taxon %q in contracted tree", name)
		}
	}
}

func TestPruneDetachesSubtree(t *testing.T) {
	tr, err := ParseNewick([]byte("((A,B),C);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	a, _ := tr.TaxonID("A")
	ab := tr.MustGet(a).parent

	sub, err := tr.Prune(ab)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	checkInvariants(t, sub)
	checkInvariants(t, tr)

	if sub.root != ab {
		t.Errorf("pruned tree root = %d, want %d", sub.root, ab)
	}
	if _, ok := tr.TaxonID("A"); ok {
		t.Error("A should no longer be reachable in the source tree")
	}
	if _, ok := sub.TaxonID("A"); !ok {
		t.Error("A should be present in the pruned tree")
	}
}

func TestPruneRootFails(t *testing.T) {
	tr := New(0)
	if _, err := tr.Prune(0); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Prune(root) error = %v, want ErrInvalidOperation", err)
	}
}

func TestSPRScenario(t *testing.T) {
	tr, err := ParseNewick([]byte("((A,B),C);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	a, _ := tr.TaxonID("A")
	c, _ := tr.TaxonID("C")
	ab := tr.MustGet(a).parent
	root := tr.root

	if err := tr.SPR(ab, root, c); err != nil {
		t.Fatalf("SPR: %v", err)
	}
	tr.Clean()
	checkInvariants(t, tr)

	for _, name := range []string{"A", "B", "C"} {
		if _, ok := tr.TaxonID(name); !ok {
			t.Errorf("taxon %q missing after first SPR", name)
		}
	}

	// SPR again: prune C's sibling-subtree and graft it somewhere else in
	// what remains, then check the tree is still valid.
	newA, _ := tr.TaxonID("A")
	newAB := tr.MustGet(newA).parent
	newRoot := tr.root
	if newAB == newRoot {
		t.Fatal("test setup: expected (A,B) cherry to have a grandparent after first SPR")
	}

	var otherEdgeChild ID
	for _, child := range tr.MustGet(newRoot).Children() {
		if child != newAB {
			otherEdgeChild = child
			break
		}
	}

	if err := tr.SPR(newAB, newRoot, otherEdgeChild); err != nil {
		t.Fatalf("second SPR: %v", err)
	}
	tr.Clean()
	checkInvariants(t, tr)

	for _, name := range []string{"A", "B", "C"} {
		if _, ok := tr.TaxonID(name); !ok {
			t.Errorf("taxon %q missing after second SPR", name)
		}
	}
}

func TestGraftRewritesIds(t *testing.T) {
	tr, err := ParseNewick([]byte("(A,B);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	other, err := ParseNewick([]byte("(C,D);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	a, _ := tr.TaxonID("A")
	root := tr.root

	if err := tr.Graft(other, root, a); err != nil {
		t.Fatalf("Graft: %v", err)
	}
	checkInvariants(t, tr)

	for _, name := range []string{"A", "B", "C", "D"} {
		if _, ok := tr.TaxonID(name); !ok {
			t.Errorf("taxon %q missing after graft", name)
		}
	}
	// other must be untouched.
	if _, ok := other.TaxonID("C"); !ok {
		t.Error("grafted-from tree should be left intact")
	}
}

func TestNNISwapsSubtrees(t *testing.T) {
	tr, err := ParseNewick([]byte("(((A,B),C),D);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	a, _ := tr.TaxonID("A")
	ab := tr.MustGet(a).parent
	abc := tr.MustGet(ab).parent

	c, _ := tr.TaxonID("C")
	if err := tr.NNI(ab, true); err != nil {
		t.Fatalf("NNI: %v", err)
	}
	checkInvariants(t, tr)

	// C should now be a child of ab, and ab's former first child should
	// have moved up to be a child of abc.
	abNode := tr.MustGet(ab)
	found := false
	for _, child := range abNode.Children() {
		if child == c {
			found = true
		}
	}
	if !found {
		t.Errorf("expected C to become a child of %d after NNI", ab)
	}

	abcNode := tr.MustGet(abc)
	foundA := false
	for _, child := range abcNode.Children() {
		if child == a {
			foundA = true
		}
	}
	if !foundA {
		t.Errorf("expected A to move up to become a child of %d after NNI", abc)
	}
}

func TestNNIRejectsLeafAndRoot(t *testing.T) {
	tr, err := ParseNewick([]byte("((A,B),C);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	a, _ := tr.TaxonID("A")
	if err := tr.NNI(a, true); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("NNI(leaf) error = %v, want ErrInvalidOperation", err)
	}
	if err := tr.NNI(tr.root, true); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("NNI(root) error = %v, want ErrInvalidOperation", err)
	}
}

func TestBalanceRearrangesLadder(t *testing.T) {
	tr, err := ParseNewick([]byte("(A,(B,(C,D)));"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	if err := tr.Balance(); err != nil {
		t.Fatalf("Balance: %v", err)
	}
	checkInvariants(t, tr)

	rootNode := tr.MustGet(tr.root)
	if len(rootNode.Children()) != 2 {
		t.Fatalf("root has %d children, want 2", len(rootNode.Children()))
	}
	for _, c := range rootNode.Children() {
		cn := tr.MustGet(c)
		if cn.Degree() != 2 || !tr.bothChildrenAreLeaves(cn) {
			t.Errorf("expected both of root's children to be two-leaf cherries after Balance")
		}
	}
}

func TestBalanceIsNoOpWhenAlreadyBalanced(t *testing.T) {
	tr, err := ParseNewick([]byte("((A,B),(C,D));"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	before := tr.Newick()

	if err := tr.Balance(); err != nil {
		t.Fatalf("Balance on an already-balanced tree: %v", err)
	}
	checkInvariants(t, tr)

	if got := tr.Newick(); got != before {
		t.Errorf("Balance mutated an already-balanced tree: got %q, want %q", got, before)
	}
}

func TestBalanceRejectsNonFourLeaf(t *testing.T) {
	tr, err := ParseNewick([]byte("((A,B),C);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	if err := tr.Balance(); !errors.Is(err, ErrPrecondition) {
		t.Errorf("Balance error = %v, want ErrPrecondition", err)
	}
}

func TestRerootMakesTargetTheRoot(t *testing.T) {
	tr, err := ParseNewick([]byte("((A,B),C);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	c, _ := tr.TaxonID("C")

	if err := tr.Reroot(c); err != nil {
		t.Fatalf("Reroot: %v", err)
	}
	checkInvariants(t, tr)

	if tr.root != c {
		t.Errorf("root = %d, want %d", tr.root, c)
	}
	for _, name := range []string{"A", "B", "C"} {
		if _, ok := tr.TaxonID(name); !ok {
			t.Errorf("taxon %q missing after reroot", name)
		}
	}
}

func TestRerootAtEdgeSplitsAndRoots(t *testing.T) {
	tr, err := ParseNewick([]byte("((A,B),C);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	a, _ := tr.TaxonID("A")
	ab := tr.MustGet(a).parent
	before := tr.Len()

	if err := tr.RerootAtEdge(ab, a); err != nil {
		t.Fatalf("RerootAtEdge: %v", err)
	}
	checkInvariants(t, tr)

	if tr.Len() != before+1 {
		t.Errorf("Len() = %d, want %d after RerootAtEdge", tr.Len(), before+1)
	}
}
