// SPDX-License-Identifier: MIT

package phylotree

import (
	"fmt"
	"math"
	"sort"
)

// CopheneticVector returns, for a tree whose nodes all carry a zeta
// annotation (see ApplyZeta), the value zeta(lca(i, j)) for every
// unordered pair of taxa {i, j} with i != j, and zeta(i) for the
// degenerate pair {i, i}, keyed by the two taxon labels in sorted order.
//
// Returns ErrZetaUnset if any leaf, or any of their pairwise LCAs, lacks a
// zeta value.
func (t *Tree) CopheneticVector() (map[[2]string]float64, error) {
	taxa := t.Taxa()
	sort.Strings(taxa)
	ids := make([]ID, len(taxa))
	for i, name := range taxa {
		id, _ := t.TaxonID(name)
		ids[i] = id
	}

	out := make(map[[2]string]float64, len(taxa)*(len(taxa)+1)/2)
	for i, a := range taxa {
		za, err := t.Zeta(ids[i])
		if err != nil {
			return nil, fmt.Errorf("taxon %q: %w", a, err)
		}
		out[[2]string{a, a}] = za

		for j := i + 1; j < len(taxa); j++ {
			b := taxa[j]
			lca, err := t.LCA(ids[i], ids[j])
			if err != nil {
				return nil, err
			}
			z, err := t.Zeta(lca)
			if err != nil {
				return nil, fmt.Errorf("lca(%q, %q): %w", a, b, err)
			}
			out[pairKey(a, b)] = z
		}
	}
	return out, nil
}

func pairKey(a, b string) [2]string {
	if a <= b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// CopheneticDistance returns the Lp distance between t and other's
// cophenetic vectors, restricted to their shared taxa: the p-th root of
// the sum, over every shared unordered taxon pair (including a taxon
// against itself), of |t's entry − other's entry|^p. p must be >= 1; p ==
// math.Inf(1) takes the supremum (L∞ / Chebyshev) instead of a root-sum.
//
// Both trees must have zeta populated (see ApplyZeta) before calling this;
// it evaluates in Θ(n²) time, materializing both cophenetic vectors.
func (t *Tree) CopheneticDistance(other *Tree, p float64) (float64, error) {
	if p < 1 {
		return 0, fmt.Errorf("%w: cophenetic distance requires p >= 1, got %v", ErrInvalidOperation, p)
	}

	va, err := t.CopheneticVector()
	if err != nil {
		return 0, err
	}
	vb, err := other.CopheneticVector()
	if err != nil {
		return 0, err
	}

	shared := sharedTaxaIndex(t, other)
	names := make([]string, 0, len(shared))
	for name := range shared {
		names = append(names, name)
	}
	sort.Strings(names)

	if math.IsInf(p, 1) {
		var sup float64
		for i, a := range names {
			for _, b := range names[i:] {
				d := math.Abs(va[pairKey(a, b)] - vb[pairKey(a, b)])
				if d > sup {
					sup = d
				}
			}
		}
		return sup, nil
	}

	var sum float64
	for i, a := range names {
		for _, b := range names[i:] {
			d := math.Abs(va[pairKey(a, b)] - vb[pairKey(a, b)])
			sum += math.Pow(d, p)
		}
	}
	return math.Pow(sum, 1/p), nil
}

// CopheneticDistanceFast computes the same value as CopheneticDistance
// without ever materializing either tree's full cophenetic vector, using
// the median-node divide-and-conquer split of §4.9: at each level, the
// taxa are partitioned by both trees' median nodes into four buckets (in
// A-side of t × in/out of A-side of other, and likewise for t's B-side);
// pairs confined to the same bucket in both trees recurse into a strictly
// smaller subproblem, while any pair split across one tree's partition has
// its LCA resolved directly through the O(1) fast-LCA path. Builds LCA
// precomputation on either tree if missing, per §4.8.
//
// p == +Inf (the supremum norm) falls back to the naive scan, since the
// power-sum decomposition below only applies to a finite exponent.
func (t *Tree) CopheneticDistanceFast(other *Tree, p float64) (float64, error) {
	if p < 1 {
		return 0, fmt.Errorf("%w: cophenetic distance requires p >= 1, got %v", ErrInvalidOperation, p)
	}
	if math.IsInf(p, 1) {
		return t.CopheneticDistance(other, p)
	}

	if !t.hasLCAPrecomputation() {
		t.Precompute()
	}
	if !other.hasLCAPrecomputation() {
		other.Precompute()
	}

	shared := sharedTaxaIndex(t, other)
	names := make([]string, 0, len(shared))
	for name := range shared {
		names = append(names, name)
	}
	sort.Strings(names)

	var powerSum float64
	for _, name := range names {
		ta, _ := t.TaxonID(name)
		oa, _ := other.TaxonID(name)
		za, err := t.Zeta(ta)
		if err != nil {
			return 0, fmt.Errorf("taxon %q: %w", name, err)
		}
		zo, err := other.Zeta(oa)
		if err != nil {
			return 0, fmt.Errorf("taxon %q: %w", name, err)
		}
		powerSum += math.Pow(math.Abs(za-zo), p)
	}

	cross, err := t.cdPowerSumCross(other, t.root, other.root, names, p)
	if err != nil {
		return 0, err
	}
	powerSum += cross

	return math.Pow(powerSum, 1/p), nil
}

// cdPowerSumCross returns Σ |ζt(lcat(x,y)) − ζother(lcaother(x,y))|^p over
// every unordered pair of distinct taxa in names, confined to the subtrees
// rooted at tRoot (in t) and oRoot (in other).
//
// Each tree is independently split at its median node (§4.9) restricted to
// names, partitioning names into four buckets by (t-side, other-side)
// membership. A pair that lands in the same bucket for both trees has
// neither LCA pinned down yet and recurses into that bucket, rooted at the
// corresponding median node(s); any other pair already crosses at least
// one tree's split, so its LCA is resolved directly rather than assumed,
// since a multi-hop median descent does not guarantee the simple
// single-hop identity lca(x,y) = split node.
func (t *Tree) cdPowerSumCross(other *Tree, tRoot, oRoot ID, names []string, p float64) (float64, error) {
	if len(names) < 2 {
		return 0, nil
	}

	tMedian, tSide := t.medianSplit(tRoot, names)
	oMedian, oSide := other.medianSplit(oRoot, names)

	inTA := make(map[string]bool, len(tSide))
	for _, n := range tSide {
		inTA[n] = true
	}
	inOA := make(map[string]bool, len(oSide))
	for _, n := range oSide {
		inOA[n] = true
	}

	var aa, abOther, baOther, bb []string
	for _, n := range names {
		switch ta, oa := inTA[n], inOA[n]; {
		case ta && oa:
			aa = append(aa, n)
		case ta && !oa:
			abOther = append(abOther, n)
		case !ta && oa:
			baOther = append(baOther, n)
		default:
			bb = append(bb, n)
		}
	}

	var sum float64
	for _, pair := range [][2][]string{
		{aa, abOther}, {aa, baOther}, {aa, bb},
		{abOther, baOther}, {abOther, bb},
		{baOther, bb},
	} {
		s, err := t.cdDirectCross(other, pair[0], pair[1], p)
		if err != nil {
			return 0, err
		}
		sum += s
	}

	for _, bucket := range []struct {
		names         []string
		tRoot, oRoot ID
	}{
		{aa, tMedian, oMedian},
		{abOther, tMedian, oRoot},
		{baOther, tRoot, oMedian},
		{bb, tRoot, oRoot},
	} {
		s, err := t.cdPowerSumCross(other, bucket.tRoot, bucket.oRoot, bucket.names, p)
		if err != nil {
			return 0, err
		}
		sum += s
	}

	return sum, nil
}

// cdDirectCross returns Σ_{x∈g1,y∈g2} |ζt(lcat(x,y)) − ζother(lcaother(x,y))|^p,
// evaluated directly through each tree's O(1) fast-LCA path, for two
// disjoint taxon groups whose pairwise LCA is not determined by either
// tree's median split.
func (t *Tree) cdDirectCross(other *Tree, g1, g2 []string, p float64) (float64, error) {
	var sum float64
	for _, x := range g1 {
		xt, _ := t.TaxonID(x)
		xo, _ := other.TaxonID(x)
		for _, y := range g2 {
			yt, _ := t.TaxonID(y)
			yo, _ := other.TaxonID(y)

			lt, err := t.LCA(xt, yt)
			if err != nil {
				return 0, err
			}
			zt, err := t.Zeta(lt)
			if err != nil {
				return 0, err
			}

			lo, err := other.LCA(xo, yo)
			if err != nil {
				return 0, err
			}
			zo, err := other.Zeta(lo)
			if err != nil {
				return 0, err
			}

			sum += math.Pow(math.Abs(zt-zo), p)
		}
	}
	return sum, nil
}

// medianSplit locates the median node of t restricted to names (§4.9):
// starting at root, repeatedly descend into the child whose names-cluster
// is largest, stopping once that child's cluster holds at most half of
// names. Ties prefer the child earliest in sibling order. Returns the
// median node and the subset of names under it.
func (t *Tree) medianSplit(root ID, names []string) (median ID, side []string) {
	inNames := make(map[string]bool, len(names))
	for _, n := range names {
		inNames[n] = true
	}

	current := root
	for {
		node := t.MustGet(current)
		if node.IsLeaf() {
			break
		}

		var bestChild ID
		bestCount := -1
		for _, c := range node.Children() {
			cnt := t.countNamesUnder(c, inNames)
			if cnt > bestCount {
				bestCount, bestChild = cnt, c
			}
		}
		if bestCount <= 0 {
			break
		}
		current = bestChild
		if bestCount*2 <= len(names) {
			break
		}
	}

	return current, t.namesUnder(current, inNames)
}

// namesUnder returns the taxa of inNames reachable from root.
func (t *Tree) namesUnder(root ID, inNames map[string]bool) []string {
	var out []string
	for id := range t.PreOrder(root) {
		n := t.MustGet(id)
		if !n.IsLeaf() {
			continue
		}
		if taxon, ok := n.Taxon(); ok && inNames[taxon] {
			out = append(out, taxon)
		}
	}
	return out
}

// countNamesUnder returns the count of namesUnder(root, inNames) without
// materializing the slice.
func (t *Tree) countNamesUnder(root ID, inNames map[string]bool) int {
	count := 0
	for id := range t.PreOrder(root) {
		n := t.MustGet(id)
		if !n.IsLeaf() {
			continue
		}
		if taxon, ok := n.Taxon(); ok && inNames[taxon] {
			count++
		}
	}
	return count
}
