// SPDX-License-Identifier: MIT

package phylotree

import "fmt"

// PairwiseDistance returns d(a) + d(b) − 2·d(lca(a,b)), the weighted path
// distance between a and b.
func (t *Tree) PairwiseDistance(a, b ID) (float64, error) {
	lca, err := t.LCA(a, b)
	if err != nil {
		return 0, err
	}
	da, err := t.WeightedDepth(a)
	if err != nil {
		return 0, err
	}
	db, err := t.WeightedDepth(b)
	if err != nil {
		return 0, err
	}
	dl, err := t.WeightedDepth(lca)
	if err != nil {
		return 0, err
	}
	return da + db - 2*dl, nil
}

// DistanceMatrix returns the pairwise weighted distance between every pair
// of currently live node ids, keyed as matrix[a][b].
func (t *Tree) DistanceMatrix() (map[ID]map[ID]float64, error) {
	var ids []ID
	for id := range t.PreOrder(t.root) {
		ids = append(ids, id)
	}

	matrix := make(map[ID]map[ID]float64, len(ids))
	for _, a := range ids {
		matrix[a] = make(map[ID]float64, len(ids))
	}

	for i, a := range ids {
		matrix[a][a] = 0
		for _, b := range ids[i+1:] {
			d, err := t.PairwiseDistance(a, b)
			if err != nil {
				return nil, err
			}
			matrix[a][b] = d
			matrix[b][a] = d
		}
	}
	return matrix, nil
}

// Cluster returns the set of taxa carried by leaves in the subtree rooted
// at n.
func (t *Tree) Cluster(n ID) (map[string]bool, error) {
	if !t.Live(n) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, n)
	}
	out := make(map[string]bool)
	for id := range t.PreOrder(n) {
		node := t.MustGet(id)
		if node.IsLeaf() {
			if taxon, ok := node.Taxon(); ok {
				out[taxon] = true
			}
		}
	}
	return out, nil
}

// Bipartition is the pair of leaf sets an edge (p, c) induces: the taxa
// outside cluster(c), and the taxa in cluster(c).
type Bipartition struct {
	Outside map[string]bool
	Inside  map[string]bool
}

// Bipartition returns the bipartition induced by the edge (p, c).
func (t *Tree) Bipartition(p, c ID) (Bipartition, error) {
	inside, err := t.Cluster(c)
	if err != nil {
		return Bipartition{}, err
	}
	all, err := t.Cluster(t.root)
	if err != nil {
		return Bipartition{}, err
	}

	outside := make(map[string]bool, len(all)-len(inside))
	for taxon := range all {
		if !inside[taxon] {
			outside[taxon] = true
		}
	}
	return Bipartition{Outside: outside, Inside: inside}, nil
}

// PhylogeneticDiversity returns the sum of edge weights of the minimal
// subtree spanning leaves — the weighted edge-sum of Induce(leaves).
// Edge weights absent on that induced subtree are treated as 1, matching
// WeightedDepth's policy.
func (t *Tree) PhylogeneticDiversity(leaves []ID) (float64, error) {
	sub, err := t.Induce(leaves)
	if err != nil {
		return 0, err
	}

	var sum float64
	for id := range sub.PreOrder(sub.root) {
		node := sub.MustGet(id)
		if node.IsRoot() {
			continue
		}
		if w, ok := node.Weight(); ok {
			sum += w
		} else {
			sum++
		}
	}
	return sum, nil
}
