// SPDX-License-Identifier: MIT

// Package phylotree provides rooted, labeled phylogenetic trees: arena-backed
// storage with index-stable node handles, O(1) lowest-common-ancestor
// queries after O(n log n) preprocessing, Newick/Nexus codecs, the standard
// tree-rearrangement operations (SPR, NNI, reroot, induce, contract), and
// the topology-comparison and cophenetic-distance families built on top of
// them.
//
// A Tree is a flat, indexable arena of nodes rather than a graph of pointers:
// node ids are stable across mutation (deletion leaves a hole rather than
// compacting), which lets callers hold onto ids across a sequence of edits.
// Trees are not internally synchronized; callers that need concurrent
// readers should take a [Tree.Clone] and share it read-only.
package phylotree
