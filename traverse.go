// SPDX-License-Identifier: MIT

package phylotree

import "iter"

// PreOrder returns a single-pass iterator over the ids of the subtree
// rooted at s, visiting a node before its children, in children order.
func (t *Tree) PreOrder(s ID) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		var walk func(id ID) bool
		walk = func(id ID) bool {
			if !yield(id) {
				return false
			}
			for _, c := range t.MustGet(id).children {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(s)
	}
}

// PostOrder returns a single-pass iterator over the ids of the subtree
// rooted at s, visiting a node after all its children, in children order.
//
// Implemented iteratively with an explicit stack: a node is pushed back
// onto the stack with its children queued in reverse order the first time
// it is popped, and yielded the second time — the standard two-phase
// iterative post-order.
func (t *Tree) PostOrder(s ID) iter.Seq[ID] {
	type frame struct {
		id       ID
		expanded bool
	}

	return func(yield func(ID) bool) {
		stack := []frame{{id: s}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]

			if top.expanded {
				stack = stack[:len(stack)-1]
				if !yield(top.id) {
					return
				}
				continue
			}

			stack[len(stack)-1].expanded = true
			children := t.MustGet(top.id).children
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, frame{id: children[i]})
			}
		}
	}
}

// BFS returns a single-pass iterator over the ids of the subtree rooted at
// s in breadth-first order, a level at a time, in children order within a
// level.
func (t *Tree) BFS(s ID) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		queue := []ID{s}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			if !yield(id) {
				return
			}
			queue = append(queue, t.MustGet(id).children...)
		}
	}
}

// RootToNode returns the path from the root to n, inclusive of both ends.
func (t *Tree) RootToNode(n ID) []ID {
	path := t.NodeToRoot(n)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// NodeToRoot returns the path from n to the root, inclusive of both ends,
// walking parent pointers.
func (t *Tree) NodeToRoot(n ID) []ID {
	var path []ID
	for id := n; ; {
		path = append(path, id)
		node := t.MustGet(id)
		p, ok := node.Parent()
		if !ok {
			break
		}
		id = p
	}
	return path
}

// EulerWalk returns a single-pass iterator over the Euler tour of the
// subtree rooted at s: the depth-first sequence that visits every node on
// both descent and ascent. Its length is 2·|subtree(s)| − 1.
func (t *Tree) EulerWalk(s ID) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		var walk func(id ID) bool
		walk = func(id ID) bool {
			if !yield(id) {
				return false
			}
			for _, c := range t.MustGet(id).children {
				if !walk(c) {
					return false
				}
				if !yield(id) {
					return false
				}
			}
			return true
		}
		walk(s)
	}
}

// eulerWalkSlice materializes EulerWalk(s) for internal use by the LCA
// engine's precomputation and fallback path.
func (t *Tree) eulerWalkSlice(s ID) []ID {
	out := make([]ID, 0, 2*t.size-1)
	for id := range t.EulerWalk(s) {
		out = append(out, id)
	}
	return out
}
