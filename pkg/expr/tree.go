package expr

import (
	"errors"
	"fmt"
)

// ErrInvalidTree is returned when a Tree's postfix invariants (§3) don't
// hold: a node's Length doesn't account for its children, or a child walk
// runs off the front of the array.
var ErrInvalidTree = errors.New("expr: invalid tree")

// Tree is a sequence of Nodes in postfix order: for any non-leaf at
// position p with arity k, its children occupy the k contiguous subtree
// blocks immediately preceding p. The root is the last element (§3).
//
// A Tree is immutable once constructed: the core never mutates trees
// (§6). The only in-place mutation permitted anywhere in this module is a
// LocalOptimizer adjusting Constant node values (see package fitness).
type Tree struct {
	nodes []Node
}

// NewTree wraps nodes as a Tree without validating postfix invariants.
// Use Validate to check them; most callers should call Validate
// immediately after construction from untrusted input.
func NewTree(nodes []Node) *Tree {
	return &Tree{nodes: append([]Node(nil), nodes...)}
}

// Nodes returns a read-only view of the node array in postfix order.
func (t *Tree) Nodes() []Node { return t.nodes }

// Length returns the total number of nodes in the tree.
func (t *Tree) Length() int { return len(t.nodes) }

// Root returns the index of the root node (the last element), or -1 for an
// empty tree.
func (t *Tree) Root() int { return len(t.nodes) - 1 }

// Depth returns the tree's depth: the root has depth 0, and every non-root
// node has depth one greater than its parent (§3).
func (t *Tree) Depth() int {
	if len(t.nodes) == 0 {
		return 0
	}
	depths := make([]int, len(t.nodes))
	for p := len(t.nodes) - 1; p >= 0; p-- {
		children, ok := t.ChildIndices(p)
		if !ok {
			continue
		}
		for _, c := range children {
			if depths[p]+1 > depths[c] {
				depths[c] = depths[p] + 1
			}
		}
	}
	max := 0
	for _, d := range depths {
		if d > max {
			max = d
		}
	}
	return max
}

// SubtreeRange returns the inclusive index range [index-length(index)+1, index]
// spanned by the subtree rooted at index (§4.B); a node's Length counts the
// node itself.
func (t *Tree) SubtreeRange(index int) (start, end int, ok bool) {
	if index < 0 || index >= len(t.nodes) {
		return 0, 0, false
	}
	length := t.nodes[index].Length
	start = index - length + 1
	if start < 0 {
		return 0, 0, false
	}
	return start, index, true
}

// ChildIndices walks backward from index-1, stepping i ← i - Length(i)
// (Length counts the node itself, so this skips the whole subtree at i),
// collecting the arity(index) children encountered. Because postfix
// traversal visits a node's last child immediately before the node, this
// walk encounters children in reverse source order; ChildIndices reverses
// them before returning so callers see left-to-right source order, as
// required by §4.B ("an implementation must expose an iterator over
// children that yields them in the canonical left-to-right order").
func (t *Tree) ChildIndices(index int) ([]int, bool) {
	if index < 0 || index >= len(t.nodes) {
		return nil, false
	}
	arity := t.nodes[index].Arity
	if arity == 0 {
		return nil, true
	}
	children := make([]int, 0, arity)
	i := index - 1
	for k := 0; k < arity; k++ {
		if i < 0 {
			return nil, false
		}
		children = append(children, i)
		i -= t.nodes[i].Length
	}
	// reverse into left-to-right source order
	for l, r := 0, len(children)-1; l < r; l, r = l+1, r-1 {
		children[l], children[r] = children[r], children[l]
	}
	return children, true
}

// Validate checks the postfix invariants from §3:
//   - every node's Length equals 1 + the sum of its children's Lengths
//   - the child walk from index-1 produces exactly arity(index) children
//     without running off the front of the array
//   - the tree's total Length equals tree[root].Length
//
// It returns ErrInvalidTree (wrapped with context) on the first violation.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 {
		return nil
	}
	root := t.Root()
	if t.nodes[root].Length != len(t.nodes) {
		return wrapInvalid("root length %d does not match tree length %d", t.nodes[root].Length, len(t.nodes))
	}
	for p := range t.nodes {
		children, ok := t.ChildIndices(p)
		if !ok {
			return wrapInvalid("node %d: child walk ran out of bounds", p)
		}
		if len(children) != t.nodes[p].Arity {
			return wrapInvalid("node %d: expected %d children, walk produced %d", p, t.nodes[p].Arity, len(children))
		}
		sum := 1
		for _, c := range children {
			sum += t.nodes[c].Length
		}
		if sum != t.nodes[p].Length {
			return wrapInvalid("node %d: length %d does not equal 1+sum(children lengths)=%d", p, t.nodes[p].Length, sum)
		}
	}
	return nil
}

func wrapInvalid(format string, args ...any) error {
	return &invalidTreeError{msg: fmt.Sprintf(format, args...)}
}

type invalidTreeError struct{ msg string }

func (e *invalidTreeError) Error() string { return "expr: invalid tree: " + e.msg }
func (e *invalidTreeError) Unwrap() error  { return ErrInvalidTree }
