// Package tree holds the branching paragraph tree and the current path through it.
//
// Nodes live in an arena keyed by id. A node refers to its parent by id only;
// the ordered child list on the parent entry is the single owning edge, so the
// structure is strictly a tree. A child's position in that list is its branch
// index and never changes once assigned.
package tree

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutOfRange reports a path that does not resolve to existing children.
// Reaching it means some navigation step broke the path invariant.
var ErrOutOfRange = errors.New("path out of range")

const rootID int64 = 0

type Node struct {
	ID        int64
	ParentID  int64
	HasParent bool
	Text      string
	CreatedAt time.Time

	children []int64
}

func (n *Node) NumChildren() int { return len(n.children) }

type Tree struct {
	nodes  map[int64]*Node
	nextID int64
	path   []int
	now    func() time.Time
}

// New returns a tree holding only the (empty, never displayed) root.
func New() *Tree {
	return NewWithClock(time.Now)
}

func NewWithClock(now func() time.Time) *Tree {
	if now == nil {
		now = time.Now
	}
	t := &Tree{
		nodes:  map[int64]*Node{},
		nextID: rootID + 1,
		now:    now,
	}
	t.nodes[rootID] = &Node{ID: rootID, CreatedAt: now()}
	return t
}

func (t *Tree) Root() *Node { return t.nodes[rootID] }

// Len is the number of nodes, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// NextID is the id the next grown node will receive.
func (t *Tree) NextID() int64 { return t.nextID }

func (t *Tree) Node(id int64) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

func (t *Tree) Parent(n *Node) (*Node, bool) {
	if n == nil || !n.HasParent {
		return nil, false
	}
	return t.Node(n.ParentID)
}

func (t *Tree) Children(n *Node) []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, id := range n.children {
		out = append(out, t.nodes[id])
	}
	return out
}

func (t *Tree) Child(n *Node, i int) (*Node, bool) {
	if n == nil || i < 0 || i >= len(n.children) {
		return nil, false
	}
	return t.nodes[n.children[i]], true
}

// Path returns a copy of the current path (one branch index per depth).
func (t *Tree) Path() []int {
	out := make([]int, len(t.path))
	copy(out, t.path)
	return out
}

func (t *Tree) PathLen() int { return len(t.path) }

// NodeAt resolves the node reached by following depth steps of the current path.
func (t *Tree) NodeAt(depth int) (*Node, error) {
	if depth < 0 || depth > len(t.path) {
		return nil, fmt.Errorf("node at depth %d (path length %d): %w", depth, len(t.path), ErrOutOfRange)
	}
	n := t.Root()
	for i := 0; i < depth; i++ {
		step := t.path[i]
		if step < 0 || step >= len(n.children) {
			return nil, fmt.Errorf("node at depth %d: branch %d of %d at level %d: %w", depth, step, len(n.children), i, ErrOutOfRange)
		}
		n = t.nodes[n.children[step]]
	}
	return n, nil
}

// MustNodeAt is NodeAt for callers that rely on the path invariant; a failure
// is a navigation bug and panics.
func (t *Tree) MustNodeAt(depth int) *Node {
	n, err := t.NodeAt(depth)
	if err != nil {
		panic(err)
	}
	return n
}

// Grow appends a new child with text under the node at atDepth, truncates the
// path to atDepth entries and extends it with the new branch index.
func (t *Tree) Grow(text string, atDepth int) *Node {
	parent := t.MustNodeAt(atDepth)

	n := &Node{
		ID:        t.nextID,
		ParentID:  parent.ID,
		HasParent: true,
		Text:      text,
		CreatedAt: t.now(),
	}
	t.nextID++
	t.nodes[n.ID] = n

	branch := len(parent.children)
	parent.children = append(parent.children, n.ID)
	t.path = append(t.path[:atDepth:atDepth], branch)
	return n
}

// ResetPathLeftmost discards the current path and follows child 0 from the
// root until a childless node is reached.
func (t *Tree) ResetPathLeftmost() {
	t.path = nil
	n := t.Root()
	for len(n.children) > 0 {
		t.path = append(t.path, 0)
		n = t.nodes[n.children[0]]
	}
}
