package tree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"rotodendron/internal/model"
)

var ErrInvalidSnapshot = errors.New("invalid tree snapshot")

type visit struct {
	id          int64
	depth       int
	branchIndex int
}

// walk visits every node below (and including) start in pre-order using an
// explicit stack, so deep trees cannot exhaust the goroutine stack.
func (t *Tree) walk(start int64, startDepth int, fn func(n *Node, depth, branchIndex int) error) error {
	stack := []visit{{id: start, depth: startDepth}}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[v.id]
		if err := fn(n, v.depth, v.branchIndex); err != nil {
			return err
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, visit{id: n.children[i], depth: v.depth + 1, branchIndex: i})
		}
	}
	return nil
}

// Records flattens the tree in pre-order, root excluded.
func (t *Tree) Records() []model.Record {
	out := make([]model.Record, 0, len(t.nodes)-1)
	_ = t.walk(rootID, 0, func(n *Node, depth, _ int) error {
		if !n.HasParent {
			return nil
		}
		parent := t.nodes[n.ParentID]
		pid := parent.ID
		out = append(out, model.Record{
			NodeText:     n.Text,
			ParentText:   parent.Text,
			CreationTime: n.CreatedAt,
			Depth:        depth,
			NodeID:       n.ID,
			ParentID:     &pid,
		})
		return nil
	})
	return out
}

// WriteOutline writes an indented "- text" outline starting at the root's
// first child. Only that subtree is written; in normal use it is the only one.
func (t *Tree) WriteOutline(w io.Writer) error {
	first, ok := t.Child(t.Root(), 0)
	if !ok {
		return nil
	}
	bw := bufio.NewWriter(w)
	err := t.walk(first.ID, 0, func(n *Node, depth, _ int) error {
		_, err := bw.WriteString(strings.Repeat("\t", depth) + "- " + n.Text + "\n")
		return err
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// Outline is WriteOutline into a string.
func (t *Tree) Outline() string {
	var b strings.Builder
	_ = t.WriteOutline(&b)
	return b.String()
}

// Snapshot returns every node (root first, pre-order) with enough detail to
// rebuild the tree exactly.
func (t *Tree) Snapshot() []model.NodeSnapshot {
	out := make([]model.NodeSnapshot, 0, len(t.nodes))
	_ = t.walk(rootID, 0, func(n *Node, depth, branchIndex int) error {
		s := model.NodeSnapshot{
			ID:          n.ID,
			BranchIndex: branchIndex,
			Depth:       depth,
			Text:        n.Text,
			CreatedAt:   n.CreatedAt,
		}
		if n.HasParent {
			pid := n.ParentID
			s.ParentID = &pid
		}
		out = append(out, s)
		return nil
	})
	return out
}

// Restore rebuilds a tree from a snapshot. The saved path is not part of the
// snapshot; the restored tree starts on its leftmost lineage.
func Restore(nodes []model.NodeSnapshot) (*Tree, error) {
	return RestoreWithClock(nodes, time.Now)
}

func RestoreWithClock(nodes []model.NodeSnapshot, now func() time.Time) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no nodes: %w", ErrInvalidSnapshot)
	}
	t := NewWithClock(now)
	t.nodes = make(map[int64]*Node, len(nodes))

	byParent := map[int64][]model.NodeSnapshot{}
	roots := 0
	maxID := rootID
	for _, s := range nodes {
		if _, dup := t.nodes[s.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %d: %w", s.ID, ErrInvalidSnapshot)
		}
		n := &Node{ID: s.ID, Text: s.Text, CreatedAt: s.CreatedAt}
		if s.ParentID == nil {
			if s.ID != rootID {
				return nil, fmt.Errorf("root has id %d, want %d: %w", s.ID, rootID, ErrInvalidSnapshot)
			}
			roots++
		} else {
			n.ParentID = *s.ParentID
			n.HasParent = true
			byParent[n.ParentID] = append(byParent[n.ParentID], s)
		}
		if s.ID > maxID {
			maxID = s.ID
		}
		t.nodes[s.ID] = n
	}
	if roots != 1 {
		return nil, fmt.Errorf("%d roots: %w", roots, ErrInvalidSnapshot)
	}

	for pid, kids := range byParent {
		parent, ok := t.nodes[pid]
		if !ok {
			return nil, fmt.Errorf("node %d has missing parent %d: %w", kids[0].ID, pid, ErrInvalidSnapshot)
		}
		sort.Slice(kids, func(i, j int) bool { return kids[i].BranchIndex < kids[j].BranchIndex })
		for i, k := range kids {
			if k.BranchIndex != i {
				return nil, fmt.Errorf("parent %d: branch index %d at position %d: %w", pid, k.BranchIndex, i, ErrInvalidSnapshot)
			}
			parent.children = append(parent.children, k.ID)
		}
	}

	reached := 0
	_ = t.walk(rootID, 0, func(*Node, int, int) error {
		reached++
		return nil
	})
	if reached != len(t.nodes) {
		return nil, fmt.Errorf("%d of %d nodes unreachable from root: %w", len(t.nodes)-reached, len(t.nodes), ErrInvalidSnapshot)
	}

	t.nextID = maxID + 1
	t.ResetPathLeftmost()
	return t, nil
}
