package tree

// StreamEntry describes the node at one depth of the current path.
type StreamEntry struct {
	Text      string
	NumBefore int
	NumAfter  int
}

// SiblingsEntry lists every sibling at one depth of the current path and how
// many of them sit left of the selected one.
type SiblingsEntry struct {
	Texts       []string
	NodesToLeft int
}

// Stream walks the current path from the root, one entry per depth.
func (t *Tree) Stream() []StreamEntry {
	out := make([]StreamEntry, 0, len(t.path))
	n := t.Root()
	for _, step := range t.path {
		count := len(n.children)
		n = t.nodes[n.children[step]]
		out = append(out, StreamEntry{
			Text:      n.Text,
			NumBefore: step,
			NumAfter:  count - step - 1,
		})
	}
	return out
}

// StreamWithSiblings is Stream widened to all alternatives at each depth.
func (t *Tree) StreamWithSiblings() []SiblingsEntry {
	out := make([]SiblingsEntry, 0, len(t.path))
	n := t.Root()
	for _, step := range t.path {
		out = append(out, SiblingsEntry{
			Texts:       t.childTexts(n),
			NodesToLeft: step,
		})
		n = t.nodes[n.children[step]]
	}
	return out
}

// ChildTexts returns the texts of the children of the node at depth.
func (t *Tree) ChildTexts(depth int) []string {
	return t.childTexts(t.MustNodeAt(depth))
}

func (t *Tree) childTexts(n *Node) []string {
	texts := make([]string, 0, len(n.children))
	for _, id := range n.children {
		texts = append(texts, t.nodes[id].Text)
	}
	return texts
}

// SwitchStream moves the node at depth to its neighbouring sibling in the given
// direction (sign only). When that level has no such sibling it climbs towards
// the root and retries; the root's own children are never rotated. After a
// switch the path drops down the extremal edge (first child going right, last
// child going left) to a leaf.
//
// The returned depth is the level where the switch happened. With leafExplore
// it additionally advances by one for every level appended while descending,
// so a cursor at the end of the path follows it to the new leaf. Switching at
// the last depth of the path always explores. If no sibling exists anywhere
// above depth, the path is left alone and depth is returned unchanged.
func (t *Tree) SwitchStream(depth, direction int, leafExplore bool) int {
	if depth > len(t.path) {
		depth = len(t.path)
	}
	if depth == len(t.path) {
		leafExplore = true
	}
	step := 1
	if direction < 0 {
		step = -1
	}

	original := depth
	for depth > 1 {
		parent := t.MustNodeAt(depth - 1)
		next := t.path[depth-1] + step
		if next >= 0 && next < len(parent.children) {
			t.path = append(t.path[:depth-1:depth-1], next)
			n := t.nodes[parent.children[next]]
			for len(n.children) > 0 {
				i := 0
				if step < 0 {
					i = len(n.children) - 1
				}
				t.path = append(t.path, i)
				n = t.nodes[n.children[i]]
				if leafExplore {
					depth++
				}
			}
			return depth
		}
		depth--
	}
	return original
}
