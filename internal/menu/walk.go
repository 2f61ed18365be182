package menu

// Entry pairs a node with its nesting depth below the walked root.
type Entry struct {
	Node  *Node
	Depth int
}

// Walk returns every descendant of root in pre-order. Direct children have
// depth 0.
func Walk(root *Node) []Entry {
	var out []Entry
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		for _, c := range n.children {
			out = append(out, Entry{Node: c, Depth: depth})
			visit(c, depth+1)
		}
	}
	visit(root, 0)
	return out
}

// WalkOpen returns the open path: each node whose submenu is currently shown,
// outermost first, paired with its depth.
func WalkOpen(root *Node) []Entry {
	var out []Entry
	depth := 0
	for cur := root.OpenChild(); cur != nil; cur = cur.OpenChild() {
		out = append(out, Entry{Node: cur, Depth: depth})
		depth++
	}
	return out
}

// OpenLeaf returns the deepest node whose submenu is open, or nil.
func OpenLeaf(root *Node) *Node {
	var leaf *Node
	for cur := root.OpenChild(); cur != nil; cur = cur.OpenChild() {
		leaf = cur
	}
	return leaf
}

// SelectedLeaf follows the selection chain from the open label of a bar (or
// from a context menu root) and returns the deepest selected node.
func SelectedLeaf(root *Node) *Node {
	start := root
	if root.kind == KindBar {
		start = root.OpenChild()
		if start == nil {
			return nil
		}
	}
	var leaf *Node
	for cur := start.Selected(); cur != nil; {
		leaf = cur
		if !cur.submenu || !cur.open {
			break
		}
		cur = cur.Selected()
	}
	return leaf
}

// Path returns the display names from the outermost ancestor below the root
// down to n.
func Path(n *Node) []string {
	var names []string
	for cur := n; cur != nil && !cur.IsRoot(); cur = cur.parent {
		names = append(names, cur.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// Serialize flattens the tree back to descriptors, omitting runtime state.
func Serialize(root *Node) []Descriptor {
	out := make([]Descriptor, 0, len(root.children))
	for _, c := range root.children {
		out = append(out, serializeNode(c))
	}
	return out
}

func serializeNode(n *Node) Descriptor {
	switch n.kind {
	case KindSeparator:
		return Descriptor{Type: SeparatorType}
	case KindLabel:
		return Descriptor{Label: n.text, Submenu: Serialize(n)}
	}
	d := Descriptor{
		Label:         n.text,
		Command:       n.command,
		CommandDetail: n.detail,
		Keystroke:     n.keystroke,
	}
	if n.submenu {
		d.Submenu = Serialize(n)
	}
	return d
}
