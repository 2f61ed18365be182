package menu

// Selectable returns the children that can take the selection highlight:
// enabled, visible, non-separator entries.
func (n *Node) Selectable() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if c.enabled && c.visible && !c.IsSeparator() {
			out = append(out, c)
		}
	}
	return out
}

// SelectFirst selects the first selectable child.
func (n *Node) SelectFirst() bool {
	selectable := n.Selectable()
	if len(selectable) == 0 {
		return false
	}
	selectable[0].SetSelected(true)
	return true
}

// SelectLast selects the last selectable child.
func (n *Node) SelectLast() bool {
	selectable := n.Selectable()
	if len(selectable) == 0 {
		return false
	}
	selectable[len(selectable)-1].SetSelected(true)
	return true
}

// SelectNext moves the selection one selectable child forward. Without wrap,
// moving past the end clears the selection. With nothing selected the first
// selectable child is chosen.
func (n *Node) SelectNext(wrap bool) {
	n.step(1, wrap)
}

// SelectPrevious is the backward counterpart of SelectNext.
func (n *Node) SelectPrevious(wrap bool) {
	n.step(-1, wrap)
}

func (n *Node) step(delta int, wrap bool) {
	selectable := n.Selectable()
	if len(selectable) == 0 {
		return
	}
	current := n.Selected()
	idx := -1
	for i, c := range selectable {
		if c == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta > 0 {
			selectable[0].SetSelected(true)
		} else {
			selectable[len(selectable)-1].SetSelected(true)
		}
		return
	}
	next := idx + delta
	if next < 0 || next >= len(selectable) {
		if !wrap {
			current.SetSelected(false)
			return
		}
		next = mod(next, len(selectable))
	}
	selectable[next].SetSelected(true)
}

// ClearSelection removes the highlight from every child.
func (n *Node) ClearSelection() {
	for _, c := range n.children {
		c.selected = false
	}
}

// MatchMnemonic returns the first selectable child whose trigger equals r.
func (n *Node) MatchMnemonic(r rune) *Node {
	if r == 0 {
		return nil
	}
	for _, c := range n.children {
		if c.trigger == r && c.enabled && c.visible && !c.IsSeparator() {
			return c
		}
	}
	return nil
}

func mod(n, m int) int {
	return ((n % m) + m) % m
}
