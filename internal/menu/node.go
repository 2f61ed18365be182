package menu

import (
	"github.com/google/uuid"
)

// Kind distinguishes the node variants sharing the Node type.
type Kind int

const (
	// KindBar is the root of the menu bar; its children are labels.
	KindBar Kind = iota
	// KindContext is the root of a context menu; its children are items.
	KindContext
	// KindLabel is a top-level bar entry that always owns a submenu.
	KindLabel
	// KindItem is an entry inside a submenu.
	KindItem
	// KindSeparator is a degenerate item without text, command or children.
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindBar:
		return "bar"
	case KindContext:
		return "context"
	case KindLabel:
		return "label"
	case KindItem:
		return "item"
	case KindSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// Node is a live, stateful entry of a menu tree. A parent exclusively owns its
// children; the parent pointer is a lookup-only back reference.
type Node struct {
	id        uuid.UUID
	kind      Kind
	text      string
	name      string
	trigger   rune
	keystroke string
	enabled   bool
	visible   bool
	command   string
	detail    any
	submenu   bool

	children []*Node
	parent   *Node

	open     bool
	selected bool
	focused  bool

	dead      bool
	onDestroy []func()
}

func newNode(kind Kind) *Node {
	return &Node{
		id:      uuid.New(),
		kind:    kind,
		enabled: true,
		visible: true,
	}
}

// NewBar returns an empty menu bar root.
func NewBar() *Node {
	n := newNode(KindBar)
	n.submenu = true
	return n
}

// NewContext returns an empty context menu root.
func NewContext() *Node {
	n := newNode(KindContext)
	n.submenu = true
	return n
}

func (n *Node) ID() uuid.UUID { return n.id }
func (n *Node) Kind() Kind    { return n.kind }

// Text returns the raw label including the mnemonic marker.
func (n *Node) Text() string { return n.text }

// Name returns the display text without the mnemonic marker.
func (n *Node) Name() string      { return n.name }
func (n *Node) Mnemonic() rune    { return n.trigger }
func (n *Node) Keystroke() string { return n.keystroke }
func (n *Node) Command() string   { return n.command }
func (n *Node) Detail() any       { return n.detail }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) IsEnabled() bool   { return n.enabled }
func (n *Node) IsVisible() bool   { return n.visible }
func (n *Node) IsSeparator() bool { return n.kind == KindSeparator }
func (n *Node) HasSubmenu() bool  { return n.submenu }
func (n *Node) IsOpen() bool      { return n.open }
func (n *Node) IsSelected() bool  { return n.selected }
func (n *Node) IsFocused() bool   { return n.focused }

// Alive reports false once the node has been destroyed. Deferred callbacks
// check it before acting on a node.
func (n *Node) Alive() bool { return !n.dead }

// IsRoot reports whether the node is a bar or context menu root.
func (n *Node) IsRoot() bool { return n.kind == KindBar || n.kind == KindContext }

// Children returns the live child slice. Callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// IsExecutable reports whether activating the node runs a command.
func (n *Node) IsExecutable() bool {
	return n.kind == KindItem && n.enabled && !n.submenu && n.command != ""
}

// Root walks parent references up to the tree root.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Depth is zero for roots, one for labels and top-level context items.
func (n *Node) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Index returns the position of n among its siblings, or -1.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Insert places child at index (clamped) and takes ownership of it.
func (n *Node) Insert(child *Node, index int) {
	if index < 0 {
		index = 0
	}
	if index > len(n.children) {
		index = len(n.children)
	}
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	if n.kind == KindItem {
		n.submenu = true
	}
}

// Append adds child at the end.
func (n *Node) Append(child *Node) {
	n.Insert(child, len(n.children))
}

// Remove detaches and returns the child at index. The child is not destroyed.
func (n *Node) Remove(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil
	return child
}

// OnDestroy registers fn to run when the node is destroyed.
func (n *Node) OnDestroy(fn func()) {
	if n.dead {
		fn()
		return
	}
	n.onDestroy = append(n.onDestroy, fn)
}

// Destroy tears the subtree down: descendants first, then hooks registered on
// this node. Destroyed nodes keep no open, selected or focused state.
func (n *Node) Destroy() {
	if n.dead {
		return
	}
	for _, c := range n.children {
		c.Destroy()
	}
	n.dead = true
	n.open = false
	n.selected = false
	n.focused = false
	hooks := n.onDestroy
	n.onDestroy = nil
	for _, fn := range hooks {
		fn()
	}
}

// SetOpen opens or closes the node's submenu. Opening closes open siblings and
// opens closed ancestors; closing cascades downward to every descendant.
// Leaves and roots ignore the call.
func (n *Node) SetOpen(flag bool) {
	if n.dead || n.IsRoot() || !n.submenu {
		return
	}
	if !flag {
		n.open = false
		n.closeChildren()
		return
	}
	if n.parent != nil {
		for _, sib := range n.parent.children {
			if sib != n && sib.open {
				sib.SetOpen(false)
			}
		}
		if !n.parent.IsRoot() && !n.parent.open {
			n.parent.SetOpen(true)
		}
	}
	n.open = true
	if n.kind == KindLabel {
		n.focused = false
	}
	for _, c := range n.children {
		if c.open {
			c.SetOpen(false)
		}
	}
}

func (n *Node) closeChildren() {
	for _, c := range n.children {
		c.open = false
		c.selected = false
		c.closeChildren()
	}
}

// SetSelected highlights the node, clearing the highlight from its siblings.
func (n *Node) SetSelected(flag bool) {
	if n.dead || n.IsRoot() {
		return
	}
	if flag && n.parent != nil {
		for _, sib := range n.parent.children {
			if sib != n {
				sib.selected = false
			}
		}
	}
	n.selected = flag
}

// SetFocused marks a label as keyboard focused while no menu is open.
func (n *Node) SetFocused(flag bool) {
	if n.dead || n.kind != KindLabel {
		return
	}
	if flag && n.parent != nil {
		for _, sib := range n.parent.children {
			if sib != n {
				sib.focused = false
			}
		}
	}
	n.focused = flag
}

// Selected returns the selected child, if any.
func (n *Node) Selected() *Node {
	for _, c := range n.children {
		if c.selected {
			return c
		}
	}
	return nil
}

// OpenChild returns the child whose submenu is open, if any.
func (n *Node) OpenChild() *Node {
	for _, c := range n.children {
		if c.open {
			return c
		}
	}
	return nil
}

// FocusedChild returns the focused label of a bar.
func (n *Node) FocusedChild() *Node {
	for _, c := range n.children {
		if c.focused {
			return c
		}
	}
	return nil
}

// Find returns the first child whose display name or raw text equals text.
func (n *Node) Find(text string) *Node {
	for _, c := range n.children {
		if c.text == text || c.name == text {
			return c
		}
	}
	return nil
}
