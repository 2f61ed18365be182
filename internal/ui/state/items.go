package state

import (
	"strings"

	"github.com/atomicstack/menubar/internal/menu"
)

// BreadcrumbSeparator joins the path segments of a palette label.
const BreadcrumbSeparator = " → "

// Item is one palette entry: an executable menu leaf shown with its path.
type Item struct {
	// ID is the command identifier.
	ID    string
	Label string
	// Hint is the formatted keystroke, if any.
	Hint string
	Node *menu.Node
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

// Leaves lists every executable leaf reachable under roots, in tree order.
// Entries below a disabled or hidden ancestor are left out.
func Leaves(roots ...*menu.Node) []Item {
	var items []Item
	for _, root := range roots {
		if root == nil {
			continue
		}
		for _, entry := range menu.Walk(root) {
			n := entry.Node
			if !n.IsExecutable() || !reachable(n) {
				continue
			}
			items = append(items, Item{
				ID:    n.Command(),
				Label: strings.Join(menu.Path(n), BreadcrumbSeparator),
				Hint:  menu.FormatKeystroke(n.Keystroke()),
				Node:  n,
			})
		}
	}
	return items
}

func reachable(n *menu.Node) bool {
	for cur := n; cur != nil && !cur.IsRoot(); cur = cur.Parent() {
		if !cur.IsEnabled() || !cur.IsVisible() {
			return false
		}
	}
	return true
}
