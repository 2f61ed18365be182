package interaction

import (
	"github.com/atomicstack/menubar/internal/layout"
	"github.com/atomicstack/menubar/internal/menu"
)

// Geometry measures menu boxes the way the renderer draws them.
type Geometry interface {
	// BoxSize is the natural size of the box listing owner's children.
	BoxSize(owner *menu.Node) layout.Size
	// Row is child's rectangle relative to the unscrolled box origin.
	Row(owner, child *menu.Node) layout.Rect
	// Frame is the thickness of the border drawn around the rows.
	Frame() int
}

// Surface is everything placement needs to know about the drawing area.
type Surface struct {
	Geometry Geometry
	Viewport layout.Rect
	Metrics  layout.Metrics
}

// Box is one placed menu box.
type Box struct {
	Owner     *menu.Node
	Depth     int
	Rect      layout.Rect
	Placement layout.Placement
	// Offset is how far the box content is scrolled.
	Offset int
}

// Natural is the box's unclipped size.
func (b Box) Natural(g Geometry) layout.Size { return g.BoxSize(b.Owner) }

// RowRect returns child's on-screen rectangle, accounting for scrolling.
func (b Box) RowRect(g Geometry, child *menu.Node) layout.Rect {
	r := g.Row(b.Owner, child)
	r.X += b.Rect.X
	r.Y += b.Rect.Y - b.Offset
	return r
}

// MaxOffset is the largest useful scroll offset.
func (b Box) MaxOffset(g Geometry) int {
	if over := b.Natural(g).H - b.Rect.H; over > 0 {
		return over
	}
	return 0
}

// Visible reports whether child's row lies inside the box's content area at
// the current scroll offset.
func (b Box) Visible(g Geometry, child *menu.Node) bool {
	r := g.Row(b.Owner, child)
	if r.H == 0 {
		return false
	}
	top := r.Y - b.Offset
	return top >= g.Frame() && top+r.H <= b.Rect.H-g.Frame()
}

// place turns a placement for owner into a Box.
func place(owner *menu.Node, depth int, p layout.Placement, size layout.Size) Box {
	return Box{Owner: owner, Depth: depth, Rect: p.Rect(size), Placement: p}
}

// Arrange places first and then, following the open chain below its owner,
// every nested submenu against the row that opened it. Each box is scrolled
// by its entry in offsets, clamped to the box's range, before its open child
// is anchored.
func Arrange(first Box, s Surface, offsets Offsets) []Box {
	first = offsets.apply(first, s.Geometry)
	boxes := []Box{first}
	parent := first
	for open := parent.Owner.OpenChild(); open != nil; open = open.OpenChild() {
		size := s.Geometry.BoxSize(open)
		anchor := parent.RowRect(s.Geometry, open)
		p := layout.PlaceSubmenu(anchor, size, s.Viewport, s.Metrics)
		box := offsets.apply(place(open, parent.Depth+1, p, size), s.Geometry)
		boxes = append(boxes, box)
		parent = box
	}
	return boxes
}

// Offsets holds the scroll position of each box, keyed by the box owner.
type Offsets map[*menu.Node]int

func (o Offsets) apply(b Box, g Geometry) Box {
	b.Offset = min(max(o[b.Owner], 0), b.MaxOffset(g))
	return b
}

// Scroll moves b's content by delta within its range.
func (o Offsets) Scroll(b Box, g Geometry, delta int) {
	o[b.Owner] = min(max(b.Offset+delta, 0), b.MaxOffset(g))
}

// Reveal scrolls every box produced by arrange so that its selected entry is
// visible. Boxes are revealed outermost first and re-arranged after each step
// since a parent's offset moves the anchors of its descendants.
func (o Offsets) Reveal(g Geometry, arrange func() []Box) {
	for i := 0; ; i++ {
		boxes := arrange()
		if i >= len(boxes) {
			return
		}
		o.reveal(boxes[i], g)
	}
}

func (o Offsets) reveal(b Box, g Geometry) {
	sel := b.Owner.Selected()
	if sel == nil || b.Visible(g, sel) {
		return
	}
	r := g.Row(b.Owner, sel)
	if r.H == 0 {
		return
	}
	off := b.Offset
	if top := r.Y - g.Frame(); top < off {
		off = top
	} else {
		off = r.Y + r.H - (b.Rect.H - g.Frame())
	}
	o[b.Owner] = min(max(off, 0), b.MaxOffset(g))
}

// Prune forgets the offsets of boxes that are no longer shown.
func (o Offsets) Prune(boxes []Box) {
	for owner := range o {
		shown := false
		for _, b := range boxes {
			if b.Owner == owner {
				shown = true
				break
			}
		}
		if !shown {
			delete(o, owner)
		}
	}
}

// HitTest finds the row under p, searching the innermost box first. A point
// inside a box but on no row returns the box with a nil node.
func HitTest(boxes []Box, g Geometry, p layout.Point) (Box, *menu.Node, bool) {
	for i := len(boxes) - 1; i >= 0; i-- {
		b := boxes[i]
		if !b.Rect.Contains(p) {
			continue
		}
		for _, child := range b.Owner.Children() {
			if !child.IsVisible() {
				continue
			}
			if b.Visible(g, child) && b.RowRect(g, child).Contains(p) {
				return b, child, true
			}
		}
		return b, nil, true
	}
	return Box{}, nil, false
}
