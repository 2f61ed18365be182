// Package layout places submenus and top-level menu boxes inside a viewport.
// Units are whatever the caller measures in: pixels for a graphical host,
// cells for the terminal renderer.
package layout

// Point is a position in viewport coordinates.
type Point struct{ X, Y int }

// Size is a natural, unconstrained box size.
type Size struct{ W, H int }

// Rect is an axis-aligned rectangle.
type Rect struct{ X, Y, W, H int }

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Metrics are the placement constants.
type Metrics struct {
	// Overlap is how far a submenu's leading edge covers its anchor.
	Overlap int
	// Offset lifts a submenu above its anchor's top edge.
	Offset int
	// EdgeMargin is kept clear along every viewport edge.
	EdgeMargin int
	// MinHeight floors a scroll-constrained height.
	MinHeight int
}

// PixelMetrics are the constants of the graphical host.
var PixelMetrics = Metrics{Overlap: 4, Offset: 6, EdgeMargin: 8, MinHeight: 30}

// CellMetrics suit bordered boxes in a terminal: the submenu's top border sits
// one row above the anchor so its first entry lines up with the anchor row.
var CellMetrics = Metrics{Overlap: 0, Offset: 1, EdgeMargin: 0, MinHeight: 3}

// Placement is the computed position. MaxHeight is zero when the natural
// height fits; otherwise the box scrolls within MaxHeight.
type Placement struct {
	Left      int
	Top       int
	MaxHeight int
	Flipped   bool
}

// Scrolls reports whether the box is height constrained.
func (p Placement) Scrolls() bool { return p.MaxHeight > 0 }

// Rect returns the occupied rectangle for a box of natural size.
func (p Placement) Rect(size Size) Rect {
	h := size.H
	if p.MaxHeight > 0 && p.MaxHeight < h {
		h = p.MaxHeight
	}
	return Rect{X: p.Left, Y: p.Top, W: size.W, H: h}
}

// PlaceSubmenu positions a submenu of natural size beside anchor. It prefers
// the anchor's trailing side and flips to the leading side on overflow.
// Vertically it opens downward from the anchor, else upward bottom-aligned to
// the anchor, else clamps into the roomier direction with a max height. A box
// taller than the whole usable viewport is pinned to the top margin.
func PlaceSubmenu(anchor Rect, size Size, viewport Rect, m Metrics) Placement {
	var p Placement

	p.Left = anchor.Right() - m.Overlap
	if p.Left+size.W > viewport.Right()-m.EdgeMargin {
		p.Left = anchor.X - size.W + m.Overlap
		p.Flipped = true
	}
	if p.Left < viewport.X+m.EdgeMargin {
		p.Left = viewport.X + m.EdgeMargin
	}

	usableTop := viewport.Y + m.EdgeMargin
	usableBottom := viewport.Bottom() - m.EdgeMargin
	usable := usableBottom - usableTop

	if size.H > usable {
		p.Top = usableTop
		p.MaxHeight = floor(usable, m.MinHeight)
		return p
	}

	downTop := anchor.Y - m.Offset
	upBottom := anchor.Bottom() + m.Offset
	below := usableBottom - max(downTop, usableTop)
	above := min(upBottom, usableBottom) - usableTop

	switch {
	case size.H <= below:
		p.Top = max(downTop, usableTop)
	case size.H <= above:
		p.Top = min(upBottom, usableBottom) - size.H
	case above > below:
		p.MaxHeight = floor(above, m.MinHeight)
		p.Top = max(min(upBottom, usableBottom)-p.MaxHeight, usableTop)
	default:
		p.MaxHeight = floor(below, m.MinHeight)
		p.Top = max(downTop, usableTop)
	}
	return p
}

// PlaceBox positions a top-level menu at a click point: the point itself if
// the box fits below it, above it otherwise, else shifted to fit; it only
// scrolls when the natural height exceeds the usable viewport.
func PlaceBox(at Point, size Size, viewport Rect, m Metrics) Placement {
	var p Placement
	usableTop := viewport.Y + m.EdgeMargin
	usableBottom := viewport.Bottom() - m.EdgeMargin
	usable := usableBottom - usableTop

	switch {
	case size.H > usable:
		p.Top = usableTop
		p.MaxHeight = floor(usable, m.MinHeight)
	case at.Y+size.H <= usableBottom:
		p.Top = at.Y
	case at.Y-size.H >= usableTop:
		p.Top = at.Y - size.H
	default:
		p.Top = max(usableBottom-size.H, usableTop)
	}
	if p.Top < usableTop {
		p.Top = usableTop
	}

	p.Left = at.X
	if p.Left+size.W > viewport.Right()-m.EdgeMargin {
		p.Left = viewport.Right() - m.EdgeMargin - size.W
	}
	if p.Left < viewport.X+m.EdgeMargin {
		p.Left = viewport.X + m.EdgeMargin
	}
	return p
}

func floor(v, minimum int) int {
	if v < minimum {
		return minimum
	}
	return v
}
