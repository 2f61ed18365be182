package state

// Level holds the palette list: the full item set, the filtered view, the
// cursor and the viewport offset.
type Level struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level over items with the cursor on the first entry.
func NewLevel(id, title string, items []Item) *Level {
	l := &Level{ID: id, Title: title, LastCursor: -1}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the position of the first visible item with the given id.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *Level) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems swaps the item set, keeping the cursor on the same label when
// it survives the update.
func (l *Level) UpdateItems(items []Item) {
	var keep string
	if cur, ok := l.Current(); ok {
		keep = cur.Label
	}
	l.Full = CloneItems(items)
	l.applyFilter()
	for i, item := range l.Items {
		if keep != "" && item.Label == keep {
			l.Cursor = i
			break
		}
	}
	if l.ViewportOffset > len(l.Items)-1 || l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
}
