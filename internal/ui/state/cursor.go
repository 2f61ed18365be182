package state

// MoveCursor moves the cursor by delta, stopping at either end. It reports
// whether the cursor moved.
func (l *Level) MoveCursor(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = clamp(max(l.Cursor, 0)+delta, 0, len(l.Items)-1)
	return l.Cursor != old
}

// MoveCursorHome moves the cursor to the first item.
func (l *Level) MoveCursorHome() bool {
	return l.MoveCursor(-len(l.Items))
}

// MoveCursorEnd moves the cursor to the last item.
func (l *Level) MoveCursorEnd() bool {
	return l.MoveCursor(len(l.Items))
}

// MoveCursorPageUp moves the cursor up by one page of maxVisible rows.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.MoveCursor(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by one page of maxVisible rows.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.MoveCursor(l.pageSize(maxVisible))
}

func (l *Level) pageSize(maxVisible int) int {
	if maxVisible <= 0 || maxVisible > len(l.Items) {
		return max(len(l.Items), 1)
	}
	return maxVisible
}

// EnsureCursorVisible scrolls the viewport so the cursor row is shown.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := max(len(l.Items)-maxVisible, 0)
	l.ViewportOffset = clamp(l.ViewportOffset, 0, maxOffset)
	switch {
	case l.Cursor < l.ViewportOffset:
		l.ViewportOffset = l.Cursor
	case l.Cursor >= l.ViewportOffset+maxVisible:
		l.ViewportOffset = clamp(l.Cursor-maxVisible+1, 0, maxOffset)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
