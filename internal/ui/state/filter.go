package state

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter replaces the query and places the filter cursor. The list cursor
// jumps to the best match while a query is active and returns to where it was
// once the query is cleared.
func (l *Level) SetFilter(query string, cursor int) {
	had := strings.TrimSpace(l.Filter) != ""
	has := strings.TrimSpace(query) != ""
	l.Filter = query
	l.FilterCursor = clamp(cursor, 0, len([]rune(query)))

	if has && !had {
		l.LastCursor = l.Cursor
	}
	l.applyFilter()
	switch {
	case has:
		if idx := BestMatchIndex(l.Items, query); idx >= 0 {
			l.Cursor = idx
		}
	case had:
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		}
		l.LastCursor = -1
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *Level) FilterCursorPos() int {
	return clamp(l.FilterCursor, 0, len([]rune(l.Filter)))
}

// edit applies fn to the query runes at the cursor. It reports whether the
// query or cursor changed.
func (l *Level) edit(fn func(r []rune, pos int) ([]rune, int)) bool {
	before := []rune(l.Filter)
	pos := l.FilterCursorPos()
	after, next := fn(append([]rune(nil), before...), pos)
	if string(after) == l.Filter {
		if next == pos {
			return false
		}
		l.FilterCursor = next
		return true
	}
	l.SetFilter(string(after), next)
	return true
}

// InsertFilterText inserts text at the filter cursor.
func (l *Level) InsertFilterText(text string) bool {
	if text == "" {
		return false
	}
	return l.edit(func(r []rune, pos int) ([]rune, int) {
		ins := []rune(text)
		out := append(append(append([]rune(nil), r[:pos]...), ins...), r[pos:]...)
		return out, pos + len(ins)
	})
}

// DeleteFilterRuneBackward removes the rune before the filter cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	return l.edit(func(r []rune, pos int) ([]rune, int) {
		if pos == 0 {
			return r, pos
		}
		return append(r[:pos-1], r[pos:]...), pos - 1
	})
}

// DeleteFilterWordBackward removes the word before the filter cursor.
func (l *Level) DeleteFilterWordBackward() bool {
	return l.edit(func(r []rune, pos int) ([]rune, int) {
		start := wordStart(r, pos)
		return append(r[:start], r[pos:]...), start
	})
}

// MoveFilterCursorStart moves the filter cursor to the start of the query.
func (l *Level) MoveFilterCursorStart() bool {
	return l.edit(func(r []rune, _ int) ([]rune, int) { return r, 0 })
}

// MoveFilterCursorEnd moves the filter cursor past the last rune.
func (l *Level) MoveFilterCursorEnd() bool {
	return l.edit(func(r []rune, _ int) ([]rune, int) { return r, len(r) })
}

func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.edit(func(r []rune, pos int) ([]rune, int) { return r, max(pos-1, 0) })
}

func (l *Level) MoveFilterCursorRuneForward() bool {
	return l.edit(func(r []rune, pos int) ([]rune, int) { return r, min(pos+1, len(r)) })
}

func (l *Level) MoveFilterCursorWordBackward() bool {
	return l.edit(func(r []rune, pos int) ([]rune, int) { return r, wordStart(r, pos) })
}

func (l *Level) MoveFilterCursorWordForward() bool {
	return l.edit(func(r []rune, pos int) ([]rune, int) {
		i := pos
		for i < len(r) && !unicode.IsSpace(r[i]) {
			i++
		}
		for i < len(r) && unicode.IsSpace(r[i]) {
			i++
		}
		return r, i
	})
}

func wordStart(r []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(r[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(r[i-1]) {
		i--
	}
	return i
}

// FilterItems keeps the items whose label fuzzily matches query, in their
// original order. When nothing matches fuzzily a plain substring match on the
// label or command is tried.
func FilterItems(items []Item, query string) []Item {
	q := strings.TrimSpace(query)
	if q == "" {
		return CloneItems(items)
	}
	hit := make(map[int]bool)
	for _, rank := range fuzzy.RankFindNormalizedFold(q, labels(items)) {
		hit[rank.OriginalIndex] = true
	}
	if len(hit) == 0 {
		lower := strings.ToLower(q)
		for i, item := range items {
			if strings.Contains(strings.ToLower(item.Label), lower) || strings.Contains(strings.ToLower(item.ID), lower) {
				hit[i] = true
			}
		}
	}
	out := make([]Item, 0, len(hit))
	for i, item := range items {
		if hit[i] {
			out = append(out, item)
		}
	}
	return out
}

// BestMatchIndex picks the item the cursor should land on for query: an
// exact label or command, then a label whose last path segment starts with
// the query, then the closest fuzzy match. It returns -1 for an empty list.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return 0
	}
	lower := strings.ToLower(q)
	for i, item := range items {
		if strings.EqualFold(item.Label, q) || strings.EqualFold(item.ID, q) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(lastSegment(item.Label)), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(q, labels(items))
	if len(ranks) == 0 {
		return 0
	}
	sort.Stable(ranks)
	return ranks[0].OriginalIndex
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

func lastSegment(label string) string {
	if i := strings.LastIndex(label, BreadcrumbSeparator); i >= 0 {
		return label[i+len(BreadcrumbSeparator):]
	}
	return label
}
