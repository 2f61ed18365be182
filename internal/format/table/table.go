// Package table lines up text columns by display width.
package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Gap is the number of spaces between two columns.
const Gap = 2

// Widths returns the widest display width found in each column.
func Widths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			widths[c] = max(widths[c], ansi.StringWidth(cell))
		}
	}
	return widths
}

// Width is the natural width of a formatted row, gaps included. Empty
// columns take no gap.
func Width(rows [][]string) int {
	total := 0
	for _, w := range Widths(rows) {
		if w == 0 {
			continue
		}
		if total > 0 {
			total += Gap
		}
		total += w
	}
	return total
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	return Fit(rows, alignments, 0)
}

// Fit is Format with the slack beyond the natural width given to the gap
// before the last non-empty column, so a right-aligned last column ends at
// width. A single column is padded on the right instead.
func Fit(rows [][]string, alignments []Alignment, width int) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := Widths(rows)
	slack := max(width-Width(rows), 0)
	last := -1
	for c, w := range widths {
		if w > 0 {
			last = c
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		gapped := false
		for c, cell := range row {
			if widths[c] == 0 {
				continue
			}
			if b.Len() > 0 {
				gap := Gap
				if c == last {
					gap += slack
					gapped = true
				}
				b.WriteString(strings.Repeat(" ", gap))
			}
			pad := strings.Repeat(" ", widths[c]-ansi.StringWidth(cell))
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(pad + cell)
			} else {
				b.WriteString(cell + pad)
			}
		}
		if !gapped {
			b.WriteString(strings.Repeat(" ", slack))
		}
		out[i] = b.String()
	}
	return out
}
