// Package selection implements anchor/cursor text selection over a
// session's VT cell grid and plain-text extraction, per spec.md §2/§3/§8.
package selection

import (
	"strings"

	"claudatui/internal/ptymgr"
)

// Point is a (row, col) position within a session's screen grid, 0-indexed
// from the top-left.
type Point struct {
	Row int
	Col int
}

// Less reports whether p sorts strictly before other in row-major order.
func (p Point) Less(other Point) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Selection is an anchor/cursor drag over a screen grid. Anchor is where the
// drag started; Cursor follows the pointer/keyboard. Active is false when
// no selection exists.
type Selection struct {
	Anchor Point
	Cursor Point
	Active bool
}

// Start begins a new selection with both anchor and cursor at p.
func Start(p Point) Selection {
	return Selection{Anchor: p, Cursor: p, Active: true}
}

// Extend moves the cursor end of an active selection to p.
func (s Selection) Extend(p Point) Selection {
	s.Cursor = p
	return s
}

// Clear returns the empty, inactive selection (spec.md §4.6 step 3: "if
// the displayed session id changed since last tick, clear any text
// selection").
func Clear() Selection {
	return Selection{}
}

// Ordered returns (start, end) with start <= end in row-major order
// (spec.md §8: "ordered() always returns a pair (start, end) with
// start ≤ end in row-major order").
func (s Selection) Ordered() (Point, Point) {
	if s.Anchor.Less(s.Cursor) || s.Anchor == s.Cursor {
		return s.Anchor, s.Cursor
	}
	return s.Cursor, s.Anchor
}

// ExtractText renders the plain-text content of the selection from screen,
// one row per line, trimming trailing whitespace from each line the way a
// terminal's "copy selection" typically does. Only full rows between start
// and end (inclusive) are read; the first and last rows are clipped to the
// selected columns.
func ExtractText(screen ptymgr.ScreenState, s Selection) string {
	if !s.Active {
		return ""
	}
	start, end := s.Ordered()

	var b strings.Builder
	for row := start.Row; row <= end.Row && row < len(screen.Rows); row++ {
		if row < 0 {
			continue
		}
		cells := screen.Rows[row].Cells

		fromCol := 0
		toCol := len(cells) - 1
		if row == start.Row {
			fromCol = start.Col
		}
		if row == end.Row {
			toCol = end.Col
		}
		if fromCol < 0 {
			fromCol = 0
		}
		if toCol >= len(cells) {
			toCol = len(cells) - 1
		}

		var line strings.Builder
		for col := fromCol; col <= toCol && col >= 0; col++ {
			line.WriteString(cells[col].Text)
		}
		if row > start.Row {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
	}
	return b.String()
}
