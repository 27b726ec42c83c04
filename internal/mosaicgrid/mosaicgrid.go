// Package mosaicgrid computes N-way grid geometry for the mosaic pane
// layout and maps a selected pane index to a session, per spec.md §2's
// "Mosaic/Pane Layout" component. Grounded on
// original_source/src/ui/mosaic.rs's compute_mosaic_rects/grid_position;
// rendering itself is out of scope (spec.md §1), so only the geometry and
// index-mapping functions are ported.
package mosaicgrid

// Rect is a renderer-agnostic sub-rectangle of the mosaic area, in the same
// units as the Area passed to ComputeRects.
type Rect struct {
	X, Y          int
	Width, Height int
}

// columnsFor returns the column count rule: <=4 panes use 2 columns, 5+
// use 3.
func columnsFor(count int) int {
	if count <= 4 {
		return 2
	}
	return 3
}

// ComputeRects lays out count panes within area following the rules:
// 0 panes -> empty; 1 -> full area; 2 -> side by side; 3 -> 2 on top, 1
// full-width bottom; 4 -> 2x2; 5+ -> 3 columns, rows as needed, with the
// last row/column in a row stretching to absorb any remainder.
func ComputeRects(area Rect, count int) []Rect {
	if count == 0 {
		return nil
	}
	if count == 1 {
		return []Rect{area}
	}

	cols := columnsFor(count)
	rows := ceilDiv(count, cols)
	rowHeight := area.Height / rows

	rects := make([]Rect, 0, count)
	idx := 0

	for row := 0; row < rows; row++ {
		itemsInRow := cols
		if row == rows-1 {
			itemsInRow = count - idx
		}

		y := area.Y + row*rowHeight
		h := rowHeight
		if row == rows-1 {
			h = area.Height - row*rowHeight
		}

		rowColWidth := area.Width / itemsInRow

		for col := 0; col < itemsInRow; col++ {
			x := area.X + col*rowColWidth
			w := rowColWidth
			if col == itemsInRow-1 {
				w = area.Width - col*rowColWidth
			}
			rects = append(rects, Rect{X: x, Y: y, Width: w, Height: h})
			idx++
		}
	}

	return rects
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// GridPosition returns the (row, col, totalCols) grid coordinates of pane
// index within a count-pane mosaic, matching the same column rule
// ComputeRects uses.
func GridPosition(count, index int) (row, col, totalCols int) {
	if count == 0 {
		return 0, 0, 1
	}
	totalCols = columnsFor(count)
	row = index / totalCols
	col = index % totalCols
	return row, col, totalCols
}

// SelectedSession maps a selected pane index into sessionIDs to the
// session id occupying that pane, or ("", false) if index is out of range.
func SelectedSession(sessionIDs []string, index int) (string, bool) {
	if index < 0 || index >= len(sessionIDs) {
		return "", false
	}
	return sessionIDs[index], true
}

// ClampSelected keeps a pane selection index within [0, count) — used when
// a session closes and the mosaic shrinks out from under the current
// selection.
func ClampSelected(index, count int) int {
	if count == 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}
