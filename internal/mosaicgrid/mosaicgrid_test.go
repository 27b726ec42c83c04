package mosaicgrid

import "testing"

func TestComputeRectsZeroSessionsReturnsEmpty(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	if rects := ComputeRects(area, 0); len(rects) != 0 {
		t.Fatalf("got %v, want empty", rects)
	}
}

func TestComputeRectsOneSessionReturnsFullArea(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	rects := ComputeRects(area, 1)
	if len(rects) != 1 || rects[0] != area {
		t.Fatalf("rects = %v, want [%v]", rects, area)
	}
}

func TestComputeRectsTwoSessionsSideBySide(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	rects := ComputeRects(area, 2)
	if len(rects) != 2 {
		t.Fatalf("len(rects) = %d, want 2", len(rects))
	}
	if rects[0].Width != 50 || rects[1].Width != 50 {
		t.Fatalf("rects = %+v, want both width 50", rects)
	}
	if rects[0].Height != 50 {
		t.Fatalf("rects[0].Height = %d, want 50", rects[0].Height)
	}
}

func TestComputeRectsThreeSessionsTwoTopOneBottom(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	rects := ComputeRects(area, 3)
	if len(rects) != 3 {
		t.Fatalf("len(rects) = %d, want 3", len(rects))
	}
	if rects[0].Width != 50 || rects[1].Width != 50 {
		t.Fatalf("top row widths = %d,%d, want 50,50", rects[0].Width, rects[1].Width)
	}
	if rects[2].Width != 100 {
		t.Fatalf("bottom row width = %d, want 100", rects[2].Width)
	}
}

func TestComputeRectsFourSessionsTwoByTwo(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	rects := ComputeRects(area, 4)
	if len(rects) != 4 {
		t.Fatalf("len(rects) = %d, want 4", len(rects))
	}
	for i, r := range rects {
		if r.Width != 50 {
			t.Fatalf("rects[%d].Width = %d, want 50", i, r.Width)
		}
	}
}

func TestComputeRectsFiveSessionsThreeColumns(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 99, Height: 50}
	rects := ComputeRects(area, 5)
	if len(rects) != 5 {
		t.Fatalf("len(rects) = %d, want 5", len(rects))
	}
	for i := 0; i < 3; i++ {
		if rects[i].Width != 33 {
			t.Fatalf("rects[%d].Width = %d, want 33", i, rects[i].Width)
		}
	}
	if rects[3].Width < 49 || rects[4].Width < 49 {
		t.Fatalf("second row widths = %d,%d, want both >= 49", rects[3].Width, rects[4].Width)
	}
}

func TestGridPositionReturnsCorrectCoords(t *testing.T) {
	cases := []struct {
		index             int
		row, col, totCols int
	}{
		{0, 0, 0, 2},
		{1, 0, 1, 2},
		{2, 1, 0, 2},
		{3, 1, 1, 2},
	}
	for _, c := range cases {
		row, col, cols := GridPosition(4, c.index)
		if row != c.row || col != c.col || cols != c.totCols {
			t.Fatalf("GridPosition(4, %d) = (%d,%d,%d), want (%d,%d,%d)", c.index, row, col, cols, c.row, c.col, c.totCols)
		}
	}
}

func TestSelectedSessionOutOfRange(t *testing.T) {
	if _, ok := SelectedSession([]string{"a", "b"}, 5); ok {
		t.Fatalf("expected out-of-range selection to fail")
	}
	if id, ok := SelectedSession([]string{"a", "b"}, 1); !ok || id != "b" {
		t.Fatalf("SelectedSession = (%q, %v), want (b, true)", id, ok)
	}
}

func TestClampSelected(t *testing.T) {
	if got := ClampSelected(5, 3); got != 2 {
		t.Fatalf("ClampSelected(5,3) = %d, want 2", got)
	}
	if got := ClampSelected(-1, 3); got != 0 {
		t.Fatalf("ClampSelected(-1,3) = %d, want 0", got)
	}
	if got := ClampSelected(0, 0); got != 0 {
		t.Fatalf("ClampSelected(0,0) = %d, want 0", got)
	}
}
