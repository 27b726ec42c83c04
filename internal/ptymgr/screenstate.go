package ptymgr

import "github.com/hinshun/vt10x"

// ColorKind discriminates the three color representations a terminal cell
// can carry (original_source/src/session/types.rs: ColorKind).
type ColorKind int

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// TermColor is a renderer-agnostic terminal color (Default / indexed 0-255 /
// 24-bit RGB), projected from vt10x.Color.
type TermColor struct {
	Kind    ColorKind
	Indexed uint8
	R, G, B uint8
}

// CellAttrs are the bold/italic/underline/reverse flags carried by a cell.
// vt10x packs these into a single bitmask mode on the underlying st-derived
// emulator; the bit positions below follow that convention (reverse=1,
// underline=2, bold=4, italic=16).
type CellAttrs struct {
	Bold      bool
	Italic    bool
	Underline bool
	Inverse   bool
}

const (
	attrReverse   = 1 << 0
	attrUnderline = 1 << 1
	attrBold      = 1 << 2
	attrItalic    = 1 << 4
)

func attrsFromMode(mode int16) CellAttrs {
	return CellAttrs{
		Bold:      mode&attrBold != 0,
		Italic:    mode&attrItalic != 0,
		Underline: mode&attrUnderline != 0,
		Inverse:   mode&attrReverse != 0,
	}
}

// ScreenCell is one renderer-agnostic terminal cell (spec.md §4.1 state
// snapshot contract).
type ScreenCell struct {
	Text string
	FG   TermColor
	BG   TermColor
	CellAttrs
}

// ScreenRow is one row of cells.
type ScreenRow struct {
	Cells []ScreenCell
}

// ScreenState is the full renderer-agnostic VT screen snapshot: dimensions
// are implicit in len(Rows)/len(Rows[0].Cells).
type ScreenState struct {
	Rows          []ScreenRow
	CursorRow     int
	CursorCol     int
	CursorVisible bool
}

// colorFromVT projects a vt10x.Color into a TermColor. vt10x.DefaultFG /
// vt10x.DefaultBG / vt10x.DefaultCursor all collapse to ColorDefault; values
// 0-255 are indexed; anything else is treated as packed 24-bit RGB.
func colorFromVT(c vt10x.Color) TermColor {
	switch c {
	case vt10x.DefaultFG, vt10x.DefaultBG, vt10x.DefaultCursor:
		return TermColor{Kind: ColorDefault}
	}

	value := int64(c)
	if value >= 0 && value <= 255 {
		return TermColor{Kind: ColorIndexed, Indexed: uint8(value)}
	}
	if value >= 0 && value <= 0xFFFFFF {
		return TermColor{
			Kind: ColorRGB,
			R:    uint8((value >> 16) & 0xFF),
			G:    uint8((value >> 8) & 0xFF),
			B:    uint8(value & 0xFF),
		}
	}
	return TermColor{Kind: ColorDefault}
}

// screenStateFromTerminal extracts a ScreenState from a vt10x.Terminal,
// mirroring original_source/src/session/types.rs's
// screen_state_from_vt100.
func screenStateFromTerminal(term vt10x.Terminal, rows, cols int) ScreenState {
	state := ScreenState{Rows: make([]ScreenRow, rows)}

	for row := 0; row < rows; row++ {
		cells := make([]ScreenCell, cols)
		for col := 0; col < cols; col++ {
			glyph := term.Cell(col, row)
			text := ""
			if glyph.Char != 0 {
				text = string(glyph.Char)
			}
			cells[col] = ScreenCell{
				Text:      text,
				FG:        colorFromVT(glyph.FG),
				BG:        colorFromVT(glyph.BG),
				CellAttrs: attrsFromMode(glyph.Mode),
			}
		}
		state.Rows[row] = ScreenRow{Cells: cells}
	}

	cursor := term.Cursor()
	state.CursorRow = cursor.Y
	state.CursorCol = cursor.X
	state.CursorVisible = term.CursorVisible()

	return state
}
