package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tably/internal/tablib"
)

// NullGlyph is shown for SQL NULL cells.
const NullGlyph = "∅"

// styledCell resolves a column's cell text for a record and picks the style
// to render it with. NULLs render as a dimmed glyph; everything else keeps
// the passed-in style.
func styledCell(col tablib.ColumnSpec, rec tablib.Record, style tcell.Style) (string, tcell.Style) {
	if col.Transform == nil {
		if value, ok := rec[col.Field]; ok && value == nil {
			return NullGlyph, style.Italic(true).Foreground(tcell.ColorGray)
		}
	}
	return col.Cell(rec), style
}

// padCellToWidth pads text to a display width, truncating with an ellipsis
// when it does not fit. Width is measured in terminal cells, so wide runes
// count as two.
func padCellToWidth(text string, width int) string {
	if runewidth.StringWidth(text) > width {
		if width >= 3 {
			return runewidth.Truncate(text, width, "…")
		}
		return runewidth.Truncate(text, width, "")
	}
	return text + strings.Repeat(" ", width-runewidth.StringWidth(text))
}

// drawText writes a string starting at x,y and returns the x position one
// past the last cell written.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
	return x
}
