package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"tably/internal/tablib"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 32
)

// GridView is the wide-viewport presentation: a header row plus one body row
// per record of the current page, one cell per column spec in original
// order. Columns marked HideOnMobile are still rendered here; the flag only
// governs the card layout.
type GridView struct {
	*tview.Box

	columns []tablib.ColumnSpec
	records []tablib.Record

	colWidths []int

	// Display configuration
	cellPadding   int
	borderColor   tcell.Color
	headerColor   tcell.Color
	headerBgColor tcell.Color

	// Selection state
	selectedRow int
	selectable  bool

	// Callbacks
	rowClickFunc        func(tablib.Record)
	selectionChangeFunc func(row int)
}

// NewGridView creates an empty grid view.
func NewGridView() *GridView {
	gv := &GridView{
		Box:           tview.NewBox(),
		cellPadding:   1,
		borderColor:   tcell.ColorWhite,
		headerColor:   tcell.ColorWhite,
		headerBgColor: tcell.ColorDarkSlateGray,
		selectedRow:   0,
		selectable:    true,
	}
	gv.SetBorder(false) // We draw our own borders
	return gv
}

// SetColumns sets the column specs. All columns are rendered in the order
// given.
func (gv *GridView) SetColumns(columns []tablib.ColumnSpec) *GridView {
	gv.columns = columns
	gv.recalcWidths()
	return gv
}

// SetRecords sets the page slice to display. The slice is owned by the
// caller and read each draw.
func (gv *GridView) SetRecords(records []tablib.Record) *GridView {
	gv.records = records
	if gv.selectedRow >= len(records) {
		gv.selectedRow = 0
	}
	gv.recalcWidths()
	return gv
}

// SetRowClickFunc sets the callback invoked with the clicked record.
func (gv *GridView) SetRowClickFunc(handler func(tablib.Record)) *GridView {
	gv.rowClickFunc = handler
	return gv
}

// SetSelectionChangeFunc sets the callback invoked when the selected row
// changes.
func (gv *GridView) SetSelectionChangeFunc(handler func(row int)) *GridView {
	gv.selectionChangeFunc = handler
	return gv
}

// SetSelectable sets whether rows can be selected and clicked.
func (gv *GridView) SetSelectable(selectable bool) *GridView {
	gv.selectable = selectable
	return gv
}

// Select moves the row selection.
func (gv *GridView) Select(row int) *GridView {
	if row >= 0 && row < len(gv.records) {
		changed := gv.selectedRow != row
		gv.selectedRow = row
		if changed && gv.selectionChangeFunc != nil {
			gv.selectionChangeFunc(row)
		}
	}
	return gv
}

// GetSelection returns the currently selected row index.
func (gv *GridView) GetSelection() int {
	return gv.selectedRow
}

// SelectedRecord returns the record under the selection, or nil when the
// page is empty.
func (gv *GridView) SelectedRecord() tablib.Record {
	if gv.selectedRow >= 0 && gv.selectedRow < len(gv.records) {
		return gv.records[gv.selectedRow]
	}
	return nil
}

// recalcWidths sizes each column to its widest cell on the current page,
// clamped to [minColumnWidth, maxColumnWidth]. Page-local sizing keeps the
// pass cheap; the page is at most one pageSize of records.
func (gv *GridView) recalcWidths() {
	gv.colWidths = make([]int, len(gv.columns))
	for i, col := range gv.columns {
		width := runewidth.StringWidth(col.Header)
		for _, rec := range gv.records {
			if w := runewidth.StringWidth(col.Cell(rec)); w > width {
				width = w
			}
		}
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		gv.colWidths[i] = width
	}
}

// tableWidth is the total width of the bordered table.
func (gv *GridView) tableWidth() int {
	width := 1 // Left border
	for i, colWidth := range gv.colWidths {
		width += colWidth + 2*gv.cellPadding
		if i < len(gv.colWidths)-1 {
			width++ // Column separator
		}
	}
	return width + 1 // Right border
}

// Draw renders the grid.
func (gv *GridView) Draw(screen tcell.Screen) {
	gv.Box.DrawForSubclass(screen, gv)
	x, y, width, height := gv.GetInnerRect()

	if len(gv.columns) == 0 || width <= 0 || height <= 0 {
		return
	}

	currentY := y
	gv.drawRule(screen, x, currentY, '┌', '┬', '┐', '─')
	currentY++

	if currentY < y+height {
		gv.drawHeaderRow(screen, x, currentY)
		currentY++
	}

	if currentY < y+height {
		// Heavy separator between header and data
		gv.drawRule(screen, x, currentY, '┝', '┿', '┥', '━')
		currentY++
	}

	maxDataRows := height - 4 // Borders and header
	for i := 0; i < len(gv.records) && i < maxDataRows && currentY < y+height; i++ {
		gv.drawDataRow(screen, x, currentY, i)
		currentY++
	}

	if currentY < y+height {
		gv.drawRule(screen, x, currentY, '└', '┴', '┘', '─')
	}
}

// drawRule draws one horizontal border line with the given corner, junction
// and fill runes.
func (gv *GridView) drawRule(screen tcell.Screen, x, y int, left, junction, right, fill rune) {
	style := tcell.StyleDefault.Foreground(gv.borderColor)
	screen.SetContent(x, y, left, nil, style)
	pos := x + 1

	for i, colWidth := range gv.colWidths {
		cellWidth := colWidth + 2*gv.cellPadding
		for j := 0; j < cellWidth; j++ {
			screen.SetContent(pos+j, y, fill, nil, style)
		}
		pos += cellWidth

		if i < len(gv.colWidths)-1 {
			screen.SetContent(pos, y, junction, nil, style)
			pos++
		} else {
			screen.SetContent(pos, y, right, nil, style)
		}
	}
}

// drawHeaderRow draws the header content row.
func (gv *GridView) drawHeaderRow(screen tcell.Screen, x, y int) {
	borderStyle := tcell.StyleDefault.Foreground(gv.borderColor)
	headerStyle := tcell.StyleDefault.Bold(true).Foreground(gv.headerColor).Background(gv.headerBgColor)
	padStyle := tcell.StyleDefault.Foreground(gv.headerColor).Background(gv.headerBgColor)

	screen.SetContent(x, y, '│', nil, borderStyle)
	pos := x + 1

	for i, col := range gv.columns {
		for j := 0; j < gv.cellPadding; j++ {
			screen.SetContent(pos+j, y, ' ', nil, padStyle)
		}
		pos += gv.cellPadding

		drawText(screen, pos, y, padCellToWidth(col.Header, gv.colWidths[i]), headerStyle)
		pos += gv.colWidths[i]

		for j := 0; j < gv.cellPadding; j++ {
			screen.SetContent(pos+j, y, ' ', nil, padStyle)
		}
		pos += gv.cellPadding

		if i < len(gv.columns)-1 {
			screen.SetContent(pos, y, '│', nil, borderStyle)
			pos++
		}
	}

	screen.SetContent(pos, y, '│', nil, borderStyle)
}

// drawDataRow draws one record row.
func (gv *GridView) drawDataRow(screen tcell.Screen, x, y, rowIdx int) {
	borderStyle := tcell.StyleDefault.Foreground(gv.borderColor)
	screen.SetContent(x, y, '│', nil, borderStyle)
	pos := x + 1

	rec := gv.records[rowIdx]
	selected := gv.selectable && rowIdx == gv.selectedRow

	for i, col := range gv.columns {
		cellStyle := tcell.StyleDefault
		if selected {
			cellStyle = cellStyle.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
		}

		for j := 0; j < gv.cellPadding; j++ {
			screen.SetContent(pos+j, y, ' ', nil, cellStyle)
		}
		pos += gv.cellPadding

		cellText, style := styledCell(col, rec, cellStyle)
		drawText(screen, pos, y, padCellToWidth(cellText, gv.colWidths[i]), style)
		pos += gv.colWidths[i]

		for j := 0; j < gv.cellPadding; j++ {
			screen.SetContent(pos+j, y, ' ', nil, cellStyle)
		}
		pos += gv.cellPadding

		if i < len(gv.columns)-1 {
			sepStyle := borderStyle
			if selected {
				sepStyle = cellStyle
			}
			screen.SetContent(pos, y, '│', nil, sepStyle)
			pos++
		}
	}

	screen.SetContent(pos, y, '│', nil, borderStyle)
}

// GetRowAtPosition returns the record row index for screen coordinates, or
// -1 when the position is not on a data row.
//
// Row layout within the inner rect:
//
//	0: top border, 1: header, 2: separator, 3+: data rows
func (gv *GridView) GetRowAtPosition(screenX, screenY int) int {
	x, y, width, height := gv.GetInnerRect()
	if screenX < x || screenX >= x+width || screenY < y || screenY >= y+height {
		return -1
	}
	if screenX-x >= gv.tableWidth() {
		return -1 // Right of the table
	}

	row := screenY - y - 3
	if row < 0 || row >= len(gv.records) || row >= height-4 {
		return -1 // Below the last drawn row
	}
	return row
}

// InputHandler handles keyboard navigation and activation.
func (gv *GridView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return gv.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if !gv.selectable {
			return
		}

		switch event.Key() {
		case tcell.KeyUp:
			if gv.selectedRow > 0 {
				gv.Select(gv.selectedRow - 1)
			}
		case tcell.KeyDown:
			if gv.selectedRow < len(gv.records)-1 {
				gv.Select(gv.selectedRow + 1)
			}
		case tcell.KeyHome:
			gv.Select(0)
		case tcell.KeyEnd:
			gv.Select(len(gv.records) - 1)
		case tcell.KeyEnter:
			if gv.rowClickFunc != nil {
				if rec := gv.SelectedRecord(); rec != nil {
					gv.rowClickFunc(rec)
				}
			}
		}
	})
}

// MouseHandler handles clicks on rows.
func (gv *GridView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return gv.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !gv.InRect(x, y) {
			return false, nil
		}

		switch action {
		case tview.MouseLeftDown:
			setFocus(gv)
			if gv.selectable {
				if row := gv.GetRowAtPosition(x, y); row >= 0 {
					gv.Select(row)
				}
			}
			consumed = true
		case tview.MouseLeftClick:
			if row := gv.GetRowAtPosition(x, y); row >= 0 && gv.rowClickFunc != nil {
				gv.rowClickFunc(gv.records[row])
			}
			consumed = true
		}

		return consumed, nil
	})
}
