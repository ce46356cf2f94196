package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"tably/internal/tablib"
)

const maxLabelWidth = 16

// CardView is the narrow-viewport presentation: one bordered card per record
// of the current page. Within a card the column groups render in fixed
// order: the unlabeled highlight line, the label/value detail rows, and the
// separated actions line. Columns marked HideOnMobile are not rendered at
// all in this layout.
type CardView struct {
	*tview.Box

	columns []tablib.ColumnSpec
	records []tablib.Record
	groups  tablib.CardGroups

	labelWidth  int
	borderColor tcell.Color

	selectedCard int
	scrollTop    int
	selectable   bool

	rowClickFunc        func(tablib.Record)
	selectionChangeFunc func(row int)
}

// NewCardView creates an empty card view.
func NewCardView() *CardView {
	cv := &CardView{
		Box:         tview.NewBox(),
		borderColor: tcell.ColorGray,
		selectable:  true,
	}
	cv.SetBorder(false)
	return cv
}

// SetColumns sets the column specs and recomputes the card groups.
func (cv *CardView) SetColumns(columns []tablib.ColumnSpec) *CardView {
	cv.columns = columns
	cv.groups = tablib.PartitionForCard(columns)

	cv.labelWidth = 0
	for _, col := range cv.groups.Details {
		if w := runewidth.StringWidth(col.Header); w > cv.labelWidth {
			cv.labelWidth = w
		}
	}
	if cv.labelWidth > maxLabelWidth {
		cv.labelWidth = maxLabelWidth
	}
	return cv
}

// SetRecords sets the page slice to display.
func (cv *CardView) SetRecords(records []tablib.Record) *CardView {
	cv.records = records
	if cv.selectedCard >= len(records) {
		cv.selectedCard = 0
		cv.scrollTop = 0
	}
	return cv
}

// SetRowClickFunc sets the callback invoked with the clicked record.
func (cv *CardView) SetRowClickFunc(handler func(tablib.Record)) *CardView {
	cv.rowClickFunc = handler
	return cv
}

// SetSelectionChangeFunc sets the callback invoked when the selected card
// changes.
func (cv *CardView) SetSelectionChangeFunc(handler func(row int)) *CardView {
	cv.selectionChangeFunc = handler
	return cv
}

// SetSelectable sets whether cards can be selected and clicked.
func (cv *CardView) SetSelectable(selectable bool) *CardView {
	cv.selectable = selectable
	return cv
}

// Select moves the card selection and scrolls it into view.
func (cv *CardView) Select(card int) *CardView {
	if card < 0 || card >= len(cv.records) {
		return cv
	}
	changed := cv.selectedCard != card
	cv.selectedCard = card
	if changed && cv.selectionChangeFunc != nil {
		cv.selectionChangeFunc(card)
	}
	return cv
}

// GetSelection returns the currently selected card index.
func (cv *CardView) GetSelection() int {
	return cv.selectedCard
}

// SelectedRecord returns the record under the selection, or nil when the
// page is empty.
func (cv *CardView) SelectedRecord() tablib.Record {
	if cv.selectedCard >= 0 && cv.selectedCard < len(cv.records) {
		return cv.records[cv.selectedCard]
	}
	return nil
}

// cardHeight is the uniform outer height of one card. The column list is
// uniform across records, so all cards on a page are the same height.
func (cv *CardView) cardHeight() int {
	height := 2 // Borders
	if len(cv.groups.Highlights) > 0 {
		height++
	}
	height += len(cv.groups.Details)
	if cv.groups.Actions != nil {
		height += 2 // Separator plus actions line
	}
	return height
}

// Draw renders the visible cards.
func (cv *CardView) Draw(screen tcell.Screen) {
	cv.Box.DrawForSubclass(screen, cv)
	x, y, width, height := cv.GetInnerRect()

	if len(cv.columns) == 0 || width <= 2 || height <= 0 {
		return
	}

	cardH := cv.cardHeight()
	visible := max(height/cardH, 1)

	// Keep the selected card inside the visible window
	if cv.selectedCard < cv.scrollTop {
		cv.scrollTop = cv.selectedCard
	} else if cv.selectedCard >= cv.scrollTop+visible {
		cv.scrollTop = cv.selectedCard - visible + 1
	}
	if cv.scrollTop < 0 {
		cv.scrollTop = 0
	}

	currentY := y
	for i := cv.scrollTop; i < len(cv.records) && currentY+cardH <= y+height; i++ {
		cv.drawCard(screen, x, currentY, width, i)
		currentY += cardH
	}
}

// drawCard renders one record card at x,y.
func (cv *CardView) drawCard(screen tcell.Screen, x, y, width, cardIdx int) {
	rec := cv.records[cardIdx]
	selected := cv.selectable && cardIdx == cv.selectedCard

	borderStyle := tcell.StyleDefault.Foreground(cv.borderColor)
	if selected {
		borderStyle = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	}

	innerWidth := width - 4 // Borders plus one cell padding per side
	cardH := cv.cardHeight()

	cv.drawCardRule(screen, x, y, width, '┌', '┐', '─', borderStyle)
	cv.drawCardRule(screen, x, y+cardH-1, width, '└', '┘', '─', borderStyle)

	currentY := y + 1

	// Highlight line: inline, unlabeled, bold
	if len(cv.groups.Highlights) > 0 {
		parts := make([]string, 0, len(cv.groups.Highlights))
		for _, col := range cv.groups.Highlights {
			parts = append(parts, col.Cell(rec))
		}
		line := strings.Join(parts, " · ")
		cv.drawCardLine(screen, x, currentY, width, borderStyle)
		drawText(screen, x+2, currentY, padCellToWidth(line, innerWidth), tcell.StyleDefault.Bold(true))
		currentY++
	}

	// Detail rows: dim label, value
	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	valueWidth := innerWidth - cv.labelWidth - 2
	for _, col := range cv.groups.Details {
		cv.drawCardLine(screen, x, currentY, width, borderStyle)
		pos := drawText(screen, x+2, currentY, padCellToWidth(col.Header, cv.labelWidth), labelStyle)
		pos += 2
		cellText, style := styledCell(col, rec, tcell.StyleDefault)
		if valueWidth > 0 {
			drawText(screen, pos, currentY, padCellToWidth(cellText, valueWidth), style)
		}
		currentY++
	}

	// Actions: separated from the detail block
	if cv.groups.Actions != nil {
		cv.drawCardLine(screen, x, currentY, width, borderStyle)
		for i := 0; i < innerWidth; i += 2 {
			screen.SetContent(x+2+i, currentY, '╴', nil, borderStyle)
		}
		currentY++

		cv.drawCardLine(screen, x, currentY, width, borderStyle)
		cellText, style := styledCell(*cv.groups.Actions, rec, tcell.StyleDefault)
		drawText(screen, x+2, currentY, padCellToWidth(cellText, innerWidth), style)
	}
}

// drawCardRule draws a card's top or bottom border.
func (cv *CardView) drawCardRule(screen tcell.Screen, x, y, width int, left, right, fill rune, style tcell.Style) {
	screen.SetContent(x, y, left, nil, style)
	for i := 1; i < width-1; i++ {
		screen.SetContent(x+i, y, fill, nil, style)
	}
	screen.SetContent(x+width-1, y, right, nil, style)
}

// drawCardLine draws a card's side borders and clears the interior of one
// content line.
func (cv *CardView) drawCardLine(screen tcell.Screen, x, y, width int, style tcell.Style) {
	screen.SetContent(x, y, '│', nil, style)
	for i := 1; i < width-1; i++ {
		screen.SetContent(x+i, y, ' ', nil, tcell.StyleDefault)
	}
	screen.SetContent(x+width-1, y, '│', nil, style)
}

// GetCardAtPosition returns the card index for screen coordinates, or -1
// when the position is not on a card.
func (cv *CardView) GetCardAtPosition(screenX, screenY int) int {
	x, y, width, height := cv.GetInnerRect()
	if screenX < x || screenX >= x+width || screenY < y || screenY >= y+height {
		return -1
	}
	offset := (screenY - y) / cv.cardHeight()
	if offset >= height/cv.cardHeight() {
		return -1 // Only fully visible cards are drawn
	}
	card := cv.scrollTop + offset
	if card < 0 || card >= len(cv.records) {
		return -1
	}
	return card
}

// InputHandler handles keyboard navigation and activation.
func (cv *CardView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return cv.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if !cv.selectable {
			return
		}

		switch event.Key() {
		case tcell.KeyUp:
			cv.Select(cv.selectedCard - 1)
		case tcell.KeyDown:
			cv.Select(cv.selectedCard + 1)
		case tcell.KeyHome:
			cv.Select(0)
		case tcell.KeyEnd:
			cv.Select(len(cv.records) - 1)
		case tcell.KeyEnter:
			if cv.rowClickFunc != nil {
				if rec := cv.SelectedRecord(); rec != nil {
					cv.rowClickFunc(rec)
				}
			}
		}
	})
}

// MouseHandler handles clicks on cards.
func (cv *CardView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return cv.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !cv.InRect(x, y) {
			return false, nil
		}

		switch action {
		case tview.MouseLeftDown:
			setFocus(cv)
			if cv.selectable {
				if card := cv.GetCardAtPosition(x, y); card >= 0 {
					cv.Select(card)
				}
			}
			consumed = true
		case tview.MouseLeftClick:
			if card := cv.GetCardAtPosition(x, y); card >= 0 && cv.rowClickFunc != nil {
				cv.rowClickFunc(cv.records[card])
			}
			consumed = true
		case tview.MouseScrollUp:
			cv.Select(cv.selectedCard - 1)
			consumed = true
		case tview.MouseScrollDown:
			cv.Select(cv.selectedCard + 1)
			consumed = true
		}

		return consumed, nil
	})
}
