package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tably/internal/tablib"
)

const (
	pagePicker  = "picker"
	pageContent = "content"

	contentGrid    = "grid"
	contentCards   = "cards"
	contentLoading = "loading"
	contentEmpty   = "empty"

	defaultEmptyMessage = "No records to display."
)

// ViewerOptions is the caller-supplied widget configuration.
type ViewerOptions struct {
	// PageSize is the fixed page length; non-positive falls back to the
	// default. Ignored when Pagination is false.
	PageSize int
	// Pagination windows the collection into pages and shows the control
	// strip. When false the whole collection is one page and no strip is
	// rendered.
	Pagination bool
	// CardView offers the narrow card layout at all. When false the grid
	// is used regardless of terminal width.
	CardView bool
	// CardWidth is the terminal width below which the card layout is
	// selected.
	CardWidth int
	// EmptyMessage is shown alone when the collection is empty.
	EmptyMessage string
	// KeyField names the record identity field. Empty falls back to the
	// first field-backed column.
	KeyField string
	// RowClick is invoked with the activated record. Nil installs the
	// status bar default.
	RowClick func(tablib.Record)
}

// Viewer composes the grid view, the card view, the pagination bar and the
// status bar into the running application. It owns the page state for its
// lifetime; multiple viewers paginate independently.
type Viewer struct {
	app         *tview.Application
	pages       *tview.Pages
	content     *tview.Pages
	grid        *GridView
	cards       *CardView
	pageBar     *PaginationBar
	loadingView *tview.TextView
	emptyView   *tview.TextView
	statusBar   *tview.TextView
	layout      *tview.Flex
	tablePicker *FuzzySelector

	config  *Config
	options ViewerOptions

	tableName string
	columns   []tablib.ColumnSpec
	records   []tablib.Record
	pager     *tablib.Pager

	loading    bool
	usingCards bool
	lastWidth  int
}

// NewViewer builds the viewer around the given options. Data arrives later
// through SetTable.
func NewViewer(config *Config, options ViewerOptions) *Viewer {
	if options.CardWidth <= 0 {
		options.CardWidth = defaultCardWidth
	}
	if options.EmptyMessage == "" {
		options.EmptyMessage = defaultEmptyMessage
	}

	v := &Viewer{
		app:     tview.NewApplication().EnableMouse(true),
		pages:   tview.NewPages(),
		content: tview.NewPages(),
		config:  config,
		options: options,
		pager:   tablib.NewPager(options.PageSize),
		loading: true,
	}

	v.grid = NewGridView().
		SetRowClickFunc(v.handleRowClick).
		SetSelectionChangeFunc(func(int) { v.updateStatus() })
	v.cards = NewCardView().
		SetRowClickFunc(v.handleRowClick).
		SetSelectionChangeFunc(func(int) { v.updateStatus() })

	v.pageBar = NewPaginationBar().SetNavigateFunc(v.handleNavigate)

	v.loadingView = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText("Loading…")
	v.emptyView = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText(v.options.EmptyMessage)

	v.statusBar = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	v.statusBar.SetBackgroundColor(tcell.ColorLightGray)
	v.statusBar.SetTextColor(tcell.ColorBlack)
	v.statusBar.SetText("Ready")

	v.content.AddPage(contentGrid, v.grid, true, false)
	v.content.AddPage(contentCards, v.cards, true, false)
	v.content.AddPage(contentEmpty, v.emptyView, true, false)
	v.content.AddPage(contentLoading, v.loadingView, true, true)

	v.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.content, 0, 1, true).
		AddItem(v.pageBar, 1, 0, false).
		AddItem(v.statusBar, 1, 0, false)

	v.pages.AddPage(pageContent, v.layout, true, true)

	v.setupKeyBindings()

	v.app.SetMouseCapture(func(event *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
		if breadcrumbs != nil && action == tview.MouseLeftClick {
			breadcrumbs.RecordMouse("left click")
		}
		return event, action
	})

	// Layout selection depends on the live terminal width, so it is
	// re-evaluated before every draw. Resizes switch layouts in place.
	v.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		width, _ := screen.Size()
		if width != v.lastWidth {
			v.lastWidth = width
			v.syncViews()
		}
		return false
	})

	return v
}

// SetTablePicker installs the fuzzy table selector overlay.
func (v *Viewer) SetTablePicker(tables []string, current string, onSelect func(string)) {
	v.tablePicker = NewFuzzySelector(tables, current, onSelect, v.HideTablePicker)

	pickerOverlay := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.tablePicker, 8, 0, true).
		AddItem(nil, 0, 1, false)
	v.pages.AddPage(pagePicker, pickerOverlay, true, false)
}

// HideTablePicker closes the table selector overlay and returns focus to
// the content.
func (v *Viewer) HideTablePicker() {
	v.pages.HidePage(pagePicker)
	v.app.SetFocus(v.content)
	v.app.SetAfterDrawFunc(nil)
}

// QueueUpdate schedules a state change onto the event loop and redraws.
// Loaders run off the event loop and hand results back through here.
func (v *Viewer) QueueUpdate(f func()) {
	v.app.QueueUpdateDraw(f)
}

// ShowTablePicker opens the table selector overlay.
func (v *Viewer) ShowTablePicker() {
	if v.tablePicker == nil {
		return
	}
	v.pages.ShowPage(pagePicker)
	v.app.SetFocus(v.tablePicker)
	v.app.SetAfterDrawFunc(func(screen tcell.Screen) {
		screen.SetCursorStyle(tcell.CursorStyleBlinkingBar)
	})
}

// SetLoading toggles the loading indicator. While loading, no table or card
// output is rendered.
func (v *Viewer) SetLoading(loading bool) {
	v.loading = loading
	v.syncViews()
}

// SetTable replaces the column specs and record collection. The slices are
// read-only from the viewer's perspective. The pager keeps its page unless
// the collection shrank below it, in which case the stale-page invariant
// resets it during the next slice computation.
func (v *Viewer) SetTable(name string, columns []tablib.ColumnSpec, records []tablib.Record) {
	v.tableName = name
	v.columns = columns
	v.records = records
	v.loading = false
	v.grid.SetColumns(columns)
	v.cards.SetColumns(columns)
	v.syncViews()
}

// visibleSlice applies the stale-page invariant and computes the current
// page slice. With pagination off the whole collection is visible.
func (v *Viewer) visibleSlice() []tablib.Record {
	if !v.options.Pagination {
		return v.records
	}
	return v.pager.Slice(v.records)
}

// totalPages is 0 for an empty collection and 1 when pagination is off.
func (v *Viewer) totalPages() int {
	if len(v.records) == 0 {
		return 0
	}
	if !v.options.Pagination {
		return 1
	}
	return v.pager.TotalPages(len(v.records))
}

// syncViews recomputes the visible slice and switches the content page for
// the current state: loading, empty, cards or grid.
func (v *Viewer) syncViews() {
	switch {
	case v.loading:
		v.content.SwitchToPage(contentLoading)
		return
	case len(v.records) == 0:
		v.emptyView.SetText(v.options.EmptyMessage)
		v.content.SwitchToPage(contentEmpty)
		v.pageBar.SetPageState(0, 0)
		v.updateStatus()
		return
	}

	slice := v.visibleSlice()
	v.grid.SetRecords(slice)
	v.cards.SetRecords(slice)
	v.pageBar.SetPageState(v.pager.Page(), v.totalPages())

	usingCards := v.options.CardView && v.lastWidth > 0 && v.lastWidth < v.options.CardWidth
	if usingCards != v.usingCards {
		v.usingCards = usingCards
		layout := contentGrid
		if usingCards {
			layout = contentCards
		}
		debugLog("layout switch: %s at width %d\n", layout, v.lastWidth)
		if breadcrumbs != nil {
			breadcrumbs.RecordLayout(layout, v.lastWidth)
		}
	}
	if v.usingCards {
		v.content.SwitchToPage(contentCards)
	} else {
		v.content.SwitchToPage(contentGrid)
	}
	v.updateStatus()
}

// handleNavigate applies one pagination transition. Transitions are clamped
// by the pager; re-applying one at a boundary is a no-op.
func (v *Viewer) handleNavigate(action pageAction, page int) {
	total := v.totalPages()
	if total <= 1 {
		return
	}

	before := v.pager.Page()
	switch action {
	case pageFirst:
		v.pager.First()
	case pagePrev:
		v.pager.Prev()
	case pageJump:
		v.pager.Jump(page, total)
	case pageNext:
		v.pager.Next(total)
	case pageLast:
		v.pager.Last(total)
	}

	if v.pager.Page() != before {
		if breadcrumbs != nil {
			breadcrumbs.RecordNavigation("page", fmt.Sprintf("%d -> %d", before, v.pager.Page()))
		}
		v.syncViews()
	}
}

// handleRowClick dispatches an activated record to the configured handler.
func (v *Viewer) handleRowClick(rec tablib.Record) {
	if v.options.RowClick != nil {
		v.options.RowClick(rec)
		return
	}
	key := v.options.KeyField
	if key == "" {
		key = keyField(v.columns)
	}
	v.SetStatusMessage(fmt.Sprintf("Selected %s = %s", key, rec.Key(key)))
}

// SetStatusMessage replaces the status bar text.
func (v *Viewer) SetStatusMessage(message string) {
	v.statusBar.SetText(message)
}

// updateStatus rebuilds the default status line: table name, layout, row
// position and page position.
func (v *Viewer) updateStatus() {
	if len(v.records) == 0 {
		v.SetStatusMessage(fmt.Sprintf("%s · no rows", v.tableName))
		return
	}

	layout := "grid"
	selected := v.grid.GetSelection()
	if v.usingCards {
		layout = "cards"
		selected = v.cards.GetSelection()
	}

	rowBase := 0
	if v.options.Pagination {
		rowBase = (v.pager.Page() - 1) * v.pager.PageSize()
	}
	name := v.tableName
	if v.tablePicker != nil {
		name = pickerTitle(v.tableName)
	}
	status := fmt.Sprintf("%s · %s · row %d/%d", name, layout, rowBase+selected+1, len(v.records))
	if total := v.totalPages(); total > 1 {
		status += fmt.Sprintf(" · page %d/%d", v.pager.Page(), total)
	}
	v.SetStatusMessage(status)
}

// Run starts the application event loop.
func (v *Viewer) Run() error {
	if err := v.app.SetRoot(v.pages, true).Run(); err != nil {
		CaptureError(err)
		return err
	}
	return nil
}

// Stop ends the application event loop.
func (v *Viewer) Stop() {
	v.app.Stop()
}

// keyField picks the identity column: the first field-backed column.
func keyField(columns []tablib.ColumnSpec) string {
	for _, col := range columns {
		if col.Field != "" {
			return col.Field
		}
	}
	return ""
}
