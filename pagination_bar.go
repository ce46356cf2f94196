package main

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"tably/internal/tablib"
)

// pageAction is a navigation request emitted by the pagination bar.
type pageAction int

const (
	pageFirst pageAction = iota
	pagePrev
	pageJump
	pageNext
	pageLast
)

// pageControl is one clickable segment of the control strip with its
// computed hit region.
type pageControl struct {
	label    string
	action   pageAction
	page     int // target page for pageJump
	disabled bool
	x        int // relative to the strip origin
	width    int
}

// PaginationBar renders the compressed page-indicator strip plus
// first/prev/next/last arrows, and turns clicks on its segments into
// navigation callbacks. Ellipsis segments are display-only. The bar renders
// nothing when there are fewer than two pages.
type PaginationBar struct {
	*tview.Box

	current int
	total   int

	navigateFunc func(action pageAction, page int)
}

// NewPaginationBar creates an empty pagination bar.
func NewPaginationBar() *PaginationBar {
	pb := &PaginationBar{Box: tview.NewBox()}
	pb.SetBorder(false)
	return pb
}

// SetPageState sets the current page and page count to render.
func (pb *PaginationBar) SetPageState(current, total int) *PaginationBar {
	pb.current = current
	pb.total = total
	return pb
}

// SetNavigateFunc sets the callback invoked when an enabled segment is
// activated.
func (pb *PaginationBar) SetNavigateFunc(handler func(action pageAction, page int)) *PaginationBar {
	pb.navigateFunc = handler
	return pb
}

// controls lays out the strip segments for the current page state. Segment
// positions are relative to the strip origin, one space between segments.
func (pb *PaginationBar) controls() []pageControl {
	if pb.total <= 1 {
		return nil
	}

	atFirst := pb.current <= 1
	atLast := pb.current >= pb.total

	controls := []pageControl{
		{label: "«", action: pageFirst, disabled: atFirst},
		{label: "‹", action: pagePrev, disabled: atFirst},
	}
	for _, ind := range tablib.Window(pb.current, pb.total) {
		if ind.IsEllipsis() {
			controls = append(controls, pageControl{label: "…", action: pageJump, disabled: true})
			continue
		}
		controls = append(controls, pageControl{
			label:  strconv.Itoa(int(ind)),
			action: pageJump,
			page:   int(ind),
		})
	}
	controls = append(controls,
		pageControl{label: "›", action: pageNext, disabled: atLast},
		pageControl{label: "»", action: pageLast, disabled: atLast},
	)

	x := 0
	for i := range controls {
		controls[i].x = x
		controls[i].width = runewidth.StringWidth(controls[i].label)
		x += controls[i].width + 1
	}
	return controls
}

// Draw renders the strip.
func (pb *PaginationBar) Draw(screen tcell.Screen) {
	pb.Box.DrawForSubclass(screen, pb)
	x, y, width, height := pb.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	for _, ctl := range pb.controls() {
		if ctl.x+ctl.width > width {
			break
		}
		style := tcell.StyleDefault
		switch {
		case ctl.disabled:
			style = style.Foreground(tcell.ColorGray)
		case ctl.action == pageJump && ctl.page == pb.current:
			style = style.Bold(true).Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
		}
		drawText(screen, x+ctl.x, y, ctl.label, style)
	}
}

// controlAtPosition returns the enabled segment under the given screen
// coordinates, or nil.
func (pb *PaginationBar) controlAtPosition(screenX, screenY int) *pageControl {
	x, y, _, _ := pb.GetInnerRect()
	if screenY != y {
		return nil
	}
	rel := screenX - x
	for _, ctl := range pb.controls() {
		if rel >= ctl.x && rel < ctl.x+ctl.width && !ctl.disabled {
			hit := ctl
			return &hit
		}
	}
	return nil
}

// navigate fires the callback for one segment.
func (pb *PaginationBar) navigate(ctl pageControl) {
	if pb.navigateFunc != nil && !ctl.disabled {
		pb.navigateFunc(ctl.action, ctl.page)
	}
}

// MouseHandler handles clicks on strip segments. Keyboard pagination lives
// in the application-level key capture, so the bar never takes focus.
func (pb *PaginationBar) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return pb.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !pb.InRect(x, y) {
			return false, nil
		}
		if action == tview.MouseLeftClick {
			if ctl := pb.controlAtPosition(x, y); ctl != nil {
				pb.navigate(*ctl)
			}
			consumed = true
		}
		return consumed, nil
	})
}
