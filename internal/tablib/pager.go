package tablib

import "github.com/samber/lo"

const (
	// DefaultPageSize is used when the caller passes a non-positive size.
	DefaultPageSize = 10

	// uncompressedMax is the largest page count rendered without ellipsis
	// compression. Above it the window keeps first and last page reachable
	// and compresses the middle.
	uncompressedMax = 5
)

// Ellipsis is the window entry standing in for a compressed page range.
// It is display-only and cannot be jumped to.
const Ellipsis PageIndicator = -1

// PageIndicator is one entry of the pagination control strip: a concrete
// page number, or Ellipsis. Indicators carry no identity beyond their
// position in the window.
type PageIndicator int

// IsEllipsis reports whether the indicator is a compression marker.
func (p PageIndicator) IsEllipsis() bool {
	return p == Ellipsis
}

// Pager holds the page state of one widget instance: the 1-indexed current
// page and the page size. Everything else is derived per call from the
// record count, so a collection that shrinks under the pager corrects
// itself on the next slice.
type Pager struct {
	page     int
	pageSize int
}

// NewPager returns a pager on page 1. Non-positive sizes fall back to
// DefaultPageSize.
func NewPager(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{page: 1, pageSize: pageSize}
}

// Page returns the current 1-indexed page.
func (p *Pager) Page() int { return p.page }

// PageSize returns the fixed page size.
func (p *Pager) PageSize() int { return p.pageSize }

// TotalPages derives the page count for a collection of count records.
func (p *Pager) TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + p.pageSize - 1) / p.pageSize
}

// First moves to page 1. A no-op when already there.
func (p *Pager) First() {
	p.page = 1
}

// Prev moves one page back, clamped to page 1.
func (p *Pager) Prev() {
	p.page = max(1, p.page-1)
}

// Next moves one page forward, clamped to the last page of a collection
// with totalPages pages.
func (p *Pager) Next(totalPages int) {
	if totalPages < 1 {
		return
	}
	p.page = min(totalPages, p.page+1)
}

// Last moves to the last page.
func (p *Pager) Last(totalPages int) {
	if totalPages < 1 {
		return
	}
	p.page = totalPages
}

// Jump moves to page n. The control strip only offers in-range numbers, but
// out-of-range jumps are clamped anyway.
func (p *Pager) Jump(n, totalPages int) {
	if totalPages < 1 {
		return
	}
	p.page = lo.Clamp(n, 1, totalPages)
}

// Slice returns the records visible on the current page. The stale-page
// invariant is applied first: when the collection shrank below the current
// page, the pager resets to page 1 within the same computation, so a
// shrunk collection never shows an empty page.
func (p *Pager) Slice(records []Record) []Record {
	total := p.TotalPages(len(records))
	if p.page > total && total > 0 {
		p.page = 1
	}
	start := (p.page - 1) * p.pageSize
	if start >= len(records) {
		return nil
	}
	end := min(start+p.pageSize, len(records))
	return records[start:end]
}

// Window computes the compressed indicator strip for the given current page
// and page count. The branch thresholds are part of the contract: they fix
// which pages are reachable with one press, since ellipsis entries are not
// interactive.
//
// Shapes produced for total > 5 (current page marked):
//
//	current <= 3:        1 2 3 4 … total
//	current >= total-2:  1 … total-3 total-2 total-1 total
//	otherwise:           1 … current-1 current current+1 … total
func Window(current, total int) []PageIndicator {
	switch {
	case total <= uncompressedMax:
		return lo.Map(lo.RangeFrom(1, max(total, 0)), func(n int, _ int) PageIndicator {
			return PageIndicator(n)
		})
	case current <= 3:
		return []PageIndicator{1, 2, 3, 4, Ellipsis, PageIndicator(total)}
	case current >= total-2:
		return []PageIndicator{
			1, Ellipsis,
			PageIndicator(total - 3), PageIndicator(total - 2),
			PageIndicator(total - 1), PageIndicator(total),
		}
	default:
		return []PageIndicator{
			1, Ellipsis,
			PageIndicator(current - 1), PageIndicator(current), PageIndicator(current + 1),
			Ellipsis, PageIndicator(total),
		}
	}
}
