package tablib

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(count int) []Record {
	records := make([]Record, count)
	for i := range records {
		records[i] = Record{"id": i + 1}
	}
	return records
}

func TestWindowFixtures(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []PageIndicator
	}{
		{"single page", 1, 1, []PageIndicator{1}},
		{"five pages uncompressed", 3, 5, []PageIndicator{1, 2, 3, 4, 5}},
		{"head window", 1, 10, []PageIndicator{1, 2, 3, 4, Ellipsis, 10}},
		{"head window page 3", 3, 10, []PageIndicator{1, 2, 3, 4, Ellipsis, 10}},
		{"middle window", 7, 10, []PageIndicator{1, Ellipsis, 6, 7, 8, Ellipsis, 10}},
		{"tail window", 9, 10, []PageIndicator{1, Ellipsis, 7, 8, 9, 10}},
		{"tail boundary", 8, 10, []PageIndicator{1, Ellipsis, 7, 8, 9, 10}},
		{"first middle page", 4, 10, []PageIndicator{1, Ellipsis, 3, 4, 5, Ellipsis, 10}},
		{"six pages head", 2, 6, []PageIndicator{1, 2, 3, 4, Ellipsis, 6}},
		{"six pages tail", 4, 6, []PageIndicator{1, Ellipsis, 3, 4, 5, 6}},
		{"no pages", 1, 0, []PageIndicator{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Window(tt.current, tt.total))
		})
	}
}

func TestWindowSmallTotalsIgnoreCurrent(t *testing.T) {
	// Below the compression threshold every page is listed, no matter
	// which one is current.
	for total := 0; total <= 5; total++ {
		want := make([]PageIndicator, 0, total)
		for n := 1; n <= total; n++ {
			want = append(want, PageIndicator(n))
		}
		for current := 1; current <= max(total, 1); current++ {
			assert.Equal(t, want, Window(current, total), "total=%d current=%d", total, current)
		}
	}
}

func TestWindowInvariants(t *testing.T) {
	for total := 6; total <= 40; total++ {
		for current := 1; current <= total; current++ {
			t.Run(fmt.Sprintf("total=%d/current=%d", total, current), func(t *testing.T) {
				window := Window(current, total)

				require.GreaterOrEqual(t, len(window), 5)
				require.LessOrEqual(t, len(window), 7)

				ellipses := 0
				seen := map[PageIndicator]bool{}
				for i, ind := range window {
					if ind.IsEllipsis() {
						ellipses++
						if i > 0 {
							require.False(t, window[i-1].IsEllipsis(), "adjacent ellipses at %d", i)
						}
						continue
					}
					require.False(t, seen[ind], "duplicate page %d", ind)
					seen[ind] = true
					require.GreaterOrEqual(t, int(ind), 1)
					require.LessOrEqual(t, int(ind), total)
				}
				require.GreaterOrEqual(t, ellipses, 1)
				require.LessOrEqual(t, ellipses, 2)
				require.True(t, seen[1], "first page missing")
				require.True(t, seen[PageIndicator(total)], "last page missing")
				require.True(t, seen[PageIndicator(current)], "current page missing")
			})
		}
	}
}

func TestSliceReconstructsCollection(t *testing.T) {
	// Concatenating all pages yields the collection with no gaps or
	// overlaps; only the final page may be short.
	for _, count := range []int{0, 1, 9, 10, 11, 23, 100} {
		records := numbered(count)
		pager := NewPager(10)

		var got []Record
		total := pager.TotalPages(count)
		for page := 1; page <= total; page++ {
			pager.Jump(page, total)
			chunk := pager.Slice(records)
			if page < total {
				require.Len(t, chunk, 10)
			}
			got = append(got, chunk...)
		}
		if count == 0 {
			require.Empty(t, got)
			continue
		}
		require.Equal(t, records, got, "count=%d", count)
	}
}

func TestSliceExample(t *testing.T) {
	// 23 records, page size 10, page 3: the short final page.
	records := numbered(23)
	pager := NewPager(10)
	require.Equal(t, 3, pager.TotalPages(len(records)))

	pager.Jump(3, 3)
	chunk := pager.Slice(records)
	require.Len(t, chunk, 3)
	assert.Equal(t, records[20:], chunk)
}

func TestSliceSelfCorrection(t *testing.T) {
	// A pager stranded on page 5 over a collection that shrank to 2 pages
	// resets to page 1 before slicing.
	pager := NewPager(10)
	pager.Jump(5, 5)
	require.Equal(t, 5, pager.Page())

	records := numbered(15)
	chunk := pager.Slice(records)

	assert.Equal(t, 1, pager.Page())
	assert.Equal(t, records[:10], chunk)
}

func TestSliceEmptyCollection(t *testing.T) {
	pager := NewPager(10)
	require.Equal(t, 0, pager.TotalPages(0))
	assert.Empty(t, pager.Slice(nil))
	// No correction fires when there are no pages at all.
	assert.Equal(t, 1, pager.Page())
}

func TestTransitionsClamp(t *testing.T) {
	pager := NewPager(10)
	const total = 4

	// Prev and First are no-ops on page 1.
	pager.Prev()
	assert.Equal(t, 1, pager.Page())
	pager.First()
	assert.Equal(t, 1, pager.Page())

	pager.Next(total)
	assert.Equal(t, 2, pager.Page())
	pager.Last(total)
	assert.Equal(t, total, pager.Page())

	// Next and Last are no-ops on the last page, also when repeated.
	pager.Next(total)
	pager.Next(total)
	assert.Equal(t, total, pager.Page())
	pager.Last(total)
	assert.Equal(t, total, pager.Page())

	pager.Jump(99, total)
	assert.Equal(t, total, pager.Page())
	pager.Jump(-3, total)
	assert.Equal(t, 1, pager.Page())
}

func TestTransitionsDegenerate(t *testing.T) {
	// With no pages every transition leaves the state alone.
	pager := NewPager(10)
	pager.Next(0)
	pager.Last(0)
	pager.Jump(3, 0)
	assert.Equal(t, 1, pager.Page())
}

func TestNewPagerNormalizesSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NewPager(0).PageSize())
	assert.Equal(t, DefaultPageSize, NewPager(-7).PageSize())
	assert.Equal(t, 25, NewPager(25).PageSize())
}
