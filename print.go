package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tably/internal/tablib"
)

var (
	printHeaderStyle = lipgloss.NewStyle().Bold(true)
	printLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	printNullStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	printStatusStyle = lipgloss.NewStyle().Background(lipgloss.Color("8")).Foreground(lipgloss.Color("15"))
)

// printTable renders one page of the table to a string for non-interactive
// output. It picks cards below the card-width threshold and the grid
// otherwise, mirroring the interactive layout switch.
func printTable(data *TableData, options ViewerOptions, termWidth int) string {
	pager := tablib.NewPager(options.PageSize)

	records := data.Records
	totalPages := 1
	if options.Pagination {
		records = pager.Slice(data.Records)
		totalPages = pager.TotalPages(len(data.Records))
	}

	var b strings.Builder
	if options.CardView && termWidth > 0 && termWidth < options.CardWidth {
		printCards(&b, data.Columns, records)
	} else {
		printGrid(&b, data.Columns, records)
	}

	status := fmt.Sprintf(" %s · %d rows", data.Name, len(data.Records))
	if options.Pagination && totalPages > 1 {
		status += fmt.Sprintf(" · page %d/%d", pager.Page(), totalPages)
	}
	b.WriteString(printStatusStyle.Render(status))
	b.WriteString("\n")

	return b.String()
}

// printGrid writes a bordered row/column table.
func printGrid(b *strings.Builder, columns []tablib.ColumnSpec, records []tablib.Record) {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col.Header)
		for _, rec := range records {
			if w := runewidth.StringWidth(col.Cell(rec)); w > widths[i] {
				widths[i] = w
			}
		}
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}

	rule := func(left, junction, right string) {
		b.WriteString(left)
		for i, w := range widths {
			if i > 0 {
				b.WriteString(junction)
			}
			b.WriteString(strings.Repeat("─", w+2))
		}
		b.WriteString(right)
		b.WriteString("\n")
	}

	rule("┌", "┬", "┐")

	b.WriteString("│")
	for i, col := range columns {
		header := padCellToWidth(col.Header, widths[i])
		b.WriteString(" " + printHeaderStyle.Render(header) + " │")
	}
	b.WriteString("\n")

	rule("├", "┼", "┤")

	for _, rec := range records {
		b.WriteString("│")
		for i, col := range columns {
			cell := col.Cell(rec)
			if cell == "" && col.Field != "" && rec[col.Field] == nil {
				b.WriteString(" " + printNullStyle.Render(padCellToWidth(NullGlyph, widths[i])) + " │")
				continue
			}
			b.WriteString(" " + padCellToWidth(cell, widths[i]) + " │")
		}
		b.WriteString("\n")
	}

	rule("└", "┴", "┘")
}

// printCards writes one stacked card per record.
func printCards(b *strings.Builder, columns []tablib.ColumnSpec, records []tablib.Record) {
	groups := tablib.PartitionForCard(columns)

	labelWidth := 0
	for _, col := range groups.Details {
		if w := runewidth.StringWidth(col.Header); w > labelWidth {
			labelWidth = w
		}
	}

	for _, rec := range records {
		b.WriteString("───\n")

		if len(groups.Highlights) > 0 {
			parts := make([]string, 0, len(groups.Highlights))
			for _, col := range groups.Highlights {
				parts = append(parts, col.Cell(rec))
			}
			b.WriteString(printHeaderStyle.Render(strings.Join(parts, " · ")))
			b.WriteString("\n")
		}

		for _, col := range groups.Details {
			label := padCellToWidth(col.Header, labelWidth)
			value := col.Cell(rec)
			if value == "" && col.Field != "" && rec[col.Field] == nil {
				value = printNullStyle.Render(NullGlyph)
			}
			b.WriteString(printLabelStyle.Render(label) + "  " + value + "\n")
		}

		if groups.Actions != nil {
			b.WriteString(groups.Actions.Cell(rec))
			b.WriteString("\n")
		}
	}
	if len(records) > 0 {
		b.WriteString("───\n")
	}
}
