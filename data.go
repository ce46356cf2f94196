package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"tably/internal/tablib"
)

// wideCellThreshold marks columns whose content is too wide for the card
// layout; they are flagged HideOnMobile and stay grid-only.
const wideCellThreshold = 40

// TableData is one loaded collection with its derived column specs. The
// viewer treats both slices as read-only.
type TableData struct {
	Name    string
	Columns []tablib.ColumnSpec
	Records []tablib.Record
}

// quoteIdent quotes a column or table identifier for the database type.
func quoteIdent(dbType DatabaseType, ident string) string {
	switch dbType {
	case MySQL:
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	}
}

// loadTable reads an entire table into memory. Pagination is client-side,
// so one read-only SELECT fetches the full collection.
func loadTable(db *sql.DB, dbType DatabaseType, table string) (*TableData, error) {
	query := fmt.Sprintf("SELECT * FROM %s", quoteIdent(dbType, table))
	data, err := loadQuery(db, query)
	if err != nil {
		return nil, err
	}
	data.Name = table
	return data, nil
}

// loadQuery runs a read-only statement and converts the result set into
// records keyed by column name.
func loadQuery(db *sql.DB, query string) (*TableData, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("could not read result columns: %w", err)
	}

	var records []tablib.Record
	for rows.Next() {
		values := make([]any, len(columns))
		// scan into pointers
		scanArgs := make([]any, len(values))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		rec := make(tablib.Record, len(columns))
		for i, col := range columns {
			rec[col] = values[i]
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &TableData{
		Name:    "query",
		Columns: buildColumnSpecs(columns, records),
		Records: records,
	}, nil
}

// loadCSV reads a CSV file with a header row into a collection. All cells
// are strings.
func loadCSV(path string) (*TableData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse csv: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("csv file has no header row")
	}

	header := all[0]
	records := make([]tablib.Record, 0, len(all)-1)
	for _, row := range all[1:] {
		rec := make(tablib.Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &TableData{
		Name:    name,
		Columns: buildColumnSpecs(header, records),
		Records: records,
	}, nil
}

// buildColumnSpecs derives widget column specs from plain result columns.
// The first column acts as the row identity and is promoted to the card
// highlight line; columns with very wide content stay grid-only.
func buildColumnSpecs(names []string, records []tablib.Record) []tablib.ColumnSpec {
	specs := make([]tablib.ColumnSpec, len(names))
	for i, name := range names {
		spec := tablib.ColumnSpec{
			Header: name,
			Field:  name,
		}
		if i == 0 {
			spec.MobileHighlight = true
		} else if maxCellWidth(name, records) > wideCellThreshold {
			spec.HideOnMobile = true
		}
		specs[i] = spec
	}
	return specs
}

// maxCellWidth measures the widest cell of a field across the collection.
func maxCellWidth(field string, records []tablib.Record) int {
	width := 0
	for _, rec := range records {
		if w := runewidth.StringWidth(tablib.Coerce(rec[field])); w > width {
			width = w
		}
	}
	return width
}
