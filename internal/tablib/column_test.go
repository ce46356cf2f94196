package tablib

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellFieldLookup(t *testing.T) {
	rec := Record{
		"name":    "ada",
		"age":     int64(36),
		"ratio":   2.5,
		"active":  true,
		"note":    nil,
		"blob":    []byte("raw"),
		"count":   7,
		"joined":  time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		"updated": time.Date(2024, 3, 9, 13, 30, 5, 0, time.UTC),
	}

	tests := []struct {
		field string
		want  string
	}{
		{"name", "ada"},
		{"age", "36"},
		{"ratio", "2.5"},
		{"active", "true"},
		{"note", ""},
		{"blob", "raw"},
		{"count", "7"},
		{"joined", "2024-03-09"},
		{"updated", "2024-03-09T13:30:05Z"},
		{"missing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			col := ColumnSpec{Header: tt.field, Field: tt.field}
			assert.Equal(t, tt.want, col.Cell(rec))
		})
	}
}

func TestCellTransformWinsOverField(t *testing.T) {
	col := ColumnSpec{
		Header: "Name",
		Field:  "name",
		Transform: func(r Record) string {
			return strings.ToUpper(Coerce(r["name"]))
		},
	}
	assert.Equal(t, "ADA", col.Cell(Record{"name": "ada"}))
}

func TestCellTransformResultVerbatim(t *testing.T) {
	// Transform output is not coerced or trimmed.
	col := ColumnSpec{
		Header:    "Styled",
		Transform: func(Record) string { return "  spaced  " },
	}
	assert.Equal(t, "  spaced  ", col.Cell(Record{}))
}

func TestRecordKey(t *testing.T) {
	rec := Record{"id": int64(42)}
	assert.Equal(t, "42", rec.Key("id"))
	assert.Equal(t, "", rec.Key("nope"))
}

func TestPartitionForCard(t *testing.T) {
	columns := []ColumnSpec{
		{Header: "ID", Field: "id", MobileHighlight: true},
		{Header: "Name", Field: "name"},
		{Header: "Size", Field: "size", HideOnMobile: true},
		{Header: "Status", Field: "status", MobileHighlight: true},
		{Header: "Notes", Field: "notes"},
		{Header: ActionsHeader, Field: "actions"},
	}

	groups := PartitionForCard(columns)

	require.Len(t, groups.Highlights, 2)
	assert.Equal(t, "ID", groups.Highlights[0].Header)
	assert.Equal(t, "Status", groups.Highlights[1].Header)

	require.Len(t, groups.Details, 2)
	assert.Equal(t, "Name", groups.Details[0].Header)
	assert.Equal(t, "Notes", groups.Details[1].Header)

	require.NotNil(t, groups.Actions)
	assert.Equal(t, ActionsHeader, groups.Actions.Header)
}

func TestPartitionForCardEmptyGroups(t *testing.T) {
	groups := PartitionForCard([]ColumnSpec{
		{Header: "A", Field: "a"},
		{Header: "B", Field: "b"},
	})
	assert.Empty(t, groups.Highlights)
	assert.Len(t, groups.Details, 2)
	assert.Nil(t, groups.Actions)
}

func TestPartitionForCardDropsHiddenColumns(t *testing.T) {
	groups := PartitionForCard([]ColumnSpec{
		{Header: "A", Field: "a", HideOnMobile: true, MobileHighlight: true},
		{Header: ActionsHeader, Field: "x", HideOnMobile: true},
	})
	assert.Empty(t, groups.Highlights)
	assert.Empty(t, groups.Details)
	assert.Nil(t, groups.Actions)
}

func TestPartitionForCardHighlightBeatsActions(t *testing.T) {
	// A column that is both highlighted and labeled Actions lands in the
	// highlight group only, keeping the groups disjoint.
	groups := PartitionForCard([]ColumnSpec{
		{Header: ActionsHeader, Field: "x", MobileHighlight: true},
		{Header: "Name", Field: "name"},
	})
	require.Len(t, groups.Highlights, 1)
	assert.Nil(t, groups.Actions)
}
