package tablib

import "github.com/samber/lo"

// ActionsHeader is the header label that marks a column as the trailing
// actions column in the card layout. Placement keys off the exact label.
const ActionsHeader = "Actions"

// ColumnSpec describes one column of the widget. A column resolves its cell
// content either through Field (a lookup on the record) or Transform (a
// function of the whole record). Transform wins when both are set.
type ColumnSpec struct {
	Header    string
	Field     string
	Transform func(Record) string

	// HideOnMobile omits the column from the card layout. The grid layout
	// still renders it; some columns are deliberately grid-only.
	HideOnMobile bool

	// MobileHighlight promotes the column to the card's unlabeled
	// highlight line, rendered before the detail rows.
	MobileHighlight bool
}

// Cell resolves the display text of this column for the given record.
// A missing field yields an empty cell, never an error.
func (c ColumnSpec) Cell(rec Record) string {
	if c.Transform != nil {
		return c.Transform(rec)
	}
	value, ok := rec[c.Field]
	if !ok {
		return ""
	}
	return Coerce(value)
}

// IsActions reports whether the column is the trailing actions column.
func (c ColumnSpec) IsActions() bool {
	return c.Header == ActionsHeader
}

// CardGroups are the three disjoint column groups of the card layout, in
// their fixed rendering order.
type CardGroups struct {
	// Highlights render first, inline and unlabeled.
	Highlights []ColumnSpec
	// Details render as label/value rows.
	Details []ColumnSpec
	// Actions renders last, visually separated. Nil when no column carries
	// the actions header.
	Actions *ColumnSpec
}

// PartitionForCard splits columns into the card layout groups. Columns
// marked HideOnMobile are dropped entirely; the remaining columns land in
// exactly one group. Relative column order is preserved within each group.
func PartitionForCard(columns []ColumnSpec) CardGroups {
	visible := lo.Filter(columns, func(c ColumnSpec, _ int) bool {
		return !c.HideOnMobile
	})

	// Group priority: highlight wins over the actions slot, so the three
	// groups stay disjoint even for a mislabeled highlight column.
	groups := CardGroups{
		Highlights: lo.Filter(visible, func(c ColumnSpec, _ int) bool {
			return c.MobileHighlight
		}),
		Details: lo.Filter(visible, func(c ColumnSpec, _ int) bool {
			return !c.MobileHighlight && !c.IsActions()
		}),
	}
	if actions, ok := lo.Find(visible, func(c ColumnSpec) bool {
		return c.IsActions() && !c.MobileHighlight
	}); ok {
		groups.Actions = &actions
	}
	return groups
}
