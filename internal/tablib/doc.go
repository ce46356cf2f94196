// Package tablib provides the pure data side of the tably widget set.
//
// Overview
//
// tablib has no UI dependencies. It implements:
//   - Record and ColumnSpec: a uniform row collection and per-column display
//     rules. A column resolves its cell either through a field selector or a
//     transform function.
//   - Card partitioning: splitting a column list into the highlight, detail
//     and trailing action groups used by the narrow card layout.
//   - Pager: 1-indexed page state with clamped navigation, the current-page
//     slice computation, and the compressed page-indicator window rendered by
//     the pagination control strip.
//
// All computations are total over their valid input domain; missing fields
// and shrunk collections degrade gracefully instead of returning errors.
package tablib
