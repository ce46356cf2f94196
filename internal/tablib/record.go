package tablib

import (
	"fmt"
	"strconv"
	"time"
)

// Record is one row of a collection, keyed by column name. Collections are
// ordered slices of records with a uniform shape; the order is preserved
// end to end and never re-sorted by the widget.
type Record map[string]any

// Key returns the record's identity under the given key field, coerced to
// text. Rendering uses it as a stable per-row key.
func (r Record) Key(field string) string {
	return Coerce(r[field])
}

// Coerce converts a raw cell value to its display text. Nil and absent
// values coerce to the empty string rather than an error.
func Coerce(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case time.Time:
		// Date-only values render without a time component
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", value)
	}
}
