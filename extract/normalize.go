package extract

import (
	"strconv"

	"github.com/tablescrape/tablescrape/models"
)

// Normalize converts a raw table into an ordered sequence of uniform records.
//
// With headers, every row is coerced to the header count: short rows are
// right-padded with empty strings and long rows are truncated. The loss is
// deliberate; it guarantees a rectangular shape.
//
// Without headers, records use positional keys ("0", "1", ...) and row
// lengths are preserved as-is, so consumers must tolerate ragged records.
//
// A table with zero usable rows normalizes to an empty table, which the
// caller must not persist. There are no error paths: malformed fragments
// just yield fewer rows.
func Normalize(raw models.RawTable) models.NormalizedTable {
	var out models.NormalizedTable

	if len(raw.Rows) == 0 {
		return out
	}

	if len(raw.Headers) > 0 {
		n := len(raw.Headers)
		for _, row := range raw.Rows {
			values := make([]string, n)
			copy(values, row) // truncates when len(row) > n
			out.Records = append(out.Records, models.Record{
				Keys:   raw.Headers,
				Values: values,
			})
		}
		return out
	}

	for _, row := range raw.Rows {
		keys := make([]string, len(row))
		for i := range row {
			keys[i] = strconv.Itoa(i)
		}
		out.Records = append(out.Records, models.Record{
			Keys:   keys,
			Values: row,
		})
	}
	return out
}
