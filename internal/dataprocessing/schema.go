package dataprocessing

import "log/slog"

// Layout classifies the shape of the input table
type Layout string

const (
	// LayoutWide holds repeating (region, sales, product id) column groups
	LayoutWide Layout = "wide"
	// LayoutLong holds one group per row already
	LayoutLong Layout = "long"
)

// wideSentinelColumn marks a wide layout. The group columns are numbered
// col_1, col_2, ... so the presence of col_6 means at least two full
// triplets existed in the original layout.
const wideSentinelColumn = "col_6"

// EnsureSchema guarantees the identifying columns exist, appending any
// absent one filled with zero. Existing columns are never removed or
// renamed, and a missing column is a warning, never a failure.
func EnsureSchema(table *Table) (*Table, *Report) {
	out := table.Clone()
	report := &Report{}

	for _, col := range IdentifyingColumns {
		if out.HasColumn(col) {
			continue
		}

		out.Columns = append(out.Columns, col)
		for i := range out.Rows {
			out.Rows[i] = append(out.Rows[i], NumberValue(0))
		}

		w := Warning{
			Condition: ConditionMissingColumn,
			Column:    col,
			Rows:      len(out.Rows),
		}
		report.Add(w)
		slog.Warn("required column missing, defaulted to 0",
			slog.String("column", col),
			slog.Int("rows", len(out.Rows)))
	}

	return out, report
}

// DetectLayout classifies the table as wide or long by probing column names
// only; cell values are never inspected.
func DetectLayout(table *Table) Layout {
	if table.HasColumn(wideSentinelColumn) {
		return LayoutWide
	}
	return LayoutLong
}
