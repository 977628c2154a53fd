package dataprocessing

import "log/slog"

// Condition identifies the class of anomaly a warning reports
type Condition string

const (
	ConditionMissingColumn        Condition = "missing_column"
	ConditionEmptyTable           Condition = "empty_table"
	ConditionUnparseableDate      Condition = "unparseable_date"
	ConditionUnrecognizedCategory Condition = "unrecognized_category"
	ConditionNonNumericValue      Condition = "non_numeric_value"
)

// maxSampleRows bounds the evidence attached to a warning
const maxSampleRows = 10

// Warning records one detected-and-repaired anomaly: the condition, the
// affected column, how many rows were touched, and a bounded sample of the
// offending rows for audit.
type Warning struct {
	Condition Condition
	Column    string
	Rows      int
	Sample    []string
}

// Report is the append-only remediation report built up as the pipeline
// repairs the table. It exists so callers and tests can assert on warning
// counts instead of parsing log output; every warning is also logged as it
// is added.
type Report struct {
	Warnings []Warning
}

// Add appends a warning to the report
func (r *Report) Add(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

// Merge appends all warnings from another report
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Empty reports whether no warnings were recorded
func (r *Report) Empty() bool {
	return len(r.Warnings) == 0
}

// Count returns the number of warnings recorded for a condition
func (r *Report) Count(cond Condition) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Condition == cond {
			n++
		}
	}
	return n
}

// RowsAffected returns the total affected-row count for a condition
func (r *Report) RowsAffected(cond Condition) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Condition == cond {
			n += w.Rows
		}
	}
	return n
}

// LogValue renders the warning as structured log attributes
func (w Warning) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("condition", string(w.Condition)),
		slog.String("column", w.Column),
		slog.Int("rows", w.Rows),
		slog.Any("sample", w.Sample),
	)
}
