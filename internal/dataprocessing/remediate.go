package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"
)

// dateLayouts are tried in order when repairing the date column
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"01/02/2006",
	"20060102",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// numericColumns are the fields the numeric repair pass coerces, and their
// defaults for the fill pass. product_id defaults to -1 so a defaulted id
// can never collide with a real one.
var numericColumns = []struct {
	name         string
	defaultValue float64
}{
	{ColUsersActive, 0},
	{ColTotalSales, 0},
	{ColNewCustomers, 0},
	{ColRegionalSales, 0},
	{ColProductID, -1},
}

// integerColumns are cast to integers during type finalization
var integerColumns = []string{ColProductID, ColUsersActive, ColNewCustomers}

// regionVocabularySize is how many of the most frequent region values are
// trusted; everything else is rewritten to UnknownRegion.
const regionVocabularySize = 4

// Remediator detects, reports and repairs corrupted values column by
// column. It fails safe toward a usable output: every anomaly is repaired
// in place and surfaced as a Report warning, never as an error.
type Remediator struct {
	logger *slog.Logger
}

// NewRemediator creates a remediator logging through the given logger
func NewRemediator(logger *slog.Logger) *Remediator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Remediator{logger: logger}
}

// Remediate runs all repair passes over the table and returns the repaired
// table plus the report of every correction made. The input table is not
// modified. Remediating an already-clean table returns an identical table
// and an empty report.
func (r *Remediator) Remediate(ctx context.Context, table *Table) (*Table, *Report) {
	report := &Report{}
	out := r.ensureOutputColumns(table)

	if len(out.Rows) == 0 {
		w := Warning{Condition: ConditionEmptyTable, Column: "", Rows: 0}
		report.Add(w)
		r.logger.WarnContext(ctx, "table is empty, skipping remediation", slog.Any("warning", w))
		return out, report
	}

	out = r.repairDates(ctx, out, report)
	out = r.repairRegions(ctx, out, report)
	out = r.repairNumeric(ctx, out, report)
	out = r.fillDefaults(out)
	out = r.finalizeTypes(out)

	r.logger.InfoContext(ctx, "remediation complete",
		slog.Int("rows", len(out.Rows)),
		slog.Int("warnings", len(report.Warnings)))

	return out, report
}

// ensureOutputColumns appends any output column the table lacks, filled
// with empty cells so the defaulting pass can populate it. Already-long
// inputs are not guaranteed to carry the group fields.
func (r *Remediator) ensureOutputColumns(table *Table) *Table {
	out := table.Clone()
	for _, col := range OutputColumns {
		if out.HasColumn(col) {
			continue
		}
		out.Columns = append(out.Columns, col)
		for i := range out.Rows {
			out.Rows[i] = append(out.Rows[i], Empty())
		}
	}
	return out
}

// repairDates parses the date column leniently and drops rows whose date
// cannot be read at all: without a time axis the row is unusable. Parsed
// dates are normalized to the canonical format.
func (r *Remediator) repairDates(ctx context.Context, table *Table, report *Report) *Table {
	out := table.Clone()
	dateIdx := out.ColumnIndex(ColDate)

	kept := out.Rows[:0]
	dropped := 0
	var sample []string

	for i, row := range out.Rows {
		cell := row[dateIdx]
		parsed, ok := parseDate(cell)
		if !ok {
			dropped++
			if len(sample) < maxSampleRows {
				sample = append(sample, fmt.Sprintf("row %d: %q", i+1, cell.String()))
			}
			continue
		}
		row[dateIdx] = TextValue(parsed.Format(DateFormat))
		kept = append(kept, row)
	}
	out.Rows = kept

	if dropped > 0 {
		w := Warning{
			Condition: ConditionUnparseableDate,
			Column:    ColDate,
			Rows:      dropped,
			Sample:    sample,
		}
		report.Add(w)
		r.logger.WarnContext(ctx, "dropped rows with unparseable dates", slog.Any("warning", w))
	}

	return out
}

// parseDate attempts a lenient reading of a date cell
func parseDate(cell Value) (time.Time, bool) {
	if cell.IsEmpty() {
		return time.Time{}, false
	}
	s := cell.String()
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// repairRegions infers the trusted region vocabulary as the most frequent
// text values observed, then rewrites any non-missing value outside it to
// UnknownRegion. Missing regions are left for the defaulting pass.
func (r *Remediator) repairRegions(ctx context.Context, table *Table, report *Report) *Table {
	out := table.Clone()
	regionIdx := out.ColumnIndex(ColRegion)

	vocab := regionVocabulary(out, regionIdx)

	rewritten := 0
	var sample []string
	for i, row := range out.Rows {
		cell := row[regionIdx]
		if cell.IsEmpty() {
			continue
		}
		if cell.Kind == ValueText && vocab[cell.Text] {
			continue
		}
		rewritten++
		if len(sample) < maxSampleRows {
			sample = append(sample, fmt.Sprintf("row %d: %q", i+1, cell.String()))
		}
		row[regionIdx] = TextValue(UnknownRegion)
	}

	if rewritten > 0 {
		w := Warning{
			Condition: ConditionUnrecognizedCategory,
			Column:    ColRegion,
			Rows:      rewritten,
			Sample:    sample,
		}
		report.Add(w)
		r.logger.WarnContext(ctx, "rewrote regions outside inferred vocabulary", slog.Any("warning", w))
	}

	return out
}

// regionVocabulary returns the top text values of the region column by
// frequency. Ties are broken by first-encountered order so reruns over the
// same input produce the same vocabulary.
func regionVocabulary(table *Table, regionIdx int) map[string]bool {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	for i, row := range table.Rows {
		cell := row[regionIdx]
		if cell.Kind != ValueText {
			continue
		}
		if _, seen := counts[cell.Text]; !seen {
			firstSeen[cell.Text] = i
			order = append(order, cell.Text)
		}
		counts[cell.Text]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		if counts[order[a]] != counts[order[b]] {
			return counts[order[a]] > counts[order[b]]
		}
		return firstSeen[order[a]] < firstSeen[order[b]]
	})

	vocab := make(map[string]bool, regionVocabularySize)
	for i, v := range order {
		if i >= regionVocabularySize {
			break
		}
		vocab[v] = true
	}
	return vocab
}

// repairNumeric coerces every numeric column, counting only values that
// were non-missing before coercion and missing after: genuinely corrupted
// content. Values already missing are not corruption.
func (r *Remediator) repairNumeric(ctx context.Context, table *Table, report *Report) *Table {
	out := table.Clone()

	for _, col := range numericColumns {
		idx := out.ColumnIndex(col.name)

		corrupted := 0
		var sample []string
		for i, row := range out.Rows {
			cell := row[idx]
			if cell.IsEmpty() {
				continue
			}
			if f, ok := cell.AsNumber(); ok {
				row[idx] = NumberValue(f)
				continue
			}
			corrupted++
			if len(sample) < maxSampleRows {
				sample = append(sample, fmt.Sprintf("row %d: %q", i+1, cell.String()))
			}
			row[idx] = Empty()
		}

		if corrupted > 0 {
			w := Warning{
				Condition: ConditionNonNumericValue,
				Column:    col.name,
				Rows:      corrupted,
				Sample:    sample,
			}
			report.Add(w)
			r.logger.WarnContext(ctx, "coerced non-numeric values to missing", slog.Any("warning", w))
		}
	}

	return out
}

// fillDefaults fills every remaining missing value with its fixed default
func (r *Remediator) fillDefaults(table *Table) *Table {
	out := table.Clone()

	for _, col := range numericColumns {
		idx := out.ColumnIndex(col.name)
		for _, row := range out.Rows {
			if row[idx].IsEmpty() {
				row[idx] = NumberValue(col.defaultValue)
			}
		}
	}

	regionIdx := out.ColumnIndex(ColRegion)
	for _, row := range out.Rows {
		if row[regionIdx].IsEmpty() {
			row[regionIdx] = TextValue(UnknownRegion)
		}
	}

	return out
}

// finalizeTypes casts the integer-typed columns to whole numbers
func (r *Remediator) finalizeTypes(table *Table) *Table {
	out := table.Clone()

	for _, col := range integerColumns {
		idx := out.ColumnIndex(col)
		for _, row := range out.Rows {
			if row[idx].Kind == ValueNumber {
				row[idx] = NumberValue(math.Trunc(row[idx].Num))
			}
		}
	}

	return out
}
