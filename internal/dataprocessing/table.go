package dataprocessing

import (
	"strconv"
	"strings"
	"time"
)

// Column names of the FinMark marketing report. The identifying columns are
// shared by every repeating group within a source row; the group columns
// carry the (region, regional sales, product id) triplets in wide layouts.
const (
	ColDate            = "date"
	ColUsersActive     = "users_active"
	ColTotalSales      = "total_sales"
	ColNewCustomers    = "new_customers"
	ColReportGenerated = "report_generated"
	ColRegion          = "region"
	ColRegionalSales   = "regional_sales"
	ColProductID       = "product_id"

	// GroupColumnPrefix marks the variable-count wide columns.
	GroupColumnPrefix = "col_"

	// UnknownRegion is the sentinel written over region values outside the
	// inferred vocabulary and over missing regions.
	UnknownRegion = "Unknown"
)

// IdentifyingColumns is the fixed set of columns every output row carries.
var IdentifyingColumns = []string{
	ColDate, ColUsersActive, ColTotalSales, ColNewCustomers, ColReportGenerated,
}

// OutputColumns is the fixed column order of the cleaned table. Downstream
// consumers (notably the forecaster) rely on this exact order.
var OutputColumns = []string{
	ColDate, ColUsersActive, ColTotalSales, ColNewCustomers, ColReportGenerated,
	ColRegion, ColRegionalSales, ColProductID,
}

// ValueKind tags a cell value as empty, text or numeric.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueText
	ValueNumber
)

// Value is a single classified cell. Classification happens once at
// ingestion; every later stage transitions on the Kind tag instead of
// re-sniffing cell content.
type Value struct {
	Kind ValueKind
	Text string
	Num  float64
}

// Empty returns the empty cell value
func Empty() Value {
	return Value{Kind: ValueEmpty}
}

// TextValue returns a text cell value
func TextValue(s string) Value {
	return Value{Kind: ValueText, Text: s}
}

// NumberValue returns a numeric cell value
func NumberValue(f float64) Value {
	return Value{Kind: ValueNumber, Num: f}
}

// Classify turns a raw cell string into a tagged Value. Blank cells and the
// common spreadsheet missing markers classify as empty; cells that parse as
// numbers (thousands separators allowed) classify as numeric; everything
// else stays text.
func Classify(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Empty()
	}
	if f, ok := parseNumber(s); ok {
		return NumberValue(f)
	}
	return TextValue(s)
}

// parseNumber parses a numeric cell, tolerating thousands separators
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsEmpty reports whether the cell is missing
func (v Value) IsEmpty() bool {
	return v.Kind == ValueEmpty
}

// AsNumber attempts a numeric reading of the cell. Numeric cells succeed
// directly; text cells succeed only if their content parses as a number.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case ValueNumber:
		return v.Num, true
	case ValueText:
		return parseNumber(v.Text)
	default:
		return 0, false
	}
}

// String renders the cell for CSV output and warning samples
func (v Value) String() string {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// Table is an in-memory table of classified cells. Column order is
// significant: the wide-format group columns must be scanned in their
// original left-to-right order.
//
// Pipeline stages treat tables as immutable inputs and return new ones.
type Table struct {
	Columns []string
	Rows    [][]Value
}

// NewTable creates an empty table with the given columns
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// ColumnIndex returns the position of the named column, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Get returns the cell at (row, column name); absent cells read as empty
func (t *Table) Get(row int, name string) Value {
	i := t.ColumnIndex(name)
	if i < 0 || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return Empty()
	}
	return t.Rows[row][i]
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]Value, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]Value(nil), row...)
	}
	return out
}

// GroupColumns returns the ordered names of the wide-format group columns
func (t *Table) GroupColumns() []string {
	var cols []string
	for _, c := range t.Columns {
		if strings.HasPrefix(c, GroupColumnPrefix) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Record is the typed long-format output unit produced by type finalization.
// After remediation every field is populated: RegionalSales is 0 and
// ProductID is -1 only when the source held nothing recoverable.
type Record struct {
	Date            time.Time
	UsersActive     int64
	TotalSales      float64
	NewCustomers    int64
	ReportGenerated string
	Region          string
	RegionalSales   float64
	ProductID       int64
}

// DateFormat is the canonical date rendering of the cleaned table
const DateFormat = "2006-01-02"
