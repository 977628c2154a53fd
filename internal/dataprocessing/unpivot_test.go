package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wideTable builds a wide-format table from raw cell strings, classifying
// them the way the parser does.
func wideTable(t *testing.T, columns []string, rows ...[]string) *Table {
	t.Helper()
	table := NewTable(columns...)
	for _, raw := range rows {
		table.Rows = append(table.Rows, classifyRow(raw, len(columns)))
	}
	return table
}

var wideColumns = []string{
	"date", "users_active", "total_sales", "new_customers", "report_generated",
	"col_1", "col_2", "col_3", "col_4", "col_5", "col_6",
}

func TestUnpivot_CompleteGroup(t *testing.T) {
	table := wideTable(t, wideColumns,
		[]string{"2024-01-01", "10", "500", "2", "True", "East", "100", "5", "", "", ""},
	)

	out := Unpivot(table)
	require.Len(t, out.Rows, 1)

	assert.Equal(t, OutputColumns, out.Columns)
	assert.Equal(t, "2024-01-01", out.Get(0, ColDate).String())
	assert.Equal(t, float64(10), out.Get(0, ColUsersActive).Num)
	assert.Equal(t, float64(500), out.Get(0, ColTotalSales).Num)
	assert.Equal(t, float64(2), out.Get(0, ColNewCustomers).Num)
	assert.Equal(t, "East", out.Get(0, ColRegion).Text)
	assert.Equal(t, float64(100), out.Get(0, ColRegionalSales).Num)
	assert.Equal(t, float64(5), out.Get(0, ColProductID).Num)
}

func TestUnpivot_MultipleGroupsPerRow(t *testing.T) {
	table := wideTable(t, wideColumns,
		[]string{"2024-01-01", "10", "500", "2", "True", "East", "100", "5", "West", "250", "7"},
	)

	out := Unpivot(table)
	require.Len(t, out.Rows, 2)

	assert.Equal(t, "East", out.Get(0, ColRegion).Text)
	assert.Equal(t, float64(100), out.Get(0, ColRegionalSales).Num)
	assert.Equal(t, "West", out.Get(1, ColRegion).Text)
	assert.Equal(t, float64(250), out.Get(1, ColRegionalSales).Num)
	assert.Equal(t, float64(7), out.Get(1, ColProductID).Num)
}

func TestUnpivot_MissingSalesCell(t *testing.T) {
	// col_2 empty: the product id must not shift into the sales slot.
	table := wideTable(t, wideColumns,
		[]string{"2024-01-01", "10", "500", "2", "True", "East", "", "5", "", "", ""},
	)

	out := Unpivot(table)
	require.Len(t, out.Rows, 1)

	assert.Equal(t, "East", out.Get(0, ColRegion).Text)
	// The number two columns after the region is still the product id;
	// sales stays empty for downstream defaulting.
	assert.True(t, out.Get(0, ColRegionalSales).IsEmpty())
	assert.Equal(t, float64(5), out.Get(0, ColProductID).Num)
}

func TestUnpivot_ShiftedGroups(t *testing.T) {
	// A dropped cell shifts the second group left; anchoring on content
	// keeps West paired with its own numbers.
	table := wideTable(t, wideColumns,
		[]string{"2024-01-01", "10", "500", "2", "True", "East", "100", "West", "250", "7", ""},
	)

	out := Unpivot(table)
	require.Len(t, out.Rows, 2)

	assert.Equal(t, "East", out.Get(0, ColRegion).Text)
	assert.Equal(t, float64(100), out.Get(0, ColRegionalSales).Num)
	assert.True(t, out.Get(0, ColProductID).IsEmpty())

	assert.Equal(t, "West", out.Get(1, ColRegion).Text)
	assert.Equal(t, float64(250), out.Get(1, ColRegionalSales).Num)
	assert.Equal(t, float64(7), out.Get(1, ColProductID).Num)
}

func TestUnpivot_BareRegion(t *testing.T) {
	// A region with no following numerics still yields a partial record.
	table := wideTable(t, wideColumns,
		[]string{"2024-01-01", "10", "500", "2", "True", "North", "", "", "", "", ""},
	)

	out := Unpivot(table)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "North", out.Get(0, ColRegion).Text)
	assert.True(t, out.Get(0, ColRegionalSales).IsEmpty())
	assert.True(t, out.Get(0, ColProductID).IsEmpty())
}

func TestUnpivot_RegionFollowedByRegion(t *testing.T) {
	table := wideTable(t, wideColumns,
		[]string{"2024-01-01", "10", "500", "2", "True", "North", "South", "300", "8", "", ""},
	)

	out := Unpivot(table)
	require.Len(t, out.Rows, 2)

	// North flushes as a bare partial record when South opens.
	assert.Equal(t, "North", out.Get(0, ColRegion).Text)
	assert.True(t, out.Get(0, ColRegionalSales).IsEmpty())

	assert.Equal(t, "South", out.Get(1, ColRegion).Text)
	assert.Equal(t, float64(300), out.Get(1, ColRegionalSales).Num)
	assert.Equal(t, float64(8), out.Get(1, ColProductID).Num)
}

func TestUnpivot_NumberBeforeAnyRegion(t *testing.T) {
	table := wideTable(t, wideColumns,
		[]string{"2024-01-01", "10", "500", "2", "True", "42", "East", "100", "5", "", ""},
	)

	out := Unpivot(table)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "East", out.Get(0, ColRegion).Text)
	assert.Equal(t, float64(100), out.Get(0, ColRegionalSales).Num)
	assert.Equal(t, float64(5), out.Get(0, ColProductID).Num)
}

func TestUnpivot_SurplusNumberDiscarded(t *testing.T) {
	table := wideTable(t, wideColumns,
		[]string{"2024-01-01", "10", "500", "2", "True", "East", "100", "5", "999", "", ""},
	)

	out := Unpivot(table)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, float64(100), out.Get(0, ColRegionalSales).Num)
	assert.Equal(t, float64(5), out.Get(0, ColProductID).Num)
}

func TestUnpivot_EmptyGroupColumnsYieldNothing(t *testing.T) {
	table := wideTable(t, wideColumns,
		[]string{"2024-01-01", "10", "500", "2", "True", "", "", "", "", "", ""},
		[]string{"2024-01-02", "12", "600", "3", "True", "East", "100", "5", "", "", ""},
	)

	out := Unpivot(table)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "2024-01-02", out.Get(0, ColDate).String())
}

func TestUnpivot_PreservesRowOrder(t *testing.T) {
	table := wideTable(t, wideColumns,
		[]string{"2024-01-02", "12", "600", "3", "True", "West", "250", "7", "", "", ""},
		[]string{"2024-01-01", "10", "500", "2", "True", "East", "100", "5", "North", "50", "9"},
	)

	out := Unpivot(table)
	require.Len(t, out.Rows, 3)
	assert.Equal(t, "West", out.Get(0, ColRegion).Text)
	assert.Equal(t, "East", out.Get(1, ColRegion).Text)
	assert.Equal(t, "North", out.Get(2, ColRegion).Text)
}

func TestUnpivot_EmptyTable(t *testing.T) {
	table := NewTable(wideColumns...)
	out := Unpivot(table)
	assert.Empty(t, out.Rows)
	assert.Equal(t, OutputColumns, out.Columns)
}
