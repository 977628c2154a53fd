package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finmark/internal/dataprocessing"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestResultWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed", "marketing_summary_cleaned.csv")

	records := []dataprocessing.Record{
		{
			Date:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			UsersActive:     10,
			TotalSales:      500,
			NewCustomers:    2,
			ReportGenerated: "True",
			Region:          "East",
			RegionalSales:   100.5,
			ProductID:       5,
		},
		{
			Date:            time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			UsersActive:     12,
			TotalSales:      600,
			NewCustomers:    3,
			ReportGenerated: "True",
			Region:          "Unknown",
			RegionalSales:   0,
			ProductID:       -1,
		},
	}

	require.NoError(t, NewResultWriter().Write(path, records))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"date", "users_active", "total_sales", "new_customers",
		"report_generated", "region", "regional_sales", "product_id",
	}, rows[0])

	assert.Equal(t, []string{"2024-01-01", "10", "500", "2", "True", "East", "100.5", "5"}, rows[1])
	assert.Equal(t, []string{"2024-01-02", "12", "600", "3", "True", "Unknown", "0", "-1"}, rows[2])
}

func TestResultWriter_EmptyRecordsStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned.csv")

	require.NoError(t, NewResultWriter().Write(path, nil))

	rows := readCSV(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, "date", rows[0][0])
}

func TestCSVWriter_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewCSVWriter()

	require.NoError(t, w.WriteSimpleCSV(path, []string{"a", "b"}, [][]string{{"1", "2"}}))
	require.NoError(t, w.WriteCSV(path, WriteOptions{
		Records: [][]string{{"3", "4"}},
		Append:  true,
	}))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestStreamWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream", "out.csv")
	w := NewCSVWriter()

	stream, err := w.CreateStreamWriter(path, []string{"ds", "yhat"})
	require.NoError(t, err)
	require.NoError(t, stream.WriteRecord([]string{"2024-01-01", "512.5"}))
	require.NoError(t, stream.WriteRecord([]string{"2024-01-02", "530.1"}))
	require.NoError(t, stream.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ds", "yhat"}, rows[0])
}
