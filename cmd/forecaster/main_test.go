package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finmark/internal/forecasting"
)

func TestWriteForecastCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "sales_forecast.csv")

	forecast := []forecasting.ForecastPoint{
		{
			Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Predicted: 512.5,
			Trend:     500,
			Weekly:    12.5,
		},
		{
			Date:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Predicted: 505,
			Trend:     510,
			Weekly:    -5,
		},
	}

	require.NoError(t, writeForecastCSV(path, forecast))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ds", "yhat", "trend", "weekly"}, rows[0])
	assert.Equal(t, []string{"2024-01-01", "512.5", "500", "12.5"}, rows[1])
	assert.Equal(t, []string{"2024-01-02", "505", "510", "-5"}, rows[2])
}

func TestWriteForecastCSV_EmptyForecast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_forecast.csv")

	require.NoError(t, writeForecastCSV(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ds,yhat,trend,weekly\n", string(data))
}
