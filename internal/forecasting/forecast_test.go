package forecasting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finmark/internal/dataprocessing"
)

func day(d int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestAggregate(t *testing.T) {
	records := []dataprocessing.Record{
		{Date: day(1), TotalSales: 600, Region: "East"},
		{Date: day(0), TotalSales: 500, Region: "East"},
		{Date: day(0), TotalSales: 500, Region: "West"},
		{Date: day(1), TotalSales: 600, Region: "West"},
	}

	points := Aggregate(records)
	require.Len(t, points, 2)
	assert.Equal(t, day(0), points[0].Date)
	assert.Equal(t, float64(500), points[0].TotalSales)
	assert.Equal(t, day(1), points[1].Date)
}

func TestFit_NotEnoughHistory(t *testing.T) {
	_, err := Fit([]DailyPoint{{Date: day(0), TotalSales: 500}})
	assert.Error(t, err)
}

func TestFit_RecoversLinearTrend(t *testing.T) {
	// y = 100 + 10t, no seasonality, below the seasonal threshold
	var points []DailyPoint
	for i := 0; i < 10; i++ {
		points = append(points, DailyPoint{Date: day(i), TotalSales: 100 + 10*float64(i)})
	}

	model, err := Fit(points)
	require.NoError(t, err)

	assert.InDelta(t, 100, model.intercept, 1e-6)
	assert.InDelta(t, 10, model.slope, 1e-6)

	next := model.At(day(10))
	assert.InDelta(t, 200, next.Predicted, 1e-6)
}

func TestFit_RecoversWeeklySeasonality(t *testing.T) {
	// Flat base of 100 with a +50 bump every Saturday over four weeks
	var points []DailyPoint
	for i := 0; i < 28; i++ {
		d := day(i)
		sales := 100.0
		if d.Weekday() == time.Saturday {
			sales += 50
		}
		points = append(points, DailyPoint{Date: d, TotalSales: sales})
	}

	model, err := Fit(points)
	require.NoError(t, err)

	profile := model.WeeklyProfile()
	saturday := profile[int(time.Saturday)]
	sunday := profile[int(time.Sunday)]
	assert.InDelta(t, 50, saturday-sunday, 1e-6)

	// A future Saturday predicts the bump, a future Sunday does not
	var futureSat, futureSun ForecastPoint
	for _, p := range model.Forecast(14) {
		if p.Date.After(day(27)) {
			switch p.Date.Weekday() {
			case time.Saturday:
				futureSat = p
			case time.Sunday:
				futureSun = p
			}
		}
	}
	assert.InDelta(t, 150, futureSat.Predicted, 1e-6)
	assert.InDelta(t, 100, futureSun.Predicted, 1e-6)
}

func TestForecast_CoversHistoryAndHorizon(t *testing.T) {
	var points []DailyPoint
	for i := 0; i < 10; i++ {
		points = append(points, DailyPoint{Date: day(i), TotalSales: 100})
	}

	model, err := Fit(points)
	require.NoError(t, err)

	forecast := model.Forecast(5)
	require.Len(t, forecast, 15)
	assert.Equal(t, day(0), forecast[0].Date)
	assert.Equal(t, day(14), forecast[14].Date)
}

func TestLoadDailyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned.csv")
	content := "date,users_active,total_sales,new_customers,report_generated,region,regional_sales,product_id\n" +
		"2024-01-01,10,500,2,True,East,100,5\n" +
		"2024-01-01,10,500,2,True,West,250,7\n" +
		"2024-01-02,12,600,3,True,East,300,5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	points, err := LoadDailyHistory(path)
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, float64(500), points[0].TotalSales)
	assert.Equal(t, float64(600), points[1].TotalSales)
}

func TestLoadDailyHistory_MissingFile(t *testing.T) {
	_, err := LoadDailyHistory(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestRenderCharts(t *testing.T) {
	var points []DailyPoint
	for i := 0; i < 14; i++ {
		points = append(points, DailyPoint{Date: day(i), TotalSales: 100 + float64(i)})
	}
	model, err := Fit(points)
	require.NoError(t, err)
	forecast := model.Forecast(7)

	dir := t.TempDir()
	labels := ChartLabels{Title: "Total Sales Forecast", XLabel: "Date", YLabel: "Sales"}

	chartPath := filepath.Join(dir, "forecast.html")
	require.NoError(t, RenderForecastChart(chartPath, points, forecast, labels))

	componentsPath := filepath.Join(dir, "components.html")
	require.NoError(t, RenderComponentsChart(componentsPath, forecast, model.WeeklyProfile(), labels))

	for _, p := range []string{chartPath, componentsPath} {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(data), "echarts")
	}
}
