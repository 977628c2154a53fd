package forecasting

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"finmark/internal/dataprocessing"
	"finmark/internal/errors"
)

// ChartLabels carries the configured chart text
type ChartLabels struct {
	Title  string
	XLabel string
	YLabel string
}

// RenderForecastChart writes an HTML line chart of the observed history
// with the model's fit and forecast overlaid.
func RenderForecastChart(path string, history []DailyPoint, forecast []ForecastPoint, labels ChartLabels) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: labels.Title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: labels.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: labels.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: labels.YLabel}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	observed := make(map[string]float64, len(history))
	for _, p := range history {
		observed[p.Date.Format(dataprocessing.DateFormat)] = p.TotalSales
	}

	dates := make([]string, 0, len(forecast))
	actual := make([]opts.LineData, 0, len(forecast))
	predicted := make([]opts.LineData, 0, len(forecast))

	for _, p := range forecast {
		ds := p.Date.Format(dataprocessing.DateFormat)
		dates = append(dates, ds)
		predicted = append(predicted, opts.LineData{Value: p.Predicted})
		if v, ok := observed[ds]; ok {
			actual = append(actual, opts.LineData{Value: v})
		} else {
			actual = append(actual, opts.LineData{Value: nil})
		}
	}

	line.SetXAxis(dates).
		AddSeries("actual", actual).
		AddSeries("forecast", predicted,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return renderTo(path, line)
}

// RenderComponentsChart writes an HTML page with the model's components:
// the trend line over the forecast window and the weekly profile.
func RenderComponentsChart(path string, forecast []ForecastPoint, weekly [7]float64, labels ChartLabels) error {
	trend := charts.NewLine()
	trend.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Trend"}),
		charts.WithXAxisOpts(opts.XAxis{Name: labels.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: labels.YLabel}),
	)

	dates := make([]string, 0, len(forecast))
	trendData := make([]opts.LineData, 0, len(forecast))
	for _, p := range forecast {
		dates = append(dates, p.Date.Format(dataprocessing.DateFormat))
		trendData = append(trendData, opts.LineData{Value: p.Trend})
	}
	trend.SetXAxis(dates).AddSeries("trend", trendData)

	profile := charts.NewBar()
	profile.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Weekly seasonality"}),
		charts.WithYAxisOpts(opts.YAxis{Name: labels.YLabel}),
	)

	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	profileData := make([]opts.BarData, 0, 7)
	for _, v := range weekly {
		profileData = append(profileData, opts.BarData{Value: v})
	}
	profile.SetXAxis(days).AddSeries("weekly", profileData)

	page := components.NewPage()
	page.PageTitle = labels.Title
	page.AddCharts(trend, profile)

	return renderTo(path, page)
}

// renderTo renders a chart into a freshly created file
func renderTo(path string, chart interface{ Render(w io.Writer) error }) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create chart directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create chart file", err)
	}
	defer file.Close()

	if err := chart.Render(file); err != nil {
		return errors.NewStorageError("failed to render chart", err).
			WithContext("path", path)
	}

	return nil
}
