// Command forecaster fits a daily sales model to the cleaned marketing data
// and writes the forecast table plus rendered charts.
//
// Configuration comes from config.yaml (override with -config) and FINMARK_*
// environment variables.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"

	"finmark/internal/config"
	"finmark/internal/dataprocessing"
	"finmark/internal/exporter"
	"finmark/internal/forecasting"
	"finmark/internal/infrastructure"
)

func main() {
	os.Exit(run())
}

func run() int {
	configFile := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "forecaster")

	ctx := infrastructure.EnsureTraceID(context.Background())

	dataFile := cfg.ProcessedDataFile()
	logger.InfoContext(ctx, "Loading cleaned sales history",
		slog.String("path", dataFile))

	history, err := forecasting.LoadDailyHistory(dataFile)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load cleaned data",
			slog.String("path", dataFile),
			slog.String("error", err.Error()))
		return 1
	}

	model, err := forecasting.Fit(history)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to fit forecast model",
			slog.Int("points", len(history)),
			slog.String("error", err.Error()))
		return 1
	}

	forecast := model.Forecast(cfg.Forecasting.PredictionPeriods)
	logger.InfoContext(ctx, "Forecast computed",
		slog.Int("history_points", len(history)),
		slog.Int("prediction_periods", cfg.Forecasting.PredictionPeriods))

	labels := forecasting.ChartLabels{
		Title:  cfg.Forecasting.PlotTitle,
		XLabel: cfg.Forecasting.PlotXLabel,
		YLabel: cfg.Forecasting.PlotYLabel,
	}

	// The three artifacts are independent, so they write in parallel.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeForecastCSV(cfg.ForecastCSVPath(), forecast)
	})
	g.Go(func() error {
		return forecasting.RenderForecastChart(cfg.ForecastChartPath(), history, forecast, labels)
	})
	g.Go(func() error {
		return forecasting.RenderComponentsChart(cfg.ComponentsChartPath(), forecast, model.WeeklyProfile(), labels)
	})
	if err := g.Wait(); err != nil {
		logger.ErrorContext(gctx, "Failed to write forecast artifacts",
			slog.String("error", err.Error()))
		return 1
	}

	logger.InfoContext(ctx, "Forecast artifacts written",
		slog.String("csv", cfg.ForecastCSVPath()),
		slog.String("chart", cfg.ForecastChartPath()),
		slog.String("components", cfg.ComponentsChartPath()))

	return 0
}

func writeForecastCSV(path string, forecast []forecasting.ForecastPoint) error {
	writer := exporter.NewCSVWriter()

	stream, err := writer.CreateStreamWriter(path, []string{"ds", "yhat", "trend", "weekly"})
	if err != nil {
		return err
	}

	for _, p := range forecast {
		row := []string{
			p.Date.Format(dataprocessing.DateFormat),
			formatFloat(p.Predicted),
			formatFloat(p.Trend),
			formatFloat(p.Weekly),
		}
		if err := stream.WriteRecord(row); err != nil {
			stream.Close()
			return err
		}
	}

	return stream.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
