// Command preprocessor normalizes a raw marketing summary report into the
// cleaned long-format CSV consumed by downstream forecasting.
//
// Usage:
//
//	preprocessor <input file> <output file>
//
// The input may be CSV or XLSX. Recoverable data-quality conditions are
// repaired and reported; only an unreadable input or an unwritable output
// terminate the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"finmark/internal/config"
	"finmark/internal/dataprocessing"
	"finmark/internal/errors"
	"finmark/internal/exporter"
	"finmark/internal/infrastructure"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <input file> <output file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		return 2
	}
	inputPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	logger, err := infrastructure.InitializeLogger(config.LoggingConfig{
		Level:  *logLevel,
		Output: "console",
	})
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "preprocessor")

	ctx := infrastructure.EnsureTraceID(context.Background())

	// Unexpected conditions surface as a reported failure, never a stack trace.
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Processing aborted by unexpected condition",
				slog.Any("condition", r))
			code = 1
		}
	}()

	logger.InfoContext(ctx, "Starting marketing report preprocessing",
		slog.String("input", inputPath),
		slog.String("output", outputPath))

	if err := process(ctx, logger, inputPath, outputPath); err != nil {
		if errors.IsType(err, errors.ErrTypeNotFound) {
			logger.ErrorContext(ctx, "Input file does not exist",
				slog.String("path", inputPath))
		} else {
			logger.ErrorContext(ctx, "Preprocessing failed",
				slog.String("error", err.Error()))
		}
		return 1
	}

	return 0
}

// process runs the full preprocessing pipeline from raw input file to
// cleaned output file.
func process(ctx context.Context, logger *slog.Logger, inputPath, outputPath string) error {
	table, err := dataprocessing.ParseFile(inputPath)
	if err != nil {
		return err
	}

	pipeline := dataprocessing.NewPipeline(logger)
	records, report, err := pipeline.Process(ctx, table)
	if err != nil {
		return err
	}

	if err := exporter.NewResultWriter().Write(outputPath, records); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Preprocessing complete",
		slog.Int("records", len(records)),
		slog.Int("warnings", len(report.Warnings)),
		slog.String("output", outputPath))

	return nil
}
