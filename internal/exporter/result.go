package exporter

import (
	"log/slog"
	"strconv"

	"finmark/internal/dataprocessing"
	"finmark/internal/errors"
)

// resultHeader is the fixed column order of the cleaned table. The order is
// a compatibility contract with downstream consumers (the forecaster reads
// by these names) and never follows incidental processing order.
var resultHeader = []string{
	dataprocessing.ColDate,
	dataprocessing.ColUsersActive,
	dataprocessing.ColTotalSales,
	dataprocessing.ColNewCustomers,
	dataprocessing.ColReportGenerated,
	dataprocessing.ColRegion,
	dataprocessing.ColRegionalSales,
	dataprocessing.ColProductID,
}

// ResultWriter persists remediated records
type ResultWriter struct {
	csv *CSVWriter
}

// NewResultWriter creates a result writer
func NewResultWriter() *ResultWriter {
	return &ResultWriter{csv: NewCSVWriter()}
}

// Write persists the cleaned records to the destination path in the fixed
// column order.
func (w *ResultWriter) Write(path string, records []dataprocessing.Record) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Date.Format(dataprocessing.DateFormat),
			strconv.FormatInt(r.UsersActive, 10),
			formatFloat(r.TotalSales),
			strconv.FormatInt(r.NewCustomers, 10),
			r.ReportGenerated,
			r.Region,
			formatFloat(r.RegionalSales),
			strconv.FormatInt(r.ProductID, 10),
		})
	}

	if err := w.csv.WriteSimpleCSV(path, resultHeader, rows); err != nil {
		return errors.NewStorageError("failed to write cleaned table", err).
			WithContext("path", path)
	}

	slog.Info("cleaned table written",
		slog.String("path", path),
		slog.Int("records", len(records)))

	return nil
}

// formatFloat renders a float without a trailing .0 for whole values
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
