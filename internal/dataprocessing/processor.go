package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"finmark/internal/errors"
)

// Pipeline chains the normalization stages: schema validation, layout
// detection, the adaptive unpivot and remediation. Each stage consumes its
// input table and produces a new one; nothing is mutated across stages.
type Pipeline struct {
	logger     *slog.Logger
	remediator *Remediator
}

// NewPipeline creates a processing pipeline logging through the given logger
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:     logger,
		remediator: NewRemediator(logger),
	}
}

// Process normalizes a raw table into clean long-format records plus the
// report of every correction made along the way.
func (p *Pipeline) Process(ctx context.Context, table *Table) ([]Record, *Report, error) {
	report := &Report{}

	validated, schemaReport := EnsureSchema(table)
	report.Merge(schemaReport)

	layout := DetectLayout(validated)
	p.logger.InfoContext(ctx, "detected input layout",
		slog.String("layout", string(layout)),
		slog.Int("columns", len(validated.Columns)),
		slog.Int("rows", len(validated.Rows)))

	long := validated
	if layout == LayoutWide {
		long = Unpivot(validated)
	}

	remediated, remediationReport := p.remediator.Remediate(ctx, long)
	report.Merge(remediationReport)

	records, err := ToRecords(remediated)
	if err != nil {
		return nil, report, err
	}

	p.logger.InfoContext(ctx, "processing complete",
		slog.Int("records", len(records)),
		slog.Int("warnings", len(report.Warnings)))

	return records, report, nil
}

// ToRecords finalizes a remediated table into typed records. Remediation
// guarantees every field converts; a failure here means the table skipped
// remediation and is a programming error surfaced to the caller.
func ToRecords(table *Table) ([]Record, error) {
	records := make([]Record, 0, len(table.Rows))

	for i := range table.Rows {
		date, err := time.Parse(DateFormat, table.Get(i, ColDate).String())
		if err != nil {
			return nil, errors.NewValidationError("unremediated date in finalized table", err).
				WithContext("row", i)
		}

		records = append(records, Record{
			Date:            date,
			UsersActive:     int64(table.Get(i, ColUsersActive).Num),
			TotalSales:      table.Get(i, ColTotalSales).Num,
			NewCustomers:    int64(table.Get(i, ColNewCustomers).Num),
			ReportGenerated: table.Get(i, ColReportGenerated).String(),
			Region:          table.Get(i, ColRegion).Text,
			RegionalSales:   table.Get(i, ColRegionalSales).Num,
			ProductID:       int64(table.Get(i, ColProductID).Num),
		})
	}

	return records, nil
}
