// Package dataprocessing normalizes the raw FinMark marketing report into a
// clean, long-format table ready for time-series analysis.
//
// # Architecture
//
// The package is organized as a pipeline of pure stages, each taking a table
// and returning a new one:
//
//  1. Parser: reads the raw CSV or Excel report into a Table of classified cells
//  2. SchemaValidator: guarantees the identifying columns exist
//  3. FormatDetector: classifies the layout as wide or long
//  4. AdaptiveUnpivoter: reconstructs (region, regional_sales, product_id)
//     groups from the irregular wide columns
//  5. Remediator: detects, reports and repairs corrupted values
//
// # Usage
//
//	table, err := dataprocessing.ParseFile("marketing_summary.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pipeline := dataprocessing.NewPipeline(logger)
//	records, report, err := pipeline.Process(ctx, table)
//
// # Data Flow
//
//	Raw file → Parser → Table → SchemaValidator → FormatDetector →
//	AdaptiveUnpivoter → Remediator → Records → exporter
//
// # Error Handling
//
// Per-row and per-column anomalies never fail the pipeline; they are repaired
// in place and collected into a Report so callers can audit every correction.
// Only an unreadable input surfaces as an error.
package dataprocessing
