// Package exporter persists pipeline output as CSV.
//
// The package has two components:
//
// CSVWriter: generic CSV writing with directory creation, append mode and
// streaming support, shared by the preprocessor and the forecaster.
//
// ResultWriter: writes the cleaned marketing table in the fixed column order
// downstream consumers depend on, regardless of the order columns took
// during processing.
package exporter
