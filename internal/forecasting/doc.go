// Package forecasting fits a daily sales model to the cleaned marketing
// table and projects it forward.
//
// The model is deliberately simple: a linear trend plus a day-of-week
// seasonal profile, estimated jointly by least squares. It consumes the
// cleaned table produced by the preprocessor, aggregated to one total-sales
// value per date, and produces a forecast table plus rendered charts.
package forecasting
