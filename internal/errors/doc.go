// Package errors defines the application error taxonomy. Every error that
// crosses a package boundary is an AppError carrying a stable type code,
// a human-readable message, the wrapped cause, and optional context values.
// Callers branch on the type code with IsType rather than string matching.
package errors
