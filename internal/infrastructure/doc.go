// Package infrastructure provides cross-cutting runtime services: the
// structured slog logger (JSON, console/file/both) and trace-ID propagation
// through context so every log line of one run can be correlated.
package infrastructure
