// Package logging builds the slog loggers used across tickerforge.
//
// It provides a console handler that renders "ts LEVEL component: msg k=v"
// lines, a JSON handler for machine-readable output, typed attribute helpers,
// and a no-op logger for tests. Components obtain scoped loggers through
// NewComponentLogger so every line carries a component field.
package logging
