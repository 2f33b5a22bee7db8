// Package logging assembles the structured slog loggers used by edsmover.
//
// It owns the console and JSON handlers, level parsing, and output plumbing,
// plus a handful of attribute helpers so the mover and daemon emit log lines
// with the same field names. A no-op logger is provided for tests and for
// wiring code that runs before configuration is known.
package logging
