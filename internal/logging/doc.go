// Package logging assembles structured slog loggers and formatting helpers used
// across SnapMotion.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the run identifier and the stage that produced them. Console
// output goes to stderr so the wizard's prompts on stdout stay readable; when
// a log directory is configured every record is also teed to a JSON file.
//
// A no-op logger is provided for tests and wiring code that cannot fail.
package logging
