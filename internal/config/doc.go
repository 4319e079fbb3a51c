// Package config loads, normalizes, and validates SnapMotion configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), and
// reads TOML files from the usual search locations. Values here only seed the
// interactive wizard's defaults and tune the encoder; they never make the tool
// run unattended.
//
// The parsing helpers (ParseResolution, ParseSeconds, ParseBackground) are
// shared with the wizard so typed answers and file values follow one set of
// rules.
package config
