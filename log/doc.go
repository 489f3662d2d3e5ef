// Package log wraps [log/slog] with a Trace level below Debug, a small
// functional-option configuration surface, and an optional colorized pretty
// format for terminal output.
//
// The zero value [Logger] is valid and discards everything, so library
// types can embed one unconditionally and let callers opt in:
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelTrace))
//	logger.Trace("expand sequence", slog.Int("atoms", 3))
//
// A package-level default logger backs the top-level functions and is
// reconfigured with [Config].
package log
