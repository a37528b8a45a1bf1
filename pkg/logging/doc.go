// Package logging provides structured logging for GPU detection components.
//
// It wraps the standard library slog package with shared defaults: JSON
// output to stderr, environment-based log level configuration (LOG_LEVEL),
// module/version context on every record, and source location tracking for
// debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("gpuinfo", version)
//
//	    slog.Info("detection started", "platform", "cuda")
//	}
//
// Supported log levels (case-insensitive): DEBUG, INFO (default),
// WARN/WARNING, ERROR.
package logging
