// Package logging provides the CLI's own diagnostic logging using slog.
//
// Diagnostics are separate from the records managed by package catlog: they
// describe what the tool is doing (configuration loaded, webhook failed) and
// go to stderr, never into the log file.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("loaded config", "path", path)
//
// # Testing
//
// For tests, use [ForTest] to route diagnostics through the testing framework.
package logging
