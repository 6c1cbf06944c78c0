// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured once, at creation, with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// Attributes are always typed [slog.Attr] values:
//
//	logger.Info("resolved", slog.String("source", s), slog.Int("refs", n))
//
// A process-wide default logger backs the package-level functions
// ([Info], [DebugContext], ...). [Config] applies options to it; the
// command line does so while parsing flags.
//
// # Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and [LevelError].
// Trace sits below Debug and is used for per-reference resolution detail.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON].
package log
