// Package log builds [log/slog] handlers from CLI flags.
//
// Three output formats are supported: [FormatJSON] and [FormatLogfmt] use the
// standard library handlers, [FormatText] uses a styled handler from
// [charm.land/log/v2] meant for people watching a terminal. Levels are
// [LevelError], [LevelWarn], [LevelInfo] and [LevelDebug].
//
// Typical usage creates a [Config], registers flags, then installs the
// default logger once flags are parsed:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	// In PersistentPreRunE:
//	err := cfg.SetDefault(os.Stderr)
package log
