package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Level reads LOG_LEVEL from the environment (debug, info, warn, error).
// Unset or unrecognized values fall back to info.
func Level() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a JSON stdout logger as the process default. It runs
// before the database comes up; main swaps in the fan-out handler once
// the database log sink exists.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: Level(),
	})))
}
