package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog.Logger tagged with the service name. Unknown level
// strings fall back to info.
func New(service, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})

	return slog.New(h).With("service", service)
}
