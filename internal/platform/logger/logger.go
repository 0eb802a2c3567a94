// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Init installs a JSON slog handler on stdout as the default logger.
// Outside production, records carry source locations and local wall-clock times.
func Init(env string) *slog.Logger {
	return InitWriter(os.Stdout, env)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if env != "production" {
		opts.AddSource = true
		opts.ReplaceAttr = replaceTimeAttr
	}

	l := slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(l)
	return l
}

func replaceTimeAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.String(slog.TimeKey, a.Value.Time().Local().Format("2006-01-02 15:04:05"))
	}
	return a
}
