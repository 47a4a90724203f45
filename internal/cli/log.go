// Package cli implements the paks-og command-line interface.
//
// The CLI serves social preview cards over HTTP, renders single cards to
// disk, and manages the font files and response cache the service uses.
// It is built with cobra, reads configuration through internal/config and
// logs through charmbracelet/log.
//
// # Commands
//
//   - serve: run the image HTTP server
//   - render: render one card as PNG, SVG or layout JSON
//   - fonts: download or check the card fonts
//   - cache: manage the file-backed response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --log-format for text, json or logfmt output. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stakpak/paks-og/internal/config"
)

// newLogger returns a logger writing to w at level, with "15:04:05.00"
// timestamps. format is one of the config.Log* formats; anything else
// falls back to text.
func newLogger(w io.Writer, level log.Level, format string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Formatter:       formatter(format),
	})
}

func formatter(format string) log.Formatter {
	switch format {
	case config.LogJSON:
		return log.JSONFormatter
	case config.LogLogfmt:
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// progress logs a completion message with the time elapsed since it was created.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs e.g. "Rendered acme/widgets (84ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
