// internal/cmdutil/log.go
package cmdutil

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// NewLogger builds the run logger: text records on stderr and, when extra is
// non-nil, the same records in extra. quiet keeps only warnings and errors;
// otherwise everything down to DEBUG is written. Every record carries the run
// identifier.
func NewLogger(stderr, extra io.Writer, quiet bool, runID string) *slog.Logger {
	level := slog.LevelDebug
	if quiet {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(stderr, opts)
	if extra != nil {
		h = teeHandler{slog.NewTextHandler(stderr, opts), slog.NewTextHandler(extra, opts)}
	}
	l := slog.New(h)
	if runID != "" {
		l = l.With("run", runID)
	}
	return l
}

// teeHandler fans each record out to every handler that accepts its level.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
