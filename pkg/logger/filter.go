package logger

import (
	"context"
	"log/slog"
	"strings"
)

// defaultWarnPatterns matches the warning classes the Python ML runtime
// forwards into the service log stream. Records carrying them add noise
// without actionable content.
var defaultWarnPatterns = []string{
	"DeprecationWarning",
	"FutureWarning",
	"UserWarning",
}

// WarnFilterHandler wraps a slog.Handler and drops warn-level records whose
// message matches a known noisy pattern. Uses the decorator pattern for
// minimal performance overhead - filtering costs one substring scan on the
// logging hot path and only for warn-level records.
type WarnFilterHandler struct {
	next     slog.Handler
	patterns []string
}

// NewWarnFilterHandler creates a filtering handler. Without extra patterns
// the default noisy-warning set is used; extra substrings are matched in
// addition to it.
func NewWarnFilterHandler(next slog.Handler, extra ...string) slog.Handler {
	patterns := make([]string, 0, len(defaultWarnPatterns)+len(extra))
	patterns = append(patterns, defaultWarnPatterns...)
	for _, p := range extra {
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return &WarnFilterHandler{next: next, patterns: patterns}
}

func (h *WarnFilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle suppresses matching warn-level records and delegates everything
// else. Records at other levels always pass through, so filtered warning
// classes still surface when escalated to errors.
func (h *WarnFilterHandler) Handle(ctx context.Context, rec slog.Record) error {
	if rec.Level == slog.LevelWarn {
		for _, p := range h.patterns {
			if strings.Contains(rec.Message, p) {
				return nil
			}
		}
	}
	return h.next.Handle(ctx, rec)
}

// WithAttrs creates a new filtering handler with additional static attributes.
// Preserves the pattern set while delegating attribute handling to the
// underlying handler.
func (h *WarnFilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &WarnFilterHandler{
		next:     h.next.WithAttrs(attrs),
		patterns: h.patterns,
	}
}

// WithGroup creates a new filtering handler with attribute grouping.
// Preserves the pattern set while delegating grouping to the underlying
// handler.
func (h *WarnFilterHandler) WithGroup(name string) slog.Handler {
	return &WarnFilterHandler{
		next:     h.next.WithGroup(name),
		patterns: h.patterns,
	}
}
