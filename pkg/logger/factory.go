package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/scribekit/pkg/config"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for production log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for development debugging.
	FormatText Format = "text"
)

// ParseFormat maps a LOG_FORMAT value onto a Format. Matching is
// case-insensitive; anything that is not "json" selects text output.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// ParseLevel maps a LOG_LEVEL value onto a slog.Level. Matching is
// case-insensitive; unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Option configures logger creation.
type Option func(*factoryConfig)

func WithLevel(l slog.Level) Option {
	return func(c *factoryConfig) { c.level = l }
}

// WithFormat sets output format.
// Panics for invalid formats to enforce fail-fast initialization - framework
// misconfiguration should prevent startup rather than cause runtime errors.
func WithFormat(f Format) Option {
	return func(c *factoryConfig) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

func WithTextFormatter() Option {
	return func(c *factoryConfig) {
		c.format = FormatText
	}
}

func WithJSONFormatter() Option {
	return func(c *factoryConfig) {
		c.format = FormatJSON
	}
}

// WithOutput sets custom output destination, ignoring nil writers for safety.
func WithOutput(w io.Writer) Option {
	return func(c *factoryConfig) {
		if w != nil {
			c.output = w
		}
	}
}

// WithHandlerOptions allows fine-grained control over slog behavior.
// Nil options are ignored to prevent accidental misconfiguration.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *factoryConfig) {
		if opts != nil {
			c.handlerOptions = opts
		}
	}
}

// WithAttr adds static attributes to every log record.
// Empty attribute lists are ignored to avoid allocation overhead.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *factoryConfig) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithWarningFilter wraps the handler so warn-level records matching the known
// noisy ML-runtime warning classes are dropped. Extra substrings extend the
// default pattern set.
func WithWarningFilter(extra ...string) Option {
	return func(c *factoryConfig) {
		c.filterWarnings = true
		for _, p := range extra {
			if p != "" {
				c.filterPatterns = append(c.filterPatterns, p)
			}
		}
	}
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type factoryConfig struct {
	level          slog.Level
	format         Format
	output         io.Writer
	attrs          []slog.Attr
	handlerOptions *slog.HandlerOptions
	filterWarnings bool
	filterPatterns []string
}

// defaultConfig provides production-safe defaults: JSON format with INFO level.
// JSON ensures compatibility with log aggregation systems, INFO reduces noise.
func defaultConfig() *factoryConfig {
	return &factoryConfig{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a configured slog.Logger. Applies options, creates the
// appropriate handler, and optionally wraps it with the warning filter.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := cfg.handlerOptions
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{Level: cfg.level}
	}

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	if cfg.filterWarnings {
		handler = NewWarnFilterHandler(handler, cfg.filterPatterns...)
	}

	return slog.New(handler)
}

// NewFromSettings builds a logger from the service logging settings. Level
// and format strings are parsed leniently, and the warning filter is enabled
// when FilterWarnings is set. Additional options are applied on top and win
// over the settings-derived ones.
func NewFromSettings(cfg config.LoggingSettings, opts ...Option) *slog.Logger {
	base := []Option{
		WithLevel(ParseLevel(cfg.Level)),
		WithFormat(ParseFormat(cfg.Format)),
		WithOutput(os.Stderr),
	}
	if cfg.FilterWarnings {
		base = append(base, WithWarningFilter())
	}
	return New(append(base, opts...)...)
}
