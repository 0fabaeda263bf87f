package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
)

// openPostgres opens the database through the pgx stdlib driver. With echo
// enabled a tracer logs every statement through the provided logger,
// mirroring what the wrapper methods do for sqlite.
func openPostgres(url string, echo bool, log *slog.Logger) (*sql.DB, error) {
	connCfg, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}

	if echo {
		connCfg.Tracer = &tracelog.TraceLog{
			Logger:   tracingLogger(log),
			LogLevel: tracelog.LogLevelInfo,
		}
	}

	return stdlib.OpenDB(*connCfg), nil
}

// tracingLogger bridges pgx trace records onto slog.
func tracingLogger(log *slog.Logger) tracelog.LoggerFunc {
	return func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		attrs := make([]slog.Attr, 0, len(data))
		for k, v := range data {
			attrs = append(attrs, slog.Any(k, v))
		}
		log.LogAttrs(ctx, slogLevel(level), msg, attrs...)
	}
}

func slogLevel(level tracelog.LogLevel) slog.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return slog.LevelDebug
	case tracelog.LogLevelWarn:
		return slog.LevelWarn
	case tracelog.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
