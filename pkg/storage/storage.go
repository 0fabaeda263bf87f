package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/scribekit/pkg/config"
	"github.com/dmitrymomot/scribekit/pkg/logger"
)

const (
	pingAttempts = 3
	pingInterval = 500 * time.Millisecond
)

// DB wraps the opened connection pool together with the statement logger.
type DB struct {
	*sql.DB
	log  *slog.Logger
	echo bool
}

// Open connects to the record store named by the settings URL. The scheme
// picks the driver: sqlite:// URLs follow the service's path convention
// (three slashes address a relative file, four an absolute one, a bare URL
// or :memory: an in-memory database); postgres:// and postgresql:// go
// through the pgx stdlib driver. With Echo enabled every statement is logged
// through the provided logger at info level.
func Open(ctx context.Context, cfg config.DatabaseSettings, log *slog.Logger) (*DB, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.URL == "" {
		return nil, ErrEmptyURL
	}

	scheme, rest, found := strings.Cut(cfg.URL, "://")
	if !found {
		return nil, errors.Join(ErrFailedToParseURL, fmt.Errorf("url %q has no scheme", cfg.URL))
	}

	var (
		db   *sql.DB
		echo bool
		err  error
	)
	switch scheme {
	case "sqlite":
		db, err = openSQLite(rest)
		// sqlite statements are echoed by the wrapper methods below
		echo = cfg.Echo
	case "postgres", "postgresql":
		// postgres statements are echoed by the pgx tracer instead
		db, err = openPostgres(cfg.URL, cfg.Echo, log)
	default:
		return nil, errors.Join(ErrUnsupportedScheme, fmt.Errorf("scheme %q", scheme))
	}
	if err != nil {
		return nil, err
	}

	if err := pingWithRetry(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{DB: db, log: log, echo: echo}, nil
}

// pingWithRetry verifies the connection, backing off linearly between
// attempts so transient startup races do not fail the open.
func pingWithRetry(ctx context.Context, db *sql.DB) error {
	var lastErr error
	for i := 0; i < pingAttempts; i++ {
		if lastErr = db.PingContext(ctx); lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Join(ErrFailedToOpen, ctx.Err())
		case <-time.After(time.Duration(i+1) * pingInterval):
		}
	}
	return errors.Join(ErrFailedToOpen, lastErr)
}

// ExecContext runs a statement and echoes it when enabled.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := d.DB.ExecContext(ctx, query, args...)
	d.logQuery(ctx, query, time.Since(start), err)
	return res, err
}

// QueryContext runs a query and echoes it when enabled.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	d.logQuery(ctx, query, time.Since(start), err)
	return rows, err
}

// QueryRowContext runs a single-row query and echoes it when enabled.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := d.DB.QueryRowContext(ctx, query, args...)
	d.logQuery(ctx, query, time.Since(start), nil)
	return row
}

func (d *DB) logQuery(ctx context.Context, query string, elapsed time.Duration, err error) {
	if !d.echo {
		return
	}
	d.log.LogAttrs(ctx, slog.LevelInfo, "query executed",
		logger.Query(query),
		logger.Duration(elapsed),
		logger.Error(err),
	)
}

// Healthcheck returns a closure that validates database connectivity for
// readiness probes. The closure pattern injects the connection dependency
// while matching the func(context.Context) error shape health endpoints
// expect.
func Healthcheck(db *DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
