// Package storage opens the transcription record store described by the
// database settings.
//
// The URL scheme selects the driver:
//
//   - sqlite:// – the pure-Go modernc.org/sqlite driver. Paths follow the
//     service's URL convention: sqlite:///records.db is relative to the
//     working directory, sqlite:////var/lib/records.db is absolute, and
//     sqlite:// or sqlite:///:memory: opens an in-memory database. WAL
//     journaling, foreign keys and a busy timeout are configured on every
//     file-backed open.
//   - postgres:// / postgresql:// – the pgx v5 stdlib driver.
//
// Open verifies the connection with a short ping-retry loop and returns a
// *DB, a thin wrapper around *sql.DB. When the settings enable Echo the
// wrapper logs every statement through the provided slog logger: for sqlite
// the Exec/Query methods do it, for postgres a pgx tracelog tracer is
// attached instead so driver-level detail (args, timing) is included.
//
// # Usage
//
//	settings := config.MustLoadSettings()
//	db, err := storage.Open(ctx, settings.Database, log)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	healthcheck := storage.Healthcheck(db)
//
// The package owns no schema; it only materializes the configured
// connection.
//
// # Error Handling
//
// Sentinel errors compose with errors.Is: ErrEmptyURL, ErrUnsupportedScheme,
// ErrFailedToParseURL, ErrFailedToOpen and ErrHealthcheckFailed.
package storage
