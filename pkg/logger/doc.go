// Package logger provides a thin factory around Go's slog package adding
// functional options for configuration, helper attribute constructors, and a
// filtering handler that suppresses noisy ML-runtime warnings.
//
// The package aims to standardise structured logging across the service by
// exposing a single factory – New – that creates a *slog.Logger configured by
// a set of Option functions, plus NewFromSettings which maps the service's
// LoggingSettings (LOG_LEVEL, LOG_FORMAT, FILTER_WARNING) onto those options.
//
// # Architecture
//
// New determines the concrete slog.Handler implementation –
// slog.NewTextHandler or slog.NewJSONHandler – based on the configured
// Format. When the warning filter is enabled it wraps the handler with
// WarnFilterHandler, which drops warn-level records whose message matches one
// of the known noisy warning classes (DeprecationWarning, FutureWarning,
// UserWarning by default) before delegating to the underlying handler.
//
// Helper constructors such as Group, Error, Query, etc. live in attr.go and
// return commonly-used slog.Attr instances to keep attribute naming
// consistent across the codebase.
//
// # Usage
//
//	import "github.com/dmitrymomot/scribekit/pkg/logger"
//
//	func main() {
//	    settings := config.MustLoadSettings()
//	    log := logger.NewFromSettings(settings.Logging,
//	        logger.WithAttr(logger.Component("api")),
//	    )
//	    logger.SetAsDefault(log)
//
//	    log.Info("transcription stored",
//	        logger.Duration(time.Since(start)),
//	    )
//	}
//
// # Configuration
//
// The behaviour of New can be tuned with a variety of Option helpers:
//
//   - WithFormat / WithTextFormatter / WithJSONFormatter – select output format.
//   - WithLevel – set a custom slog.Level.
//   - WithAttr – attach static attributes.
//   - WithWarningFilter – drop known-noisy warn records, optionally extending
//     the pattern set with additional substrings.
//
// ParseLevel and ParseFormat convert the lenient string representations used
// in the environment (case-insensitive, unknown values fall back to info and
// text) into their typed counterparts.
//
// # Error Handling
//
// The helper function Error produces an attribute only when the supplied
// error value is non-nil allowing calls like:
//
//	log.Info("operation finished", logger.Error(err))
//
// without an additional nil check.
package logger
