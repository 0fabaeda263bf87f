package storage

import "errors"

var (
	ErrEmptyURL          = errors.New("empty database url, set DB_URL env var")
	ErrUnsupportedScheme = errors.New("unsupported database url scheme")
	ErrFailedToParseURL  = errors.New("failed to parse database url")
	ErrFailedToOpen      = errors.New("failed to open db connection")
	ErrHealthcheckFailed = errors.New("healthcheck failed, connection is not available")
)
