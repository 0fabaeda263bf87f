// Package config provides a type-safe, generic and cached way to load
// application configuration from environment variables, plus the typed
// settings schema of the transcription service itself.
//
// It wraps popular libraries `github.com/joho/godotenv` and
// `github.com/caarlos0/env/v11` to deliver a convenient API that:
//
//   - Loads values from one or multiple `.env` files (fallback to the default
//     `.env` in the current working directory). Live environment variables
//     always win over file values.
//   - Parses the environment into any Go struct using field tags.
//   - Caches each successfully loaded configuration type so it is only parsed
//     once for the lifetime of the process.
//   - Runs an optional post-parse `Normalize() error` hook for structs whose
//     defaults cannot be expressed as tags (hardware-probed values, derived
//     fields).
//   - Exposes helpers that panic on failure (`MustLoadEnv`, `MustLoad`) for
//     scenarios where configuration is critical.
//   - Allows explicit cache reset or force reload which is handy in tests.
//
// # Architecture
//
// Internally the package keeps a singleton `configCache` that stores parsed
// struct copies keyed by their fully-qualified type name. Each key also holds a
// `sync.Once` instance guaranteeing the expensive parsing work is executed at
// most once per configuration type even when accessed from multiple goroutines
// concurrently.
//
// The exported helpers interact with the cache in a thread-safe manner using
// `sync.RWMutex`, while low-level parsing is delegated to `env.Parse`.
//
// # Service settings
//
// On top of the generic loader the package defines the service's own schema:
// Settings aggregates DatabaseSettings, WhisperSettings and LoggingSettings,
// sourced from the flat variables (DB_URL, WHISPER_MODEL, LOG_LEVEL, ...) or
// their nested forms using a `__` group prefix (`database__DB_URL`,
// `whisper__DEVICE`, `logging__LOG_LEVEL`). The nested form wins when both are
// set; matching is case-sensitive and unknown variables are ignored.
//
//	s, err := config.LoadSettings()
//	if err != nil {
//	    log.Fatalf("loading settings: %v", err)
//	}
//	fmt.Println(s.Database.URL, s.Whisper.Model)
//
// LoadSettings memoizes one Settings instance per process. NewSettings builds
// a fresh instance and accepts options such as WithDetector (inject the
// accelerator probe) and WithEnvFiles; ResetSettings clears the memoized
// instance for tests. Enum-typed fields (DEVICE, COMPUTE_TYPE, WHISPER_MODEL)
// reject values outside their closed sets at parse time. When DEVICE or
// COMPUTE_TYPE is absent the accelerator is probed once and the defaults are
// derived from the result; a cpu device always forces the int8 compute type.
//
// # Usage
//
// First, create a struct describing your configuration and annotate its fields
// with `env` tags:
//
//	type WorkerConfig struct {
//	    Queue    string `env:"QUEUE_NAME,required"`
//	    PollSecs int    `env:"POLL_SECS" envDefault:"5"`
//	}
//
// Load the default `.env` file (optional) then populate the struct:
//
//	import "github.com/dmitrymomot/scribekit/pkg/config"
//
//	func main() {
//	    // Optionally load one or many custom .env files before parsing.
//	    if err := config.LoadEnv("./config/.env" /* more files ... */); err != nil {
//	        log.Fatalf("loading env: %v", err)
//	    }
//
//	    var wk WorkerConfig
//	    if err := config.Load(&wk); err != nil {
//	        log.Fatalf("parsing env: %v", err)
//	    }
//
//	    // wk is now populated and cached for future calls.
//	}
//
// Subsequent calls to `config.Load(&wk)` will be served from the in-memory cache
// without re-parsing.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`   – failed to parse env vars into struct.
//   - `ErrLoadingEnv`      – failed to load one of the given .env files.
//   - `ErrNormalizeConfig` – post-parse normalization hook failed.
//   - `ErrInvalidConfigType` – provided value is not a pointer to a struct.
//   - `ErrConfigNotLoaded` – requested config type has not been loaded yet.
//   - `ErrNilPointer`       – nil pointer passed to `Load`/`MustLoad`.
//
// # Testing Helpers
//
// Use `ResetCache()` to clear the global cache between tests,
// `ForceReloadConfig(&cfg)` to reload a particular struct after the process
// environment changes, and `ResetSettings()` to drop the memoized Settings
// singleton.
//
// # Performance Considerations
//
// Because each unique configuration struct is parsed only once and stored by
// value, lookups are extremely fast after the initial load. The cache does use
// additional memory proportional to the size of your configs.
//
// # See Also
//
//   - https://github.com/joho/godotenv – .env file loader.
//   - https://github.com/caarlos0/env – environment parser.
package config
