package config

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/scribekit/pkg/cuda"
)

// Settings is the aggregate configuration of the transcription service.
type Settings struct {
	Environment string           `env:"ENVIRONMENT" envDefault:"production" yaml:"environment"`
	Dev         bool             `env:"DEV" envDefault:"false" yaml:"dev"`
	Database    DatabaseSettings `yaml:"database"`
	Whisper     WhisperSettings  `yaml:"whisper"`
	Logging     LoggingSettings  `yaml:"logging"`

	detector cuda.Detector
}

// Option customizes settings construction.
type Option func(*settingsOptions)

type settingsOptions struct {
	detector cuda.Detector
	envFiles []string
}

// WithDetector injects the accelerator probe used to resolve the dynamic
// device/compute-type defaults. Tests substitute cuda.Static.
func WithDetector(d cuda.Detector) Option {
	return func(o *settingsOptions) {
		o.detector = d
	}
}

// WithEnvFiles loads the given env files before parsing instead of the
// default .env. Live environment variables still win on conflict.
func WithEnvFiles(paths ...string) Option {
	return func(o *settingsOptions) {
		o.envFiles = paths
	}
}

// NewSettings constructs a fresh Settings from the process environment.
// Nested-form variables (database__DB_URL and friends) are applied on top of
// their flat counterparts before parsing, then normalization resolves dynamic
// defaults and invariants.
func NewSettings(opts ...Option) (*Settings, error) {
	options := settingsOptions{detector: cuda.NewRuntime()}
	for _, opt := range opts {
		opt(&options)
	}

	if len(options.envFiles) > 0 {
		if err := LoadEnv(options.envFiles...); err != nil {
			return nil, err
		}
	} else {
		loadDefaultEnv()
	}

	environ := environSnapshot()
	promoteNested(environ)

	s := &Settings{detector: options.detector}
	if err := env.ParseWithOptions(s, env.Options{Environment: environ}); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := normalize(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Normalize resolves the values struct tags cannot express: the production
// fallback and lowercasing of Environment, the default extension sets, the
// probed device/compute-type defaults, and the cpu/int8 pairing. It runs once
// per construction; the accelerator is probed only when a probed default is
// actually needed.
func (s *Settings) Normalize() error {
	if s.Environment == "" {
		s.Environment = "production"
	}
	s.Environment = strings.ToLower(s.Environment)

	if s.Whisper.AudioExtensions == nil {
		s.Whisper.AudioExtensions = slices.Clone(defaultAudioExtensions)
	}
	if s.Whisper.VideoExtensions == nil {
		s.Whisper.VideoExtensions = slices.Clone(defaultVideoExtensions)
	}

	if s.Whisper.Device == "" || s.Whisper.ComputeType == "" {
		detector := s.detector
		if detector == nil {
			detector = cuda.NewRuntime()
		}
		s.Whisper.resolveDefaults(detector.Available(context.Background()))
	}

	// A cpu device cannot run reduced-precision float kernels, so the compute
	// type is corrected silently instead of rejected.
	if s.Whisper.Device == DeviceCPU {
		s.Whisper.ComputeType = ComputeInt8
	}
	return nil
}

var (
	settingsMu sync.Mutex
	settings   *Settings
)

// LoadSettings returns the process-wide Settings singleton, constructing it
// on the first call. Construction errors are not cached, so a failed call can
// be retried once the environment is fixed. Options are honored only by the
// call that performs the construction.
func LoadSettings(opts ...Option) (*Settings, error) {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	if settings != nil {
		return settings, nil
	}

	s, err := NewSettings(opts...)
	if err != nil {
		return nil, err
	}
	settings = s
	return settings, nil
}

// MustLoadSettings works like LoadSettings but panics on failure.
func MustLoadSettings(opts ...Option) *Settings {
	s, err := LoadSettings(opts...)
	if err != nil {
		panic(fmt.Sprintf("Failed to load settings: %v", err))
	}
	return s
}

// ResetSettings drops the memoized Settings singleton and the legacy
// snapshot so the next LoadSettings call constructs a fresh instance.
// Primarily useful in tests.
func ResetSettings() {
	settingsMu.Lock()
	settings = nil
	settingsMu.Unlock()

	legacyMu.Lock()
	legacy = nil
	legacyMu.Unlock()
}
