package config

import (
	"slices"
	"sync"
)

// Config is the flat view of Settings kept for callers that predate the
// nested groups.
//
// Deprecated: read the nested Settings via LoadSettings instead. The flat
// view is a one-time snapshot and does not track later changes.
type Config struct {
	Lang              string
	HFToken           string
	Model             WhisperModel
	Device            Device
	ComputeType       ComputeType
	Environment       string
	LogLevel          string
	AudioExtensions   []string
	VideoExtensions   []string
	AllowedExtensions []string
	DBURL             string
}

var (
	legacyMu sync.Mutex
	legacy   *Config
)

// Legacy returns the flat configuration snapshot, building it from the
// Settings singleton on the first call. The values match the nested settings
// at snapshot time and are allowed to go stale afterwards.
//
// Deprecated: read the nested Settings via LoadSettings instead.
func Legacy() (Config, error) {
	s, err := LoadSettings()
	if err != nil {
		return Config{}, err
	}

	legacyMu.Lock()
	defer legacyMu.Unlock()

	if legacy == nil {
		legacy = &Config{
			Lang:              s.Whisper.DefaultLanguage,
			HFToken:           s.Whisper.HFToken,
			Model:             s.Whisper.Model,
			Device:            s.Whisper.Device,
			ComputeType:       s.Whisper.ComputeType,
			Environment:       s.Environment,
			LogLevel:          s.Logging.Level,
			AudioExtensions:   slices.Clone(s.Whisper.AudioExtensions),
			VideoExtensions:   slices.Clone(s.Whisper.VideoExtensions),
			AllowedExtensions: s.Whisper.AllowedExtensions(),
			DBURL:             s.Database.URL,
		}
	}
	return *legacy, nil
}
