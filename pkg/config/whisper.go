package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Device selects the hardware target for model inference.
type Device string

const (
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
)

// UnmarshalText validates the value against the closed device set. An empty
// value is accepted here and resolved from the accelerator probe during
// normalization.
func (d *Device) UnmarshalText(text []byte) error {
	switch v := Device(text); v {
	case "", DeviceCPU, DeviceCUDA:
		*d = v
		return nil
	default:
		return fmt.Errorf("unsupported device %q (expected %q or %q)", text, DeviceCPU, DeviceCUDA)
	}
}

// ComputeType selects the numeric precision used by the inference runtime.
type ComputeType string

const (
	ComputeInt8    ComputeType = "int8"
	ComputeFloat16 ComputeType = "float16"
	ComputeFloat32 ComputeType = "float32"
)

// UnmarshalText validates the value against the closed precision set. An
// empty value is accepted here and resolved from the accelerator probe during
// normalization.
func (c *ComputeType) UnmarshalText(text []byte) error {
	switch v := ComputeType(text); v {
	case "", ComputeInt8, ComputeFloat16, ComputeFloat32:
		*c = v
		return nil
	default:
		return fmt.Errorf("unsupported compute type %q (expected %q, %q or %q)", text, ComputeInt8, ComputeFloat16, ComputeFloat32)
	}
}

// WhisperModel names one of the model sizes the inference runtime ships.
type WhisperModel string

// whisperModels is the closed set of supported model sizes.
var whisperModels = []WhisperModel{
	"tiny", "tiny.en",
	"base", "base.en",
	"small", "small.en",
	"medium", "medium.en",
	"large-v1", "large-v2", "large-v3", "large-v3-turbo",
}

// UnmarshalText validates the value against the closed model-size set.
func (m *WhisperModel) UnmarshalText(text []byte) error {
	v := WhisperModel(text)
	if !slices.Contains(whisperModels, v) {
		return fmt.Errorf("unsupported whisper model %q", text)
	}
	*m = v
	return nil
}

// Default extension sets recognized by the upload surface. Matching is done
// on lowercased suffixes including the leading dot.
var (
	defaultAudioExtensions = []string{".aac", ".amr", ".awb", ".m4a", ".mp3", ".oga", ".ogg", ".wav", ".wma"}
	defaultVideoExtensions = []string{".avi", ".mkv", ".mov", ".mp4", ".wmv"}
)

// WhisperSettings configures the transcription model runtime.
type WhisperSettings struct {
	HFToken         string       `env:"HF_TOKEN" yaml:"hf_token"`
	Model           WhisperModel `env:"WHISPER_MODEL" envDefault:"tiny" yaml:"model"`
	DefaultLanguage string       `env:"DEFAULT_LANG" envDefault:"en" yaml:"default_language"`
	Device          Device       `env:"DEVICE" yaml:"device"`
	ComputeType     ComputeType  `env:"COMPUTE_TYPE" yaml:"compute_type"`
	AudioExtensions []string     `yaml:"audio_extensions"`
	VideoExtensions []string     `yaml:"video_extensions"`
}

// AllowedExtensions returns the union of the audio and video extension sets,
// sorted. The union is recomputed on every call so it can never drift from
// its parts.
func (w WhisperSettings) AllowedExtensions() []string {
	union := make([]string, 0, len(w.AudioExtensions)+len(w.VideoExtensions))
	union = append(union, w.AudioExtensions...)
	union = append(union, w.VideoExtensions...)
	slices.Sort(union)
	return slices.Compact(union)
}

// Allowed reports whether the file name carries a recognized audio or video
// extension. Matching is case-insensitive.
func (w WhisperSettings) Allowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	return slices.Contains(w.AllowedExtensions(), ext)
}

// resolveDefaults fills the device and compute type from the accelerator
// probe result. Called once per construction when either field is empty.
func (w *WhisperSettings) resolveDefaults(accelerator bool) {
	if w.Device == "" {
		w.Device = DeviceCPU
		if accelerator {
			w.Device = DeviceCUDA
		}
	}
	if w.ComputeType == "" {
		w.ComputeType = ComputeInt8
		if accelerator {
			w.ComputeType = ComputeFloat16
		}
	}
}
