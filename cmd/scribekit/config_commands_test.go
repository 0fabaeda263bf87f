package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShow_RedactsToken(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("HF_TOKEN", "hf_supersecret")
	t.Setenv("DEVICE", "cpu")
	t.Setenv("COMPUTE_TYPE", "int8")

	stdout, _, err := runCLI(t, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "hf_token: '[redacted]'")
	assert.NotContains(t, stdout, "hf_supersecret")
	assert.Contains(t, stdout, "environment: production")
	assert.Contains(t, stdout, "device: cpu")
	assert.Contains(t, stdout, "compute_type: int8")
	assert.Contains(t, stdout, "model: tiny")
	assert.Contains(t, stdout, "url: sqlite:///records.db")
	assert.Contains(t, stdout, "allowed_extensions:")
	assert.Contains(t, stdout, "- .mp3")
	assert.Contains(t, stdout, "- .mp4")
}

func TestConfigShow_EmptyTokenStaysEmpty(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("DEVICE", "cpu")
	t.Setenv("COMPUTE_TYPE", "int8")

	stdout, _, err := runCLI(t, "config", "show")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "[redacted]")
	assert.Contains(t, stdout, `hf_token: ""`)
}

func TestConfigShow_ReflectsEnvironment(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("DEVICE", "cuda")
	t.Setenv("COMPUTE_TYPE", "float16")
	t.Setenv("WHISPER_MODEL", "large-v3")
	t.Setenv("ENVIRONMENT", "Staging")
	t.Setenv("LOG_FORMAT", "json")

	stdout, _, err := runCLI(t, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "environment: staging")
	assert.Contains(t, stdout, "device: cuda")
	assert.Contains(t, stdout, "compute_type: float16")
	assert.Contains(t, stdout, "model: large-v3")
	assert.Contains(t, stdout, "format: json")
}

func TestConfigShow_InvalidEnvironment(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("DEVICE", "gpu")

	_, _, err := runCLI(t, "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve settings")
}

func TestConfigInit(t *testing.T) {
	clearSettingsEnv(t)
	target := filepath.Join(t.TempDir(), "conf", ".env")

	stdout, _, err := runCLI(t, "config", "init", "--path", target)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote sample environment to "+target)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "#DB_URL=sqlite:///records.db")
	assert.Contains(t, string(content), "#WHISPER_MODEL=tiny")
	assert.Contains(t, string(content), "database__DB_URL")
}

func TestConfigInit_RefusesExisting(t *testing.T) {
	clearSettingsEnv(t)
	target := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(target, []byte("DB_ECHO=true\n"), 0o644))

	_, _, err := runCLI(t, "config", "init", "--path", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --overwrite to replace it")

	// Existing content untouched.
	content, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	assert.Equal(t, "DB_ECHO=true\n", string(content))
}

func TestConfigInit_Overwrite(t *testing.T) {
	clearSettingsEnv(t)
	target := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(target, []byte("DB_ECHO=true\n"), 0o644))

	stdout, _, err := runCLI(t, "config", "init", "--path", target, "--overwrite")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote sample environment to "+target)

	content, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "#LOG_LEVEL=INFO")
}
