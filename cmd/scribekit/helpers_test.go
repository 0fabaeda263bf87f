package main

import (
	"bytes"
	"os"
	"testing"
)

// settingsEnvKeys are every variable the settings layer recognizes, flat and
// nested. Tests unset them all so host environment cannot leak in.
var settingsEnvKeys = []string{
	"ENVIRONMENT", "DEV",
	"DB_URL", "DB_ECHO",
	"HF_TOKEN", "WHISPER_MODEL", "DEFAULT_LANG", "DEVICE", "COMPUTE_TYPE",
	"LOG_LEVEL", "LOG_FORMAT", "FILTER_WARNING",
	"database__DB_URL", "database__DB_ECHO",
	"whisper__HF_TOKEN", "whisper__WHISPER_MODEL", "whisper__DEFAULT_LANG",
	"whisper__DEVICE", "whisper__COMPUTE_TYPE",
	"logging__LOG_LEVEL", "logging__LOG_FORMAT", "logging__FILTER_WARNING",
}

func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, key := range settingsEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
