package main

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/scribekit/pkg/config"
	"github.com/dmitrymomot/scribekit/pkg/cuda"
	"github.com/dmitrymomot/scribekit/pkg/logger"
)

func TestRunChecks_AllPass(t *testing.T) {
	clearSettingsEnv(t)
	log := logger.New(logger.WithOutput(io.Discard))
	s := &config.Settings{
		Database: config.DatabaseSettings{URL: "sqlite://"},
		Whisper:  config.WhisperSettings{Device: config.DeviceCPU, ComputeType: config.ComputeInt8},
	}

	results, failed := runChecks(context.Background(), s, log, checkOptions{
		skipRuntime: true,
		detector:    cuda.Static(false),
	})

	require.False(t, failed)
	require.Len(t, results, 2)
	assert.Equal(t, "CUDA accelerator", results[0].Name)
	assert.True(t, results[0].Passed)
	assert.Contains(t, results[0].Detail, "cpu")
	assert.Equal(t, "Database", results[1].Name)
	assert.True(t, results[1].Passed)
}

func TestRunChecks_AcceleratorMismatch(t *testing.T) {
	clearSettingsEnv(t)
	// Short-circuit the preload step so the test never rewrites linker env.
	t.Setenv("LD_PRELOAD", "/usr/lib/stub.so")
	log := logger.New(logger.WithOutput(io.Discard))
	s := &config.Settings{
		Database: config.DatabaseSettings{URL: "sqlite://"},
		Whisper:  config.WhisperSettings{Device: config.DeviceCUDA, ComputeType: config.ComputeFloat16},
	}

	results, failed := runChecks(context.Background(), s, log, checkOptions{
		skipRuntime:  true,
		skipDatabase: true,
		detector:     cuda.Static(false),
	})

	require.True(t, failed)
	require.Len(t, results, 2)
	assert.False(t, results[0].Passed)
	assert.Contains(t, results[0].Detail, "no accelerator detected")
	assert.Equal(t, "NCCL preload", results[1].Name)
	assert.True(t, results[1].Passed)
	assert.Contains(t, results[1].Detail, "already set")
}

func TestRunChecks_DatabaseFailure(t *testing.T) {
	clearSettingsEnv(t)
	log := logger.New(logger.WithOutput(io.Discard))
	s := &config.Settings{
		Database: config.DatabaseSettings{URL: "mysql://root@localhost/records"},
		Whisper:  config.WhisperSettings{Device: config.DeviceCPU, ComputeType: config.ComputeInt8},
	}

	results, failed := runChecks(context.Background(), s, log, checkOptions{
		skipRuntime: true,
		detector:    cuda.Static(false),
	})

	require.True(t, failed)
	require.Len(t, results, 2)
	assert.False(t, results[1].Passed)
	assert.Contains(t, results[1].Detail, "unsupported database url scheme")
}

func TestRunChecks_SkipsEverything(t *testing.T) {
	clearSettingsEnv(t)
	log := logger.New(logger.WithOutput(io.Discard))
	s := &config.Settings{
		Whisper: config.WhisperSettings{Device: config.DeviceCPU, ComputeType: config.ComputeInt8},
	}

	results, failed := runChecks(context.Background(), s, log, checkOptions{
		skipRuntime:  true,
		skipDatabase: true,
		detector:     cuda.Static(true),
	})

	require.False(t, failed)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Detail, "accelerator detected")
}

func TestDoctorCommand_Succeeds(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("DEVICE", "cpu")
	t.Setenv("COMPUTE_TYPE", "int8")
	t.Setenv("DB_URL", "sqlite://")
	t.Setenv("LOG_LEVEL", "ERROR")

	stdout, _, err := runCLI(t, "doctor", "--skip-runtime")
	require.NoError(t, err)

	assert.Contains(t, stdout, "CUDA accelerator")
	assert.Contains(t, stdout, "Database")
	assert.Contains(t, stdout, "ok")
	assert.NotContains(t, stdout, ansiGreen)
}

func TestDoctorCommand_ReportsFailure(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("DEVICE", "cpu")
	t.Setenv("COMPUTE_TYPE", "int8")
	t.Setenv("DB_URL", "mysql://root@localhost/records")
	t.Setenv("LOG_LEVEL", "ERROR")

	stdout, _, err := runCLI(t, "doctor", "--skip-runtime")
	require.Error(t, err)
	assert.EqualError(t, err, "one or more checks failed")
	assert.Contains(t, stdout, "fail")
}

func TestDescribeDatabase(t *testing.T) {
	assert.Equal(t, "sqlite:///records.db", describeDatabase("sqlite:///records.db"))
	assert.Equal(t, "postgres://user:xxxxx@db:5432/records", describeDatabase("postgres://user:secret@db:5432/records"))
}
