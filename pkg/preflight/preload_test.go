package preflight_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/scribekit/pkg/preflight"
)

func TestEnsurePreload_AlreadySet(t *testing.T) {
	t.Setenv("LD_PRELOAD", "/opt/nccl/libnccl.so.2")
	t.Setenv("LD_LIBRARY_PATH", "/opt/existing")

	res := preflight.EnsurePreload()

	assert.True(t, res.Passed, "an existing LD_PRELOAD should pass the check")
	assert.Contains(t, res.Detail, "/opt/nccl/libnccl.so.2")
	assert.Equal(t, "/opt/existing", os.Getenv("LD_LIBRARY_PATH"), "environment must be left untouched")
}

func TestEnsurePreload_SystemLibrary(t *testing.T) {
	systemDir := t.TempDir()
	torchDir := t.TempDir()
	lib := filepath.Join(systemDir, "libnccl.so.2")
	require.NoError(t, os.WriteFile(lib, []byte("stub"), 0o644))

	t.Setenv("LD_PRELOAD", "")
	t.Setenv("LD_LIBRARY_PATH", "/opt/existing")

	res := preflight.EnsurePreload(
		preflight.WithSystemLibDir(systemDir),
		preflight.WithTorchLibDir(torchDir),
	)

	require.True(t, res.Passed, "locating the distro library should pass the check")
	assert.Equal(t, lib, os.Getenv("LD_PRELOAD"))
	assert.Equal(t,
		systemDir+":"+torchDir+":/usr/local/cuda/lib64:/opt/existing",
		os.Getenv("LD_LIBRARY_PATH"),
		"library path should be prepended with the nccl, torch and cuda directories")
}

func TestEnsurePreload_TorchFallback(t *testing.T) {
	systemDir := t.TempDir()
	torchDir := t.TempDir()
	bundled := filepath.Join(torchDir, "libnccl.so.2.18.1")
	require.NoError(t, os.WriteFile(bundled, []byte("stub"), 0o644))

	t.Setenv("LD_PRELOAD", "")
	t.Setenv("LD_LIBRARY_PATH", "")

	res := preflight.EnsurePreload(
		preflight.WithSystemLibDir(systemDir),
		preflight.WithTorchLibDir(torchDir),
	)

	require.True(t, res.Passed, "torch's bundled nccl should be found when the distro package is absent")
	assert.Equal(t, bundled, os.Getenv("LD_PRELOAD"))
	assert.Equal(t,
		torchDir+":"+torchDir+":/usr/local/cuda/lib64",
		os.Getenv("LD_LIBRARY_PATH"),
		"library path should not carry a trailing separator when it was previously empty")
}

func TestEnsurePreload_NothingFound(t *testing.T) {
	t.Setenv("LD_PRELOAD", "")
	t.Setenv("LD_LIBRARY_PATH", "/opt/existing")

	res := preflight.EnsurePreload(
		preflight.WithSystemLibDir(t.TempDir()),
		preflight.WithTorchLibDir(t.TempDir()),
	)

	assert.False(t, res.Passed, "a missing NCCL library should not pass the check")
	assert.Contains(t, res.Detail, "no NCCL library found")
	assert.Empty(t, os.Getenv("LD_PRELOAD"), "environment must be left untouched")
	assert.Equal(t, "/opt/existing", os.Getenv("LD_LIBRARY_PATH"), "environment must be left untouched")
}
