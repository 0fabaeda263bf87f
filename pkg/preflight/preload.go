package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sys/unix"
)

const (
	preloadEnv     = "LD_PRELOAD"
	libraryPathEnv = "LD_LIBRARY_PATH"

	// ncclSystemLibName is the soname installed by the distro nccl package.
	ncclSystemLibName = "libnccl.so.2"
)

// EnsurePreload makes a best-effort attempt to point the dynamic linker at a
// compatible NCCL build. When LD_PRELOAD is already set the environment is
// left untouched. Otherwise the distro library directory is checked first,
// then torch's bundled libraries; on a hit LD_PRELOAD is set to the located
// library and LD_LIBRARY_PATH is prepended with the library's directory, the
// torch lib directory and the CUDA toolkit directory.
func EnsurePreload(opts ...Option) Result {
	const name = "NCCL preload"
	o := newOptions(opts)

	if current := os.Getenv(preloadEnv); current != "" {
		return Result{Name: name, Passed: true, Detail: preloadEnv + " already set: " + current}
	}

	lib := locateNCCL(o)
	if lib == "" {
		return Result{Name: name, Detail: "no NCCL library found; CUDA transcription may fail with symbol errors"}
	}

	if err := os.Setenv(preloadEnv, lib); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("set %s: %v", preloadEnv, err)}
	}

	paths := []string{filepath.Dir(lib), o.torchLibDir, defaultCUDALibDir}
	if prior := os.Getenv(libraryPathEnv); prior != "" {
		paths = append(paths, prior)
	}
	if err := os.Setenv(libraryPathEnv, strings.Join(paths, ":")); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("set %s: %v", libraryPathEnv, err)}
	}

	return Result{Name: name, Passed: true, Detail: preloadEnv + "=" + lib}
}

// locateNCCL returns the path of the preferred NCCL library, or "" when none
// is installed. The distro package wins over torch's bundled copy.
func locateNCCL(o *options) string {
	systemDir := o.systemLibDir
	if systemDir == "" {
		if machine := unameMachine(); machine != "" {
			systemDir = fmt.Sprintf("/usr/lib/%s-linux-gnu", machine)
		}
	}
	if systemDir != "" {
		candidate := filepath.Join(systemDir, ncclSystemLibName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	matches, err := filepath.Glob(filepath.Join(o.torchLibDir, "libnccl*.so*"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}

// unameMachine returns the kernel's machine hardware name, e.g. x86_64 or
// aarch64. An empty string means uname itself failed.
func unameMachine() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uts.Machine[:])
}
