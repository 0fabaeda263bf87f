package cuda

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const (
	defaultProcPath   = "/proc/driver/nvidia/version"
	defaultDeviceGlob = "/dev/nvidia[0-9]*"
	defaultSMIBinary  = "nvidia-smi"
	defaultSMITimeout = 2 * time.Second
)

// Runtime detects CUDA availability by inspecting the running system.
// Construct instances with NewRuntime; the zero value has no probe paths
// configured.
type Runtime struct {
	procPath   string
	deviceGlob string
	smiBinary  string
	smiTimeout time.Duration
	run        func(ctx context.Context, name string, args ...string) error
}

// RuntimeOption customizes a Runtime detector.
type RuntimeOption func(*Runtime)

// WithProcPath overrides the NVIDIA driver proc file consulted first.
func WithProcPath(path string) RuntimeOption {
	return func(r *Runtime) {
		if path != "" {
			r.procPath = path
		}
	}
}

// WithDeviceGlob overrides the pattern used to look for GPU device nodes.
func WithDeviceGlob(pattern string) RuntimeOption {
	return func(r *Runtime) {
		if pattern != "" {
			r.deviceGlob = pattern
		}
	}
}

// WithSMIBinary overrides the nvidia-smi binary name or path.
func WithSMIBinary(name string) RuntimeOption {
	return func(r *Runtime) {
		if name != "" {
			r.smiBinary = name
		}
	}
}

// WithSMITimeout bounds the nvidia-smi invocation.
func WithSMITimeout(d time.Duration) RuntimeOption {
	return func(r *Runtime) {
		if d > 0 {
			r.smiTimeout = d
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) RuntimeOption {
	return func(r *Runtime) {
		r.run = runner
	}
}

// NewRuntime creates a detector that probes the local machine.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		procPath:   defaultProcPath,
		deviceGlob: defaultDeviceGlob,
		smiBinary:  defaultSMIBinary,
		smiTimeout: defaultSMITimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available reports whether a usable CUDA device is present. The driver proc
// file plus a device node counts as sufficient evidence without spawning a
// process; otherwise the check falls back to asking nvidia-smi, bounded by a
// short timeout.
func (r *Runtime) Available(ctx context.Context) bool {
	if r.hasDriver() && r.hasDeviceNode() {
		return true
	}
	return r.smiResponds(ctx)
}

func (r *Runtime) hasDriver() bool {
	_, err := os.Stat(r.procPath)
	return err == nil
}

func (r *Runtime) hasDeviceNode() bool {
	matches, err := filepath.Glob(r.deviceGlob)
	return err == nil && len(matches) > 0
}

func (r *Runtime) smiResponds(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, r.smiTimeout)
	defer cancel()

	if r.run != nil {
		return r.run(probeCtx, r.smiBinary, "-L") == nil
	}
	if _, err := exec.LookPath(r.smiBinary); err != nil {
		return false
	}
	return exec.CommandContext(probeCtx, r.smiBinary, "-L").Run() == nil
}
