package preflight

import (
	"context"
	"os/exec"
)

// Result reports the outcome of a single preflight operation.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

const (
	defaultTorchLibDir  = "/usr/local/lib/python3.11/dist-packages/torch/lib"
	defaultCUDALibDir   = "/usr/local/cuda/lib64"
	defaultPythonBinary = "python3"
)

type options struct {
	systemLibDir string
	torchLibDir  string
	python       string
	run          func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Option customizes the preflight operations.
type Option func(*options)

// WithSystemLibDir overrides the distro library directory searched for the
// packaged NCCL build. By default the directory is derived from the kernel's
// machine hardware name, e.g. /usr/lib/x86_64-linux-gnu.
func WithSystemLibDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.systemLibDir = dir
		}
	}
}

// WithTorchLibDir overrides the directory holding torch's bundled native
// libraries.
func WithTorchLibDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.torchLibDir = dir
		}
	}
}

// WithPythonBinary overrides the interpreter used to verify the runtime.
func WithPythonBinary(name string) Option {
	return func(o *options) {
		if name != "" {
			o.python = name
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing). The runner
// must return the combined output of the command.
func WithCommandRunner(run func(ctx context.Context, name string, args ...string) ([]byte, error)) Option {
	return func(o *options) {
		if run != nil {
			o.run = run
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		torchLibDir: defaultTorchLibDir,
		python:      defaultPythonBinary,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
