package preflight

import "fmt"

// RuntimeError reports a native ML runtime that cannot load because the
// dynamic linker resolved an incompatible NCCL library.
type RuntimeError struct {
	Preload     string // LD_PRELOAD at the time of the failure
	LibraryPath string // LD_LIBRARY_PATH at the time of the failure
	Output      string // combined interpreter output
	err         error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf(
		"ml runtime import failed with an NCCL symbol error; the resolved NCCL library is older than the one the runtime was built against (%s=%q, %s=%q)",
		preloadEnv, e.Preload, libraryPathEnv, e.LibraryPath,
	)
}

func (e *RuntimeError) Unwrap() error { return e.err }
