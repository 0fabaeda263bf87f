package preflight

import (
	"context"
	"os"
	"strings"
)

// runtimeErrorMarkers are the substrings torch surfaces when the dynamic
// linker resolved an NCCL build older than the one torch was compiled
// against.
var runtimeErrorMarkers = []string{
	"ncclGroupSimulateEnd",
	"undefined symbol",
}

// VerifyRuntime spawns the Python interpreter and imports torch. NCCL symbol
// failures are translated into a *RuntimeError that records the linker
// environment; any other failure is returned unchanged. A nil return means
// the runtime imports cleanly.
func VerifyRuntime(ctx context.Context, opts ...Option) error {
	o := newOptions(opts)

	out, err := o.run(ctx, o.python, "-c", "import torch")
	if err == nil {
		return nil
	}

	combined := string(out)
	if !hasRuntimeMarker(combined) && !hasRuntimeMarker(err.Error()) {
		return err
	}

	return &RuntimeError{
		Preload:     os.Getenv(preloadEnv),
		LibraryPath: os.Getenv(libraryPathEnv),
		Output:      strings.TrimSpace(combined),
		err:         err,
	}
}

func hasRuntimeMarker(s string) bool {
	for _, marker := range runtimeErrorMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
