package cuda

import "context"

// Detector reports whether a CUDA-capable accelerator is usable by the
// current process.
type Detector interface {
	// Available returns true when a CUDA device can be used. Implementations
	// must be safe for concurrent use and must treat probe failures as "not
	// available" rather than returning an error.
	Available(ctx context.Context) bool
}

// Static is a Detector with a fixed answer.
type Static bool

// Available implements Detector.
func (s Static) Available(context.Context) bool { return bool(s) }
