// Package cuda answers one question: can the current process use a CUDA
// accelerator. The answer drives configuration defaults (device selection and
// inference precision) and the diagnostic surface of the CLI.
//
// Two implementations of the Detector interface are provided:
//
//   - Runtime inspects the local machine. It treats the NVIDIA driver proc
//     file together with a device node as sufficient evidence, and otherwise
//     falls back to invoking nvidia-smi with a short timeout.
//   - Static returns a fixed answer and exists for tests and for forcing a
//     deployment onto a known device.
//
// Detection never errors: an unreadable proc filesystem, a missing binary or
// a hung nvidia-smi all count as "no accelerator".
package cuda
