// Package preflight prepares and verifies the native libraries the Python
// ML runtime needs before the first transcription is attempted.
//
// Containers that bundle torch frequently ship a CUDA toolchain whose NCCL
// build is newer than the one installed system-wide. When the dynamic linker
// resolves the older system copy first, importing torch fails with symbol
// errors such as "ncclGroupSimulateEnd". Two operations address this:
//
//   - EnsurePreload points LD_PRELOAD at a compatible NCCL build and extends
//     LD_LIBRARY_PATH accordingly. It only acts when LD_PRELOAD is unset and
//     is best-effort: a linker that has already resolved its libraries cannot
//     be redirected, so the main value is in diagnostics and in wrapper
//     scripts that re-exec the service.
//   - VerifyRuntime spawns the Python interpreter and imports torch,
//     translating known NCCL symbol failures into a *RuntimeError that
//     records the linker environment at the time of the failure.
//
// Neither operation runs during settings construction; callers decide when
// (and whether) to invoke them. The CLI doctor command runs both.
package preflight
