// Package main hosts the scribekit CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves the transcription service settings
// from the environment and surfaces them for inspection: `config show` prints
// the fully normalized configuration, `config init` scaffolds an annotated
// env file, and `doctor` runs the accelerator, runtime and database
// diagnostics the service itself performs at startup.
//
// Keep this package lean: add new functionality by extending the pkg
// packages first, then surface it through dedicated commands or flags here.
package main
