// Package main hosts the scribe CLI entrypoint and command graph.
//
// The root command takes an audio file and an output path, runs one
// transcription, and prints either a success banner naming the transcript or
// the failure line. Transcription failures are reported on stdout and still
// exit 0; only argument and configuration errors exit non-zero.
//
// Subcommands cover setup and inspection: "doctor" reports runtime readiness,
// "config" scaffolds or prints the configuration, and "show" summarizes a
// transcript written earlier. Keep this package lean: behaviour
// lives in the internal packages and is surfaced here.
package main
