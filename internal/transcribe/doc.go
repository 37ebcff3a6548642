// Package transcribe drives one transcription run from an audio path to a
// transcript file.
//
// Driver.Transcribe validates the input, resolves the compute device once,
// constructs the ASR pipeline once, runs it, and writes the transcript
// document. Every failure is captured in the returned Outcome rather than
// propagated; Outcome.Message renders the line shown to the user, where
// failures always start with the "Error:" marker.
package transcribe
