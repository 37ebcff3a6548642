// Package preflight provides readiness checks for the runtime pieces a
// transcription depends on: the compute device, the model cache directory,
// and the remote endpoint when the openai backend is selected.
//
// The "scribe doctor" command runs RunAll and renders each Result next to
// the external binary statuses from CheckSystemDeps.
package preflight
