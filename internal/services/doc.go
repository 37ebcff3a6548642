// Package services defines shared utilities consumed by the external
// integrations that back a transcription run.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag backend failures
//     with a category the driver can turn into an operator hint.
//   - A home for backend packages (see services/asr) so command execution and
//     HTTP calls stay testable behind small seams.
package services
