// Package asr runs automatic speech recognition over a single audio file.
//
// Two backends implement Pipeline:
//   - Local drives a Hugging Face transformers pipeline through an embedded
//     Python helper launched with uv, bound to the selected compute device.
//   - OpenAI posts the file to an OpenAI-compatible transcription endpoint.
//
// Both return the full text plus the timestamped chunks the model produced.
// Callers persist the text; chunks are informational.
package asr
