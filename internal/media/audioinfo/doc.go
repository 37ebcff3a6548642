// Package audioinfo reports basic metadata for the audio file about to be
// transcribed. WAV files are read natively; other containers go through
// ffprobe when it is installed. The result only feeds debug logging, so a
// failed inspection never blocks a transcription.
package audioinfo
