// Package ffprobe wraps ffprobe JSON output for audio inspection.
//
// Inspect runs ffprobe against a file and returns the container format plus
// its streams. Helpers pick out the first audio stream and parse the numeric
// fields ffprobe reports as strings.
package ffprobe
