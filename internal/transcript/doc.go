// Package transcript renders and persists transcript documents.
//
// A document is a fixed three-line header (source file name, generation
// time, separator), a blank line, then the transcribed text with no trailing
// newline. Write creates missing parent directories and replaces any existing
// file atomically. ParseHeader reads the header back.
package transcript
