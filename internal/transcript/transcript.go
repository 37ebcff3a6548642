package transcript

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"scribe/internal/fileutil"
)

// Header line prefixes and the timestamp layout used in rendered documents.
const (
	SourcePrefix = "Transcription of file: "
	DatePrefix   = "Transcription date: "
	DateLayout   = "2006-01-02 15:04:05"
	SeparatorLen = 40
)

// Separator is the rule printed below the header.
var Separator = strings.Repeat("=", SeparatorLen)

// ErrMalformedHeader reports content that does not start with a transcript header.
var ErrMalformedHeader = errors.New("transcript: malformed header")

// Document is one transcript ready to render.
type Document struct {
	// Source is the audio path; only its base name is rendered.
	Source      string
	GeneratedAt time.Time
	Text        string
}

// Header is the parsed form of the first three lines.
type Header struct {
	Source      string
	GeneratedAt time.Time
}

// Render formats doc. GeneratedAt is printed in local time.
func Render(doc Document) string {
	var b strings.Builder
	b.WriteString(SourcePrefix)
	b.WriteString(filepath.Base(doc.Source))
	b.WriteByte('\n')
	b.WriteString(DatePrefix)
	b.WriteString(doc.GeneratedAt.Local().Format(DateLayout))
	b.WriteByte('\n')
	b.WriteString(Separator)
	b.WriteString("\n\n")
	b.WriteString(doc.Text)
	return b.String()
}

// Write renders doc to path, creating parent directories as needed and
// overwriting any existing file.
func Write(path string, doc Document) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("transcript: output path required")
	}
	if err := fileutil.EnsureParentDir(path); err != nil {
		return fmt.Errorf("transcript: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(Render(doc)), 0o644); err != nil {
		return fmt.Errorf("transcript: write %s: %w", path, err)
	}
	return nil
}

// ParseHeader reads the header from rendered content and returns it along
// with the body that follows the blank line.
func ParseHeader(content string) (Header, string, error) {
	lines := strings.SplitN(content, "\n", 5)
	if len(lines) < 4 {
		return Header{}, "", ErrMalformedHeader
	}
	source, ok := strings.CutPrefix(lines[0], SourcePrefix)
	if !ok {
		return Header{}, "", fmt.Errorf("%w: missing source line", ErrMalformedHeader)
	}
	stamp, ok := strings.CutPrefix(lines[1], DatePrefix)
	if !ok {
		return Header{}, "", fmt.Errorf("%w: missing date line", ErrMalformedHeader)
	}
	generated, err := time.ParseInLocation(DateLayout, stamp, time.Local)
	if err != nil {
		return Header{}, "", fmt.Errorf("%w: date: %w", ErrMalformedHeader, err)
	}
	if lines[2] != Separator {
		return Header{}, "", fmt.Errorf("%w: missing separator", ErrMalformedHeader)
	}
	if lines[3] != "" {
		return Header{}, "", fmt.Errorf("%w: missing blank line", ErrMalformedHeader)
	}
	body := ""
	if len(lines) == 5 {
		body = lines[4]
	}
	return Header{Source: source, GeneratedAt: generated}, body, nil
}
