package transcribe

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorMarker prefixes every user-facing failure message.
const ErrorMarker = "Error:"

// ErrInputNotFound matches failures caused by a missing or unreadable input path.
var ErrInputNotFound = errors.New("audio file not found")

// Kind classifies a failed run.
type Kind int

const (
	KindInputNotFound Kind = iota + 1
	KindInference
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindInputNotFound:
		return "input_not_found"
	case KindInference:
		return "inference"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the failure recorded in an Outcome.
type Error struct {
	Kind Kind
	// Path is the audio path for KindInputNotFound and the output path for KindIO.
	Path string
	Err  error
}

func (e *Error) Error() string {
	parts := []string{"transcribe", e.Kind.String()}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	msg := strings.Join(parts, ": ")
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInputNotFound) match input failures.
func (e *Error) Is(target error) bool {
	return target == ErrInputNotFound && e.Kind == KindInputNotFound
}

// Message renders the user-facing failure line.
func (e *Error) Message() string {
	if e.Kind == KindInputNotFound {
		return fmt.Sprintf("%s Audio file not found at '%s'.", ErrorMarker, e.Path)
	}
	return unexpectedMessage(e.Err)
}

func unexpectedMessage(cause error) string {
	detail := "unknown error"
	if cause != nil {
		detail = cause.Error()
	}
	return fmt.Sprintf("%s An unexpected error occurred during transcription: %s", ErrorMarker, detail)
}

// IsFailureMessage reports whether a rendered message denotes a failure.
func IsFailureMessage(msg string) bool {
	return strings.HasPrefix(msg, ErrorMarker)
}
