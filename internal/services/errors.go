package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrTimeout       = errors.New("timeout")
	ErrCanceled      = errors.New("canceled")
	ErrTransient     = errors.New("transient failure")
)

// Wrap builds an error message that includes backend context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// WrapContext classifies a failure caused by a done context. A deadline maps
// to ErrTimeout and an explicit cancellation, such as Ctrl-C, to ErrCanceled.
func WrapContext(ctxErr error, component, operation, message string, err error) error {
	if err == nil {
		err = ctxErr
	}
	if errors.Is(ctxErr, context.Canceled) {
		if message == "" {
			message = "interrupted"
		}
		return Wrap(ErrCanceled, component, operation, message, err)
	}
	return Wrap(ErrTimeout, component, operation, message, err)
}

// Hint maps a backend error to the next step an operator should take.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "check the scribe config file or run scribe doctor"
	case errors.Is(err, ErrValidation):
		return "check the audio file and transcription settings"
	case errors.Is(err, ErrCanceled):
		return "the run was interrupted; start it again when ready"
	case errors.Is(err, ErrTimeout):
		return "raise the timeout or use a smaller model"
	case errors.Is(err, ErrExternalTool):
		return "run scribe doctor and inspect the runner output"
	default:
		return "retry the transcription"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
