package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"scribe/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "asr", "run helper", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"asr", "run helper", "failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestHintMapping(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrConfiguration, "asr", "lookup", "uv missing", nil), "scribe doctor"},
		{services.Wrap(services.ErrTimeout, "asr", "run", "deadline", nil), "timeout"},
		{services.Wrap(services.ErrExternalTool, "asr", "run", "exit 1", nil), "runner output"},
		{services.Wrap(services.ErrCanceled, "asr", "run", "", nil), "interrupted"},
		{errors.New("plain"), "retry"},
	}
	for _, tt := range tests {
		if got := services.Hint(tt.err); !strings.Contains(got, tt.want) || (tt.want == "" && got != "") {
			t.Fatalf("Hint(%v) = %q, want substring %q", tt.err, got, tt.want)
		}
	}
}

func TestWrapContextSeparatesCancelFromDeadline(t *testing.T) {
	canceled := services.WrapContext(context.Canceled, "asr", "run helper", "", errors.New("signal: killed"))
	if !errors.Is(canceled, services.ErrCanceled) || errors.Is(canceled, services.ErrTimeout) {
		t.Fatalf("expected cancel marker only, got %v", canceled)
	}
	if hint := services.Hint(canceled); strings.Contains(hint, "timeout") {
		t.Fatalf("cancel hint should not mention timeouts, got %q", hint)
	}

	expired := services.WrapContext(context.DeadlineExceeded, "asr", "run helper", "", nil)
	if !errors.Is(expired, services.ErrTimeout) {
		t.Fatalf("expected timeout marker, got %v", expired)
	}
	if !errors.Is(expired, context.DeadlineExceeded) {
		t.Fatalf("expected context error to be wrapped, got %v", expired)
	}
}
