package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"scribe/internal/transcribe"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Compute device", statusError, "unsupported", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Compute device:", "[ERROR] unsupported")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Model cache", statusOK, "ok", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green wrapped line, got %q", got)
	}
}

func TestRenderOutcomeSuccess(t *testing.T) {
	got := renderOutcome(transcribe.Outcome{OutputPath: "out/result.txt"}, false)
	lines := strings.Split(got, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 banner lines, got %d: %q", len(lines), got)
	}
	if lines[1] != strings.Repeat("=", 50) || lines[5] != lines[1] {
		t.Fatalf("unexpected rules %q", got)
	}
	if lines[4] != "out/result.txt" {
		t.Fatalf("expected output path line, got %q", lines[4])
	}
}

func TestRenderOutcomeFailure(t *testing.T) {
	outcome := transcribe.Outcome{Err: &transcribe.Error{Kind: transcribe.KindInference, Err: errors.New("boom")}}
	got := renderOutcome(outcome, true)
	if !strings.HasPrefix(got, "\n"+ansiRed+"Error: An unexpected error occurred during transcription: boom") {
		t.Fatalf("unexpected failure render %q", got)
	}
	if strings.Contains(got, "SUCCESS") {
		t.Fatalf("failure must not render the banner: %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
