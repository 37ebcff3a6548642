package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/testsupport"
	"scribe/internal/transcript"
)

func TestTranscribeWritesTranscript(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteWAV(t, "sample.wav", 0.25)

	out, stderr, err := runCLI(t, []string{"sample.wav", "out/result.txt"}, env.configPath)
	if err != nil {
		t.Fatalf("transcribe: %v (stderr: %s)", err, stderr)
	}
	requireContains(t, out, "SUCCESS")
	requireContains(t, out, "The transcription was successfully saved to:\nout/result.txt\n")
	requireContains(t, stderr, "Using CPU.")

	data, err := os.ReadFile(filepath.Join(env.workDir, "out", "result.txt"))
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	header, body, err := transcript.ParseHeader(string(data))
	if err != nil {
		t.Fatalf("parse transcript: %v", err)
	}
	if header.Source != "sample.wav" {
		t.Fatalf("unexpected source %q", header.Source)
	}
	if body != "Hello from the stub runner." {
		t.Fatalf("unexpected body %q", body)
	}

	logData, err := os.ReadFile(env.cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	requireContains(t, string(logData), "transcript saved")
}

func TestTranscribeMissingAudioExitsCleanly(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"missing.wav", "out/result.txt"}, env.configPath)
	if err != nil {
		t.Fatalf("expected nil error for transcription failure, got %v", err)
	}
	requireContains(t, out, "Error: Audio file not found at 'missing.wav'.")
	if strings.Contains(out, "SUCCESS") {
		t.Fatalf("did not expect success banner: %q", out)
	}
	if _, err := os.Stat(filepath.Join(env.workDir, "out")); !os.IsNotExist(err) {
		t.Fatalf("output directory should not be created, stat err=%v", err)
	}
}

func TestTranscribeRunnerFailure(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries("echo 'RuntimeError: CUDA out of memory' >&2\nexit 3", "uv"))
	testsupport.WriteWAV(t, "sample.wav", 0.1)

	out, _, err := runCLI(t, []string{"sample.wav", "result.txt"}, env.configPath)
	if err != nil {
		t.Fatalf("expected nil error for transcription failure, got %v", err)
	}
	requireContains(t, out, "Error: An unexpected error occurred during transcription:")
	requireContains(t, out, "CUDA out of memory")
	if _, err := os.Stat(filepath.Join(env.workDir, "result.txt")); !os.IsNotExist(err) {
		t.Fatalf("no transcript should be written on failure, stat err=%v", err)
	}
}

func TestTranscribeWithOpenAIBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":" remote words ","segments":[{"id":0,"start":0,"end":0.1,"text":" remote words"}]}`))
	}))
	defer srv.Close()

	env := setupCLITestEnv(t, testsupport.WithOpenAI(srv.URL+"/v1", "sk-test"))
	testsupport.WriteWAV(t, "sample.wav", 0.1)

	out, stderr, err := runCLI(t, []string{"sample.wav", "remote.txt"}, env.configPath)
	if err != nil {
		t.Fatalf("transcribe: %v (stderr: %s)", err, stderr)
	}
	requireContains(t, out, "remote.txt")
	data, err := os.ReadFile(filepath.Join(env.workDir, "remote.txt"))
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n\nremote words") {
		t.Fatalf("unexpected transcript %q", data)
	}
}

func TestRootRequiresTwoArguments(t *testing.T) {
	env := setupCLITestEnv(t)
	for _, args := range [][]string{{}, {"only.wav"}, {"a.wav", "b.txt", "c"}} {
		if _, _, err := runCLI(t, args, env.configPath); err == nil {
			t.Fatalf("expected argument error for %v", args)
		}
	}
}

func TestInvalidConfigFails(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[transcription]\nbackend = \"vosk\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	testsupport.WriteWAV(t, "sample.wav", 0.1)

	_, _, err := runCLI(t, []string{"sample.wav", "out.txt"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "transcription.backend") {
		t.Fatalf("expected backend validation error, got %v", err)
	}
}
