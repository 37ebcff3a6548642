package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Device selection is pinned to cpu so tests never shell out to probes.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Transcription.Device = "cpu"
	cfgVal.Runtime.CacheDir = filepath.Join(base, "cache")
	cfgVal.Logging.File = filepath.Join(base, "logs", "scribe.log")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDevice overrides the device setting on the test config.
func WithDevice(value string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Transcription.Device = value
	}
}

// WithOpenAI switches the backend to the OpenAI endpoint at baseURL.
func WithOpenAI(baseURL, apiKey string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Transcription.Backend = config.BackendOpenAI
		b.cfg.OpenAI.BaseURL = baseURL
		b.cfg.OpenAI.APIKey = apiKey
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. Each stub runs body, which defaults to "exit 0".
func WithStubbedBinaries(body string, names ...string) ConfigOption {
	return func(b *configBuilder) {
		StubBinaries(b.t, filepath.Join(b.baseDir, "bin"), body, names...)
	}
}

// StubBinaries writes shell-script stubs into dir and prepends dir to PATH.
func StubBinaries(t testing.TB, dir, body string, names ...string) {
	t.Helper()

	if body == "" {
		body = "exit 0"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	script := []byte("#!/bin/sh\n" + body + "\n")
	for _, name := range names {
		target := filepath.Join(dir, name)
		if err := os.WriteFile(target, script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", dir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Runtime.CacheDir)
}
