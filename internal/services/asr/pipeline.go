package asr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scribe/internal/config"
	"scribe/internal/device"
)

// Pipeline transcribes audio files. Implementations are constructed once per
// run and may be reused for several files.
type Pipeline interface {
	Transcribe(ctx context.Context, req Request) (Result, error)
	Model() string
}

// Request describes one transcription call.
type Request struct {
	AudioPath          string
	ChunkLengthSeconds int
	ReturnTimestamps   bool
	// Language is an optional ISO 639-1 hint. Empty means auto-detect.
	Language string
}

// Result is the pipeline output.
type Result struct {
	Text     string
	Language string
	Chunks   []Chunk
}

// Chunk is one timestamped span of the transcript.
type Chunk struct {
	Text  string
	Start float64
	End   float64
	// Open is true when the model emitted no end timestamp for the final chunk.
	Open bool
}

// Span formats the chunk bounds for logging.
func (c Chunk) Span() string {
	start := formatSeconds(c.Start)
	if c.Open {
		return start + "-?"
	}
	return start + "-" + formatSeconds(c.End)
}

func formatSeconds(v float64) string {
	return (time.Duration(v * float64(time.Second))).Truncate(10 * time.Millisecond).String()
}

// New builds the pipeline selected by cfg.Transcription.Backend bound to dev.
func New(cfg *config.Config, dev device.Device) (Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("asr: config required")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Transcription.Backend)) {
	case "", config.BackendTransformers:
		return NewLocal(LocalConfig{
			Model:     cfg.Transcription.Model,
			UVCommand: cfg.Runtime.UVCommand,
			Python:    cfg.Runtime.Python,
			CacheDir:  cfg.Runtime.CacheDir,
		}, dev), nil
	case config.BackendOpenAI:
		return NewOpenAI(OpenAIConfig{
			APIKey:         cfg.OpenAI.APIKey,
			BaseURL:        cfg.OpenAI.BaseURL,
			Model:          cfg.OpenAI.Model,
			TimeoutSeconds: cfg.OpenAI.TimeoutSeconds,
		})
	default:
		return nil, fmt.Errorf("asr: unsupported backend %q", cfg.Transcription.Backend)
	}
}
