package preflight

import (
	"context"

	"scribe/internal/config"
	"scribe/internal/device"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, probe device.Probe) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDevice(ctx, cfg.Transcription.Device, probe)}

	if cfg.Runtime.CacheDir != "" {
		results = append(results, CheckDirectoryAccess("Model cache", cfg.Runtime.CacheDir))
	}

	if cfg.Transcription.Backend == config.BackendOpenAI {
		results = append(results, CheckOpenAI(ctx, cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey))
	}

	return results
}
