package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"scribe/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateOpenAI(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.Backend {
	case BackendTransformers, BackendOpenAI:
	default:
		return fmt.Errorf("transcription.backend must be %q or %q, got %q", BackendTransformers, BackendOpenAI, c.Transcription.Backend)
	}
	if c.Transcription.ChunkLengthSeconds <= 0 {
		return errors.New("transcription.chunk_length_seconds must be positive")
	}
	if !validDevice(c.Transcription.Device) {
		return fmt.Errorf("transcription.device must be auto, cpu, mps, cuda, or cuda:N, got %q", c.Transcription.Device)
	}
	if c.Transcription.Language != "" {
		if _, err := language.Normalize(c.Transcription.Language); err != nil {
			return fmt.Errorf("transcription.language: %w", err)
		}
	}
	return nil
}

func validDevice(value string) bool {
	switch value {
	case DeviceAuto, "cpu", "mps", "cuda":
		return true
	}
	index, ok := strings.CutPrefix(value, "cuda:")
	if !ok || index == "" {
		return false
	}
	n, err := strconv.Atoi(index)
	return err == nil && n >= 0
}

func (c *Config) validateOpenAI() error {
	if c.Transcription.Backend != BackendOpenAI {
		return nil
	}
	if c.OpenAI.APIKey == "" {
		return errors.New("openai.api_key is required when transcription.backend is \"openai\" (or set OPENAI_API_KEY)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
