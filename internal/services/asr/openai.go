package asr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"scribe/internal/services"
)

// OpenAI transcribes through an OpenAI-compatible audio endpoint.
type OpenAI struct {
	cfg    OpenAIConfig
	client *openai.Client
}

// NewOpenAI creates a remote pipeline. The API key is required.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "asr", "openai", "api key required", nil)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		clientCfg.BaseURL = base
	}
	httpClient := &http.Client{}
	if cfg.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	clientCfg.HTTPClient = httpClient
	return &OpenAI{cfg: cfg, client: openai.NewClientWithConfig(clientCfg)}, nil
}

// Model returns the remote model name for logging.
func (o *OpenAI) Model() string {
	return o.cfg.Model
}

// Transcribe uploads req.AudioPath and maps the verbose response segments to chunks.
// The endpoint segments audio itself, so ChunkLengthSeconds is not forwarded.
func (o *OpenAI) Transcribe(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.AudioPath) == "" {
		return Result{}, services.Wrap(services.ErrValidation, "asr", "transcribe", "audio path required", nil)
	}
	format := openai.AudioResponseFormatJSON
	if req.ReturnTimestamps {
		format = openai.AudioResponseFormatVerboseJSON
	}
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.cfg.Model,
		FilePath: req.AudioPath,
		Language: strings.TrimSpace(req.Language),
		Format:   format,
	})
	if err != nil {
		return Result{}, classifyOpenAIError(ctx, err)
	}

	result := Result{Text: resp.Text, Language: resp.Language}
	for _, seg := range resp.Segments {
		result.Chunks = append(result.Chunks, Chunk{
			Text:  strings.TrimSpace(seg.Text),
			Start: seg.Start,
			End:   seg.End,
		})
	}
	return result, nil
}

func classifyOpenAIError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return services.WrapContext(ctxErr, "asr", "openai transcription", "", err)
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return services.Wrap(services.ErrConfiguration, "asr", "openai transcription", fmt.Sprintf("status %d", apiErr.HTTPStatusCode), err)
		case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
			return services.Wrap(services.ErrValidation, "asr", "openai transcription", fmt.Sprintf("status %d", apiErr.HTTPStatusCode), err)
		}
	}
	return services.Wrap(services.ErrExternalTool, "asr", "openai transcription", "", err)
}

var _ Pipeline = (*OpenAI)(nil)
