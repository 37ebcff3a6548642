package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"scribe/internal/config"
	"scribe/internal/device"
	"scribe/internal/logging"
	"scribe/internal/media/audioinfo"
	"scribe/internal/services"
	"scribe/internal/services/asr"
	"scribe/internal/transcript"
)

// PipelineFactory constructs the ASR pipeline bound to a device. Construction
// includes loading the model, so the driver calls it at most once.
type PipelineFactory func(ctx context.Context, dev device.Device) (asr.Pipeline, error)

// Options configures a Driver.
type Options struct {
	Logger *slog.Logger
	// Probe answers accelerator availability when DeviceOverride is empty or "auto".
	Probe          device.Probe
	DeviceOverride string
	Factory        PipelineFactory

	ChunkLengthSeconds int
	ReturnTimestamps   bool
	Language           string

	// Audio gathers metadata for debug logging.
	Audio audioinfo.Inspector
	// Now defaults to time.Now.
	Now func() time.Time
}

// Driver runs transcriptions. Device selection and pipeline construction
// happen on the first run that passes input validation and are reused after.
type Driver struct {
	opts   Options
	logger *slog.Logger

	mu       sync.Mutex
	device   device.Device
	pipeline asr.Pipeline
}

// New creates a driver from opts.
func New(opts Options) *Driver {
	if opts.ChunkLengthSeconds <= 0 {
		opts.ChunkLengthSeconds = asr.ChunkLengthSeconds
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Driver{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "transcribe"),
	}
}

// NewFromConfig wires a driver to the system accelerator probe and the
// backend selected in cfg.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Driver {
	return New(Options{
		Logger:         logger,
		Probe:          device.NewSystemProbe(),
		DeviceOverride: cfg.Transcription.Device,
		Factory: func(_ context.Context, dev device.Device) (asr.Pipeline, error) {
			return asr.New(cfg, dev)
		},
		ChunkLengthSeconds: cfg.Transcription.ChunkLengthSeconds,
		ReturnTimestamps:   cfg.Transcription.ReturnTimestamps,
		Language:           cfg.Transcription.Language,
	})
}

// Transcribe converts audioPath into a transcript at outputPath. It never
// returns an error directly; failures, including panics raised by the
// pipeline, are recorded in the Outcome.
func (d *Driver) Transcribe(ctx context.Context, audioPath, outputPath string) (outcome Outcome) {
	logger := d.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			outcome.Err = &Error{Kind: KindInference, Err: fmt.Errorf("pipeline panic: %v", r)}
			outcome.OutputPath = ""
		}
		if outcome.Err != nil {
			d.logFailure(logger, outcome.Err)
			return
		}
		logger.Info("transcript saved",
			logging.String(logging.FieldEventType, "transcription_complete"),
			logging.String("output", outcome.OutputPath),
			logging.Duration("elapsed", time.Since(started)),
		)
	}()

	if err := validateInput(audioPath); err != nil {
		return Outcome{Err: &Error{Kind: KindInputNotFound, Path: audioPath, Err: err}}
	}

	dev, err := d.resolveDevice(ctx, logger)
	if err != nil {
		return Outcome{Err: &Error{Kind: KindInference, Err: err}}
	}
	outcome.Device = dev

	pipeline, err := d.loadPipeline(ctx, logger, dev)
	if err != nil {
		outcome.Err = &Error{Kind: KindInference, Err: err}
		return outcome
	}
	outcome.Model = pipeline.Model()

	d.logAudio(ctx, logger, audioPath)
	logger.Info("transcribing",
		logging.String(logging.FieldEventType, "transcription_start"),
		logging.String("source", filepath.Base(audioPath)),
		logging.String(logging.FieldDevice, dev.String()),
	)

	result, err := pipeline.Transcribe(ctx, asr.Request{
		AudioPath:          audioPath,
		ChunkLengthSeconds: d.opts.ChunkLengthSeconds,
		ReturnTimestamps:   d.opts.ReturnTimestamps,
		Language:           d.opts.Language,
	})
	if err != nil {
		outcome.Err = &Error{Kind: KindInference, Err: err}
		return outcome
	}
	text := strings.TrimSpace(result.Text)
	outcome.Chunks = len(result.Chunks)
	logger.Info("transcription complete",
		logging.Int("chunks", len(result.Chunks)),
		logging.Int("characters", len(text)),
	)
	for i, chunk := range result.Chunks {
		logger.Debug("chunk",
			logging.Int("index", i),
			logging.String("span", chunk.Span()),
			logging.String("text", chunk.Text),
		)
	}

	doc := transcript.Document{Source: audioPath, GeneratedAt: d.opts.Now(), Text: text}
	if err := transcript.Write(outputPath, doc); err != nil {
		outcome.Err = &Error{Kind: KindIO, Path: outputPath, Err: err}
		return outcome
	}
	outcome.OutputPath = outputPath
	return outcome
}

func validateInput(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrInputNotFound
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	return nil
}

func (d *Driver) resolveDevice(ctx context.Context, logger *slog.Logger) (device.Device, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.device != "" {
		return d.device, nil
	}
	dev, err := device.Resolve(ctx, d.opts.DeviceOverride, d.opts.Probe)
	if err != nil {
		return "", err
	}
	d.device = dev
	logger.Info(dev.Describe(),
		logging.String(logging.FieldEventType, "device_selected"),
		logging.String(logging.FieldDevice, dev.String()),
	)
	return dev, nil
}

func (d *Driver) loadPipeline(ctx context.Context, logger *slog.Logger, dev device.Device) (asr.Pipeline, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pipeline != nil {
		return d.pipeline, nil
	}
	if d.opts.Factory == nil {
		return nil, fmt.Errorf("no pipeline factory configured")
	}
	logger.Info("loading model, this may take a moment on the first run",
		logging.String(logging.FieldEventType, "model_load"),
	)
	pipeline, err := d.opts.Factory(ctx, dev)
	if err != nil {
		return nil, err
	}
	if pipeline == nil {
		return nil, fmt.Errorf("pipeline factory returned nil")
	}
	d.pipeline = pipeline
	logger.Info("model ready", logging.String("model", pipeline.Model()))
	return pipeline, nil
}

func (d *Driver) logAudio(ctx context.Context, logger *slog.Logger, path string) {
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	info, err := d.opts.Audio.Inspect(ctx, path)
	if err != nil {
		logger.Debug("audio inspection failed", logging.Error(err))
		return
	}
	logger.Debug("audio details", logging.Args(info.Attrs()...)...)
}

func (d *Driver) logFailure(logger *slog.Logger, err error) {
	hint := services.Hint(err)
	if errors.Is(err, ErrInputNotFound) {
		hint = "check the audio path"
	}
	logging.ErrorWithContext(logger, "transcription failed", "transcription_failure",
		logging.String(logging.FieldErrorHint, hint),
		logging.Error(err),
	)
}
