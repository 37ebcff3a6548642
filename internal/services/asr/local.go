package asr

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"scribe/internal/device"
	"scribe/internal/services"
)

//go:embed assets/transcribe_helper.py
var helperScript []byte

// CacheLockName is the lock file created inside the model cache directory.
const CacheLockName = ".scribe.lock"

const cacheLockRetry = 250 * time.Millisecond

// CommandRunner executes name with args and extra environment entries and
// returns its stdout.
type CommandRunner func(ctx context.Context, env []string, name string, args ...string) ([]byte, error)

// Local runs the transformers ASR pipeline through uv.
type Local struct {
	cfg           LocalConfig
	device        device.Device
	commandRunner CommandRunner
}

// NewLocal creates a transformers-backed pipeline bound to dev.
func NewLocal(cfg LocalConfig, dev device.Device) *Local {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.UVCommand == "" {
		cfg.UVCommand = UVCommand
	}
	if dev == "" {
		dev = device.CPU
	}
	return &Local{cfg: cfg, device: dev}
}

// WithCommandRunner sets a custom command runner (for testing).
func (l *Local) WithCommandRunner(runner CommandRunner) {
	l.commandRunner = runner
}

// Model returns the configured model identifier for logging.
func (l *Local) Model() string {
	return l.cfg.Model
}

// Device returns the device the pipeline is bound to.
func (l *Local) Device() device.Device {
	return l.device
}

type helperChunk struct {
	Text      string     `json:"text"`
	Timestamp []*float64 `json:"timestamp"`
}

type helperPayload struct {
	Text   string        `json:"text"`
	Chunks []helperChunk `json:"chunks"`
}

// Transcribe runs the helper against req.AudioPath and parses its JSON output.
func (l *Local) Transcribe(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.AudioPath) == "" {
		return Result{}, services.Wrap(services.ErrValidation, "asr", "transcribe", "audio path required", nil)
	}

	script, err := os.CreateTemp("", "scribe-asr-*.py")
	if err != nil {
		return Result{}, fmt.Errorf("asr: create helper script: %w", err)
	}
	scriptPath := script.Name()
	defer os.Remove(scriptPath)
	if _, err := script.Write(helperScript); err != nil {
		script.Close()
		return Result{}, fmt.Errorf("asr: write helper script: %w", err)
	}
	if err := script.Close(); err != nil {
		return Result{}, fmt.Errorf("asr: close helper script: %w", err)
	}

	unlock, err := l.lockCache(ctx)
	if err != nil {
		return Result{}, err
	}
	defer unlock()

	args := l.buildArgs(scriptPath, req)
	out, err := l.run(ctx, l.environment(), l.cfg.UVCommand, args...)
	if err != nil {
		return Result{}, err
	}
	return parseHelperOutput(out)
}

// buildArgs constructs the uv command arguments for the helper.
func (l *Local) buildArgs(scriptPath string, req Request) []string {
	chunk := req.ChunkLengthSeconds
	if chunk <= 0 {
		chunk = ChunkLengthSeconds
	}

	args := make([]string, 0, 24)
	args = append(args, "run", "--no-project", "--quiet")
	if l.cfg.Python != "" {
		args = append(args, "--python", l.cfg.Python)
	}
	args = append(args,
		"--with", "transformers",
		"--with", "torch",
		"python", scriptPath,
		"--audio", req.AudioPath,
		"--model", l.cfg.Model,
		"--device", l.device.String(),
		"--chunk-length", strconv.Itoa(chunk),
	)
	if req.ReturnTimestamps {
		args = append(args, "--timestamps")
	}
	if lang := strings.TrimSpace(req.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

// lockCache serializes runs that share a model cache so a first-run model
// download is not fetched twice.
func (l *Local) lockCache(ctx context.Context) (func(), error) {
	if l.cfg.CacheDir == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(l.cfg.CacheDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "asr", "prepare cache", l.cfg.CacheDir, err)
	}
	lock := flock.New(filepath.Join(l.cfg.CacheDir, CacheLockName))
	locked, err := lock.TryLockContext(ctx, cacheLockRetry)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, services.WrapContext(ctxErr, "asr", "lock cache", "another run holds "+lock.Path(), err)
		}
		return nil, services.Wrap(services.ErrConfiguration, "asr", "lock cache", lock.Path(), err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "asr", "lock cache", "lock not acquired", nil)
	}
	return func() { _ = lock.Unlock() }, nil
}

func (l *Local) environment() []string {
	env := []string{"TRANSFORMERS_VERBOSITY=error"}
	if l.cfg.CacheDir != "" {
		env = append(env, "HF_HOME="+l.cfg.CacheDir)
	}
	return env
}

// run executes a command, using the custom runner if set.
func (l *Local) run(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	if l.commandRunner != nil {
		return l.commandRunner(ctx, env, name, args...)
	}
	if _, err := exec.LookPath(name); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "asr", "locate runner", name+" not found on PATH", err)
	}

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Env = append(os.Environ(), env...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, services.WrapContext(ctxErr, "asr", "run helper", "", err)
		}
		detail := lastLine(stderr.String())
		return nil, services.Wrap(services.ErrExternalTool, "asr", "run helper", detail, err)
	}
	return out, nil
}

func parseHelperOutput(out []byte) (Result, error) {
	line := lastJSONLine(out)
	if line == nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "asr", "parse helper output", "no result emitted", nil)
	}
	var payload helperPayload
	if err := json.Unmarshal(line, &payload); err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "asr", "parse helper output", "", err)
	}

	result := Result{Text: payload.Text}
	for _, c := range payload.Chunks {
		chunk := Chunk{Text: strings.TrimSpace(c.Text), Open: true}
		if len(c.Timestamp) > 0 && c.Timestamp[0] != nil {
			chunk.Start = *c.Timestamp[0]
		}
		if len(c.Timestamp) > 1 && c.Timestamp[1] != nil {
			chunk.End = *c.Timestamp[1]
			chunk.Open = false
		}
		result.Chunks = append(result.Chunks, chunk)
	}
	return result, nil
}

// lastJSONLine returns the final stdout line that looks like a JSON object.
// Libraries occasionally print banners to stdout before the helper result.
func lastJSONLine(out []byte) []byte {
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if bytes.HasPrefix(line, []byte("{")) {
			return line
		}
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "helper exited with error"
}

var _ Pipeline = (*Local)(nil)
