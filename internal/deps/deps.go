package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"scribe/internal/config"
	"scribe/internal/services/asr"
)

// Requirement defines an external binary scribe may execute.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	// Path is the resolved executable when Available.
	Path   string
	Detail string
}

// Requirements lists the binaries relevant to cfg. The local transformers
// backend needs uv to provision the runtime and ffmpeg, which the pipeline
// uses to decode every audio file, WAV included.
func Requirements(cfg *config.Config) []Requirement {
	local := cfg == nil || cfg.Transcription.Backend != config.BackendOpenAI
	uv := asr.UVCommand
	if cfg != nil && strings.TrimSpace(cfg.Runtime.UVCommand) != "" {
		uv = cfg.Runtime.UVCommand
	}
	return []Requirement{
		{Name: "uv", Command: uv, Description: "Provisions the Python transformers runtime", Optional: !local},
		{Name: "FFmpeg", Command: asr.FFmpegCommand, Description: "Decodes audio input for the transformers pipeline", Optional: !local},
		{Name: "FFprobe", Command: "ffprobe", Description: "Reads audio metadata for debug logs", Optional: true},
		{Name: "nvidia-smi", Command: "nvidia-smi", Description: "Detects CUDA GPUs", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the required statuses that are unavailable.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
