package device

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	nvidiaSMICommand = "nvidia-smi"
	probeTimeout     = 10 * time.Second
)

// SystemProbe inspects the host. Each answer is computed once and cached.
type SystemProbe struct {
	goos   string
	goarch string
	runner func(ctx context.Context, name string, args ...string) ([]byte, error)

	mpsOnce  sync.Once
	mps      bool
	cudaOnce sync.Once
	cuda     bool
}

// NewSystemProbe creates a probe for the running host.
func NewSystemProbe() *SystemProbe {
	return &SystemProbe{
		goos:   runtime.GOOS,
		goarch: runtime.GOARCH,
		runner: runCommand,
	}
}

// MPSAvailable reports Apple silicon, where PyTorch ships the Metal backend.
func (p *SystemProbe) MPSAvailable(context.Context) bool {
	p.mpsOnce.Do(func() {
		p.mps = p.goos == "darwin" && p.goarch == "arm64"
	})
	return p.mps
}

// CUDAAvailable reports whether nvidia-smi lists at least one GPU.
func (p *SystemProbe) CUDAAvailable(ctx context.Context) bool {
	p.cudaOnce.Do(func() {
		if p.goos == "darwin" {
			return
		}
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		out, err := p.runner(probeCtx, nvidiaSMICommand, "-L")
		if err != nil {
			return
		}
		p.cuda = countGPUs(out) > 0
	})
	return p.cuda
}

// countGPUs counts "GPU n: ..." lines in `nvidia-smi -L` output.
func countGPUs(out []byte) int {
	count := 0
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "GPU ") {
			count++
		}
	}
	return count
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}
