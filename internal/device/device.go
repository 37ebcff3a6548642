package device

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Device is the identifier string the inference pipeline accepts.
type Device string

const (
	MPS  Device = "mps"
	CUDA Device = "cuda:0"
	CPU  Device = "cpu"
)

// Probe reports accelerator availability.
type Probe interface {
	MPSAvailable(ctx context.Context) bool
	CUDAAvailable(ctx context.Context) bool
}

// Select walks the tiers in order and returns the first available device.
func Select(ctx context.Context, probe Probe) Device {
	if probe == nil {
		return CPU
	}
	if probe.MPSAvailable(ctx) {
		return MPS
	}
	if probe.CUDAAvailable(ctx) {
		return CUDA
	}
	return CPU
}

// Resolve honours an explicit override and only consults the probe for "auto"
// or an empty value. "cuda" is shorthand for the first CUDA device.
func Resolve(ctx context.Context, override string, probe Probe) (Device, error) {
	value := strings.ToLower(strings.TrimSpace(override))
	switch value {
	case "", "auto":
		return Select(ctx, probe), nil
	case "cpu":
		return CPU, nil
	case "mps":
		return MPS, nil
	case "cuda":
		return CUDA, nil
	}
	if index, ok := strings.CutPrefix(value, "cuda:"); ok {
		if n, err := strconv.Atoi(index); err == nil && n >= 0 {
			return Device(value), nil
		}
	}
	return "", fmt.Errorf("device: unsupported value %q", override)
}

// IsCUDA reports whether the device targets an NVIDIA GPU.
func (d Device) IsCUDA() bool {
	return strings.HasPrefix(string(d), "cuda")
}

// Describe returns the operator-facing line logged when the device is chosen.
func (d Device) Describe() string {
	switch {
	case d == MPS:
		return "Using Apple GPU (MPS) for acceleration."
	case d.IsCUDA():
		return "Using Nvidia GPU (CUDA) for acceleration."
	default:
		return "Using CPU."
	}
}

func (d Device) String() string {
	return string(d)
}
