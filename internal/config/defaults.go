package config

const (
	defaultBackend            = BackendTransformers
	defaultModel              = "openai/whisper-base"
	defaultChunkLengthSeconds = 30
	defaultReturnTimestamps   = true
	defaultDevice             = DeviceAuto
	defaultUVCommand          = "uv"
	defaultOpenAIModel        = "whisper-1"
	defaultOpenAITimeout      = 600
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Backend identifiers accepted by transcription.backend.
const (
	BackendTransformers = "transformers"
	BackendOpenAI       = "openai"
)

// DeviceAuto lets the probe pick the compute device.
const DeviceAuto = "auto"

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Transcription: Transcription{
			Backend:            defaultBackend,
			Model:              defaultModel,
			ChunkLengthSeconds: defaultChunkLengthSeconds,
			ReturnTimestamps:   defaultReturnTimestamps,
			Device:             defaultDevice,
		},
		Runtime: Runtime{
			UVCommand: defaultUVCommand,
		},
		OpenAI: OpenAI{
			Model:          defaultOpenAIModel,
			TimeoutSeconds: defaultOpenAITimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
