package asr

// Pipeline parameters shared by every backend.
const (
	DefaultModel       = "openai/whisper-base"
	ChunkLengthSeconds = 30
	DefaultOpenAIModel = "whisper-1"
)

// Command names for external tools.
const (
	UVCommand     = "uv"
	FFmpegCommand = "ffmpeg"
)

// LocalConfig captures runtime settings for the transformers backend.
type LocalConfig struct {
	// Model is the Hugging Face model identifier.
	Model string
	// UVCommand is the uv binary used to provision the Python environment.
	UVCommand string
	// Python optionally pins the interpreter version uv should use.
	Python string
	// CacheDir is exported as HF_HOME when set.
	CacheDir string
}

// OpenAIConfig captures settings for the remote transcription backend.
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}
