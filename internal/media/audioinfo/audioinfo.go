package audioinfo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"

	"scribe/internal/logging"
	"scribe/internal/media/ffprobe"
)

// Info is the metadata gathered for one file.
type Info struct {
	Path       string
	Format     string
	SizeBytes  int64
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
	// Probed is false when only the file extension could be determined.
	Probed bool
}

// Inspector gathers Info. The zero value uses ffprobe from PATH.
type Inspector struct {
	FFprobeBinary string
}

// Inspect is shorthand for a zero Inspector.
func Inspect(ctx context.Context, path string) (Info, error) {
	return Inspector{}.Inspect(ctx, path)
}

// Inspect reads metadata from path.
func (i Inspector) Inspect(ctx context.Context, path string) (Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("audioinfo: stat: %w", err)
	}
	info := Info{
		Path:      path,
		Format:    strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		SizeBytes: stat.Size(),
	}

	if info.Format == "wav" || info.Format == "wave" {
		return inspectWAV(info)
	}

	binary := i.FFprobeBinary
	if binary == "" {
		binary = ffprobe.DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return info, nil
	}
	result, err := ffprobe.Inspect(ctx, binary, path)
	if err != nil {
		return info, fmt.Errorf("audioinfo: %w", err)
	}
	return fromFFprobe(info, result)
}

func inspectWAV(info Info) (Info, error) {
	f, err := os.Open(info.Path)
	if err != nil {
		return info, fmt.Errorf("audioinfo: open: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return info, fmt.Errorf("audioinfo: %s is not a valid WAV file", filepath.Base(info.Path))
	}
	info.Format = "wav"
	info.SampleRate = int(decoder.SampleRate)
	info.Channels = int(decoder.NumChans)
	info.BitDepth = int(decoder.BitDepth)
	duration, err := pcmDuration(decoder)
	if err != nil {
		return info, fmt.Errorf("audioinfo: wav duration: %w", err)
	}
	info.Duration = duration
	info.Probed = true
	return info, nil
}

// pcmDuration derives the length from the data chunk. decoder.Duration divides
// the whole RIFF size, so header bytes would count as audio.
func pcmDuration(decoder *wav.Decoder) (time.Duration, error) {
	if err := decoder.FwdToPCM(); err != nil {
		return 0, err
	}
	bytesPerSecond := int64(decoder.SampleRate) * int64(decoder.NumChans) * int64(decoder.BitDepth) / 8
	if bytesPerSecond <= 0 {
		return 0, fmt.Errorf("invalid format: %d Hz, %d channels, %d bits", decoder.SampleRate, decoder.NumChans, decoder.BitDepth)
	}
	seconds := float64(decoder.PCMLen()) / float64(bytesPerSecond)
	return time.Duration(seconds * float64(time.Second)), nil
}

func fromFFprobe(info Info, result ffprobe.Result) (Info, error) {
	stream, ok := result.FirstAudio()
	if !ok {
		return info, fmt.Errorf("audioinfo: %s has no audio stream", filepath.Base(info.Path))
	}
	if name := strings.TrimSpace(result.Format.FormatName); name != "" {
		info.Format = name
	}
	info.SampleRate = stream.SampleRateHz()
	info.Channels = stream.Channels
	info.BitDepth = stream.BitsPerSample
	if secs := result.DurationSeconds(); secs > 0 {
		info.Duration = time.Duration(secs * float64(time.Second))
	}
	info.Probed = true
	return info, nil
}

// Attrs renders the metadata as structured logging attributes.
func (i Info) Attrs() []logging.Attr {
	attrs := []logging.Attr{
		logging.String("format", i.Format),
		logging.Int64("size_bytes", i.SizeBytes),
	}
	if !i.Probed {
		return attrs
	}
	return append(attrs,
		logging.Int("sample_rate", i.SampleRate),
		logging.Int("channels", i.Channels),
		logging.Duration("duration", i.Duration),
	)
}
