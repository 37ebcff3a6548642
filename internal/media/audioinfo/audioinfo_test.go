package audioinfo_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"scribe/internal/logging"
	"scribe/internal/media/audioinfo"
	"scribe/internal/testsupport"
)

func TestInspectWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.wav")
	testsupport.WriteWAV(t, path, 1.5)

	info, err := audioinfo.Inspect(context.Background(), path)
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if !info.Probed || info.Format != "wav" {
		t.Fatalf("expected probed wav, got %+v", info)
	}
	if info.SampleRate != testsupport.WAVSampleRate || info.Channels != 1 || info.BitDepth != 16 {
		t.Fatalf("unexpected stream details %+v", info)
	}
	if info.Duration != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s duration from the data chunk, got %v", info.Duration)
	}
	if !logging.HasAttrKey(info.Attrs(), "duration") {
		t.Fatal("expected duration attribute for probed file")
	}
}

func TestInspectRejectsCorruptWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	testsupport.WriteFile(t, path, 64)

	if _, err := audioinfo.Inspect(context.Background(), path); err == nil {
		t.Fatal("expected error for invalid wav content")
	}
}

func TestInspectOtherFormatWithoutFFprobe(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	path := filepath.Join(t.TempDir(), "talk.MP3")
	testsupport.WriteFile(t, path, 128)

	info, err := audioinfo.Inspect(context.Background(), path)
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if info.Probed {
		t.Fatal("did not expect probe without ffprobe")
	}
	if info.Format != "mp3" || info.SizeBytes != 128 {
		t.Fatalf("unexpected info %+v", info)
	}
	if logging.HasAttrKey(info.Attrs(), "duration") {
		t.Fatal("did not expect duration attribute for unprobed file")
	}
}

func TestInspectUsesFFprobe(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	testsupport.StubBinaries(t, t.TempDir(), `printf '%s\n' '{"streams":[{"index":0,"codec_type":"audio","sample_rate":"48000","channels":2}],"format":{"format_name":"ogg","duration":"2.5"}}'`, "ffprobe")
	path := filepath.Join(t.TempDir(), "note.ogg")
	testsupport.WriteFile(t, path, 32)

	info, err := audioinfo.Inspect(context.Background(), path)
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if !info.Probed || info.SampleRate != 48000 || info.Channels != 2 {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.Duration != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s, got %v", info.Duration)
	}
}

func TestInspectMissingFile(t *testing.T) {
	if _, err := audioinfo.Inspect(context.Background(), filepath.Join(t.TempDir(), "absent.wav")); err == nil {
		t.Fatal("expected stat error")
	}
}
