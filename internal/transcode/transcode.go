// Package transcode re-encodes video payloads with ffmpeg for maximum
// playback compatibility. Uses exec.CommandContext with explicit argument
// slices and private temp directories.
package transcode

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Transcoder re-encodes raw video bytes. Implementations must leave the
// input untouched on failure so callers can fall back to it.
type Transcoder interface {
	Transcode(ctx context.Context, input []byte) ([]byte, error)
}

// FFmpeg shells out to the ffmpeg binary.
type FFmpeg struct {
	path string
}

// NewFFmpeg locates ffmpeg in PATH.
func NewFFmpeg() (*FFmpeg, error) {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	return &FFmpeg{path: path}, nil
}

// Transcode re-encodes input to H.264 baseline / AAC in an mp4 container.
// Baseline profile, yuv420p and +faststart keep the output playable on
// the widest range of clients.
func (f *FFmpeg) Transcode(ctx context.Context, input []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "magpie-transcode-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "input.mp4")
	out := filepath.Join(dir, "output.mp4")

	if err := os.WriteFile(in, input, 0600); err != nil {
		return nil, fmt.Errorf("writing input: %w", err)
	}

	args := []string{
		"-i", in,
		"-c:v", "libx264",
		"-profile:v", "baseline",
		"-level", "3.0",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		"-y",
		out,
	}

	cmd := exec.CommandContext(ctx, f.path, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w: %s", err, tail(output, 512))
	}

	result, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("reading output: %w", err)
	}
	return result, nil
}

// tail returns the last n bytes of b for error reporting.
func tail(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[len(b)-n:]
}

// None is a pass-through transcoder for configurations with re-encoding
// disabled.
type None struct{}

func (None) Transcode(ctx context.Context, input []byte) ([]byte, error) {
	return input, nil
}
