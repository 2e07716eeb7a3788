package relay

import (
	"context"
	"fmt"
	"os"

	"magpie/internal/httputil"
)

// mimeExt maps common MIME types to file extensions.
var mimeExt = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
	"audio/mpeg":      ".mp3",
	"audio/mp4":       ".m4a",
	"audio/ogg":       ".ogg",
}

// FileTransport writes media into a directory. It is the CLI's default
// transport; filenames are sanitized and confined to the directory.
type FileTransport struct {
	dir  string
	next int

	// Written collects the paths created, in send order.
	Written []string
}

// NewFileTransport creates the output directory if needed.
func NewFileTransport(dir string) (*FileTransport, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &FileTransport{dir: dir, next: 1}, nil
}

func (f *FileTransport) SendImage(ctx context.Context, payload []byte, mime, caption string) error {
	return f.save(payload, mime, caption)
}

func (f *FileTransport) SendVideo(ctx context.Context, payload []byte, mime, caption string) error {
	return f.save(payload, mime, caption)
}

func (f *FileTransport) SendAudio(ctx context.Context, payload []byte, mime string) error {
	return f.save(payload, mime, "")
}

func (f *FileTransport) save(payload []byte, mime, caption string) error {
	name := caption
	if name == "" {
		name = "media"
	}
	filename := fmt.Sprintf("%s_%02d%s", name, f.next, extFor(mime))

	path, err := httputil.SafeOutputPath(f.dir, filename)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	f.next++
	f.Written = append(f.Written, path)
	return nil
}

func extFor(mime string) string {
	if ext, ok := mimeExt[mime]; ok {
		return ext
	}
	return ".bin"
}
