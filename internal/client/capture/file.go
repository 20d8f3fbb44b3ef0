package capture

import (
	"context"
	"fmt"
	"os"

	"github.com/sightpass/sightpass/internal/imagex"
)

// FileSource reads the still from a file on disk. Useful for headless
// environments and tests, where no camera is available.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Grab(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read capture file: %w", err)
	}
	return &Frame{Data: data, MIME: imagex.DetectMIME(data)}, nil
}

func (s *FileSource) Close() error { return nil }
