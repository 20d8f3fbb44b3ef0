package capture

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sightpass/sightpass/internal/imagex"
)

// runCommand is a test seam for executing the grabber command.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// ExecSource grabs frames by running an external grabber command that writes
// one encoded still image to stdout, e.g.:
//
//	fswebcam --no-banner --save -
//	ffmpeg -f v4l2 -i /dev/video0 -frames:v 1 -f image2 -
//
// A new process is spawned per grab, so nothing is held between frames and
// Close has no device to release.
type ExecSource struct {
	argv []string
}

func NewExecSource(command string) (*ExecSource, error) {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return nil, errors.New("empty capture command")
	}
	return &ExecSource{argv: argv}, nil
}

func (s *ExecSource) Grab(ctx context.Context) (*Frame, error) {
	out, err := runCommand(ctx, s.argv[0], s.argv[1:]...)
	if err != nil {
		return nil, fmt.Errorf("capture command failed: %w", err)
	}
	if len(out) == 0 {
		// camera still warming up
		return nil, ErrFrameNotReady
	}
	return &Frame{Data: out, MIME: imagex.DetectMIME(out)}, nil
}

func (s *ExecSource) Close() error { return nil }
