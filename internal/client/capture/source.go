// Package capture drives the webcam capture lifecycle: live preview, a held
// still frame, and confirmation into a transport-ready base64 payload.
package capture

import (
	"context"
	"errors"
)

// ErrFrameNotReady is returned by a FrameSource while the device is warming
// up and no frame can be produced yet. It is not a failure: the orchestrator
// stays live and the caller simply tries again.
var ErrFrameNotReady = errors.New("frame not ready")

// Frame is one still image read from a source.
type Frame struct {
	Data []byte
	MIME string
}

// FrameSource produces still frames from some device or file.
//
// Grab returns ErrFrameNotReady while no frame is obtainable. Close releases
// the underlying resource and must be safe to call more than once; the
// orchestrator guarantees it runs on teardown from any state.
type FrameSource interface {
	Grab(ctx context.Context) (*Frame, error)
	Close() error
}
