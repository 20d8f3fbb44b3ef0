package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
)

// State of one capture cycle.
type State int

const (
	// StateLive means the source is streaming and no still is held.
	StateLive State = iota

	// StateCaptured means one still frame is held, awaiting confirm/retake.
	StateCaptured

	// StateConfirmed means the still was handed to the consumer and the
	// cycle is finished.
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateCaptured:
		return "captured"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// ErrInvalidState is returned when an operation is called outside the state
// that permits it (capturing twice, confirming without a still, ...).
var ErrInvalidState = errors.New("invalid capture state")

// Payload is the transport-ready form of a confirmed still: a base64 byte
// string plus its declared MIME type. It is created per capture attempt,
// consumed by one API call, and discarded.
type Payload struct {
	Base64 string
	MIME   string
}

// Orchestrator drives one capture cycle: Live → Captured → (Confirmed | back
// to Live on retake). At most one still is pending at a time.
type Orchestrator struct {
	src    FrameSource
	state  State
	still  *Frame
	closed bool
}

func NewOrchestrator(src FrameSource) *Orchestrator {
	return &Orchestrator{src: src, state: StateLive}
}

// State reports the current cycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// Still returns the held frame, or nil outside StateCaptured.
func (o *Orchestrator) Still() *Frame {
	return o.still
}

// Capture reads one frame from the source. Valid only in StateLive. If the
// source has no frame yet (ErrFrameNotReady) the state does not change and
// no error is reported; the transition happens once a frame is obtainable.
func (o *Orchestrator) Capture(ctx context.Context) error {
	if o.state != StateLive {
		return fmt.Errorf("%w: capture in %s", ErrInvalidState, o.state)
	}

	frame, err := o.src.Grab(ctx)
	if err != nil {
		if errors.Is(err, ErrFrameNotReady) {
			return nil
		}
		return err
	}

	o.still = frame
	o.state = StateCaptured
	return nil
}

// Retake discards the held still and returns to live preview.
// Valid only in StateCaptured.
func (o *Orchestrator) Retake() error {
	if o.state != StateCaptured {
		return fmt.Errorf("%w: retake in %s", ErrInvalidState, o.state)
	}
	o.still = nil
	o.state = StateLive
	return nil
}

// Confirm hands the held still to the caller as a base64 payload and ends
// this capture cycle. Valid only in StateCaptured.
func (o *Orchestrator) Confirm() (Payload, error) {
	if o.state != StateCaptured {
		return Payload{}, fmt.Errorf("%w: confirm in %s", ErrInvalidState, o.state)
	}

	p := Payload{
		Base64: base64.StdEncoding.EncodeToString(o.still.Data),
		MIME:   o.still.MIME,
	}
	o.still = nil
	o.state = StateConfirmed
	return p, nil
}

// Close releases the frame source. It runs from any state, exactly once;
// repeated calls are no-ops.
func (o *Orchestrator) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	return o.src.Close()
}
