package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sightpass/sightpass/internal/client/capture"
)

const (
	captureWarmupDelay = 300 * time.Millisecond
	maxWarmupAttempts  = 10
)

var errCaptureAborted = errors.New("capture aborted")

// captureStill runs one interactive capture cycle and returns the confirmed
// still as a base64 string. The frame source is released on every exit path.
func (a *App) captureStill(ctx context.Context) (string, error) {
	src, err := newFrameSource(a.config)
	if err != nil {
		return "", err
	}
	orch := capture.NewOrchestrator(src)
	defer orch.Close()

	warmups := 0
	for {
		if err := orch.Capture(ctx); err != nil {
			return "", err
		}
		if orch.State() != capture.StateCaptured {
			warmups++
			if warmups > maxWarmupAttempts {
				return "", errors.New("camera produced no frame")
			}
			fmt.Fprintln(a.out, "Camera warming up...")
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(captureWarmupDelay):
			}
			continue
		}

		still := orch.Still()
		fmt.Fprintf(a.out, "Captured a %s still (%d bytes).\n", still.MIME, len(still.Data))

		answer, err := getSimpleText(a.reader, "(c)onfirm / (r)etake / (a)bort", a.out)
		if err != nil {
			return "", err
		}
		switch strings.ToLower(answer) {
		case "c", "confirm":
			p, err := orch.Confirm()
			if err != nil {
				return "", err
			}
			return p.Base64, nil
		case "r", "retake":
			if err := orch.Retake(); err != nil {
				return "", err
			}
		default:
			fmt.Fprintln(a.out, "Aborted.")
			return "", errCaptureAborted
		}
	}
}

// FaceLogin authenticates with an email and a fresh webcam capture.
func (a *App) FaceLogin(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	image, err := a.captureStill(ctx)
	if err != nil {
		if errors.Is(err, errCaptureAborted) {
			return nil
		}
		a.reportError(ctx, err)
		return err
	}

	if err := a.session.FaceLogin(ctx, email, image); err != nil {
		a.reportError(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Face login successful.")
	return nil
}

// EnrollFace captures a still and enrolls it for the signed-in user.
func (a *App) EnrollFace(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	image, err := a.captureStill(ctx)
	if err != nil {
		if errors.Is(err, errCaptureAborted) {
			return nil
		}
		a.reportError(ctx, err)
		return err
	}

	res, err := a.session.EnrollFace(ctx, image)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	if res.Success {
		fmt.Fprintf(a.out, "Face enrolled (quality score %.0f/100).\n", res.QualityScore)
	} else {
		fmt.Fprintf(a.out, "Enrollment failed (quality score %.0f/100), try again with better lighting.\n", res.QualityScore)
	}
	return nil
}

// TestFace checks a fresh capture against an account's enrolled face without
// signing in. Useful for verifying enrollment quality.
func (a *App) TestFace(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email to test against", a.out)
	if err != nil {
		return err
	}

	image, err := a.captureStill(ctx)
	if err != nil {
		if errors.Is(err, errCaptureAborted) {
			return nil
		}
		a.reportError(ctx, err)
		return err
	}

	resp, err := a.api.TestFace(ctx, email, image)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	if resp.Match {
		fmt.Fprintf(a.out, "Match (confidence %.2f).\n", resp.Confidence)
	} else {
		fmt.Fprintf(a.out, "No match (confidence %.2f).\n", resp.Confidence)
	}
	if resp.Message != "" {
		fmt.Fprintln(a.out, resp.Message)
	}
	return nil
}
