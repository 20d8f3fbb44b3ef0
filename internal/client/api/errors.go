package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for any 401 response, after the persisted
	// session has been purged.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries a non-2xx status and the server-supplied human-readable
// detail text, when present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}
