// Package store implements the persisted session store: durable client-side
// state that survives restarts. Exactly two logical keys exist: the bearer
// token and the serialized last-known user record.
package store

import (
	"context"

	"github.com/sightpass/sightpass/internal/client/models"
)

// Store is durable key/value storage for the authentication session.
//
// Absent values are reported as zero values, not errors. The token and the
// user record are always cleared together, never independently.
type Store interface {
	// Token returns the stored bearer token, or "" when none is stored.
	Token(ctx context.Context) (string, error)

	// User returns the cached user record, or nil when none is stored.
	User(ctx context.Context) (*models.User, error)

	// SaveToken stores the bearer token.
	SaveToken(ctx context.Context, token string) error

	// SaveUser stores the cached user record.
	SaveUser(ctx context.Context, u *models.User) error

	// SaveSession stores token and user atomically.
	SaveSession(ctx context.Context, token string, u *models.User) error

	// Clear removes both keys atomically.
	Clear(ctx context.Context) error
}
