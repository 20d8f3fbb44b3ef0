// Package api is the single HTTP boundary to the SightPass backend: request
// construction, bearer-token injection, and failure classification. Face
// endpoints speak multipart form data, everything else JSON.
package api

import (
	"context"

	"github.com/sightpass/sightpass/internal/client/models"
)

// Client defines the outbound operations against the backend API.
//
// Contract:
//   - Every call performs at most one HTTP attempt; retry policy belongs to
//     the caller.
//   - Calls carry the stored bearer token when one is present.
//   - A 401 response purges the persisted session before the error is
//     returned, regardless of which operation produced it.
//
// All methods honor context cancellation/timeouts.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	FaceLogin(ctx context.Context, email, imageBase64 string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	GetMe(ctx context.Context) (*models.User, error)
	EnrollFace(ctx context.Context, imageBase64 string) (*models.FaceEnrollResponse, error)
	TestFace(ctx context.Context, email, imageBase64 string) (*models.FaceTestResponse, error)
	ListUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
