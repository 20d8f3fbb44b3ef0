// Package session owns the client's authentication state: it synchronizes
// the in-memory session with the persisted store and exposes the session
// operations (login, face login, register, face enrollment, logout) consumed
// by the UI layer.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sightpass/sightpass/internal/client/api"
	"github.com/sightpass/sightpass/internal/client/models"
	"github.com/sightpass/sightpass/internal/client/store"
	"github.com/sightpass/sightpass/internal/logging"
)

var (
	// ErrInvalidAuthResponse means the server accepted the call but returned
	// no usable token. A protocol violation, not a user error.
	ErrInvalidAuthResponse = errors.New("invalid authentication response")

	// ErrNotAuthenticated is returned by operations that require a signed-in
	// session when none exists.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// EnrollResult is the outcome of a face enrollment attempt. QualityScore is
// the backend's 0–100 suitability metric, for display only.
type EnrollResult struct {
	Success      bool
	QualityScore float64
}

// Manager is the single holder of authentication state. Construct one per
// running application and pass the handle down; there is no package-level
// instance.
//
// Session-mutating operations are expected to be invoked one at a time by
// the UI. Overlapping calls are not serialized: the result reflects
// whichever completes last.
type Manager struct {
	store store.Store
	api   api.Client
	log   logging.Logger

	mu    sync.RWMutex
	state State
	user  *models.User
}

func NewManager(st store.Store, client api.Client, log logging.Logger) *Manager {
	return &Manager{
		store: st,
		api:   client,
		log:   log.With("component", "session"),
		state: StateUnresolved,
	}
}

// State reports the current authentication state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentUser returns the signed-in user, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated is true iff a user record is present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

func (m *Manager) setSession(u *models.User) {
	m.mu.Lock()
	m.user = u
	m.state = StateAuthenticated
	m.mu.Unlock()
}

func (m *Manager) setUnauthenticated() {
	m.mu.Lock()
	m.user = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()
}

// Hydrate restores a persisted session at startup. If both a token and a
// cached user exist, the session is installed optimistically so the UI can
// render immediately, then revalidated against the backend; any revalidation
// failure evicts the session entirely. In every path the state machine
// leaves Unresolved exactly once.
func (m *Manager) Hydrate(ctx context.Context) {
	token, err := m.store.Token(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to read stored token", "error", err)
	}
	cached, err := m.store.User(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to read cached user", "error", err)
	}

	if token == "" || cached == nil {
		m.setUnauthenticated()
		return
	}

	// Optimistic restore: show the cached user right away.
	m.setSession(cached)
	m.log.Debug(ctx, "session restored from store", "email", cached.Email)

	fresh, err := m.api.GetMe(ctx)
	if err != nil {
		// A rejected or expired token must never remain installed.
		m.log.Info(ctx, "stored session failed revalidation, logging out", "error", err)
		m.Logout(ctx)
		return
	}

	m.setSession(fresh)
	if err := m.store.SaveUser(ctx, fresh); err != nil {
		m.log.Error(ctx, "failed to refresh cached user", "error", err)
	}
}

// rollback wipes persisted and in-memory session state after a failed
// sign-in sequence, so no "token present, user absent" session survives.
func (m *Manager) rollback(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear stored session", "error", err)
	}
	m.setUnauthenticated()
}

// finishLogin validates the auth response, persists the token, resolves the
// user record (embedded or fetched), and installs the session. Any failure
// rolls the whole sequence back before the error is returned.
func (m *Manager) finishLogin(ctx context.Context, resp *models.AuthResponse) error {
	if resp == nil || resp.AccessToken == "" {
		m.rollback(ctx)
		return ErrInvalidAuthResponse
	}

	if err := m.store.SaveToken(ctx, resp.AccessToken); err != nil {
		m.rollback(ctx)
		return fmt.Errorf("failed to persist token: %w", err)
	}

	u := resp.User
	if u == nil {
		fetched, err := m.api.GetMe(ctx)
		if err != nil {
			m.rollback(ctx)
			return err
		}
		u = fetched
	}

	if err := m.store.SaveUser(ctx, u); err != nil {
		m.rollback(ctx)
		return fmt.Errorf("failed to persist user: %w", err)
	}

	m.setSession(u)
	m.log.Info(ctx, "signed in", "email", u.Email)
	return nil
}

// Login authenticates with email and password.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.rollback(ctx)
		return err
	}
	return m.finishLogin(ctx, resp)
}

// FaceLogin authenticates with email and a base64-encoded face capture.
// When the response embeds the user record no extra fetch is performed.
func (m *Manager) FaceLogin(ctx context.Context, email, imageBase64 string) error {
	resp, err := m.api.FaceLogin(ctx, email, imageBase64)
	if err != nil {
		m.rollback(ctx)
		return err
	}
	return m.finishLogin(ctx, resp)
}

// Register creates an account and immediately signs in with the same
// credentials. Failure of either step propagates unchanged.
func (m *Manager) Register(ctx context.Context, name, email, password string, isAdmin bool) error {
	req := models.RegisterRequest{
		Email:       email,
		Name:        name,
		Password:    password,
		IsSuperuser: isAdmin,
	}
	if _, err := m.api.Register(ctx, req); err != nil {
		return err
	}
	return m.Login(ctx, email, password)
}

// EnrollFace submits a face capture for enrollment. On success the returned
// face-enrolled flag is merged into the current user and persisted; all
// other user fields are left untouched.
func (m *Manager) EnrollFace(ctx context.Context, imageBase64 string) (EnrollResult, error) {
	m.mu.RLock()
	current := m.user
	m.mu.RUnlock()
	if current == nil {
		return EnrollResult{}, ErrNotAuthenticated
	}

	resp, err := m.api.EnrollFace(ctx, imageBase64)
	if err != nil {
		return EnrollResult{}, err
	}

	updated := *current
	updated.FaceEnrolled = resp.FaceEnrolled
	m.setSession(&updated)
	if err := m.store.SaveUser(ctx, &updated); err != nil {
		m.log.Error(ctx, "failed to persist enrolled user", "error", err)
	}

	return EnrollResult{Success: resp.Success, QualityScore: resp.QualityScore}, nil
}

// Logout clears the in-memory session and the persisted store. It never
// fails; storage errors are logged and swallowed.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear stored session", "error", err)
	}
	m.setUnauthenticated()
	m.log.Debug(ctx, "signed out")
}

// Evict drops the in-memory session without touching the store. It is wired
// to the gateway's 401 hook, which has already purged the persisted keys.
func (m *Manager) Evict() {
	m.setUnauthenticated()
}
