package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sightpass/sightpass/internal/client/models"
	"github.com/sightpass/sightpass/internal/logging"
)

func nopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ---- fakes ----

type fakeStore struct {
	token string
	user  *models.User

	clearCalls int
	saveErr    error
}

func (f *fakeStore) Token(context.Context) (string, error)        { return f.token, nil }
func (f *fakeStore) User(context.Context) (*models.User, error)   { return f.user, nil }
func (f *fakeStore) SaveToken(_ context.Context, t string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token = t
	return nil
}
func (f *fakeStore) SaveUser(_ context.Context, u *models.User) error {
	f.user = u
	return nil
}
func (f *fakeStore) SaveSession(_ context.Context, t string, u *models.User) error {
	f.token, f.user = t, u
	return nil
}
func (f *fakeStore) Clear(context.Context) error {
	f.token, f.user = "", nil
	f.clearCalls++
	return nil
}

type fakeAPI struct {
	loginResp *models.AuthResponse
	loginErr  error

	faceResp *models.AuthResponse
	faceErr  error

	registerUser *models.User
	registerErr  error

	meUser *models.User
	meErr  error

	enrollResp *models.FaceEnrollResponse
	enrollErr  error

	loginCalls    int
	meCalls       int
	registerCalls int

	lastRegister models.RegisterRequest
	lastFaceImg  string
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*models.AuthResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) FaceLogin(_ context.Context, email, img string) (*models.AuthResponse, error) {
	f.lastFaceImg = img
	return f.faceResp, f.faceErr
}

func (f *fakeAPI) Register(_ context.Context, req models.RegisterRequest) (*models.User, error) {
	f.registerCalls++
	f.lastRegister = req
	return f.registerUser, f.registerErr
}

func (f *fakeAPI) GetMe(context.Context) (*models.User, error) {
	f.meCalls++
	return f.meUser, f.meErr
}

func (f *fakeAPI) EnrollFace(_ context.Context, img string) (*models.FaceEnrollResponse, error) {
	f.lastFaceImg = img
	return f.enrollResp, f.enrollErr
}

func (f *fakeAPI) TestFace(context.Context, string, string) (*models.FaceTestResponse, error) {
	return nil, nil
}

func (f *fakeAPI) ListUsers(context.Context, int, int) ([]models.User, error) { return nil, nil }
func (f *fakeAPI) GetUser(context.Context, int64) (*models.User, error)       { return nil, nil }
func (f *fakeAPI) DeleteUser(context.Context, int64) error                    { return nil }

func newManager(st *fakeStore, a *fakeAPI) *Manager {
	return NewManager(st, a, nopLogger())
}

// ---- tests ----

func TestNewManager_StartsUnresolved(t *testing.T) {
	m := newManager(&fakeStore{}, &fakeAPI{})
	require.Equal(t, StateUnresolved, m.State())
	require.False(t, m.IsAuthenticated())
	require.Nil(t, m.CurrentUser())
}

func TestLogin_FetchesUserWhenNotEmbedded(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{}
	a := &fakeAPI{
		loginResp: &models.AuthResponse{AccessToken: "T1"},
		meUser:    &models.User{ID: 1, Email: "a@b.com", Name: "Alice"},
	}
	m := newManager(st, a)

	require.NoError(t, m.Login(ctx, "a@b.com", "secret"))

	require.Equal(t, StateAuthenticated, m.State())
	require.True(t, m.IsAuthenticated())
	require.Equal(t, "a@b.com", m.CurrentUser().Email)
	require.Equal(t, "T1", st.token)
	require.Equal(t, int64(1), st.user.ID)
	require.Equal(t, 1, a.meCalls)
}

func TestLogin_RollsBackWhenUserFetchFails(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{}
	netErr := errors.New("connection refused")
	a := &fakeAPI{
		loginResp: &models.AuthResponse{AccessToken: "T1"},
		meErr:     netErr,
	}
	m := newManager(st, a)

	err := m.Login(ctx, "a@b.com", "secret")
	require.ErrorIs(t, err, netErr)

	// full rollback: no token, no user, store empty
	require.Empty(t, st.token)
	require.Nil(t, st.user)
	require.False(t, m.IsAuthenticated())
	require.Equal(t, StateUnauthenticated, m.State())
}

func TestLogin_EmptyTokenIsProtocolViolation(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{}
	a := &fakeAPI{loginResp: &models.AuthResponse{TokenType: "bearer"}}
	m := newManager(st, a)

	err := m.Login(ctx, "a@b.com", "secret")
	require.ErrorIs(t, err, ErrInvalidAuthResponse)
	require.Empty(t, st.token)
	require.False(t, m.IsAuthenticated())
}

func TestLogin_TokenPersistFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	diskErr := errors.New("disk full")
	st := &fakeStore{saveErr: diskErr}
	a := &fakeAPI{loginResp: &models.AuthResponse{AccessToken: "T1"}}
	m := newManager(st, a)

	err := m.Login(ctx, "a@b.com", "secret")
	require.ErrorIs(t, err, diskErr)
	require.Equal(t, StateUnauthenticated, m.State())
	require.Equal(t, 1, st.clearCalls)
}

func TestLogin_GatewayFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{}
	boom := errors.New("500")
	a := &fakeAPI{loginErr: boom}
	m := newManager(st, a)

	require.ErrorIs(t, m.Login(ctx, "a@b.com", "secret"), boom)
	require.Equal(t, StateUnauthenticated, m.State())
	require.Empty(t, st.token)
}

func TestFaceLogin_UsesEmbeddedUserWithoutExtraFetch(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{}
	u := &models.User{ID: 7, Email: "a@b.com", Name: "Alice", FaceEnrolled: false}
	a := &fakeAPI{faceResp: &models.AuthResponse{AccessToken: "T2", User: u}}
	m := newManager(st, a)

	require.NoError(t, m.FaceLogin(ctx, "a@b.com", "AAAA"))

	require.Equal(t, StateAuthenticated, m.State())
	require.Equal(t, int64(7), m.CurrentUser().ID)
	require.Equal(t, "T2", st.token)
	require.Equal(t, 0, a.meCalls)
}

func TestFaceLogin_FetchesUserWhenNotEmbedded(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{}
	a := &fakeAPI{
		faceResp: &models.AuthResponse{AccessToken: "T2"},
		meUser:   &models.User{ID: 3, Email: "a@b.com"},
	}
	m := newManager(st, a)

	require.NoError(t, m.FaceLogin(ctx, "a@b.com", "AAAA"))
	require.Equal(t, 1, a.meCalls)
	require.Equal(t, int64(3), m.CurrentUser().ID)
}

func TestRegister_AutoLogin(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{}
	a := &fakeAPI{
		registerUser: &models.User{ID: 5, Email: "new@b.com"},
		loginResp:    &models.AuthResponse{AccessToken: "T3"},
		meUser:       &models.User{ID: 5, Email: "new@b.com", Name: "Nora"},
	}
	m := newManager(st, a)

	require.NoError(t, m.Register(ctx, "Nora", "new@b.com", "secret", false))

	require.Equal(t, 1, a.registerCalls)
	require.Equal(t, 1, a.loginCalls)
	require.Equal(t, "new@b.com", a.lastRegister.Email)
	require.Equal(t, "Nora", a.lastRegister.Name)
	require.False(t, a.lastRegister.IsSuperuser)
	require.True(t, m.IsAuthenticated())
}

func TestRegister_FailureSkipsLogin(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("email already registered")
	a := &fakeAPI{registerErr: boom}
	m := newManager(&fakeStore{}, a)

	require.ErrorIs(t, m.Register(ctx, "Nora", "new@b.com", "secret", true), boom)
	require.Equal(t, 0, a.loginCalls)
	require.False(t, m.IsAuthenticated())
}

func TestEnrollFace_MergesFlagAndKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{}
	a := &fakeAPI{
		loginResp:  &models.AuthResponse{AccessToken: "T1"},
		meUser:     &models.User{ID: 1, Email: "a@b.com", Name: "Alice", IsActive: true, FaceEnrolled: false},
		enrollResp: &models.FaceEnrollResponse{Success: true, QualityScore: 87.5, FaceEnrolled: true},
	}
	m := newManager(st, a)
	require.NoError(t, m.Login(ctx, "a@b.com", "secret"))

	res, err := m.EnrollFace(ctx, "AAAA")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.InDelta(t, 87.5, res.QualityScore, 1e-9)

	u := m.CurrentUser()
	require.True(t, u.FaceEnrolled)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, "a@b.com", u.Email)
	require.Equal(t, "Alice", u.Name)
	require.True(t, u.IsActive)

	require.True(t, st.user.FaceEnrolled)
}

func TestEnrollFace_RequiresSession(t *testing.T) {
	m := newManager(&fakeStore{}, &fakeAPI{})
	_, err := m.EnrollFace(context.Background(), "AAAA")
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestEnrollFace_APIErrorLeavesUserUntouched(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("no face detected")
	a := &fakeAPI{
		loginResp: &models.AuthResponse{AccessToken: "T1"},
		meUser:    &models.User{ID: 1, Email: "a@b.com"},
		enrollErr: boom,
	}
	m := newManager(&fakeStore{}, a)
	require.NoError(t, m.Login(ctx, "a@b.com", "secret"))

	_, err := m.EnrollFace(ctx, "AAAA")
	require.ErrorIs(t, err, boom)
	require.False(t, m.CurrentUser().FaceEnrolled)
	require.True(t, m.IsAuthenticated())
}

func TestLogout_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{}
	a := &fakeAPI{
		loginResp: &models.AuthResponse{AccessToken: "T1"},
		meUser:    &models.User{ID: 1},
	}
	m := newManager(st, a)
	require.NoError(t, m.Login(ctx, "a@b.com", "secret"))

	m.Logout(ctx)

	require.Equal(t, StateUnauthenticated, m.State())
	require.Nil(t, m.CurrentUser())
	require.Empty(t, st.token)
	require.Nil(t, st.user)
	require.Equal(t, 1, st.clearCalls)
}

func TestHydrate_RestoresAndRevalidates(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{token: "T1", user: &models.User{ID: 1, Email: "a@b.com", Name: "old name"}}
	a := &fakeAPI{meUser: &models.User{ID: 1, Email: "a@b.com", Name: "new name"}}
	m := newManager(st, a)

	m.Hydrate(ctx)

	require.Equal(t, StateAuthenticated, m.State())
	require.Equal(t, "new name", m.CurrentUser().Name)
	require.Equal(t, "new name", st.user.Name)
	require.Equal(t, 1, a.meCalls)
}

func TestHydrate_EvictsOnFailedRevalidation(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{token: "stale", user: &models.User{ID: 1, Email: "a@b.com"}}
	a := &fakeAPI{meErr: errors.New("401")}
	m := newManager(st, a)

	m.Hydrate(ctx)

	// both persisted keys gone, session unauthenticated
	require.Equal(t, StateUnauthenticated, m.State())
	require.Nil(t, m.CurrentUser())
	require.Empty(t, st.token)
	require.Nil(t, st.user)
}

func TestHydrate_NothingPersisted(t *testing.T) {
	ctx := context.Background()
	a := &fakeAPI{}
	m := newManager(&fakeStore{}, a)

	m.Hydrate(ctx)

	require.Equal(t, StateUnauthenticated, m.State())
	require.Equal(t, 0, a.meCalls)
}

func TestHydrate_TokenWithoutUserIsUnauthenticated(t *testing.T) {
	ctx := context.Background()
	a := &fakeAPI{}
	m := newManager(&fakeStore{token: "T1"}, a)

	m.Hydrate(ctx)

	require.Equal(t, StateUnauthenticated, m.State())
	require.Equal(t, 0, a.meCalls)
}

func TestEvict_DropsMemoryOnly(t *testing.T) {
	ctx := context.Background()
	st := &fakeStore{}
	a := &fakeAPI{
		loginResp: &models.AuthResponse{AccessToken: "T1"},
		meUser:    &models.User{ID: 1},
	}
	m := newManager(st, a)
	require.NoError(t, m.Login(ctx, "a@b.com", "secret"))

	m.Evict()

	require.Equal(t, StateUnauthenticated, m.State())
	require.Nil(t, m.CurrentUser())
	// the gateway purges the store itself; Evict must not double-clear
	require.Equal(t, 0, st.clearCalls)
}
