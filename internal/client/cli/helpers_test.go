package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/sightpass/sightpass/internal/client/config"
	"github.com/sightpass/sightpass/internal/client/models"
	"github.com/sightpass/sightpass/internal/client/session"
	"github.com/sightpass/sightpass/internal/logging"
)

func nopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// stubTexts replaces getSimpleText with a scripted sequence of answers.
func stubTexts(t *testing.T, answers ...string) func() {
	t.Helper()
	orig := getSimpleText
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			t.Fatalf("unexpected prompt #%d", i+1)
		}
		a := answers[i]
		i++
		return a, nil
	}
	return func() { getSimpleText = orig }
}

func stubPassword(t *testing.T, pw []byte) func() {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return pw, nil }
	return func() { getPassword = orig }
}

// fakeSession is a scripted sessionService.
type fakeSession struct {
	state session.State
	user  *models.User

	loginEmail, loginPass string
	loginErr              error

	faceEmail, faceImg string
	faceErr            error

	regName, regEmail, regPass string
	regAdmin                   bool
	regErr                     error

	enrollImg string
	enrollRes session.EnrollResult
	enrollErr error

	hydrateCalls int
	logoutCalls  int
	evictCalls   int
}

func (f *fakeSession) State() session.State {
	if f.user != nil {
		return session.StateAuthenticated
	}
	return f.state
}

func (f *fakeSession) CurrentUser() *models.User { return f.user }
func (f *fakeSession) IsAuthenticated() bool     { return f.user != nil }
func (f *fakeSession) Hydrate(context.Context)   { f.hydrateCalls++ }

func (f *fakeSession) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr == nil {
		f.user = &models.User{ID: 1, Email: email}
	}
	return f.loginErr
}

func (f *fakeSession) FaceLogin(_ context.Context, email, img string) error {
	f.faceEmail, f.faceImg = email, img
	if f.faceErr == nil {
		f.user = &models.User{ID: 1, Email: email}
	}
	return f.faceErr
}

func (f *fakeSession) Register(_ context.Context, name, email, password string, isAdmin bool) error {
	f.regName, f.regEmail, f.regPass, f.regAdmin = name, email, password, isAdmin
	return f.regErr
}

func (f *fakeSession) EnrollFace(_ context.Context, img string) (session.EnrollResult, error) {
	f.enrollImg = img
	return f.enrollRes, f.enrollErr
}

func (f *fakeSession) Logout(context.Context) {
	f.logoutCalls++
	f.user = nil
	f.state = session.StateUnauthenticated
}

func (f *fakeSession) Evict() {
	f.evictCalls++
	f.user = nil
	f.state = session.StateUnauthenticated
}

// fakeGateway is a scripted api.Client for the admin commands.
type fakeGateway struct {
	users    []models.User
	listErr  error
	lastSkip int
	lastLim  int

	user    *models.User
	getErr  error
	deleted []int64
	delErr  error

	testResp *models.FaceTestResponse
	testErr  error
}

func (f *fakeGateway) Login(context.Context, string, string) (*models.AuthResponse, error) {
	return nil, nil
}
func (f *fakeGateway) FaceLogin(context.Context, string, string) (*models.AuthResponse, error) {
	return nil, nil
}
func (f *fakeGateway) Register(context.Context, models.RegisterRequest) (*models.User, error) {
	return nil, nil
}
func (f *fakeGateway) GetMe(context.Context) (*models.User, error) { return nil, nil }
func (f *fakeGateway) EnrollFace(context.Context, string) (*models.FaceEnrollResponse, error) {
	return nil, nil
}

func (f *fakeGateway) TestFace(_ context.Context, email, img string) (*models.FaceTestResponse, error) {
	return f.testResp, f.testErr
}

func (f *fakeGateway) ListUsers(_ context.Context, skip, limit int) ([]models.User, error) {
	f.lastSkip, f.lastLim = skip, limit
	return f.users, f.listErr
}

func (f *fakeGateway) GetUser(_ context.Context, id int64) (*models.User, error) {
	return f.user, f.getErr
}

func (f *fakeGateway) DeleteUser(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.delErr
}

func newTestApp(sess *fakeSession, gw *fakeGateway) (*App, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:  cfg,
		session: sess,
		api:     gw,
		log:     nopLogger(),
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     &buf,
	}, &buf
}
