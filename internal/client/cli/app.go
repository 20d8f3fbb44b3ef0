package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/sightpass/sightpass/internal/client/api"
	"github.com/sightpass/sightpass/internal/client/capture"
	"github.com/sightpass/sightpass/internal/client/config"
	"github.com/sightpass/sightpass/internal/client/models"
	"github.com/sightpass/sightpass/internal/client/session"
	"github.com/sightpass/sightpass/internal/client/store"
	"github.com/sightpass/sightpass/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionService is the slice of the session manager the CLI needs.
// *session.Manager satisfies it; tests can provide a lightweight stub.
type sessionService interface {
	State() session.State
	CurrentUser() *models.User
	IsAuthenticated() bool
	Hydrate(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	FaceLogin(ctx context.Context, email, imageBase64 string) error
	Register(ctx context.Context, name, email, password string, isAdmin bool) error
	EnrollFace(ctx context.Context, imageBase64 string) (session.EnrollResult, error)
	Logout(ctx context.Context)
	Evict()
}

// newFrameSource builds the frame source for face commands.
// A test seam: stubbed in tests to avoid cameras and external commands.
var newFrameSource = func(cfg *config.Config) (capture.FrameSource, error) {
	if cfg.CaptureFile != "" {
		return capture.NewFileSource(cfg.CaptureFile), nil
	}
	return capture.NewExecSource(cfg.CaptureCommand)
}

// App wires the client components together behind the REPL.
type App struct {
	config  *config.Config
	session sessionService
	api     api.Client
	log     logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := store.InitDatabase(ctx, c.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	st := store.NewSQLiteStore(db)
	apiClient := api.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout, st, log)
	sess := session.NewManager(st, apiClient, log)

	app := &App{
		config:  c,
		session: sess,
		api:     apiClient,
		log:     log,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	// Cross-cutting 401 policy: the gateway has already purged the store;
	// drop the in-memory session and send the user back to the entry point.
	apiClient.SetUnauthorizedHandler(func() {
		sess.Evict()
		fmt.Fprintln(app.out, "Session expired, please login again.")
	})

	return app, nil
}

// Run hydrates the persisted session and starts the REPL. The session store
// handle is released when the loop ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	// Route-guard analogue of the "loading" state: no navigation decision
	// is made until hydration resolves.
	fmt.Fprintln(a.out, "Restoring session...")
	a.session.Hydrate(ctx)
	if u := a.session.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s\n", u.Name)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the session store handle.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	u := a.session.CurrentUser()
	if u == nil {
		return ""
	}
	s := u.Email
	if u.FaceEnrolled {
		s += " [face]"
	}
	return fmt.Sprintf("(%s)", s)
}
