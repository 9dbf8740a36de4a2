package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/avolkovx/userdesk/internal/client/api"
	"github.com/avolkovx/userdesk/internal/client/config"
	"github.com/avolkovx/userdesk/internal/client/gateway"
	"github.com/avolkovx/userdesk/internal/client/session"
	"github.com/avolkovx/userdesk/internal/client/services"
	"github.com/avolkovx/userdesk/internal/client/store"
	"github.com/avolkovx/userdesk/internal/logging"
	"github.com/avolkovx/userdesk/internal/notify"
)

// App wires the stores, the backend and the services into the interactive
// admin client.
type App struct {
	config      *config.Config
	auth        *store.AuthStore
	users       *store.UserStore
	authService services.AuthService
	userService *services.UserService
	reader      *bufio.Reader
	closeFns    []func() error
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)
	notifier := notify.NewLogNotifier(log)

	db, err := session.OpenDatabase(ctx, c.SessionDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	app := &App{
		config:   c,
		auth:     store.NewAuthStore(),
		users:    store.NewUserStore(),
		reader:   bufio.NewReader(os.Stdin),
		closeFns: []func() error{db.Close},
	}

	var backend api.Backend
	switch c.Backend {
	case config.BackendBolt:
		bb, err := api.OpenBolt(c.BoltPath, notifier)
		if err != nil {
			return nil, err
		}
		app.closeFns = append(app.closeFns, bb.Close)
		backend = bb
	default:
		backend = api.NewRESTBackend(gateway.New(c.BaseURL, notifier, log))
	}

	sessions := session.NewManager(session.NewSQLiteRepository(db))
	app.authService = services.NewAuthService(backend, app.auth, sessions)
	app.userService = services.NewUserService(backend, app.auth, app.users, notifier, c.PageSize)

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.Snapshot().LoggedIn()
}

// Run restores a persisted session if one exists and enters the REPL.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	restored, err := a.authService.Restore(ctx)
	if err != nil {
		return err
	}
	if restored {
		printlnFn("Welcome back,", a.auth.Snapshot().User.DisplayName)
		a.fetchInitial(ctx)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
	return nil
}

// fetchInitial loads the first dashboard page once a session is available.
func (a *App) fetchInitial(ctx context.Context) {
	if err := a.userService.Refresh(ctx); err != nil {
		a.handleFetchError(ctx, err)
	}
}

func (a *App) Close() {
	for _, close := range a.closeFns {
		_ = close()
	}
}
