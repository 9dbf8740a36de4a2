// Package server initializes and runs the user administration API server.
// It selects the storage backend, seeds the admin account and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/avolkovx/userdesk/internal/common"
	"github.com/avolkovx/userdesk/internal/logging"
	"github.com/avolkovx/userdesk/internal/server/config"
	"github.com/avolkovx/userdesk/internal/server/crypto"
	"github.com/avolkovx/userdesk/internal/server/db"
	srvhttp "github.com/avolkovx/userdesk/internal/server/http"
	"github.com/avolkovx/userdesk/internal/server/models"
	"github.com/avolkovx/userdesk/internal/server/repositories/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repo   users.Repository
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	var repo users.Repository
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "No database DSN configured, using in-memory storage")
		repo = users.NewInMemoryRepository()
	} else {
		conn, err := db.Open(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		repo = users.NewPostgresRepository(conn)
	}

	app := &App{config: c, logger: logger, repo: repo}

	if err := app.seedAdmin(ctx); err != nil {
		return nil, fmt.Errorf("admin seed error: %w", err)
	}

	return app, nil
}

// seedAdmin creates the configured admin account unless it already exists.
func (app *App) seedAdmin(ctx context.Context) error {

	_, err := app.repo.GetByEmail(ctx, app.config.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	hash, err := crypto.HashPassword(app.config.AdminPassword)
	if err != nil {
		return err
	}

	_, err = app.repo.Create(ctx, &models.User{
		FirstName:    "Admin",
		LastName:     "Admin",
		Email:        app.config.AdminEmail,
		PasswordHash: hash,
	})
	if err != nil && !errors.Is(err, common.ErrAlreadyExists) {
		return err
	}

	app.logger.Info(ctx, "Seeded admin account", "email", app.config.AdminEmail)
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	s := srvhttp.NewServer(app.config, app.repo, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
