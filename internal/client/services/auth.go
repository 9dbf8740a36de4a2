// Package services contains the application services of the admin client:
// authentication and the user collection coordinator. Services own the
// choreography between backend calls and store mutations; the stores stay
// pure and the backends stay dumb.
package services

import (
	"context"
	"strings"

	"github.com/avolkovx/userdesk/internal/client/api"
	"github.com/avolkovx/userdesk/internal/client/session"
	"github.com/avolkovx/userdesk/internal/client/store"
	"github.com/avolkovx/userdesk/internal/model"
	"github.com/avolkovx/userdesk/internal/validation"
)

// AuthService logs in, restores and logs out the session.
//
// Contract:
//   - Login: validate, authenticate, populate the auth store (token and user
//     together, never one without the other), persist the session.
//   - Restore: rehydrate the auth store from the persisted session, if any.
//   - Logout: clear both the store and the persisted copy. Idempotent.
type AuthService interface {
	Login(ctx context.Context, creds model.Credentials) error
	Restore(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
}

type authService struct {
	backend  api.Backend
	auth     *store.AuthStore
	sessions *session.Manager
}

func NewAuthService(backend api.Backend, auth *store.AuthStore, sessions *session.Manager) AuthService {
	return &authService{backend: backend, auth: auth, sessions: sessions}
}

func (a *authService) Login(ctx context.Context, creds model.Credentials) error {
	if err := validation.Login(creds); err != nil {
		return err
	}

	result, err := a.backend.Login(ctx, creds)
	if err != nil {
		return err
	}

	a.auth.Dispatch(store.SetToken{Token: result.Token})
	a.auth.Dispatch(store.SetUser{User: model.Identity{
		UID:         result.ID,
		Email:       result.Email,
		DisplayName: displayName(result),
	}})

	return a.sessions.Save(ctx, a.auth.Snapshot())
}

func (a *authService) Restore(ctx context.Context) (bool, error) {
	saved, err := a.sessions.Load(ctx)
	if err != nil || saved == nil {
		return false, err
	}

	a.auth.Dispatch(store.SetToken{Token: saved.Token})
	a.auth.Dispatch(store.SetUser{User: *saved.User})
	return true, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.auth.Dispatch(store.Logout{})
	return a.sessions.Clear(ctx)
}

func displayName(r *model.LoginResult) string {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	if name == "" {
		name = r.Email
	}
	return name
}
