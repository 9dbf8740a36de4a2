// Package api defines the backing-store seam of the client. The coordinator
// talks to a Backend only; whether calls land on the REST API or on a local
// document store is a wiring decision.
package api

import (
	"context"

	"github.com/avolkovx/userdesk/internal/model"
)

// Backend is the set of operations the dashboard needs from a backing store.
//
// Every implementation routes its own failures through the notification side
// channel exactly once, so callers treat a returned error as
// already-surfaced and only branch on it.
type Backend interface {
	Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error)
	ListUsers(ctx context.Context, token string, page, limit int) (*model.UserPage, error)
	CreateUser(ctx context.Context, token string, form model.UserForm) (*model.User, error)
	UpdateUser(ctx context.Context, token string, id string, form model.UserForm) (*model.User, error)
	DeleteUser(ctx context.Context, token string, id string) error
}
