package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avolkovx/userdesk/internal/client/gateway"
	"github.com/avolkovx/userdesk/internal/model"
)

// RESTBackend implements Backend over the HTTP wire contract. All I/O goes
// through the gateway, which owns error normalization and notifications.
type RESTBackend struct {
	gw *gateway.Gateway
}

func NewRESTBackend(gw *gateway.Gateway) *RESTBackend {
	return &RESTBackend{gw: gw}
}

func (b *RESTBackend) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	env := b.gw.Request(ctx, "/api/auth", gateway.Options{
		Method: http.MethodPost,
		Body:   creds,
		NoAuth: true,
	}, "")
	return gateway.Decode[model.LoginResult](env)
}

func (b *RESTBackend) ListUsers(ctx context.Context, token string, page, limit int) (*model.UserPage, error) {
	endpoint := fmt.Sprintf("/api/users?page=%d&limit=%d", page, limit)
	env := b.gw.Request(ctx, endpoint, gateway.Options{}, token)
	return gateway.Decode[model.UserPage](env)
}

func (b *RESTBackend) CreateUser(ctx context.Context, token string, form model.UserForm) (*model.User, error) {
	env := b.gw.Request(ctx, "/api/users", gateway.Options{
		Method: http.MethodPost,
		Body:   form,
	}, token)
	return gateway.Decode[model.User](env)
}

func (b *RESTBackend) UpdateUser(ctx context.Context, token string, id string, form model.UserForm) (*model.User, error) {
	env := b.gw.Request(ctx, "/api/users/"+id, gateway.Options{
		Method: http.MethodPut,
		Body:   form,
	}, token)
	return gateway.Decode[model.User](env)
}

func (b *RESTBackend) DeleteUser(ctx context.Context, token string, id string) error {
	env := b.gw.Request(ctx, "/api/users/"+id, gateway.Options{
		Method: http.MethodDelete,
	}, token)
	return env.Err()
}
