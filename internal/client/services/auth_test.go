package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkovx/userdesk/internal/client/session"
	"github.com/avolkovx/userdesk/internal/client/store"
	"github.com/avolkovx/userdesk/internal/common"
	"github.com/avolkovx/userdesk/internal/model"
	"github.com/avolkovx/userdesk/internal/validation"
)

// memRepo is an in-memory session.Repository.
type memRepo struct {
	data map[string][]byte
}

func newMemRepo() *memRepo {
	return &memRepo{data: map[string][]byte{}}
}

func (m *memRepo) Get(ctx context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memRepo) Set(ctx context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memRepo) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func setupAuth(backend *fakeBackend) (AuthService, *store.AuthStore, *memRepo) {
	auth := store.NewAuthStore()
	repo := newMemRepo()
	return NewAuthService(backend, auth, session.NewManager(repo)), auth, repo
}

func TestLoginPopulatesSessionAndPersists(t *testing.T) {
	backend := &fakeBackend{LoginRet: &model.LoginResult{
		ID: "u1", Email: "a@b.com", FirstName: "A", LastName: "B", Token: "tok",
	}}
	svc, auth, repo := setupAuth(backend)

	err := svc.Login(context.Background(), model.Credentials{Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)

	got := auth.Snapshot()
	require.Equal(t, model.Session{
		User:  &model.Identity{UID: "u1", Email: "a@b.com", DisplayName: "A B"},
		Token: "tok",
	}, got)
	require.NotEmpty(t, repo.data)
}

func TestLoginValidationSkipsBackend(t *testing.T) {
	backend := &fakeBackend{LoginErr: common.ErrInvalidCredentials}
	svc, auth, _ := setupAuth(backend)

	err := svc.Login(context.Background(), model.Credentials{Email: "a@b.com", Password: "short"})
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.False(t, auth.Snapshot().LoggedIn())
}

func TestLoginBackendErrorLeavesSessionEmpty(t *testing.T) {
	backend := &fakeBackend{LoginErr: common.ErrInvalidCredentials}
	svc, auth, repo := setupAuth(backend)

	err := svc.Login(context.Background(), model.Credentials{Email: "a@b.com", Password: "secret123"})
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	require.False(t, auth.Snapshot().LoggedIn())
	require.Empty(t, repo.data)
}

func TestRestore(t *testing.T) {
	backend := &fakeBackend{LoginRet: &model.LoginResult{
		ID: "u1", Email: "a@b.com", FirstName: "A", LastName: "B", Token: "tok",
	}}
	svc, _, repo := setupAuth(backend)
	require.NoError(t, svc.Login(context.Background(), model.Credentials{Email: "a@b.com", Password: "secret123"}))

	// a fresh process with the same persisted repo
	restored, freshAuth, _ := func() (AuthService, *store.AuthStore, *memRepo) {
		auth := store.NewAuthStore()
		return NewAuthService(backend, auth, session.NewManager(repo)), auth, repo
	}()

	ok, err := restored.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, freshAuth.Snapshot().LoggedIn())
	require.Equal(t, "tok", freshAuth.Token())
}

func TestRestoreWithoutSavedSession(t *testing.T) {
	svc, auth, _ := setupAuth(&fakeBackend{})

	ok, err := svc.Restore(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, auth.Snapshot().LoggedIn())
}

func TestLogout(t *testing.T) {
	backend := &fakeBackend{LoginRet: &model.LoginResult{
		ID: "u1", Email: "a@b.com", FirstName: "A", LastName: "B", Token: "tok",
	}}
	svc, auth, repo := setupAuth(backend)
	require.NoError(t, svc.Login(context.Background(), model.Credentials{Email: "a@b.com", Password: "secret123"}))

	require.NoError(t, svc.Logout(context.Background()))
	require.Equal(t, model.Session{}, auth.Snapshot())
	require.Empty(t, repo.data)

	// idempotent
	require.NoError(t, svc.Logout(context.Background()))
}
