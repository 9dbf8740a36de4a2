package services

import (
	"context"

	"github.com/avolkovx/userdesk/internal/client/api"
	"github.com/avolkovx/userdesk/internal/client/store"
	"github.com/avolkovx/userdesk/internal/model"
	"github.com/avolkovx/userdesk/internal/notify"
	"github.com/avolkovx/userdesk/internal/validation"
)

// UserService coordinates fetches and mutations of the users page.
//
// Fetch policy:
//   - page change: replace both list and pagination on success.
//   - create success: re-fetch page 1 (new records sort to the front).
//   - update success: patch the single record in place, no re-fetch.
//   - delete success: re-fetch the current page so the counts stay right.
//
// Every operation's loading flag is cleared on every exit path. On failure
// the store is left untouched; the backend has already notified the user.
type UserService struct {
	backend  api.Backend
	auth     *store.AuthStore
	users    *store.UserStore
	notifier notify.Notifier
	pageSize int
}

func NewUserService(backend api.Backend, auth *store.AuthStore, users *store.UserStore, notifier notify.Notifier, pageSize int) *UserService {
	return &UserService{
		backend:  backend,
		auth:     auth,
		users:    users,
		notifier: notifier,
		pageSize: pageSize,
	}
}

// FetchPage loads one page of users into the store.
func (s *UserService) FetchPage(ctx context.Context, page int) error {
	s.users.Dispatch(store.SetLoading{Loading: true})
	defer s.users.Dispatch(store.SetLoading{Loading: false})

	result, err := s.backend.ListUsers(ctx, s.auth.Token(), page, s.pageSize)
	if err != nil {
		return err
	}

	s.users.Dispatch(store.SetUsers{Users: result.Users})
	s.users.Dispatch(store.SetPagination{Info: result.Pagination})
	return nil
}

// Refresh re-fetches the page the store currently shows.
func (s *UserService) Refresh(ctx context.Context) error {
	return s.FetchPage(ctx, s.currentPage())
}

// Create validates and submits a new user, then re-fetches page 1.
func (s *UserService) Create(ctx context.Context, form model.UserForm) error {
	if err := validation.UserForm(form, false); err != nil {
		return err
	}

	s.users.Dispatch(store.SetCreateLoading{Active: true})
	defer s.users.Dispatch(store.SetCreateLoading{Active: false})

	if _, err := s.backend.CreateUser(ctx, s.auth.Token(), form); err != nil {
		return err
	}

	s.notifier.Success("User added successfully")
	return s.FetchPage(ctx, 1)
}

// Update validates and submits changes to one user, then patches the store
// entry in place.
func (s *UserService) Update(ctx context.Context, id string, form model.UserForm) error {
	if err := validation.UserForm(form, true); err != nil {
		return err
	}

	s.users.Dispatch(store.SetUpdateLoading{ID: id})
	defer s.users.Dispatch(store.SetUpdateLoading{ID: ""})

	updated, err := s.backend.UpdateUser(ctx, s.auth.Token(), id, form)
	if err != nil {
		return err
	}

	s.users.Dispatch(store.UpdateUser{User: *updated})
	s.notifier.Success("User updated successfully")
	return nil
}

// Delete removes one user, then re-fetches the current page.
func (s *UserService) Delete(ctx context.Context, id string) error {
	s.users.Dispatch(store.SetDeleteLoading{ID: id})
	defer s.users.Dispatch(store.SetDeleteLoading{ID: ""})

	if err := s.backend.DeleteUser(ctx, s.auth.Token(), id); err != nil {
		return err
	}

	s.notifier.Success("User deleted successfully")
	return s.FetchPage(ctx, s.currentPage())
}

func (s *UserService) currentPage() int {
	page := s.users.Snapshot().Pagination.CurrentPage
	if page < 1 {
		page = 1
	}
	return page
}
