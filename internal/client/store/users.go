package store

import (
	"sync"

	"github.com/avolkovx/userdesk/internal/model"
)

// OperationLoading tracks per-mutation-kind progress. Update and Delete hold
// the id of the record in flight, "" when idle. Each is a single slot: a
// second concurrent target overwrites the first.
type OperationLoading struct {
	Create bool
	Update string
	Delete string
}

// UserState is the user collection store's state.
type UserState struct {
	Users      []model.User
	Loading    bool
	Operations OperationLoading
	Pagination model.PaginationInfo
}

// UserStore holds the fetched page of users, the per-operation loading flags
// and the pagination metadata.
type UserStore struct {
	mu    sync.Mutex
	state UserState
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

// Dispatch applies one action synchronously. Every reduction is pure over the
// previous state; I/O never happens here.
func (s *UserStore) Dispatch(a UserAction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch action := a.(type) {
	case SetUsers:
		s.state.Users = append([]model.User(nil), action.Users...)
	case SetPagination:
		s.state.Pagination = action.Info
	case AddUser:
		s.state.Users = append(s.state.Users, action.User)
	case UpdateUser:
		for i, u := range s.state.Users {
			if u.ID == action.User.ID {
				s.state.Users[i] = action.User
				break
			}
		}
	case DeleteUser:
		users := s.state.Users[:0:0]
		for _, u := range s.state.Users {
			if u.ID != action.ID {
				users = append(users, u)
			}
		}
		s.state.Users = users
	case SetLoading:
		s.state.Loading = action.Loading
	case SetCreateLoading:
		s.state.Operations.Create = action.Active
	case SetUpdateLoading:
		s.state.Operations.Update = action.ID
	case SetDeleteLoading:
		s.state.Operations.Delete = action.ID
	}
}

// Snapshot returns a copy of the current state. The users slice is copied so
// callers cannot mutate the store through it.
func (s *UserStore) Snapshot() UserState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Users = append([]model.User(nil), s.state.Users...)
	return snap
}
