package store

import (
	"sync"

	"github.com/avolkovx/userdesk/internal/model"
)

// AuthStore holds the authenticated session.
type AuthStore struct {
	mu    sync.Mutex
	state model.Session
}

func NewAuthStore() *AuthStore {
	return &AuthStore{}
}

// Dispatch applies one action synchronously.
func (s *AuthStore) Dispatch(a AuthAction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch action := a.(type) {
	case SetUser:
		user := action.User
		s.state.User = &user
	case SetToken:
		s.state.Token = action.Token
	case Logout:
		s.state = model.Session{}
	}
}

// Snapshot returns a copy of the current session.
func (s *AuthStore) Snapshot() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	if s.state.User != nil {
		user := *s.state.User
		snap.User = &user
	}
	return snap
}

// Token returns the current bearer token, "" when logged out.
func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}
