// Package session persists the authenticated session across runs, so a
// restart does not require re-authenticating until the token is rejected.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avolkovx/userdesk/internal/model"
)

const sessionKey = "session"

// Manager saves, restores and clears the persisted session.
type Manager struct {
	repo Repository
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

// Save stores the session. It refuses partial sessions so the persisted copy
// keeps the both-or-neither invariant.
func (m *Manager) Save(ctx context.Context, s model.Session) error {
	if !s.LoggedIn() {
		return fmt.Errorf("refusing to persist a partial session")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return m.repo.Set(ctx, sessionKey, data)
}

// Load returns the persisted session, or nil when none is stored.
func (m *Manager) Load(ctx context.Context) (*model.Session, error) {
	data, err := m.repo.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if !s.LoggedIn() {
		// a stale or corrupt record must not resurrect half a session
		return nil, nil
	}
	return &s, nil
}

// Clear removes the persisted session. Clearing an empty store is fine.
func (m *Manager) Clear(ctx context.Context) error {
	return m.repo.Delete(ctx, sessionKey)
}
