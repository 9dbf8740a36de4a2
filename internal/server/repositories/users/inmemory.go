package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avolkovx/userdesk/internal/common"
	"github.com/avolkovx/userdesk/internal/server/models"
)

// InMemoryRepository keeps user records in a slice ordered oldest-first.
// It backs local development runs and handler tests; the Postgres
// implementation is used otherwise.
type InMemoryRepository struct {
	mu    sync.Mutex
	users []*models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func clone(u *models.User) *models.User {
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c
}

func (r *InMemoryRepository) findIndex(id string) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (r *InMemoryRepository) emailTaken(email, exceptID string) bool {
	for _, u := range r.users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *InMemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, "") {
		return nil, common.ErrAlreadyExists
	}

	stored := clone(user)
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	r.users = append(r.users, stored)

	return clone(stored), nil
}

func (r *InMemoryRepository) Update(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findIndex(user.ID)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return nil, common.ErrAlreadyExists
	}

	stored := clone(user)
	stored.CreatedAt = r.users[i].CreatedAt
	r.users[i] = stored

	return clone(stored), nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findIndex(id)
	if i < 0 {
		return common.ErrNotFound
	}
	r.users = append(r.users[:i], r.users[i+1:]...)

	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findIndex(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	return clone(r.users[i]), nil
}

func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return clone(u), nil
		}
	}
	return nil, common.ErrNotFound
}

// List returns records newest-first, matching the Postgres ordering.
func (r *InMemoryRepository) List(_ context.Context, offset, limit int) ([]*models.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := len(r.users)

	if offset < 0 {
		offset = 0
	}
	if offset >= total || limit <= 0 {
		return nil, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	result := make([]*models.User, 0, end-offset)
	for i := 0; i < end-offset; i++ {
		// newest-first: walk the slice from the tail
		result = append(result, clone(r.users[total-1-offset-i]))
	}

	return result, total, nil
}
