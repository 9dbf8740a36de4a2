package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkovx/userdesk/internal/common"
	"github.com/avolkovx/userdesk/internal/server/models"
)

func seedUsers(t *testing.T, r *InMemoryRepository, n int) []*models.User {
	t.Helper()
	ctx := context.Background()
	created := make([]*models.User, 0, n)
	for i := 1; i <= n; i++ {
		u, err := r.Create(ctx, &models.User{
			FirstName:    fmt.Sprintf("First%d", i),
			LastName:     fmt.Sprintf("Last%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: []byte("hash"),
		})
		require.NoError(t, err)
		created = append(created, u)
	}
	return created
}

func TestInMemoryCreateAssignsID(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()

	u, err := r.Create(ctx, &models.User{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.False(t, u.CreatedAt.IsZero())

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", got.Email)
}

func TestInMemoryDuplicateEmail(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()

	_, err := r.Create(ctx, &models.User{Email: "ann@example.com"})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{Email: "Ann@Example.com"})
	require.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestInMemoryUpdate(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()
	created := seedUsers(t, r, 2)

	created[0].FirstName = "Renamed"
	updated, err := r.Update(ctx, created[0])
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.FirstName)

	// taking the other record's email must fail
	created[0].Email = created[1].Email
	_, err = r.Update(ctx, created[0])
	require.ErrorIs(t, err, common.ErrAlreadyExists)

	_, err = r.Update(ctx, &models.User{ID: "missing"})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestInMemoryDelete(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()
	created := seedUsers(t, r, 1)

	require.NoError(t, r.Delete(ctx, created[0].ID))
	require.ErrorIs(t, r.Delete(ctx, created[0].ID), common.ErrNotFound)

	_, err := r.GetByID(ctx, created[0].ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestInMemoryGetByEmail(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()
	seedUsers(t, r, 1)

	u, err := r.GetByEmail(ctx, "USER1@example.com")
	require.NoError(t, err)
	require.Equal(t, "First1", u.FirstName)

	_, err = r.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestInMemoryListNewestFirst(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()
	seedUsers(t, r, 5)

	page, total, err := r.List(ctx, 0, 2)
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, page, 2)
	require.Equal(t, "user5@example.com", page[0].Email)
	require.Equal(t, "user4@example.com", page[1].Email)

	page, total, err = r.List(ctx, 4, 2)
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, page, 1)
	require.Equal(t, "user1@example.com", page[0].Email)

	page, total, err = r.List(ctx, 10, 2)
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Empty(t, page)
}
