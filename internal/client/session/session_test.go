package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkovx/userdesk/internal/model"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDatabase(context.Background(), "file:sessiontest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveLoadRoundtrip(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewSQLiteRepository(setupDB(t)))

	stored := model.Session{
		User:  &model.Identity{UID: "u1", Email: "a@b.com", DisplayName: "A B"},
		Token: "tok",
	}
	require.NoError(t, m.Save(ctx, stored))

	loaded, err := m.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, stored, *loaded)
}

func TestLoadWithoutSavedSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewSQLiteRepository(setupDB(t)))

	loaded, err := m.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestSaveRejectsPartialSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewSQLiteRepository(setupDB(t)))

	require.Error(t, m.Save(ctx, model.Session{Token: "tok"}))
	require.Error(t, m.Save(ctx, model.Session{User: &model.Identity{UID: "u1"}}))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewSQLiteRepository(setupDB(t)))

	require.NoError(t, m.Save(ctx, model.Session{
		User:  &model.Identity{UID: "u1", Email: "a@b.com", DisplayName: "A B"},
		Token: "tok",
	}))
	require.NoError(t, m.Clear(ctx))

	loaded, err := m.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, loaded)

	// clearing again is not an error
	require.NoError(t, m.Clear(ctx))
}
