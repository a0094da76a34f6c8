package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/maint/internal/domain"
)

func testSession() *domain.Session {
	return &domain.Session{
		AccessToken:  "access",
		ExpiresAt:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		RefreshToken: "refresh",
		TokenType:    "bearer",
		User:         domain.User{Email: "ana@example.com", ID: "user-1"},
	}
}

func TestSessionStore_SaveLoadClear(t *testing.T) {
	db, err := OpenStateDB(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })

	ctx := context.Background()
	store := NewSessionStore(db, "supabase")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded, "empty store has no session")

	require.NoError(t, store.Save(ctx, testSession()))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, *testSession(), *loaded)

	updated := testSession()
	updated.AccessToken = "access-2"
	require.NoError(t, store.Save(ctx, updated))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-2", loaded.AccessToken, "save replaces the stored session")

	require.NoError(t, store.Clear(ctx))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSessionStore_BackendsAreIsolated(t *testing.T) {
	db, err := OpenStateDB(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })

	ctx := context.Background()
	remote := NewSessionStore(db, "supabase")
	local := NewSessionStore(db, "local")

	require.NoError(t, remote.Save(ctx, testSession()))

	loaded, err := local.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, local.Clear(ctx))
	loaded, err = remote.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, loaded)
}

func TestMemorySessionStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	session := testSession()
	require.NoError(t, store.Save(ctx, session))
	session.AccessToken = "mutated"

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)

	require.NoError(t, store.Save(ctx, nil))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
