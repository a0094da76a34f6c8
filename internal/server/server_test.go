package server

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"

	"github.com/renato0307/maint/internal/adapters/storage"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/ports"
)

func newPublicKey(t *testing.T) gossh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	key, err := gossh.NewPublicKey(pub)
	require.NoError(t, err)
	return key
}

func TestIsKeyAuthorized(t *testing.T) {
	allowed := newPublicKey(t)
	other := newPublicKey(t)

	path := filepath.Join(t.TempDir(), "authorized_keys")
	content := "# team keys\n\nnot a key line\n" + string(gossh.MarshalAuthorizedKey(allowed))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	assert.True(t, isKeyAuthorized(allowed, path))
	assert.False(t, isKeyAuthorized(other, path))
	assert.False(t, isKeyAuthorized(allowed, filepath.Join(t.TempDir(), "missing")))
}

func TestNew_RequiresFactory(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv("MAINT_HOME", t.TempDir())
	dir := t.TempDir()

	s, err := New(Config{
		AuthorizedKeysPath: filepath.Join(dir, "authorized_keys"),
		Factory: func(ports.SessionStore) (ports.RemoteDataService, error) {
			return nil, nil
		},
		HostKeyPath: filepath.Join(dir, "host_ed25519"),
	})

	require.NoError(t, err)
	assert.Equal(t, DefaultAddress, s.Address())
}

func TestServer_ConnectionsDoNotShareSessions(t *testing.T) {
	db, err := storage.OpenLocalDB(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.CloseDB(db) })

	s := &Server{cfg: Config{
		Factory: func(sessions ports.SessionStore) (ports.RemoteDataService, error) {
			return storage.NewLocalBackend(db, sessions)
		},
	}}
	ctx := context.Background()

	first, err := s.newSessionApp()
	require.NoError(t, err)
	second, err := s.newSessionApp()
	require.NoError(t, err)

	admin, err := storage.NewLocalBackend(db, storage.NewMemorySessionStore())
	require.NoError(t, err)
	_, err = admin.AddUser(ctx, "ana@example.com", "secret123", "Ana", domain.RoleChief)
	require.NoError(t, err)

	first.Start(ctx)
	second.Start(ctx)
	require.NoError(t, first.Session.Login(ctx, "ana@example.com", "secret123"))

	assert.True(t, first.Session.IsAuthenticated())
	assert.False(t, second.Session.IsAuthenticated(), "each connection signs in on its own")

	require.NoError(t, first.Close())
	require.NoError(t, second.Close())

	// Closing a connection's app leaves the shared database usable
	_, err = admin.SignInWithPassword(ctx, "ana@example.com", "secret123")
	assert.NoError(t, err)
}
