package ui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/maint/internal/adapters/storage"
	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/services"
)

func newTestModel(t *testing.T, signedIn bool) (*Model, *application.App) {
	t.Helper()
	ctx := context.Background()

	backend, err := storage.OpenLocalBackend(filepath.Join(t.TempDir(), "local.db"), storage.NewMemorySessionStore())
	require.NoError(t, err)
	_, err = backend.AddUser(ctx, "ana@example.com", "secret123", "Ana Pérez", domain.RoleChief)
	require.NoError(t, err)

	app := application.New(backend)
	t.Cleanup(func() { _ = app.Close() })
	app.Start(ctx)
	if signedIn {
		require.NoError(t, app.Session.Login(ctx, "ana@example.com", "secret123"))
	}

	m := NewModel(ModelConfig{App: app, ErrorClearDelay: time.Second})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, app
}

// follow feeds a resolved route into the model, following redirects the way
// the returned commands would
func follow(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	for i := 0; i < 5; i++ {
		resolved, ok := msg.(routeResolvedMsg)
		require.True(t, ok, "expected routeResolvedMsg, got %T", msg)
		m.Update(resolved)
		if resolved.nav.Allowed() {
			return
		}
		msg = m.navigate(resolved.nav.Redirect, resolved.back)()
	}
	t.Fatal("too many redirects")
}

func goTo(t *testing.T, m *Model, path string) {
	t.Helper()
	follow(t, m, m.navigate(path, false)())
}

func press(m *Model, keys string) tea.Cmd {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	if keys == "esc" {
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestModel_ProtectedPathRedirectsToLogin(t *testing.T) {
	m, _ := newTestModel(t, false)

	goTo(t, m, "/tasks")

	assert.Equal(t, "/login?redirect=/tasks", m.Path())
	screen, ok := m.screen.(*LoginScreen)
	require.True(t, ok)
	assert.Equal(t, "/tasks", screen.redirect)
	assert.Empty(t, m.history)
}

func TestModel_LoginContinuesToRedirect(t *testing.T) {
	m, app := newTestModel(t, false)
	goTo(t, m, "/tasks")

	require.NoError(t, app.Session.Login(context.Background(), "ana@example.com", "secret123"))
	_, cmd := m.Update(loginResultMsg{redirect: "/tasks"})
	require.NotNil(t, cmd)
	follow(t, m, cmd())

	assert.Equal(t, "/tasks", m.Path())
	assert.IsType(t, &TaskListScreen{}, m.screen)
	assert.Empty(t, m.history)
}

func TestModel_SignedInUserSkipsLogin(t *testing.T) {
	m, _ := newTestModel(t, true)

	goTo(t, m, "/login")

	assert.Equal(t, services.HomePath, m.Path())
	assert.IsType(t, &DashboardScreen{}, m.screen)
}

func TestModel_UnknownPathShowsNotFound(t *testing.T) {
	m, _ := newTestModel(t, false)

	goTo(t, m, "/nowhere")

	assert.Equal(t, services.RouteNotFound, m.nav.Route.Name)
	assert.IsType(t, &NotFoundScreen{}, m.screen)
}

func TestModel_DetailRoutesReceiveID(t *testing.T) {
	m, _ := newTestModel(t, true)

	goTo(t, m, "/accommodations/abc")
	detail, ok := m.screen.(*AccommodationDetailScreen)
	require.True(t, ok)
	assert.Equal(t, "abc", detail.id)

	goTo(t, m, "/tasks/xyz")
	task, ok := m.screen.(*TaskDetailScreen)
	require.True(t, ok)
	assert.Equal(t, "xyz", task.id)
}

func TestModel_NavigationKeysAndBack(t *testing.T) {
	m, _ := newTestModel(t, true)
	goTo(t, m, services.HomePath)

	cmd := press(m, "2")
	require.NotNil(t, cmd)
	follow(t, m, cmd())
	assert.Equal(t, "/accommodations", m.Path())

	cmd = press(m, "3")
	require.NotNil(t, cmd)
	follow(t, m, cmd())
	assert.Equal(t, "/tasks", m.Path())
	assert.Equal(t, []string{"/", "/accommodations"}, m.history)

	cmd = press(m, "esc")
	require.NotNil(t, cmd)
	follow(t, m, cmd())
	assert.Equal(t, "/accommodations", m.Path())
	assert.Equal(t, []string{"/"}, m.history)
}

func TestModel_QuitKey(t *testing.T) {
	m, _ := newTestModel(t, true)
	goTo(t, m, services.HomePath)

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ConfirmDelete(t *testing.T) {
	m, _ := newTestModel(t, true)
	goTo(t, m, "/tasks")

	deleted := false
	m.Update(ConfirmDeleteMsg{
		Delete: func() error {
			deleted = true
			return nil
		},
		Label: "task 1234abcd",
	})
	assert.Equal(t, stateConfirmingDelete, m.state)
	assert.Contains(t, m.View(), "Delete task 1234abcd?")

	cmd := press(m, "y")
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.True(t, deleted)
	assert.Equal(t, stateScreen, m.state)
	assert.Equal(t, "Deleted task 1234abcd", m.notice)
}

func TestModel_ConfirmDeleteCancelled(t *testing.T) {
	m, _ := newTestModel(t, true)
	goTo(t, m, "/tasks")

	deleted := false
	m.Update(ConfirmDeleteMsg{
		Delete: func() error {
			deleted = true
			return nil
		},
		Label: "accommodation AB1",
	})

	assert.Nil(t, press(m, "n"))
	assert.False(t, deleted)
	assert.Equal(t, stateScreen, m.state)
	assert.Nil(t, m.confirm)
}

func TestModel_ErrorIsShownUnderScreen(t *testing.T) {
	m, _ := newTestModel(t, true)
	goTo(t, m, "/tasks")

	_, cmd := m.Update(ErrorMsg{Err: errors.New("connection refused")})

	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Error: connection refused")
}

func TestModel_SessionEndReturnsToLogin(t *testing.T) {
	m, app := newTestModel(t, true)
	goTo(t, m, "/tasks")
	require.NoError(t, app.Session.Logout(context.Background()))

	m.history = []string{"/"}
	cmd := m.checkSession()

	assert.NotNil(t, cmd)
	assert.Empty(t, m.history)
}
