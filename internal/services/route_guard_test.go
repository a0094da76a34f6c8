package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/maint/internal/domain"
)

type fakeGate struct {
	authenticated bool
	checks        int
	initialized   bool
	loginOnCheck  bool
}

func (g *fakeGate) CheckAuth(context.Context) {
	g.checks++
	g.initialized = true
	if g.loginOnCheck {
		g.authenticated = true
	}
}

func (g *fakeGate) IsAuthenticated() bool { return g.authenticated }
func (g *fakeGate) IsInitialized() bool   { return g.initialized }

func TestRouteGuard_UnauthenticatedRedirectsToLogin(t *testing.T) {
	gate := &fakeGate{}
	guard := NewRouteGuard(gate, DefaultRoutes)

	nav := guard.Resolve(context.Background(), "/accommodations")

	assert.Equal(t, "/login?redirect=/accommodations", nav.Redirect)
	assert.Equal(t, RouteAccommodations, nav.Route.Name)
	assert.Equal(t, 1, gate.checks, "bootstrap runs once")
	assert.False(t, nav.Allowed())
}

func TestRouteGuard_ChecksOnlyWhenUninitialized(t *testing.T) {
	gate := &fakeGate{initialized: true, authenticated: true}
	guard := NewRouteGuard(gate, DefaultRoutes)

	nav := guard.Resolve(context.Background(), "/tasks")

	assert.True(t, nav.Allowed())
	assert.Equal(t, 0, gate.checks)
	assert.Equal(t, "Tasks | Maintenance App", nav.Title)
}

func TestRouteGuard_RestoredSessionIsAllowed(t *testing.T) {
	gate := &fakeGate{loginOnCheck: true}
	guard := NewRouteGuard(gate, DefaultRoutes)

	nav := guard.Resolve(context.Background(), "/")

	assert.True(t, nav.Allowed())
	assert.Equal(t, RouteHome, nav.Route.Name)
}

func TestRouteGuard_AuthenticatedLoginGoesHome(t *testing.T) {
	gate := &fakeGate{initialized: true, authenticated: true}
	guard := NewRouteGuard(gate, DefaultRoutes)

	nav := guard.Resolve(context.Background(), "/login")

	assert.Equal(t, HomePath, nav.Redirect)
}

func TestRouteGuard_LoginIsPublic(t *testing.T) {
	gate := &fakeGate{}
	guard := NewRouteGuard(gate, DefaultRoutes)

	nav := guard.Resolve(context.Background(), "/login?redirect=/tasks")

	assert.True(t, nav.Allowed())
	assert.Equal(t, RouteLogin, nav.Route.Name)
	assert.Equal(t, 0, gate.checks)
}

func TestRouteGuard_UnknownPathIsPublicNotFound(t *testing.T) {
	gate := &fakeGate{}
	guard := NewRouteGuard(gate, DefaultRoutes)

	nav := guard.Resolve(context.Background(), "/nowhere/at/all")

	assert.True(t, nav.Allowed())
	assert.Equal(t, RouteNotFound, nav.Route.Name)
	assert.Equal(t, "Page not found | Maintenance App", nav.Title)
}

func TestRouteGuard_CapturesParams(t *testing.T) {
	gate := &fakeGate{initialized: true, authenticated: true}
	guard := NewRouteGuard(gate, DefaultRoutes)

	nav := guard.Resolve(context.Background(), "/tasks/task-42")

	assert.Equal(t, RouteTaskDetail, nav.Route.Name)
	assert.Equal(t, "task-42", nav.Params["id"])
}

func TestRouteGuard_RequireFailsWhenSignedOut(t *testing.T) {
	gate := &fakeGate{}
	guard := NewRouteGuard(gate, DefaultRoutes)

	_, err := guard.Require(context.Background(), "/tasks")

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestRouteGuard_RequireIgnoresLoginRedirect(t *testing.T) {
	gate := &fakeGate{initialized: true, authenticated: true}
	guard := NewRouteGuard(gate, DefaultRoutes)

	nav, err := guard.Require(context.Background(), "/login")

	require.NoError(t, err)
	assert.Equal(t, HomePath, nav.Redirect)
}

func TestLoginRedirect_RoundTrip(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/accommodations", "/login?redirect=/accommodations"},
		{"/tasks/abc", "/login?redirect=/tasks/abc"},
		{"/tasks?status=pending", "/login?redirect=/tasks%3Fstatus%3Dpending"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			redirect := LoginRedirect(tt.path)
			assert.Equal(t, tt.expected, redirect)
			assert.Equal(t, tt.path, RedirectTarget(redirect))
		})
	}
}

func TestRedirectTarget_RejectsForeignTargets(t *testing.T) {
	assert.Equal(t, HomePath, RedirectTarget("/login"))
	assert.Equal(t, HomePath, RedirectTarget("/login?redirect=https://evil.example"))
	assert.Equal(t, HomePath, RedirectTarget("/login?redirect=//evil.example"))
}
