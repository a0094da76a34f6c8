package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
)

// AppTitle is appended to every page title
const AppTitle = "Maintenance App"

// Route names
const (
	RouteAccommodationDetail = "AccommodationDetail"
	RouteAccommodations      = "Accommodations"
	RouteHome                = "Home"
	RouteLogin               = "Login"
	RouteNotFound            = "NotFound"
	RouteTaskDetail          = "TaskDetail"
	RouteTasks               = "Tasks"
)

// Paths of the fixed routes
const (
	HomePath  = "/"
	LoginPath = "/login"
)

// Route is one navigable screen. Pattern segments starting with ':' capture
// a parameter.
type Route struct {
	Name         string
	Pattern      string
	RequiresAuth bool
	Title        string
}

// DefaultRoutes is the route table of the application
var DefaultRoutes = []Route{
	{Name: RouteLogin, Pattern: LoginPath, RequiresAuth: false, Title: "Sign in"},
	{Name: RouteHome, Pattern: HomePath, RequiresAuth: true, Title: "Dashboard"},
	{Name: RouteAccommodations, Pattern: "/accommodations", RequiresAuth: true, Title: "Accommodations"},
	{Name: RouteAccommodationDetail, Pattern: "/accommodations/:id", RequiresAuth: true, Title: "Accommodation detail"},
	{Name: RouteTasks, Pattern: "/tasks", RequiresAuth: true, Title: "Tasks"},
	{Name: RouteTaskDetail, Pattern: "/tasks/:id", RequiresAuth: true, Title: "Task detail"},
}

var notFoundRoute = Route{Name: RouteNotFound, RequiresAuth: false, Title: "Page not found"}

// Navigation is the outcome of resolving a path. When Redirect is set the
// caller must navigate there instead of showing Route.
type Navigation struct {
	Params   map[string]string
	Path     string
	Redirect string
	Route    Route
	Title    string
}

// Allowed reports whether the requested route may be shown
func (n Navigation) Allowed() bool {
	return n.Redirect == ""
}

// AuthGate is the part of the session manager the guard depends on
type AuthGate interface {
	CheckAuth(ctx context.Context)
	IsAuthenticated() bool
	IsInitialized() bool
}

// RouteGuard decides whether a path may be entered given the session state
type RouteGuard struct {
	routes  []Route
	session AuthGate
}

// NewRouteGuard creates a guard over routes
func NewRouteGuard(session AuthGate, routes []Route) *RouteGuard {
	return &RouteGuard{
		routes:  routes,
		session: session,
	}
}

// Resolve matches path against the route table and applies the auth rules.
// Protected routes bootstrap the session once when it was never checked.
func (g *RouteGuard) Resolve(ctx context.Context, path string) Navigation {
	routePath, _, _ := strings.Cut(path, "?")
	route, params := g.match(routePath)

	nav := Navigation{
		Params: params,
		Path:   path,
		Route:  route,
		Title:  PageTitle(route),
	}

	if !route.RequiresAuth {
		if route.Name == RouteLogin && g.session.IsAuthenticated() {
			nav.Redirect = HomePath
		}
		return nav
	}

	if !g.session.IsInitialized() {
		g.session.CheckAuth(ctx)
	}

	if !g.session.IsAuthenticated() {
		nav.Redirect = LoginRedirect(path)
		logging.Logger.Debug("Redirecting to login", "path", path)
	}
	return nav
}

// Require fails with ErrNotAuthenticated when path may not be entered
// because nobody is signed in
func (g *RouteGuard) Require(ctx context.Context, path string) (Navigation, error) {
	nav := g.Resolve(ctx, path)
	if nav.Route.RequiresAuth && !nav.Allowed() {
		return nav, domain.ErrNotAuthenticated
	}
	return nav, nil
}

func (g *RouteGuard) match(path string) (Route, map[string]string) {
	if path == "" {
		path = HomePath
	}
	for _, route := range g.routes {
		if params, ok := matchPattern(route.Pattern, path); ok {
			return route, params
		}
	}
	return notFoundRoute, nil
}

func matchPattern(pattern, path string) (map[string]string, bool) {
	patternParts := splitPath(pattern)
	pathParts := splitPath(path)
	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	var params map[string]string
	for i, part := range patternParts {
		if name, ok := strings.CutPrefix(part, ":"); ok {
			if pathParts[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[name] = pathParts[i]
			continue
		}
		if part != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// LoginRedirect builds the login path that returns to path after signing in
func LoginRedirect(path string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(path), "%2F", "/")
	return LoginPath + "?redirect=" + escaped
}

// RedirectTarget extracts the post-login destination from a login path,
// defaulting to the home page
func RedirectTarget(loginPath string) string {
	_, rawQuery, _ := strings.Cut(loginPath, "?")
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return HomePath
	}
	target := values.Get("redirect")
	// Only local paths are accepted
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return HomePath
	}
	return target
}

// PageTitle returns the window title for route
func PageTitle(route Route) string {
	if route.Title == "" {
		return AppTitle
	}
	return route.Title + " | " + AppTitle
}
