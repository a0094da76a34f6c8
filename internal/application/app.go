// Package application wires one user's view of the system: the session, the
// resource stores and the route guard over a single backend client.
package application

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ports"
	"github.com/renato0307/maint/internal/services"
)

// BackendFactory builds a backend client whose session lives in sessions
type BackendFactory func(sessions ports.SessionStore) (ports.RemoteDataService, error)

// App is the scope of one user session. The CLI builds one per process and
// the SSH server one per connection.
type App struct {
	Accommodations *services.AccommodationStore
	Catalog        *services.CatalogService
	Guard          *services.RouteGuard
	Session        *services.SessionManager
	Tasks          *services.TaskStore

	backend ports.RemoteDataService
}

// New builds an App over backend. Call Start before use and Close when done.
func New(backend ports.RemoteDataService) *App {
	session := services.NewSessionManager(backend, backend)

	return &App{
		Accommodations: services.NewAccommodationStore(services.NewAccommodationService(backend, backend)),
		Catalog:        services.NewCatalogService(backend),
		Guard:          services.NewRouteGuard(session, services.DefaultRoutes),
		Session:        session,
		Tasks:          services.NewTaskStore(services.NewTaskService(backend, backend)),
		backend:        backend,
	}
}

// Start subscribes to auth events and restores the previous session
func (a *App) Start(ctx context.Context) {
	a.Session.Start()
	a.Session.CheckAuth(ctx)
}

// Refresh reloads accommodations and tasks concurrently. The first failure is
// returned once both fetches have finished.
func (a *App) Refresh(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.Accommodations.FetchAll(gctx); err != nil {
			return fmt.Errorf("failed to load accommodations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := a.Tasks.FetchAll(gctx); err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}
		return nil
	})

	err := g.Wait()
	logging.Logger.Debug("Dashboard refreshed",
		"accommodations", a.Accommodations.Count(),
		"tasks", a.Tasks.Count(),
		"error", err)
	return err
}

// Close stops event delivery and releases the backend
func (a *App) Close() error {
	a.Session.Stop()
	return a.backend.Close()
}
