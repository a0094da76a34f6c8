package cmd

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/renato0307/maint/internal/adapters/storage"
	"github.com/renato0307/maint/internal/adapters/supabase"
	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/config"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ports"
)

// errLocalOnly is returned by commands that administer the local backend
var errLocalOnly = errors.New("this command needs the local backend (use --backend local)")

// BackendOptions selects and configures the data backend
type BackendOptions struct {
	LocalDBPath string
	Name        string
	Timeout     time.Duration
}

// Container holds all dependencies for the application
type Container struct {
	App     *application.App
	Backend string
	Factory application.BackendFactory

	// Local is set only for the local backend
	Local *storage.LocalBackend

	// Internal - for cleanup only
	localDB *gorm.DB
	stateDB *gorm.DB
}

// NewContainer creates a new Container with all dependencies wired. A missing
// Supabase environment is reported here so the process fails at startup.
func NewContainer(opts BackendOptions) (*Container, error) {
	c := &Container{Backend: opts.Name}

	switch opts.Name {
	case config.BackendLocal:
		localDB, err := storage.OpenLocalDB(opts.LocalDBPath)
		if err != nil {
			return nil, err
		}
		c.localDB = localDB
		c.Factory = func(sessions ports.SessionStore) (ports.RemoteDataService, error) {
			return storage.NewLocalBackend(localDB, sessions)
		}
	case config.BackendSupabase, "":
		env, err := config.ReadSupabaseEnv()
		if err != nil {
			return nil, err
		}
		cfg := supabase.Config{
			PublishableKey: env.PublishableKey,
			Timeout:        opts.Timeout,
			URL:            env.URL,
		}
		c.Factory = func(sessions ports.SessionStore) (ports.RemoteDataService, error) {
			return supabase.New(cfg, sessions)
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Name)
	}

	stateDB, err := storage.OpenStateDB(config.GetStateDBPath())
	if err != nil {
		c.closeDatabases()
		return nil, err
	}
	c.stateDB = stateDB

	backend, err := c.Factory(storage.NewSessionStore(stateDB, opts.Name))
	if err != nil {
		c.closeDatabases()
		return nil, err
	}
	if local, ok := backend.(*storage.LocalBackend); ok {
		c.Local = local
	}
	c.App = application.New(backend)

	logging.Logger.Debug("Container ready", "backend", opts.Name)
	return c, nil
}

// RequireLocal returns the local backend or an error for hosted backends
func (c *Container) RequireLocal() (*storage.LocalBackend, error) {
	if c.Local == nil {
		return nil, errLocalOnly
	}
	return c.Local, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error
	if c.App != nil {
		errs = append(errs, c.App.Close())
	}
	errs = append(errs, c.closeDatabases())
	return errors.Join(errs...)
}

func (c *Container) closeDatabases() error {
	var errs []error
	if c.localDB != nil {
		errs = append(errs, storage.CloseDB(c.localDB))
		c.localDB = nil
	}
	if c.stateDB != nil {
		errs = append(errs, storage.CloseDB(c.stateDB))
		c.stateDB = nil
	}
	return errors.Join(errs...)
}
