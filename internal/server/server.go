// Package server serves the TUI over SSH. Every connection gets its own
// application scope and an in-memory session, so users never share a sign-in.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/config"
	"github.com/renato0307/maint/internal/logging"
)

// DefaultAddress is used when neither flags nor settings name one
const DefaultAddress = "localhost:23234"

const shutdownTimeout = 30 * time.Second

// Config configures the SSH server
type Config struct {
	Address            string
	AuthorizedKeysPath string
	ErrorClearDelay    time.Duration
	Factory            application.BackendFactory
	HostKeyPath        string
	KeysConfig         config.KeyBindingsConfig
}

// Server represents the SSH server for maint
type Server struct {
	cfg        Config
	wishServer *ssh.Server
}

// New creates a new SSH server instance. Empty paths fall back to the host
// key under $MAINT_HOME/ssh and the user's ~/.ssh/authorized_keys.
func New(cfg Config) (*Server, error) {
	if cfg.Factory == nil {
		return nil, errors.New("server needs a backend factory")
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.HostKeyPath == "" {
		sshDir := config.GetSSHDir()
		if err := os.MkdirAll(sshDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create SSH directory: %w", err)
		}
		cfg.HostKeyPath = filepath.Join(sshDir, "id_ed25519")
	}
	if cfg.AuthorizedKeysPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.AuthorizedKeysPath = filepath.Join(homeDir, ".ssh", "authorized_keys")
	}

	s := &Server{cfg: cfg}

	// Middleware executes last to first
	wishServer, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithPublicKeyAuth(s.authorize),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.cfg.Address
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve serves until ctx is done
func (s *Server) Serve(ctx context.Context) error {
	logging.Logger.Info("Starting SSH server", "address", s.cfg.Address)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.wishServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("SSH server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.wishServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}

	logging.Logger.Info("SSH server stopped")
	return nil
}
