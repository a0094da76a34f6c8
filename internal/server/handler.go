package server

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"github.com/renato0307/maint/internal/adapters/storage"
	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ui"
)

// sessionModel wraps ui.Model to release the connection's app scope when
// the SSH session ends
type sessionModel struct {
	*ui.Model
	app       *application.App
	closeOnce sync.Once
	sessionID string
	startTime time.Time
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updatedModel, cmd := s.Model.Update(msg)
	if m, ok := updatedModel.(*ui.Model); ok {
		s.Model = m
	}
	return s, cmd
}

func (s *sessionModel) close() {
	s.closeOnce.Do(s.release)
}

func (s *sessionModel) release() {
	duration := time.Since(s.startTime)
	if err := s.app.Close(); err != nil {
		logging.Logger.Error("Failed to close app for SSH session",
			"error", err,
			"session_id", s.sessionID)
	}
	logging.Logger.Info("SSH session ended",
		"session_id", s.sessionID,
		"duration", duration.String())
}

// newSessionApp builds the app scope of one connection. The session is kept
// in memory and dies with the connection.
func (s *Server) newSessionApp() (*application.App, error) {
	backend, err := s.cfg.Factory(storage.NewMemorySessionStore())
	if err != nil {
		return nil, err
	}
	return application.New(backend), nil
}

// teaHandler creates a Bubbletea model for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	app, err := s.newSessionApp()
	if err != nil {
		logging.Logger.Error("Failed to build app for SSH session",
			"error", err,
			"session_id", sessionID)
		return errorModel{err}, nil
	}
	app.Start(sess.Context())

	model := ui.NewModel(ui.ModelConfig{
		App:             app,
		ErrorClearDelay: s.cfg.ErrorClearDelay,
		KeysConfig:      s.cfg.KeysConfig,
	})

	wrapped := &sessionModel{
		Model:     model,
		app:       app,
		sessionID: sessionID,
		startTime: time.Now(),
	}
	go func() {
		<-sess.Context().Done()
		wrapped.close()
	}()

	return wrapped, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// errorModel displays an error and quits
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}
