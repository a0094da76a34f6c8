package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/forms"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/services"
	"github.com/renato0307/maint/internal/theme"
)

// LoginScreen signs the user in and then continues to the redirect target
type LoginScreen struct {
	app        *application.App
	form       *huh.Form
	input      forms.LoginInput
	redirect   string
	submitting bool
}

// NewLoginScreen creates the sign in screen for the login path, which may
// carry a ?redirect= target
func NewLoginScreen(app *application.App, path string) *LoginScreen {
	s := &LoginScreen{
		app:      app,
		redirect: services.RedirectTarget(path),
	}
	s.form = s.buildForm()
	return s
}

func (s *LoginScreen) buildForm() *huh.Form {
	s.input.Password = ""
	validate := func(in forms.LoginInput) error {
		_, err := forms.ValidateLogin(in)
		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&s.input.Email).
				Validate(fieldRule("email", &s.input, func(in *forms.LoginInput, v string) { in.Email = v }, validate)),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&s.input.Password).
				Validate(fieldRule("password", &s.input, func(in *forms.LoginInput, v string) { in.Password = v }, validate)),
		),
	).WithShowHelp(true)
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *LoginScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		s.submitting = false
		if result.err != nil {
			s.form = s.buildForm()
			return s, tea.Batch(s.form.Init(), cmdOf(ErrorMsg{Err: result.err}))
		}
		return s, nil
	}

	if s.submitting {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.submitting = true
		return s, s.submit()
	}
	return s, cmd
}

// submit validates the form and signs in off the UI goroutine
func (s *LoginScreen) submit() tea.Cmd {
	input := s.input
	redirect := s.redirect
	session := s.app.Session

	return func() tea.Msg {
		valid, err := forms.ValidateLogin(input)
		if err != nil {
			return loginResultMsg{err: err}
		}

		logging.Logger.Info("Signing in from TUI", "email", valid.Email)
		if err := session.Login(context.Background(), valid.Email, valid.Password); err != nil {
			return loginResultMsg{err: fmt.Errorf("sign in failed: %w", err)}
		}
		return loginResultMsg{redirect: redirect}
	}
}

func (s *LoginScreen) View() string {
	if s.submitting {
		return theme.HelpDescStyle.Render("Signing in...")
	}
	return theme.SubtitleStyle.Render("Sign in") + "\n\n" + s.form.View()
}

func (s *LoginScreen) SetSize(width, height int) {
	s.form = s.form.WithWidth(min(width, 60))
}

func (s *LoginScreen) HelpBindings() []key.Binding {
	return nil
}
