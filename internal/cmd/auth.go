package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/forms"
	"github.com/renato0307/maint/internal/logging"
)

// LoginCmd signs in and persists the session for later commands
type LoginCmd struct {
	Email    string `help:"Account email" short:"e"`
	Password string `help:"Account password (prompted when omitted)" env:"MAINT_PASSWORD"`
}

// Run executes the login command
func (l *LoginCmd) Run(cli *CLI) error {
	input := forms.LoginInput{Email: l.Email, Password: l.Password}
	if input.Email == "" || input.Password == "" {
		if err := promptLogin(&input); err != nil {
			return err
		}
	}

	input, err := forms.ValidateLogin(input)
	if err != nil {
		return err
	}

	ctx := context.Background()
	app := cli.Container.App
	app.Start(ctx)

	logging.Logger.Info("Signing in via CLI", "email", input.Email, "backend", cli.Backend)
	if err := app.Session.Login(ctx, input.Email, input.Password); err != nil {
		return fmt.Errorf("sign in failed: %s", domain.ErrorMessage(err))
	}

	fmt.Printf("Signed in as %s (%s)\n", app.Session.UserDisplayName(), input.Email)
	return nil
}

// promptLogin asks for the missing credentials on the terminal
func promptLogin(input *forms.LoginInput) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&input.Email).
				Validate(huh.ValidateNotEmpty()),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&input.Password).
				Validate(huh.ValidateMinLength(forms.MinPasswordLength)),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("login prompt cancelled: %w", err)
	}
	return nil
}

// LogoutCmd signs out
type LogoutCmd struct{}

// Run executes the logout command
func (l *LogoutCmd) Run(cli *CLI) error {
	ctx := context.Background()
	app := cli.Container.App
	app.Start(ctx)

	if !app.Session.IsAuthenticated() {
		fmt.Println("Not signed in")
		return nil
	}
	if err := app.Session.Logout(ctx); err != nil {
		return fmt.Errorf("sign out failed: %s", domain.ErrorMessage(err))
	}

	fmt.Println("Signed out")
	return nil
}

// WhoamiCmd shows the signed-in user and profile
type WhoamiCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the whoami command
func (w *WhoamiCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	session := cli.Container.App.Session
	user := session.User()
	profile := session.Profile()

	if w.Format == "json" {
		data, err := json.MarshalIndent(map[string]any{
			"display_name": session.UserDisplayName(),
			"profile":      profile,
			"role":         session.UserRole(),
			"user":         user,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Name: %s\n", session.UserDisplayName())
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Role: %s\n", session.UserRole())
	fmt.Printf("User ID: %s\n", user.ID)
	fmt.Printf("Backend: %s\n", cli.Backend)
	return nil
}
