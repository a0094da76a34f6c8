package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/forms"
	"github.com/renato0307/maint/internal/logging"
)

// LocalCmd administers the local backend database
type LocalCmd struct {
	AddArea    LocalAddAreaCmd    `cmd:"add-area" help:"Add a catalog area"`
	AddElement LocalAddElementCmd `cmd:"add-element" help:"Add an element to a catalog area"`
	AddUser    LocalAddUserCmd    `cmd:"add-user" help:"Create a user account"`
}

// LocalAddUserCmd creates an account that can sign in to the local backend
type LocalAddUserCmd struct {
	Email    string `arg:"" help:"Account email"`
	Name     string `help:"Full name shown in the TUI"`
	Password string `help:"Account password" env:"MAINT_PASSWORD" required:""`
	Role     string `help:"Role" enum:"chief,supervisor" default:"supervisor"`
}

// Run executes the add-user command
func (l *LocalAddUserCmd) Run(cli *CLI) error {
	local, err := cli.Container.RequireLocal()
	if err != nil {
		return err
	}

	input, err := forms.ValidateLogin(forms.LoginInput{Email: l.Email, Password: l.Password})
	if err != nil {
		return err
	}

	id, err := local.AddUser(context.Background(), input.Email, input.Password, l.Name, domain.UserRole(l.Role))
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}

	logging.Logger.Info("Local user added via CLI", "id", id, "role", l.Role)
	fmt.Printf("User '%s' created (%s)\n", input.Email, id)
	return nil
}

// LocalAddAreaCmd adds an area to the catalog
type LocalAddAreaCmd struct {
	Key   string `arg:"" help:"Stable area key (e.g. kitchen)"`
	Label string `arg:"" help:"Display label"`
	Order int    `help:"Display order" default:"0"`
}

// Run executes the add-area command
func (l *LocalAddAreaCmd) Run(cli *CLI) error {
	local, err := cli.Container.RequireLocal()
	if err != nil {
		return err
	}

	id, err := local.AddArea(context.Background(), l.Key, l.Label, l.Order)
	if err != nil {
		return fmt.Errorf("failed to add area: %w", err)
	}

	fmt.Printf("Area '%s' created (%s)\n", l.Key, id)
	return nil
}

// LocalAddElementCmd adds an element to an area
type LocalAddElementCmd struct {
	Area  string `arg:"" help:"Area key or id"`
	Name  string `arg:"" help:"Element name"`
	Order int    `help:"Display order" default:"0"`
}

// Run executes the add-element command
func (l *LocalAddElementCmd) Run(cli *CLI) error {
	local, err := cli.Container.RequireLocal()
	if err != nil {
		return err
	}

	ctx := context.Background()
	areaID, _, err := resolveCatalog(ctx, cli.Container.App, l.Area, "")
	if err != nil {
		return err
	}

	id, err := local.AddElement(ctx, areaID, l.Name, l.Order)
	if err != nil {
		return fmt.Errorf("failed to add element: %w", err)
	}

	fmt.Printf("Element '%s' created (%s)\n", l.Name, id)
	return nil
}
