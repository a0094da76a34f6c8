package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/forms"
	"github.com/renato0307/maint/internal/logging"
)

// AccommodationsCmd manages accommodations
type AccommodationsCmd struct {
	Add    AccommodationsAddCmd    `cmd:"add" help:"Add an accommodation"`
	Del    AccommodationsDelCmd    `cmd:"del" help:"Delete an accommodation"`
	List   AccommodationsListCmd   `cmd:"list" help:"List accommodations" default:"1"`
	Update AccommodationsUpdateCmd `cmd:"update" help:"Change an accommodation"`
	View   AccommodationsViewCmd   `cmd:"view" help:"Show an accommodation and its tasks"`
}

// resolveAccommodation finds an accommodation by id or by code
func resolveAccommodation(ctx context.Context, app *application.App, ref string) (*domain.Accommodation, error) {
	if err := app.Accommodations.FetchAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to load accommodations: %w", err)
	}

	code := domain.NormalizeCode(ref)
	for _, a := range app.Accommodations.Items() {
		if a.ID == ref || a.Code == code {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("accommodation '%s': %w", ref, domain.ErrNotFound)
}

// AccommodationsListCmd lists accommodations
type AccommodationsListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Status string `help:"Only show this status" enum:"all,active,inactive" default:"all"`
}

// Run executes the list command
func (a *AccommodationsListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	store := cli.Container.App.Accommodations
	if err := store.FetchAll(ctx); err != nil {
		return fmt.Errorf("failed to load accommodations: %s", domain.ErrorMessage(err))
	}

	items := store.Items()
	switch a.Status {
	case string(domain.AccommodationActive):
		items = store.Active()
	case string(domain.AccommodationInactive):
		items = store.Inactive()
	}

	if a.Format == "json" {
		return printJSON(items)
	}

	fmt.Printf("Accommodations: %d total, %d active, %d inactive\n\n",
		store.TotalCount(), store.ActiveCount(), store.InactiveCount())
	if len(items) == 0 {
		fmt.Println("No accommodations found.")
		return nil
	}

	fmt.Printf("%-4s  %-24s  %-8s  %-30s  %s\n", "Code", "Name", "Status", "Address", "ID")
	fmt.Println(strings.Repeat("─", 110))
	for _, item := range items {
		fmt.Printf("%-4s  %-24s  %-8s  %-30s  %s\n",
			item.Code,
			truncate(item.Name, 24),
			item.Status,
			truncate(orDash(item.Address), 30),
			item.ID)
	}
	return nil
}

// AccommodationsAddCmd creates an accommodation
type AccommodationsAddCmd struct {
	Address string `help:"Street address"`
	Code    string `help:"Short code (up to 4 letters or digits)" required:""`
	Name    string `help:"Display name" required:""`
	Notes   string `help:"Free-form notes"`
	Status  string `help:"Initial status" enum:"active,inactive" default:"active"`
}

// Run executes the add command
func (a *AccommodationsAddCmd) Run(cli *CLI) error {
	data, err := forms.AccommodationInput{
		Address: a.Address,
		Code:    a.Code,
		Name:    a.Name,
		Notes:   a.Notes,
		Status:  a.Status,
	}.ToCreate()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}

	created, err := cli.Container.App.Accommodations.Create(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to create accommodation: %s", domain.ErrorMessage(err))
	}

	logging.Logger.Info("Accommodation created via CLI", "id", created.ID, "code", created.Code)
	fmt.Printf("Accommodation '%s' created (%s)\n", created.Code, created.ID)
	return nil
}

// AccommodationsUpdateCmd changes the given fields of an accommodation
type AccommodationsUpdateCmd struct {
	Address *string `help:"Street address (empty clears)"`
	Code    *string `help:"Short code"`
	Name    *string `help:"Display name"`
	Notes   *string `help:"Free-form notes (empty clears)"`
	Ref     string  `arg:"" help:"Accommodation id or code"`
	Status  *string `help:"Status" enum:"active,inactive"`
}

// Run executes the update command
func (a *AccommodationsUpdateCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	app := cli.Container.App

	current, err := resolveAccommodation(ctx, app, a.Ref)
	if err != nil {
		return err
	}

	input := forms.AccommodationInputFrom(*current)
	if a.Address != nil {
		input.Address = *a.Address
	}
	if a.Code != nil {
		input.Code = *a.Code
	}
	if a.Name != nil {
		input.Name = *a.Name
	}
	if a.Notes != nil {
		input.Notes = *a.Notes
	}
	if a.Status != nil {
		input.Status = *a.Status
	}

	patch, err := input.ToUpdate(current.ID)
	if err != nil {
		return err
	}
	updated, err := app.Accommodations.Update(ctx, patch)
	if err != nil {
		return fmt.Errorf("failed to update accommodation: %s", domain.ErrorMessage(err))
	}

	fmt.Printf("Accommodation '%s' updated\n", updated.Code)
	return nil
}

// AccommodationsDelCmd deletes an accommodation
type AccommodationsDelCmd struct {
	Force bool   `help:"Delete without confirmation" short:"f"`
	Ref   string `arg:"" help:"Accommodation id or code"`
}

// Run executes the del command
func (a *AccommodationsDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	app := cli.Container.App

	target, err := resolveAccommodation(ctx, app, a.Ref)
	if err != nil {
		return err
	}

	if !a.Force && !confirm(fmt.Sprintf("Delete accommodation '%s' (%s)?", target.Code, target.Name)) {
		return nil
	}

	if err := app.Accommodations.Remove(ctx, target.ID); err != nil {
		return fmt.Errorf("failed to delete accommodation: %s", domain.ErrorMessage(err))
	}

	logging.Logger.Info("Accommodation deleted via CLI", "id", target.ID)
	fmt.Printf("Accommodation '%s' deleted\n", target.Code)
	return nil
}

// AccommodationsViewCmd shows one accommodation with its tasks
type AccommodationsViewCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Ref    string `arg:"" help:"Accommodation id or code"`
}

// Run executes the view command
func (a *AccommodationsViewCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	app := cli.Container.App

	target, err := resolveAccommodation(ctx, app, a.Ref)
	if err != nil {
		return err
	}
	if err := app.Tasks.FetchByAccommodation(ctx, target.ID); err != nil {
		return fmt.Errorf("failed to load tasks: %s", domain.ErrorMessage(err))
	}
	tasks := app.Tasks.Items()

	if a.Format == "json" {
		return printJSON(map[string]any{
			"accommodation": target,
			"tasks":         tasks,
		})
	}

	fmt.Printf("Accommodation: %s (%s)\n", target.Name, target.Code)
	fmt.Printf("ID: %s\n", target.ID)
	fmt.Printf("Status: %s\n", target.Status)
	fmt.Printf("Address: %s\n", orDash(target.Address))
	fmt.Printf("Notes: %s\n", orDash(target.Notes))
	fmt.Printf("Created: %s\n", timeOrDash(&target.CreatedAt))
	fmt.Printf("Updated: %s\n", timeOrDash(&target.UpdatedAt))

	fmt.Printf("\nTasks (%d open, %d completed):\n",
		app.Tasks.PendingCount()+app.Tasks.InProgressCount(), app.Tasks.CompletedCount())
	printTaskTable(tasks, false)
	return nil
}
