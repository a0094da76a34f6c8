package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/maint/internal/domain"
)

// CatalogCmd prints the areas and their elements
type CatalogCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the catalog command
func (c *CatalogCmd) Run(cli *CLI) error {
	ctx := context.Background()
	cli.Container.App.Start(ctx)

	grouped, err := cli.Container.App.Catalog.Grouped(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %s", domain.ErrorMessage(err))
	}

	if c.Format == "json" {
		return printJSON(grouped)
	}

	if len(grouped) == 0 {
		fmt.Println("The catalog is empty.")
		return nil
	}
	for _, area := range grouped {
		fmt.Printf("%s (%s)\n", area.Label, area.Key)
		for _, element := range area.Elements {
			fmt.Printf("  - %s\n", element.Name)
		}
	}
	return nil
}
