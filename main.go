package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/renato0307/maint/internal/cmd"
	"github.com/renato0307/maint/internal/config"
	"github.com/renato0307/maint/internal/version"
)

func main() {
	// Load settings from $MAINT_HOME/settings.json
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
		settings = &config.Settings{}
	}

	// Container is created in CLI.AfterApply() after logging is initialized
	var cli cmd.CLI
	cli.SetSettings(settings)
	parser, err := kong.New(&cli,
		kong.Name("maint"),
		kong.Description(version.Tagline),
		kong.Vars{
			"version": version.Info(),
		},
		kong.Bind(&cli),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Startup failures (bad flags, missing backend environment) exit 1
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = cli.Close()
		os.Exit(1)
	}

	runErr := ctx.Run()
	if err := cli.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close resources: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
