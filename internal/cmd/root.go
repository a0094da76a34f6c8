package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/maint/internal/config"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ui"
)

const (
	defaultTimeoutSeconds = 30
	envBackend            = "MAINT_BACKEND"
)

// errNotSignedIn is returned by commands that need an authenticated user
var errNotSignedIn = errors.New("not signed in (run 'maint login' first)")

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Backend     string           `help:"Data backend (supabase or local)" enum:"supabase,local" default:"supabase" env:"MAINT_BACKEND"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	Timeout     int              `help:"Request timeout in seconds for the hosted backend" default:"30"`

	Run            RunCmd            `cmd:"" help:"Start the maint TUI (default)" default:"1"`
	Accommodations AccommodationsCmd `cmd:"accommodations" aliases:"acc" help:"Manage accommodations"`
	Catalog        CatalogCmd        `cmd:"catalog" help:"Show the area and element catalog"`
	Local          LocalCmd          `cmd:"local" help:"Administer the local backend (users, catalog)"`
	Login          LoginCmd          `cmd:"login" help:"Sign in with email and password"`
	Logout         LogoutCmd         `cmd:"logout" help:"Sign out and forget the stored session"`
	Serve          ServeCmd          `cmd:"serve" help:"Serve the TUI over SSH"`
	Settings       SettingsCmd       `cmd:"settings" help:"Manage settings (meta, keys)"`
	Tasks          TasksCmd          `cmd:"tasks" help:"Manage maintenance tasks"`
	Whoami         WhoamiCmd         `cmd:"whoami" help:"Show the signed-in user"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	c.applySettings()

	logFilePath, err := logging.Initialize(logging.Options{
		Debug:       c.Debug,
		DebugFile:   c.DebugFile,
		MaxLogFiles: c.MaxLogFiles,
	})
	if err != nil {
		return err
	}
	if c.Debug || c.DebugFile != "" {
		os.Setenv("MAINT_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("MAINT_DEBUG_FILE", logFilePath)
		}
	}

	for _, dir := range []string{".", config.GetMaintHome()} {
		if err := config.LoadEnvFiles(dir); err != nil {
			return err
		}
	}

	// The container is built after logging so gorm's logger is ready
	container, err := NewContainer(c.backendOptions())
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	c.Container = container

	return nil
}

// applySettings fills flags left at their defaults from settings.json.
// Precedence is CLI flags > env vars > settings.json > defaults.
func (c *CLI) applySettings() {
	if c.settings == nil {
		return
	}

	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv("MAINT_MAX_LOG_FILES"); !hasEnv {
			if c.settings.MaxLogFiles != nil {
				c.MaxLogFiles = *c.settings.MaxLogFiles
			}
		}
	}

	if !c.Debug {
		if _, hasEnv := os.LookupEnv("MAINT_DEBUG"); !hasEnv {
			if c.settings.Debug != nil && *c.settings.Debug {
				c.Debug = true
			}
		}
	}

	if c.Backend == config.BackendSupabase {
		if _, hasEnv := os.LookupEnv(envBackend); !hasEnv && c.settings.Backend != "" {
			c.Backend = c.settings.Backend
		}
	}

	if c.Timeout == defaultTimeoutSeconds && c.settings.RequestTimeoutSeconds != nil {
		c.Timeout = *c.settings.RequestTimeoutSeconds
	}
}

func (c *CLI) backendOptions() BackendOptions {
	return BackendOptions{
		LocalDBPath: config.GetLocalDBPath(),
		Name:        c.Backend,
		Timeout:     time.Duration(c.Timeout) * time.Second,
	}
}

// keyBindings returns the validated custom key bindings from settings.json
func (c *CLI) keyBindings() (config.KeyBindingsConfig, error) {
	if c.settings == nil || c.settings.Keys == nil {
		return nil, nil
	}
	if err := c.settings.Keys.Validate(ui.GetValidKeyNames()); err != nil {
		return nil, fmt.Errorf("invalid key bindings in settings.json: %w", err)
	}
	return c.settings.Keys, nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// signedIn restores the stored session and fails when nobody is signed in
func (c *CLI) signedIn(ctx context.Context) error {
	app := c.Container.App
	app.Start(ctx)
	if !app.Session.IsAuthenticated() {
		return errNotSignedIn
	}
	return nil
}

// RunCmd starts the TUI application
type RunCmd struct {
	Dev             bool   `help:"Enable development mode (shows version info in dialogs)"`
	ErrorClearDelay int    `help:"Seconds before error messages auto-clear" default:"10"`
	Path            string `help:"Screen to open first (e.g. /tasks)" default:"/"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	if r.ErrorClearDelay == ui.DefaultErrorClearDelaySeconds && cli.settings != nil && cli.settings.ErrorClearDelay != nil {
		r.ErrorClearDelay = *cli.settings.ErrorClearDelay
	}

	keys, err := cli.keyBindings()
	if err != nil {
		return err
	}

	logging.Logger.Info("Starting maint TUI", "backend", cli.Backend, "path", r.Path)
	cli.Container.App.Start(context.Background())

	model := ui.NewModel(ui.ModelConfig{
		App:             cli.Container.App,
		DevMode:         r.Dev,
		ErrorClearDelay: time.Duration(r.ErrorClearDelay) * time.Second,
		InitialPath:     r.Path,
		KeysConfig:      keys,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
