package cmd

import (
	"fmt"
	"time"

	"github.com/renato0307/maint/internal/config"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/server"
	"github.com/renato0307/maint/internal/ui"
)

// ServeCmd serves the TUI over SSH
type ServeCmd struct {
	Address         string `help:"Listen address (host:port)" env:"MAINT_SSH_ADDRESS"`
	AuthorizedKeys  string `help:"authorized_keys file (default ~/.ssh/authorized_keys)"`
	ErrorClearDelay int    `help:"Seconds before error messages auto-clear" default:"10"`
	HostKey         string `help:"Host key path (default $MAINT_HOME/ssh/id_ed25519)"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	address := s.Address
	if address == "" && cli.settings != nil {
		address = cli.settings.SSHAddress
	}
	if s.ErrorClearDelay == ui.DefaultErrorClearDelaySeconds && cli.settings != nil && cli.settings.ErrorClearDelay != nil {
		s.ErrorClearDelay = *cli.settings.ErrorClearDelay
	}

	keys, err := cli.keyBindings()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Address:            address,
		AuthorizedKeysPath: config.ExpandPath(s.AuthorizedKeys),
		ErrorClearDelay:    time.Duration(s.ErrorClearDelay) * time.Second,
		Factory:            cli.Container.Factory,
		HostKeyPath:        config.ExpandPath(s.HostKey),
		KeysConfig:         keys,
	})
	if err != nil {
		return err
	}

	logging.Logger.Info("Serving TUI over SSH", "backend", cli.Backend, "address", srv.Address())
	fmt.Printf("SSH server listening on %s (backend: %s)\n", srv.Address(), cli.Backend)
	return srv.Start()
}
