// Package cli implements the interactive taskvault client: a small REPL that
// talks to the server over the HTTP API.
package cli

import (
	"bufio"
	"os"

	"github.com/akosarev/taskvault/internal/client/api"
	"github.com/akosarev/taskvault/internal/client/config"
)

type App struct {
	config    *config.Config
	api       *api.Client
	reader    *bufio.Reader
	userEmail string
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

func (a *App) showLogin() string {
	if a.userEmail == "" {
		return "(anonymous)"
	}
	return a.userEmail
}

func (a *App) Run() {
	a.Main()
}
