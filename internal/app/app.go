package app

import (
	"github.com/zkbugbounty/bountydeploy/internal/adapters/blockchain"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	RunScript    *usecase.RunScript
	ListAccounts *usecase.ListAccounts
	ListNetworks *usecase.ListNetworks

	// Shared dependencies
	Scripts usecase.ScriptRepository

	client *blockchain.Client
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	runScript *usecase.RunScript,
	listAccounts *usecase.ListAccounts,
	listNetworks *usecase.ListNetworks,
	scripts usecase.ScriptRepository,
	client *blockchain.Client,
) (*App, error) {
	return &App{
		Config:       cfg,
		RunScript:    runScript,
		ListAccounts: listAccounts,
		ListNetworks: listNetworks,
		Scripts:      scripts,
		client:       client,
	}, nil
}

// Close releases network connections
func (a *App) Close() {
	if a.client != nil {
		a.client.Close()
	}
}
