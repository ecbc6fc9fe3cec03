//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/zkbugbounty/bountydeploy/internal/adapters"
	"github.com/zkbugbounty/bountydeploy/internal/config"
	"github.com/zkbugbounty/bountydeploy/internal/logging"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewRunScript,
		usecase.NewListAccounts,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
