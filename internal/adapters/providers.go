package adapters

import (
	"github.com/google/wire"
	"github.com/zkbugbounty/bountydeploy/internal/adapters/artifacts"
	"github.com/zkbugbounty/bountydeploy/internal/adapters/blockchain"
	"github.com/zkbugbounty/bountydeploy/internal/adapters/interactive"
	"github.com/zkbugbounty/bountydeploy/internal/adapters/network"
	"github.com/zkbugbounty/bountydeploy/internal/adapters/scripts"
	"github.com/zkbugbounty/bountydeploy/internal/config"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),

	scripts.NewRepository,
	wire.Bind(new(usecase.ScriptRepository), new(*scripts.Repository)),
)

// BlockchainSet provides the JSON-RPC client, which signs, deploys and reads chain state
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.SignerProvider), new(*blockchain.Client)),
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Client)),
	wire.Bind(new(usecase.ChainReader), new(*blockchain.Client)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	network.NewResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*network.ResolverAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmer,
	wire.Bind(new(usecase.DeployConfirmer), new(*interactive.Confirmer)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	BlockchainSet,
	ConfigSet,
	InteractiveSet,
)
