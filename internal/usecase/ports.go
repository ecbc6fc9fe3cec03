package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
)

// SignerProvider returns the ordered list of accounts able to sign
type SignerProvider interface {
	Signers(ctx context.Context) ([]*domain.Signer, error)
}

// ArtifactRepository resolves compiled contract artifacts into factories
type ArtifactRepository interface {
	GetFactory(ctx context.Context, contractName string) (*domain.ContractFactory, error)
}

// ContractDeployer submits creation transactions and waits for them
type ContractDeployer interface {
	Deploy(ctx context.Context, signer *domain.Signer, factory *domain.ContractFactory, args []string) (*domain.PendingDeployment, error)
	WaitDeployed(ctx context.Context, pending *domain.PendingDeployment) (*domain.Deployment, error)
}

// ChainReader reads chain level information for the selected network
type ChainReader interface {
	ChainID(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, address common.Address) (*big.Int, error)
}

// ScriptRepository loads deployment scripts
type ScriptRepository interface {
	Get(ctx context.Context, name string) (*domain.Script, error)
	Load(ctx context.Context, path string) (*domain.Script, error)
	List(ctx context.Context) []string
}

// NetworkResolver lists and resolves configured networks
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, name string) (*config.Network, error)
	FetchChainID(ctx context.Context, network *config.Network) (uint64, error)
}

// DeployConfirmer asks the user before deploying to a live network
type DeployConfirmer interface {
	ConfirmDeploy(ctx context.Context, network string, chainID uint64, contracts []string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// Progress stages emitted while deploying
const (
	StageSigners   = "signers"
	StageArtifact  = "artifact"
	StageDeploying = "deploying"
	StageWaiting   = "waiting"
	StageDeployed  = "deployed"
	StageFailed    = "failed"
)

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
}
