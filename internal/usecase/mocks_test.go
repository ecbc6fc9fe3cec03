package usecase_test

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

// MockSignerProvider is a mock implementation of SignerProvider
type MockSignerProvider struct {
	mock.Mock
}

func (m *MockSignerProvider) Signers(ctx context.Context) ([]*domain.Signer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Signer), args.Error(1)
}

// MockArtifactRepository is a mock implementation of ArtifactRepository
type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) GetFactory(ctx context.Context, contractName string) (*domain.ContractFactory, error) {
	args := m.Called(ctx, contractName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractFactory), args.Error(1)
}

// MockContractDeployer is a mock implementation of ContractDeployer
type MockContractDeployer struct {
	mock.Mock
}

func (m *MockContractDeployer) Deploy(ctx context.Context, signer *domain.Signer, factory *domain.ContractFactory, args []string) (*domain.PendingDeployment, error) {
	ret := m.Called(ctx, signer, factory, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.PendingDeployment), ret.Error(1)
}

func (m *MockContractDeployer) WaitDeployed(ctx context.Context, pending *domain.PendingDeployment) (*domain.Deployment, error) {
	args := m.Called(ctx, pending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deployment), args.Error(1)
}

// MockChainReader is a mock implementation of ChainReader
type MockChainReader struct {
	mock.Mock
}

func (m *MockChainReader) ChainID(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChainReader) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// MockScriptRepository is a mock implementation of ScriptRepository
type MockScriptRepository struct {
	mock.Mock
}

func (m *MockScriptRepository) Get(ctx context.Context, name string) (*domain.Script, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Script), args.Error(1)
}

func (m *MockScriptRepository) Load(ctx context.Context, path string) (*domain.Script, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Script), args.Error(1)
}

func (m *MockScriptRepository) List(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

func (m *MockNetworkResolver) FetchChainID(ctx context.Context, network *config.Network) (uint64, error) {
	args := m.Called(ctx, network)
	return args.Get(0).(uint64), args.Error(1)
}

// MockConfirmer is a mock implementation of DeployConfirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) ConfirmDeploy(ctx context.Context, network string, chainID uint64, contracts []string) (bool, error) {
	args := m.Called(ctx, network, chainID, contracts)
	return args.Bool(0), args.Error(1)
}

// MockProgressSink records progress events and info messages
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) stages() []string {
	stages := make([]string, 0, len(m.events))
	for _, e := range m.events {
		stages = append(stages, e.Stage)
	}
	return stages
}
