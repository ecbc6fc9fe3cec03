package network

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/zkbugbounty/bountydeploy/internal/config"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
	domainconfig "github.com/zkbugbounty/bountydeploy/internal/domain/config"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

const chainIDTimeout = 10 * time.Second

// ResolverAdapter adapts config.NetworkResolver to the usecase interface and
// asks each endpoint for its chain ID
type ResolverAdapter struct {
	resolver *config.NetworkResolver
}

// NewResolverAdapter creates a new network resolver adapter
func NewResolverAdapter(resolver *config.NetworkResolver) *ResolverAdapter {
	return &ResolverAdapter{resolver: resolver}
}

// GetNetworks returns all configured network names
func (a *ResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.Names()
}

// ResolveNetwork resolves a network by name
func (a *ResolverAdapter) ResolveNetwork(ctx context.Context, name string) (*domainconfig.Network, error) {
	return a.resolver.Resolve(name)
}

// FetchChainID dials the network and returns the chain ID the node reports
func (a *ResolverAdapter) FetchChainID(ctx context.Context, network *domainconfig.Network) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, chainIDTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch chain ID: %w", err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		return chainID.Uint64(), fmt.Errorf("%w: expected chain ID %d, got %d", domain.ErrNetworkMismatch, network.ChainID, chainID.Uint64())
	}
	return chainID.Uint64(), nil
}

var _ usecase.NetworkResolver = (*ResolverAdapter)(nil)
