package usecase

import (
	"context"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Current  string
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	RPCURL  string
	ChainID uint64
	Error   error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, current string) (*ListNetworksResult, error) {
	names := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		status := NetworkStatus{Name: name}

		network, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
			networks = append(networks, status)
			continue
		}
		status.RPCURL = network.RPCURL

		status.ChainID, status.Error = uc.resolver.FetchChainID(ctx, network)
		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Current:  current,
		Networks: networks,
	}, nil
}
