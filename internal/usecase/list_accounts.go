package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/zkbugbounty/bountydeploy/internal/domain"
)

// ListAccountsResult contains the ordered signers and their balances
type ListAccountsResult struct {
	Network  string
	ChainID  uint64
	Accounts []AccountStatus
}

// AccountStatus is one signer with its balance, or the error fetching it
type AccountStatus struct {
	Signer  *domain.Signer
	Balance *big.Int
	Error   error
}

// ListAccounts is a use case for listing the signers a deployment would use
type ListAccounts struct {
	signers SignerProvider
	chain   ChainReader
}

// NewListAccounts creates a new ListAccounts use case
func NewListAccounts(signers SignerProvider, chain ChainReader) *ListAccounts {
	return &ListAccounts{
		signers: signers,
		chain:   chain,
	}
}

// Run executes the use case
func (uc *ListAccounts) Run(ctx context.Context, network string) (*ListAccountsResult, error) {
	chainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	signers, err := uc.signers.Signers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get signers: %w", err)
	}

	result := &ListAccountsResult{
		Network:  network,
		ChainID:  chainID,
		Accounts: make([]AccountStatus, 0, len(signers)),
	}
	for _, signer := range signers {
		status := AccountStatus{Signer: signer}
		status.Balance, status.Error = uc.chain.BalanceAt(ctx, signer.Address)
		result.Accounts = append(result.Accounts, status)
	}

	return result, nil
}
