package blockchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/samber/lo"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
)

// Signers returns the ordered signers for the network: the configured
// private keys in config order, or the node's unlocked accounts when no
// keys are configured
func (c *Client) Signers(ctx context.Context) ([]*domain.Signer, error) {
	c.mu.Lock()
	cached := c.signers
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	var (
		signers []*domain.Signer
		err     error
	)
	if c.network != nil && len(c.network.Accounts) > 0 {
		signers, err = localSigners(c.network.Accounts)
	} else {
		signers, err = c.nodeSigners(ctx)
	}
	if err != nil {
		return nil, err
	}

	c.log.Debug("resolved signers", "count", len(signers))
	c.mu.Lock()
	c.signers = signers
	c.mu.Unlock()
	return signers, nil
}

func localSigners(keys []string) ([]*domain.Signer, error) {
	signers := make([]*domain.Signer, 0, len(keys))
	for i, hexKey := range keys {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid private key for account %d: %w", i, err)
		}
		signers = append(signers, &domain.Signer{
			Address: crypto.PubkeyToAddress(key.PublicKey),
			Kind:    domain.LocalSigner,
			Key:     key,
		})
	}
	return signers, nil
}

func (c *Client) nodeSigners(ctx context.Context) ([]*domain.Signer, error) {
	if _, err := c.connect(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	node := c.node
	c.mu.Unlock()
	if node == nil {
		return []*domain.Signer{}, nil
	}

	accounts, err := node.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("eth_accounts: %w", err)
	}
	return lo.Map(accounts, func(addr common.Address, _ int) *domain.Signer {
		return &domain.Signer{Address: addr, Kind: domain.NodeSigner}
	}), nil
}
