package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

// Backend is the subset of the JSON-RPC API used for deployments.
// *ethclient.Client and the simulated backend's client both satisfy it.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Dialer connects to a network. node may be nil when the endpoint has no
// node-managed accounts.
type Dialer func(ctx context.Context, rpcURL string) (backend Backend, node NodeAccounts, err error)

// DialRPC dials a JSON-RPC endpoint
func DialRPC(ctx context.Context, rpcURL string) (Backend, NodeAccounts, error) {
	rc, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return ethclient.NewClient(rc), NewRPCNode(rc), nil
}

// Client talks to the selected network. It connects lazily on first use
// and verifies the node's chain ID against the configured one.
type Client struct {
	network      *config.Network
	dial         Dialer
	pollInterval time.Duration
	log          *slog.Logger

	mu      sync.Mutex
	backend Backend
	node    NodeAccounts
	chainID *big.Int
	signers []*domain.Signer
}

// NewClient creates a client for the configured network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return NewClientWithDialer(cfg, DialRPC, log)
}

// NewClientWithDialer creates a client using a custom dialer
func NewClientWithDialer(cfg *config.RuntimeConfig, dial Dialer, log *slog.Logger) *Client {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = time.Second
	}
	return &Client{
		network:      cfg.Network,
		dial:         dial,
		pollInterval: poll,
		log:          log.With("component", "blockchain"),
	}
}

func (c *Client) connect(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, nil
	}
	if c.network == nil {
		return nil, fmt.Errorf("no network selected")
	}

	c.log.Debug("connecting", "network", c.network.Name, "rpc", c.network.RPCURL)
	backend, node, err := c.dial(ctx, c.network.RPCURL)
	if err != nil {
		return nil, err
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if c.network.ChainID != 0 && chainID.Uint64() != c.network.ChainID {
		return nil, fmt.Errorf("%w: network %s expects chain ID %d, node reports %d",
			domain.ErrNetworkMismatch, c.network.Name, c.network.ChainID, chainID.Uint64())
	}

	c.backend = backend
	c.node = node
	c.chainID = chainID
	return backend, nil
}

// ChainID returns the chain ID reported by the node
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	if _, err := c.connect(ctx); err != nil {
		return 0, err
	}
	return c.chainID.Uint64(), nil
}

// BalanceAt returns the latest balance of address
func (c *Client) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return backend.BalanceAt(ctx, address, nil)
}

// Close releases the RPC connection, if any
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if closer, ok := c.backend.(interface{ Close() }); ok {
		closer.Close()
	}
	c.backend = nil
	c.node = nil
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.ChainReader      = (*Client)(nil)
	_ usecase.SignerProvider   = (*Client)(nil)
	_ usecase.ContractDeployer = (*Client)(nil)
)
