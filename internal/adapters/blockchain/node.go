package blockchain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// NodeAccounts reaches accounts unlocked on the node itself
type NodeAccounts interface {
	Accounts(ctx context.Context) ([]common.Address, error)
	SendTransaction(ctx context.Context, args TransactionArgs) (common.Hash, error)
}

// TransactionArgs are the eth_sendTransaction parameters for a contract creation
type TransactionArgs struct {
	From common.Address `json:"from"`
	Data hexutil.Bytes  `json:"data"`
	Gas  hexutil.Uint64 `json:"gas"`
}

// RPCNode implements NodeAccounts over JSON-RPC
type RPCNode struct {
	client *rpc.Client
}

// NewRPCNode creates a new RPCNode
func NewRPCNode(client *rpc.Client) *RPCNode {
	return &RPCNode{client: client}
}

// Accounts calls eth_accounts
func (n *RPCNode) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := n.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

// SendTransaction calls eth_sendTransaction; the node signs and fills in fees
func (n *RPCNode) SendTransaction(ctx context.Context, args TransactionArgs) (common.Hash, error) {
	var hash common.Hash
	if err := n.client.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}
