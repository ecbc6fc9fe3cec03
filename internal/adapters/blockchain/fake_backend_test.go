package blockchain

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// fakeBackend is an in-memory chain that mines every transaction into its
// own block. Receipts become visible after pendingPolls lookups.
type fakeBackend struct {
	mu sync.Mutex

	chainID      *big.Int
	baseFee      *big.Int
	tip          *big.Int
	gasPrice     *big.Int
	pendingPolls int
	revert       bool
	noCode       bool
	sendErr      error

	nonces   map[common.Address]uint64
	sent     []*types.Transaction
	receipts map[common.Hash]*types.Receipt
	polls    map[common.Hash]int
	code     map[common.Address][]byte
	balances map[common.Address]*big.Int
	block    int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		chainID:  big.NewInt(31337),
		baseFee:  big.NewInt(1_000_000_000),
		tip:      big.NewInt(1_500_000_000),
		gasPrice: big.NewInt(2_000_000_000),
		nonces:   make(map[common.Address]uint64),
		receipts: make(map[common.Hash]*types.Receipt),
		polls:    make(map[common.Hash]int),
		code:     make(map[common.Address][]byte),
		balances: make(map[common.Address]*big.Int),
	}
}

func (b *fakeBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return b.chainID, nil
}

func (b *fakeBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &types.Header{Number: big.NewInt(b.block), BaseFee: b.baseFee}, nil
}

func (b *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nonces[account], nil
}

func (b *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return b.gasPrice, nil
}

func (b *fakeBackend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return b.tip, nil
}

func (b *fakeBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return 53000 + uint64(len(msg.Data))*16, nil
}

func (b *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if b.sendErr != nil {
		return b.sendErr
	}
	from, err := types.Sender(types.LatestSignerForChainID(b.chainID), tx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, tx)
	b.mine(from, tx.Hash(), tx.Gas())
	return nil
}

// mine records a receipt for a creation transaction from sender; b.mu must be held
func (b *fakeBackend) mine(from common.Address, hash common.Hash, gas uint64) common.Address {
	nonce := b.nonces[from]
	b.nonces[from] = nonce + 1
	b.block++

	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      hash,
		BlockNumber: big.NewInt(b.block),
		GasUsed:     gas / 2,
	}
	address := crypto.CreateAddress(from, nonce)
	if b.revert {
		receipt.Status = types.ReceiptStatusFailed
	} else {
		receipt.ContractAddress = address
		if !b.noCode {
			b.code[address] = []byte{0x60, 0x2a, 0x60, 0x00, 0x52, 0x60, 0x20, 0x60, 0x00, 0xf3}
		}
	}
	b.receipts[hash] = receipt
	return address
}

func (b *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	receipt, ok := b.receipts[txHash]
	if !ok || b.polls[txHash] < b.pendingPolls {
		b.polls[txHash]++
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (b *fakeBackend) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.code[account], nil
}

func (b *fakeBackend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if balance, ok := b.balances[account]; ok {
		return balance, nil
	}
	return nil, errors.New("unknown account")
}

// fakeNode holds unlocked accounts and mines eth_sendTransaction calls on its backend
type fakeNode struct {
	backend  *fakeBackend
	accounts []common.Address
	sent     []TransactionArgs
}

func (n *fakeNode) Accounts(ctx context.Context) ([]common.Address, error) {
	return n.accounts, nil
}

func (n *fakeNode) SendTransaction(ctx context.Context, args TransactionArgs) (common.Hash, error) {
	n.backend.mu.Lock()
	defer n.backend.mu.Unlock()

	n.sent = append(n.sent, args)
	hash := crypto.Keccak256Hash(args.From.Bytes(), big.NewInt(int64(len(n.sent))).Bytes())
	n.backend.mine(args.From, hash, uint64(args.Gas))
	return hash, nil
}
