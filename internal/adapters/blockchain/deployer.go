package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	abiargs "github.com/zkbugbounty/bountydeploy/internal/adapters/abi"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
)

// Deploy submits the creation transaction for factory from signer
func (c *Client) Deploy(ctx context.Context, signer *domain.Signer, factory *domain.ContractFactory, args []string) (*domain.PendingDeployment, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	data, err := abiargs.DeployData(factory, args)
	if err != nil {
		return nil, err
	}

	nonce, err := backend.PendingNonceAt(ctx, signer.Address)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}

	gas, err := backend.EstimateGas(ctx, ethereum.CallMsg{From: signer.Address, Data: data})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	pending := &domain.PendingDeployment{
		ContractName: factory.Name,
		Address:      crypto.CreateAddress(signer.Address, nonce),
		Deployer:     signer.Address,
		Nonce:        nonce,
		Args:         args,
	}

	switch signer.Kind {
	case domain.NodeSigner:
		c.mu.Lock()
		node := c.node
		c.mu.Unlock()
		if node == nil {
			return nil, fmt.Errorf("signer %s is node-managed but the endpoint has no node accounts", signer.Address.Hex())
		}
		pending.TxHash, err = node.SendTransaction(ctx, TransactionArgs{
			From: signer.Address,
			Data: data,
			Gas:  hexutil.Uint64(gas),
		})
		if err != nil {
			return nil, fmt.Errorf("send tx: %w", err)
		}

	default:
		tx, err := c.buildTx(ctx, backend, nonce, gas, data)
		if err != nil {
			return nil, err
		}
		signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), signer.Key)
		if err != nil {
			return nil, fmt.Errorf("sign tx: %w", err)
		}
		if err := backend.SendTransaction(ctx, signed); err != nil {
			return nil, fmt.Errorf("send tx: %w", err)
		}
		pending.TxHash = signed.Hash()
	}

	c.log.Debug("submitted deployment", "contract", factory.Name, "tx", pending.TxHash, "nonce", nonce, "gas", gas)
	return pending, nil
}

// buildTx prices a creation transaction: EIP-1559 when the chain has a base
// fee, legacy otherwise
func (c *Client) buildTx(ctx context.Context, backend Backend, nonce, gas uint64, data []byte) (*types.Transaction, error) {
	head, err := backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("get head: %w", err)
	}

	if head.BaseFee == nil {
		gasPrice, err := backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("suggest gas price: %w", err)
		}
		return types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gas,
			Data:     data,
		}), nil
	}

	tip, err := backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas tip: %w", err)
	}
	feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		Data:      data,
	}), nil
}

// WaitDeployed polls for the receipt of a pending deployment and checks that
// code exists at the resulting address
func (c *Client) WaitDeployed(ctx context.Context, pending *domain.PendingDeployment) (*domain.Deployment, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	var receipt *types.Receipt
	for {
		receipt, err = backend.TransactionReceipt(ctx, pending.TxHash)
		if err == nil {
			break
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("get receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	if receipt.Status == types.ReceiptStatusFailed {
		return nil, fmt.Errorf("%w: tx %s", domain.ErrDeploymentReverted, pending.TxHash.Hex())
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = pending.Address
	}

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("get code: %w", err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoCode, address.Hex())
	}

	return &domain.Deployment{
		ContractName: pending.ContractName,
		Address:      address,
		TxHash:       pending.TxHash,
		BlockNumber:  receipt.BlockNumber,
		GasUsed:      receipt.GasUsed,
		Deployer:     pending.Deployer,
		Args:         pending.Args,
	}, nil
}
