package domain

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// SignerKind tells where a signer's key lives
type SignerKind string

const (
	// LocalSigner holds its private key in process and signs transactions itself
	LocalSigner SignerKind = "local"
	// NodeSigner is an account unlocked on the node, sent with eth_sendTransaction
	NodeSigner SignerKind = "node"
)

// Signer is an account able to authorize a deployment transaction
type Signer struct {
	Address common.Address
	Kind    SignerKind
	Key     *ecdsa.PrivateKey `json:"-"`
}

// ContractFactory binds a compiled contract's ABI and creation bytecode
type ContractFactory struct {
	Name         string
	ArtifactPath string
	ABI          abi.ABI
	Bytecode     []byte
}

// ConstructorInputs returns the ABI inputs of the contract constructor
func (f *ContractFactory) ConstructorInputs() abi.Arguments {
	return f.ABI.Constructor.Inputs
}

// PendingDeployment is a creation transaction that has been submitted but not yet confirmed
type PendingDeployment struct {
	ContractName string
	TxHash       common.Hash
	Address      common.Address // predicted from deployer and nonce
	Deployer     common.Address
	Nonce        uint64
	Args         []string
}

// Deployment is the confirmed result of a contract creation
type Deployment struct {
	ContractName string         `json:"contractName"`
	Address      common.Address `json:"address"`
	TxHash       common.Hash    `json:"txHash"`
	BlockNumber  *big.Int       `json:"blockNumber"`
	GasUsed      uint64         `json:"gasUsed"`
	Deployer     common.Address `json:"deployer"`
	Args         []string       `json:"args"`
}

// RunStatus is the terminal state of a deployment run
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)
