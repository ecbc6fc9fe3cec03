package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
)

// RunScriptParams contains parameters for running a deployment script
type RunScriptParams struct {
	// Name of a built-in or project script
	Name string
	// Path to a script file, takes precedence over Name
	Path string
	// Known contract addresses, keyed by contract name
	Addresses map[string]string
}

// RunScriptResult contains the result of a script run
type RunScriptResult struct {
	Script      *domain.Script
	Network     string
	ChainID     uint64
	Deployer    common.Address
	Deployments []*domain.Deployment
	Status      domain.RunStatus
}

// RunScript executes the steps of a deployment script in order
type RunScript struct {
	cfg       *config.RuntimeConfig
	scripts   ScriptRepository
	signers   SignerProvider
	chain     ChainReader
	deploy    *DeployContract
	confirmer DeployConfirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewRunScript creates a new RunScript use case
func NewRunScript(
	cfg *config.RuntimeConfig,
	scripts ScriptRepository,
	signers SignerProvider,
	chain ChainReader,
	deploy *DeployContract,
	confirmer DeployConfirmer,
	progress ProgressSink,
	log *slog.Logger,
) *RunScript {
	return &RunScript{
		cfg:       cfg,
		scripts:   scripts,
		signers:   signers,
		chain:     chain,
		deploy:    deploy,
		confirmer: confirmer,
		progress:  progress,
		log:       log.With("component", "RunScript"),
	}
}

// Run executes the use case. On failure the returned result holds the
// deployments confirmed before the failing step.
func (uc *RunScript) Run(ctx context.Context, params RunScriptParams) (*RunScriptResult, error) {
	script, err := uc.loadScript(ctx, params)
	if err != nil {
		return nil, err
	}

	result := &RunScriptResult{
		Script: script,
		Status: domain.RunRunning,
	}
	if uc.cfg.Network != nil {
		result.Network = uc.cfg.Network.Name
	}

	fail := func(err error) (*RunScriptResult, error) {
		result.Status = domain.RunFailed
		return result, err
	}

	book, err := parseAddressBook(params.Addresses)
	if err != nil {
		return fail(err)
	}
	if err := checkReferences(script, book); err != nil {
		return fail(err)
	}

	chainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return fail(fmt.Errorf("failed to get chain ID: %w", err))
	}
	result.ChainID = chainID

	if uc.confirmer != nil && !IsDevChain(chainID) {
		contracts := make([]string, 0, len(script.Steps))
		for _, step := range script.Steps {
			contracts = append(contracts, step.Contract)
		}
		ok, err := uc.confirmer.ConfirmDeploy(ctx, result.Network, chainID, contracts)
		if err != nil {
			return fail(err)
		}
		if !ok {
			return fail(domain.ErrDeploymentCancelled)
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageSigners, Message: "Fetching signers"})
	signer, err := FirstSigner(ctx, uc.signers)
	if err != nil {
		return fail(err)
	}
	result.Deployer = signer.Address
	book[bookKey(domain.ReferenceName(domain.DeployerRef))] = signer.Address
	uc.progress.Info(fmt.Sprintf("Running %s on %s (chain %d) from %s", script.Name, result.Network, chainID, signer.Address.Hex()))

	for i, step := range script.Steps {
		args, err := resolveArgs(step.Args, book)
		if err != nil {
			return fail(&domain.StepError{Index: i, Contract: step.Contract, Err: err})
		}

		uc.log.Debug("running step", "script", script.Name, "step", i+1, "contract", step.Contract)
		deployment, err := uc.deploy.Run(ctx, DeployContractParams{
			Contract: step.Contract,
			Args:     args,
			Signer:   signer,
			Step:     i + 1,
			Steps:    len(script.Steps),
		})
		if err != nil {
			return fail(&domain.StepError{Index: i, Contract: step.Contract, Err: err})
		}

		result.Deployments = append(result.Deployments, deployment)
		book[bookKey(step.Contract)] = deployment.Address
	}

	result.Status = domain.RunSucceeded
	return result, nil
}

func (uc *RunScript) loadScript(ctx context.Context, params RunScriptParams) (*domain.Script, error) {
	if params.Path != "" {
		return uc.scripts.Load(ctx, params.Path)
	}
	return uc.scripts.Get(ctx, params.Name)
}

// IsDevChain reports whether chainID belongs to a local development node
func IsDevChain(chainID uint64) bool {
	switch chainID {
	case 31337, 1337:
		return true
	default:
		return false
	}
}

// bookKey normalizes contract names; references match them case-insensitively
func bookKey(name string) string {
	return strings.ToLower(name)
}

func parseAddressBook(addresses map[string]string) (map[string]common.Address, error) {
	book := make(map[string]common.Address, len(addresses)+1)
	for name, value := range addresses {
		if !common.IsHexAddress(value) {
			return nil, fmt.Errorf("%w: %s=%q", domain.ErrInvalidAddress, name, value)
		}
		book[bookKey(name)] = common.HexToAddress(value)
	}
	return book, nil
}

// checkReferences makes sure every reference can be resolved before the
// first transaction is sent
func checkReferences(script *domain.Script, book map[string]common.Address) error {
	known := make(map[string]bool, len(book)+len(script.Steps)+1)
	for name := range book {
		known[name] = true
	}
	known[bookKey(domain.ReferenceName(domain.DeployerRef))] = true

	for i, step := range script.Steps {
		for _, arg := range step.Args {
			if !domain.IsReference(arg) {
				continue
			}
			if !known[bookKey(domain.ReferenceName(arg))] {
				return &domain.StepError{
					Index:    i,
					Contract: step.Contract,
					Err:      fmt.Errorf("%w: %s (deploy it in an earlier step or pass --address %s=0x...)", domain.ErrUnresolvedReference, arg, domain.ReferenceName(arg)),
				}
			}
		}
		known[bookKey(step.Contract)] = true
	}
	return nil
}

func resolveArgs(args []string, book map[string]common.Address) ([]string, error) {
	resolved := make([]string, len(args))
	for i, arg := range args {
		if !domain.IsReference(arg) {
			resolved[i] = arg
			continue
		}
		addr, ok := book[bookKey(domain.ReferenceName(arg))]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnresolvedReference, arg)
		}
		resolved[i] = addr.Hex()
	}
	return resolved, nil
}
