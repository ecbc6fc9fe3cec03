package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zkbugbounty/bountydeploy/internal/domain"
)

// DeployContractParams contains parameters for a single deployment
type DeployContractParams struct {
	Contract string
	Args     []string
	// Signer to deploy from. When nil the first available signer is used.
	Signer *domain.Signer
	// Position of this deployment within a script, zero when run alone
	Step  int
	Steps int
}

// DeployContract gets a signer, resolves the contract factory, deploys it
// and waits for confirmation. Nothing is retried; the first error ends the run.
type DeployContract struct {
	signers   SignerProvider
	artifacts ArtifactRepository
	deployer  ContractDeployer
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	signers SignerProvider,
	artifacts ArtifactRepository,
	deployer ContractDeployer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		signers:   signers,
		artifacts: artifacts,
		deployer:  deployer,
		progress:  progress,
		log:       log.With("component", "DeployContract"),
	}
}

// Run executes the use case
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*domain.Deployment, error) {
	signer := params.Signer
	if signer == nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageSigners, Message: "Fetching signers"})
		var err error
		if signer, err = FirstSigner(ctx, uc.signers); err != nil {
			return nil, err
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageArtifact,
		Current: params.Step,
		Total:   params.Steps,
		Message: fmt.Sprintf("Resolving %s", params.Contract),
	})
	factory, err := uc.artifacts.GetFactory(ctx, params.Contract)
	if err != nil {
		return nil, err
	}

	uc.log.Debug("deploying", "contract", factory.Name, "deployer", signer.Address, "args", params.Args)
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageDeploying,
		Current: params.Step,
		Total:   params.Steps,
		Message: fmt.Sprintf("Deploying %s", factory.Name),
		Spinner: true,
	})
	pending, err := uc.deployer.Deploy(ctx, signer, factory, params.Args)
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageFailed, Message: err.Error()})
		return nil, fmt.Errorf("failed to deploy %s: %w", factory.Name, err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageWaiting,
		Current:  params.Step,
		Total:    params.Steps,
		Message:  fmt.Sprintf("Waiting for %s (tx %s)", factory.Name, pending.TxHash.Hex()),
		Spinner:  true,
		Metadata: pending,
	})
	deployment, err := uc.deployer.WaitDeployed(ctx, pending)
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageFailed, Message: err.Error()})
		return nil, fmt.Errorf("failed to confirm %s: %w", factory.Name, err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageDeployed,
		Current:  params.Step,
		Total:    params.Steps,
		Message:  fmt.Sprintf("%s deployed", factory.Name),
		Metadata: deployment,
	})
	uc.log.Debug("deployed", "contract", deployment.ContractName, "address", deployment.Address, "block", deployment.BlockNumber)

	return deployment, nil
}

// FirstSigner returns the first signer of the provider, the implicit deployer
func FirstSigner(ctx context.Context, provider SignerProvider) (*domain.Signer, error) {
	signers, err := provider.Signers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get signers: %w", err)
	}
	if len(signers) == 0 {
		return nil, domain.ErrNoSigners
	}
	return signers[0], nil
}
