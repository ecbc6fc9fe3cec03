package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNoSigners is returned when the provider has no account to deploy from
	ErrNoSigners = errors.New("no signers available")

	// ErrArtifactNotFound is returned when a compiled artifact can't be found
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrDeploymentReverted is returned when the creation transaction was included but failed
	ErrDeploymentReverted = errors.New("deployment reverted")

	// ErrNoCode is returned when a confirmed deployment left no code at the contract address
	ErrNoCode = errors.New("no code at contract address")

	// ErrNetworkMismatch is returned when the node's chain ID differs from the configured one
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrNetworkNotFound is returned when a network name is not configured
	ErrNetworkNotFound = errors.New("network not found")

	// ErrUnresolvedReference is returned when a script argument references an unknown address
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrInvalidArgument is returned when a constructor argument can't be converted to its ABI type
	ErrInvalidArgument = errors.New("invalid constructor argument")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrScriptNotFound is returned when a deployment script can't be found
	ErrScriptNotFound = errors.New("script not found")

	// ErrDeploymentCancelled is returned when the user declines a deployment
	ErrDeploymentCancelled = errors.New("deployment cancelled")
)

// ArtifactNotFoundError carries the requested name and close matches
type ArtifactNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e ArtifactNotFoundError) Error() string {
	msg := fmt.Sprintf("artifact for contract %q not found", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e ArtifactNotFoundError) Unwrap() error {
	return ErrArtifactNotFound
}

// StepError reports which script step failed
type StepError struct {
	Index    int
	Contract string
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Contract, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
