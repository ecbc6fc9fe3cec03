package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

// ScriptRenderer renders the outcome of a deployment script. Output is never
// colored; the address lines are meant to be parsed.
type ScriptRenderer struct {
	out io.Writer
}

// NewScriptRenderer creates a new script renderer
func NewScriptRenderer(out io.Writer) *ScriptRenderer {
	return &ScriptRenderer{out: out}
}

// RenderScriptResult prints one "<Contract> address: <address>" line per
// confirmed deployment, in execution order
func (r *ScriptRenderer) RenderScriptResult(result *usecase.RunScriptResult) error {
	if result == nil {
		return nil
	}
	for _, d := range result.Deployments {
		if _, err := fmt.Fprintf(r.out, "%s address: %s\n", d.ContractName, d.Address.Hex()); err != nil {
			return err
		}
	}
	return nil
}

type scriptJSON struct {
	Script      string               `json:"script"`
	Network     string               `json:"network"`
	ChainID     uint64               `json:"chainId"`
	Deployer    string               `json:"deployer,omitempty"`
	Status      domain.RunStatus     `json:"status"`
	Deployments []*domain.Deployment `json:"deployments"`
	Error       string               `json:"error,omitempty"`
}

// RenderScriptJSON writes the result as a single JSON document. runErr is
// included so callers can inspect partial runs.
func (r *ScriptRenderer) RenderScriptJSON(result *usecase.RunScriptResult, runErr error) error {
	if result == nil {
		return nil
	}

	output := scriptJSON{
		Network:     result.Network,
		ChainID:     result.ChainID,
		Status:      result.Status,
		Deployments: result.Deployments,
	}
	if output.Deployments == nil {
		output.Deployments = []*domain.Deployment{}
	}
	if result.Script != nil {
		output.Script = result.Script.Name
	}
	if result.Deployer != (common.Address{}) {
		output.Deployer = result.Deployer.Hex()
	}
	if runErr != nil {
		output.Error = runErr.Error()
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}
