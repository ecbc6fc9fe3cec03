package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

// Confirmer asks for confirmation on the terminal before deploying to a
// live network. In non-interactive mode every deployment is confirmed.
type Confirmer struct {
	nonInteractive bool
}

// NewConfirmer creates a new confirmer
func NewConfirmer(cfg *config.RuntimeConfig) *Confirmer {
	return &Confirmer{nonInteractive: cfg.NonInteractive || cfg.JSON}
}

// ConfirmDeploy prompts "Deploy ... ? [y/N]"
func (c *Confirmer) ConfirmDeploy(ctx context.Context, network string, chainID uint64, contracts []string) (bool, error) {
	if c.nonInteractive {
		return true, nil
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Deploy %s to %s (chain %d)", strings.Join(contracts, ", "), network, chainID),
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("input cancelled: %w", err)
	}
	return true, nil
}

var _ usecase.DeployConfirmer = (*Confirmer)(nil)
