package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zkbugbounty/bountydeploy/internal/cli/render"
)

type accountJSON struct {
	Address string `json:"address"`
	Kind    string `json:"kind"`
	Balance string `json:"balance,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewAccountsCmd creates the accounts command
func NewAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the signers of the selected network",
		Long: `List the signers of the selected network with their balances.
The first signer is the deployer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListAccounts.Run(cmd.Context(), app.Config.Network.Name)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				output := make([]accountJSON, 0, len(result.Accounts))
				for _, account := range result.Accounts {
					entry := accountJSON{
						Address: account.Signer.Address.Hex(),
						Kind:    string(account.Signer.Kind),
					}
					if account.Error != nil {
						entry.Error = account.Error.Error()
					} else if account.Balance != nil {
						entry.Balance = account.Balance.String()
					}
					output = append(output, entry)
				}
				data, err := json.MarshalIndent(output, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			renderer := render.NewAccountsRenderer(cmd.OutOrStdout(), useColor())
			return renderer.RenderAccounts(result)
		},
	}
}
