package cli

import (
	"github.com/spf13/cobra"
	"github.com/zkbugbounty/bountydeploy/internal/cli/render"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks from bountydeploy.toml",
		Long: `List all networks configured in the [networks] section of bountydeploy.toml
plus the built-in localhost network.

This command shows all available networks and attempts to fetch their chain IDs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), app.Config.Network.Name)
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), useColor())
			return renderer.RenderNetworksList(result, app.Config.ConfigSource)
		},
	}

	return cmd
}
