package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zkbugbounty/bountydeploy/internal/cli/render"
	"github.com/zkbugbounty/bountydeploy/internal/config"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

// NewScriptCmd creates a command that runs the named deployment script
func NewScriptCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, usecase.RunScriptParams{Name: name})
		},
	}
}

// NewRunCmd creates the run command for user supplied script files
func NewRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a deployment script file",
		Long: `Run a YAML deployment script. Each step names a contract and its constructor
arguments; "$deployer" and "$<Contract>" are replaced with the first signer and
with addresses deployed by earlier steps or passed with --address.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, usecase.RunScriptParams{Path: args[0]})
		},
	}
}

// runScript runs a script and prints what was deployed, including the
// steps that completed before a failure
func runScript(cmd *cobra.Command, params usecase.RunScriptParams) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	addresses, err := cmd.Flags().GetStringToString("address")
	if err != nil {
		return err
	}
	params.Addresses = config.MergeAddresses(app.Config.Addresses, addresses)

	result, runErr := app.RunScript.Run(cmd.Context(), params)

	renderer := render.NewScriptRenderer(cmd.OutOrStdout())
	if app.Config.JSON {
		if err := renderer.RenderScriptJSON(result, runErr); err != nil {
			return err
		}
	} else if err := renderer.RenderScriptResult(result); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("deployment failed: %w", runErr)
	}
	return nil
}

// NewScriptsCmd creates the scripts command
func NewScriptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scripts",
		Short: "List available deployment scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			for _, name := range app.Scripts.List(cmd.Context()) {
				script, err := app.Scripts.Get(cmd.Context(), name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", script.Name, script.Description)
			}
			return nil
		},
	}
}
