package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zkbugbounty/bountydeploy/internal/adapters/progress"
	"github.com/zkbugbounty/bountydeploy/internal/app"
	"github.com/zkbugbounty/bountydeploy/internal/config"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// releaseKey is the context key for the func that cancels the timeout and closes the app
	releaseKey contextKey = "release"
)

type releaseFunc func()

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bountydeploy",
		Short: "Deploy the Hello and ZkBugBounty contracts",
		Long: `bountydeploy deploys the compiled Hello and ZkBugBounty contracts from the
first available signer of a JSON-RPC node and prints each contract address.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				// Fall back to the working directory; artifact lookup reports what is missing
				if projectRoot, err = os.Getwd(); err != nil {
					return err
				}
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v, newProgressSink(v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cancel := context.CancelFunc(func() {})
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			release := releaseFunc(func() {
				cancel()
				appInstance.Close()
			})
			cmd.SetContext(context.WithValue(ctx, releaseKey, release))

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to (defaults to localhost)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the run after this duration (0 waits indefinitely)")
	rootCmd.PersistentFlags().StringToString("address", nil, "Known contract address, e.g. --address Hello=0x... (repeatable)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Deployment commands
	for _, cmd := range []*cobra.Command{
		NewScriptCmd("hello", "Deploy the Hello contract"),
		NewScriptCmd("zk-bug-bounty", "Deploy ZkBugBounty(deployer, Hello, Hello)"),
		NewScriptCmd("all", "Deploy Hello, then ZkBugBounty wired to it"),
		NewRunCmd(),
	} {
		cmd.GroupID = "deployment"
		rootCmd.AddCommand(cmd)
	}

	// Management commands
	for _, cmd := range []*cobra.Command{
		NewScriptsCmd(),
		NewAccountsCmd(),
		NewNetworksCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command, then cancels the timeout and closes the app
// of whichever command ran. Post-run hooks are skipped when a command fails,
// so this happens here.
func Execute(rootCmd *cobra.Command) error {
	cmd, err := rootCmd.ExecuteC()
	if cmd != nil && cmd.Context() != nil {
		if release, ok := cmd.Context().Value(releaseKey).(releaseFunc); ok {
			release()
		}
	}
	return err
}

// newProgressSink picks the spinner for terminals and a silent sink for JSON output
func newProgressSink(v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("json") || color.NoColor {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// useColor reports whether stdout output may carry ANSI colors
func useColor() bool {
	return !color.NoColor
}
