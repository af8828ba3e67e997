// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the bcb-deploy CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bcb-deploy",
		Short:         "Package, provision and deploy better-call-buffet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Package())
	cmd.AddCommand(ProvisionNetwork())
	cmd.AddCommand(Deploy())
	cmd.AddCommand(ProvisionMonitoring())
	cmd.AddCommand(RunAll())
	cmd.AddCommand(Version())

	return cmd
}

// configFlag binds the shared --config flag.
func configFlag(cmd *cobra.Command, configPath *string) {
	cmd.Flags().StringVarP(configPath, "config", "c", "", "Path to configuration file (default: bcb-deploy.yaml)")
}
