package commands

import (
	"github.com/spf13/cobra"

	"github.com/mariobrusarosco/better-call-buffet-sub000/cmd/bcb-deploy/handlers"
)

// Package returns the command that builds the deployable artifact.
func Package() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Build the versioned application artifact",
		Long: `Build the deployable bundle: generate the process manifest and
platform configuration fragments, flatten the dependency manifest and
archive the source tree under a timestamp version label.

Generated files are only written when absent; hand-authored ones are
never overwritten.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Package(cmd.Context(), configPath)
		},
	}

	configFlag(cmd, &configPath)
	return cmd
}

// ProvisionNetwork returns the command that ensures the security boundaries.
func ProvisionNetwork() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "provision-network",
		Short: "Ensure security boundaries and the data-tier access grant",
		Long: `Ensure the application tier's security boundary exists and wire
inbound access from it into the data tier's boundary.

The data tier is provisioned by a separate flow; when its boundary is
missing this step warns and continues instead of failing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ProvisionNetwork(cmd.Context(), configPath)
		},
	}

	configFlag(cmd, &configPath)
	return cmd
}

// Deploy returns the command that pushes a new release.
func Deploy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Build, upload and release a new application version",
		Long: `Build a fresh artifact, upload it to the artifact bucket, register
it as a release candidate and trigger the hosting environment to adopt
it, then wait for the environment to report a terminal health state.

Deployments are append-only: every run produces a new version label.
If the target environment does not exist the command prints the manual
bootstrap instructions and exits with code 3.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath)
		},
	}

	configFlag(cmd, &configPath)
	return cmd
}

// ProvisionMonitoring returns the command that provisions observability.
func ProvisionMonitoring() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "provision-monitoring",
		Short: "Upsert the alert-rule catalogue and operations dashboard",
		Long: `Create the shared notification channel, upsert the fixed alert-rule
catalogue and the operations dashboard. Rules are independent: a
failing rule is collected and reported without aborting the others.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ProvisionMonitoring(cmd.Context(), configPath)
		},
	}

	configFlag(cmd, &configPath)
	return cmd
}

// RunAll returns the composite command running the full pipeline.
func RunAll() *cobra.Command {
	var configPath string
	var preflightGate bool

	cmd := &cobra.Command{
		Use:   "run-all",
		Short: "Run the full pipeline: package, network, deploy, monitoring",
		Long: `Run every pipeline step in dependency order. Each step is
idempotent, so an aborted run is recovered by simply running again.

With --preflight the lint/test gate runs before packaging, the way the
CI job invokes the pipeline.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.RunAll(cmd.Context(), configPath, preflightGate)
		},
	}

	configFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&preflightGate, "preflight", false, "Run the lint/test gate before packaging")
	return cmd
}
