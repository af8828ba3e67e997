// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/config"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/deploy"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/monitoring"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/netpolicy"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/packager"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/pipeline"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/platform/awscp"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/util/preflight"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// newRegistryClient creates the control-plane registry client.
	newRegistryClient = func(ctx context.Context, cfg *config.Config) (registry.Client, error) {
		return awscp.NewClient(ctx, cfg.Region)
	}

	// runPreflight executes the lint/test gate.
	runPreflight = preflight.Run
)

// loadConfig resolves the config path, falling back to the default file name
// in the working directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		configPath = config.DefaultConfigFile
	}
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// runPhases builds a registry-backed pipeline context and runs the phases.
func runPhases(ctx context.Context, cfg *config.Config, phases []pipeline.Phase) error {
	reg, err := newRegistryClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize control-plane client: %w", err)
	}
	return pipeline.RunPhases(pipeline.NewContext(ctx, cfg, reg), phases)
}

// Package builds the versioned artifact. It needs no control-plane
// credentials, so the pipeline context carries no registry client.
func Package(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	return pipeline.RunPhases(pipeline.NewContext(ctx, cfg, nil), []pipeline.Phase{
		packager.New(cfg),
	})
}

// ProvisionNetwork ensures the security boundaries and data-tier grant.
func ProvisionNetwork(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	return runPhases(ctx, cfg, []pipeline.Phase{
		netpolicy.New(),
	})
}

// Deploy builds a fresh artifact and releases it to the hosting environment.
// The packager runs first so a deploy is always of the tree as it stands.
func Deploy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	return runPhases(ctx, cfg, []pipeline.Phase{
		packager.New(cfg),
		deploy.New(),
	})
}

// ProvisionMonitoring upserts the alert catalogue, channel and dashboard.
func ProvisionMonitoring(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	return runPhases(ctx, cfg, []pipeline.Phase{
		monitoring.New(),
	})
}

// RunAll executes the full pipeline in dependency order, optionally behind
// the lint/test gate the CI job uses.
func RunAll(ctx context.Context, configPath string, withPreflight bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if withPreflight {
		if _, err := runPreflight(ctx, cfg.SourceDir, cfg.Preflight); err != nil {
			return err
		}
	}

	return runPhases(ctx, cfg, []pipeline.Phase{
		packager.New(cfg),
		netpolicy.New(),
		deploy.New(),
		monitoring.New(),
	})
}
