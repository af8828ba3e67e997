// Package config loads and validates the deployment pipeline configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the file name looked up in the working directory when
// no --config flag is given.
const DefaultConfigFile = "bcb-deploy.yaml"

// Config holds the pipeline configuration.
type Config struct {
	// AppName is the application identifier used in resource names and the
	// artifact version label.
	AppName string `yaml:"app_name"`

	// EnvironmentName is the hosting environment releases are pushed to.
	EnvironmentName string `yaml:"environment_name"`

	// Region is the control-plane region every remote call targets.
	Region string `yaml:"region"`

	// PartitionID is the network partition (VPC) the security boundaries are
	// scoped to. Empty means the partition's default.
	PartitionID string `yaml:"partition_id"`

	// SourceDir is the application source tree the packager archives.
	SourceDir string `yaml:"source_dir"`

	// OutputDir is where built artifacts are written.
	OutputDir string `yaml:"output_dir"`

	Platform   PlatformConfig   `yaml:"platform"`
	DataTier   DataTierConfig   `yaml:"data_tier"`
	Monitoring MonitoringConfig `yaml:"monitoring"`

	// Preflight lists the lint/test gate commands run by the CI variant
	// before packaging.
	Preflight []string `yaml:"preflight"`
}

// PlatformConfig describes how the hosting environment starts the app.
type PlatformConfig struct {
	// Entrypoint is the runtime entry path injected into the generated
	// platform configuration (for example "app.main:app").
	Entrypoint string `yaml:"entrypoint"`

	// RuntimeVersion pins the platform runtime (for example "3.11").
	RuntimeVersion string `yaml:"runtime_version"`

	// HealthPath is the well-known health-check path the environment probes.
	HealthPath string `yaml:"health_path"`
}

// DataTierConfig names the externally provisioned data store.
type DataTierConfig struct {
	// BoundaryName is the data tier's security boundary. The pipeline wires
	// access to it but never creates it.
	BoundaryName string `yaml:"boundary_name"`

	// Port the data store listens on.
	Port int `yaml:"port"`

	// InstanceID is the data store's stable resource identifier, referenced
	// by the data-tier alert rules.
	InstanceID string `yaml:"instance_id"`
}

// MonitoringConfig configures the observability provisioner.
type MonitoringConfig struct {
	// AlertEmails subscribe to the shared notification channel.
	AlertEmails []string `yaml:"alert_emails"`
}

// LoadFile reads and validates the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.Platform.HealthPath == "" {
		c.Platform.HealthPath = "/health"
	}
	if c.DataTier.BoundaryName == "" && c.AppName != "" {
		c.DataTier.BoundaryName = c.AppName + "-db"
	}
	if c.DataTier.Port == 0 {
		c.DataTier.Port = 5432
	}
}

func (c *Config) validate() error {
	if c.AppName == "" {
		return fmt.Errorf("app_name is required")
	}
	if c.EnvironmentName == "" {
		return fmt.Errorf("environment_name is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Platform.Entrypoint == "" {
		return fmt.Errorf("platform.entrypoint is required")
	}
	return nil
}
