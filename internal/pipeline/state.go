package pipeline

import "github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"

// State holds the shared results of pipeline phases.
// It is progressively populated as each phase completes and is read by the
// phases that follow; nothing in it is persisted between runs.
type State struct {
	// Packager results
	ArtifactPath string // local path of the built archive
	VersionLabel string // timestamp-based, strictly increasing across runs
	ArtifactSize int64

	// Network policy results
	AppBoundaryID  string
	DataBoundaryID string // empty when the data tier is not yet provisioned

	// Deployer results
	StorageBucket    string
	StorageKey       string
	EnvironmentID    string
	EnvironmentCNAME string
	Health           registry.HealthState

	// Observability results
	ChannelID     string
	DashboardName string
}

// NewState creates an empty pipeline state.
func NewState() *State {
	return &State{}
}
