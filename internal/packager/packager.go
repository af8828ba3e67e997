// Package packager assembles the deployable bundle: application code plus
// generated runtime manifests, archived under a timestamp version label.
//
// Every generation step is idempotent and generator-style: a file is only
// created when absent, never overwriting a hand-authored one. The resulting
// archive is reproducible for unchanged source, modulo the version label.
package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/config"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/pipeline"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/util/naming"
)

// ErrManifestMissing indicates the source tree has no resolvable dependency
// manifest. This aborts the pipeline; no archive is produced.
var ErrManifestMissing = errors.New("dependency manifest (Pipfile) not found")

// Artifact is the versioned, immutable bundle produced by the packager.
// Superseded by newer versions, never mutated.
type Artifact struct {
	AppName      string
	VersionLabel string
	Path         string
	Size         int64
}

// Packager builds one Artifact from a source tree and platform descriptor.
type Packager struct {
	sourceDir string
	outputDir string
	appName   string
	platform  config.PlatformConfig

	// injected for tests
	now        func() time.Time
	runCommand func(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// New creates a packager for the configured source tree.
func New(cfg *config.Config) *Packager {
	return &Packager{
		sourceDir:  cfg.SourceDir,
		outputDir:  cfg.OutputDir,
		appName:    cfg.AppName,
		platform:   cfg.Platform,
		now:        time.Now,
		runCommand: runCommand,
	}
}

// Name implements pipeline.Phase.
func (p *Packager) Name() string { return "package" }

// Provision implements pipeline.Phase.
func (p *Packager) Provision(ctx *pipeline.Context) error {
	artifact, err := p.Package(ctx)
	if err != nil {
		return err
	}

	ctx.State.ArtifactPath = artifact.Path
	ctx.State.VersionLabel = artifact.VersionLabel
	ctx.State.ArtifactSize = artifact.Size

	ctx.Observer.Printf("[%s] artifact %s (%d bytes)", p.Name(), artifact.Path, artifact.Size)
	return nil
}

// Package runs the generation steps and archives the tree.
func (p *Packager) Package(ctx context.Context) (*Artifact, error) {
	if _, err := os.Stat(filepath.Join(p.sourceDir, "Pipfile")); err != nil {
		return nil, fmt.Errorf("%w in %s", ErrManifestMissing, p.sourceDir)
	}

	if err := p.writeProcessManifest(); err != nil {
		return nil, err
	}
	if err := p.writePlatformFragments(); err != nil {
		return nil, err
	}
	if err := p.ensureRequirements(ctx); err != nil {
		return nil, err
	}
	if err := p.ensureLogTarget(); err != nil {
		return nil, err
	}

	label := naming.VersionLabel(p.appName, p.now())
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	dest := filepath.Join(p.outputDir, label+".zip")

	size, err := buildArchive(p.sourceDir, dest, p.outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to write archive: %w", err)
	}

	return &Artifact{
		AppName:      p.appName,
		VersionLabel: label,
		Path:         dest,
		Size:         size,
	}, nil
}

// ensureLogTarget creates the log directory and an initial empty log file so
// the runtime does not fail on first write.
func (p *Packager) ensureLogTarget() error {
	logDir := filepath.Join(p.sourceDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log dir: %w", err)
	}
	logFile := filepath.Join(logDir, "app.log")
	if _, err := os.Stat(logFile); err == nil {
		return nil
	}
	if err := os.WriteFile(logFile, nil, 0o644); err != nil {
		return fmt.Errorf("failed to create initial log file: %w", err)
	}
	return nil
}

// writeIfAbsent creates path with the given content only when no file exists
// there yet; hand-authored files always win.
func writeIfAbsent(path string, content []byte) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func runCommand(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}
