// Package deploy uploads the built artifact, registers it as a release
// candidate and triggers the hosting environment to adopt it.
//
// Deployments are append-only: every run produces a new timestamp version
// label, with no skip-if-unchanged shortcut. Builds are cheap; always
// deploying what is in source wins over the optimization.
package deploy

import (
	"fmt"
	"os"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/pipeline"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/util/naming"
)

// Deployer is the release phase.
type Deployer struct{}

// New creates the release deployer.
func New() *Deployer { return &Deployer{} }

// Name implements pipeline.Phase.
func (d *Deployer) Name() string { return "deploy" }

// Provision pushes the artifact built by the packager phase.
func (d *Deployer) Provision(ctx *pipeline.Context) error {
	cfg := ctx.Config

	if ctx.State.ArtifactPath == "" || ctx.State.VersionLabel == "" {
		return fmt.Errorf("no artifact in pipeline state; run the package step first")
	}

	bucketName := naming.DeploymentBucket(cfg.AppName, cfg.Region)
	bucket, err := ctx.Registry.Find(ctx, registry.Filter{Kind: registry.KindStorageBucket, Name: bucketName})
	if err != nil {
		return fmt.Errorf("find artifact bucket: %w", err)
	}
	if bucket == nil {
		bucket, err = ctx.Registry.Create(ctx, registry.BucketSpec{Name: bucketName})
		if err != nil {
			return fmt.Errorf("create artifact bucket: %w", err)
		}
		pipeline.LogResourceCreated(ctx.Observer, d.Name(), "storage bucket", bucketName, bucket.ID)
	} else {
		pipeline.LogResourceExists(ctx.Observer, d.Name(), "storage bucket", bucketName, bucket.ID)
	}
	ctx.State.StorageBucket = bucketName

	payload, err := os.ReadFile(ctx.State.ArtifactPath)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	key := naming.ArtifactKey(ctx.State.VersionLabel)
	if _, err := ctx.Registry.Create(ctx, registry.ObjectSpec{
		Bucket: bucketName,
		Key:    key,
		Body:   payload,
	}); err != nil {
		return fmt.Errorf("upload artifact: %w", err)
	}
	ctx.State.StorageKey = key
	ctx.Observer.Printf("[%s] uploaded %s (%d bytes)", d.Name(), key, len(payload))

	if _, err := ctx.Registry.Create(ctx, registry.ApplicationSpec{
		Name:        cfg.AppName,
		Description: "managed by bcb-deploy",
	}); err != nil {
		return fmt.Errorf("ensure application registration: %w", err)
	}

	if _, err := ctx.Registry.Create(ctx, registry.ReleaseSpec{
		ApplicationName: cfg.AppName,
		VersionLabel:    ctx.State.VersionLabel,
		StorageBucket:   bucketName,
		StorageKey:      key,
		Description:     "bcb-deploy release",
	}); err != nil {
		return fmt.Errorf("register release candidate: %w", err)
	}
	ctx.Observer.Printf("[%s] release candidate %s registered", d.Name(), ctx.State.VersionLabel)

	envFilter := registry.Filter{
		Kind:  registry.KindEnvironment,
		Name:  cfg.EnvironmentName,
		Extra: map[string]string{registry.FilterApplication: cfg.AppName},
	}
	env, err := ctx.Registry.Find(ctx, envFilter)
	if err != nil {
		return fmt.Errorf("find environment: %w", err)
	}
	if env == nil {
		// Environment creation is a one-time, human-approved bootstrap:
		// network placement, instance sizing and environment variables are
		// not choices to automate blindly.
		return &pipeline.ActionRequiredError{
			Step: d.Name(),
			Instructions: []string{
				fmt.Sprintf("environment %q does not exist and this pipeline will not create it", cfg.EnvironmentName),
				fmt.Sprintf("create it once via the console for application %q, picking network placement and instance size", cfg.AppName),
				"set the environment variables DATABASE_URL, SECRET_KEY, CORS_ORIGINS and TOKEN_TTL_MINUTES",
				fmt.Sprintf("then re-run 'bcb-deploy deploy' to push release %s", ctx.State.VersionLabel),
			},
		}
	}

	if _, err := ctx.Registry.Upsert(ctx, registry.EnvironmentSpec{
		Name:            cfg.EnvironmentName,
		ApplicationName: cfg.AppName,
		VersionLabel:    ctx.State.VersionLabel,
	}); err != nil {
		return fmt.Errorf("trigger release adoption: %w", err)
	}
	ctx.Observer.Printf("[%s] environment %s adopting release %s", d.Name(), cfg.EnvironmentName, ctx.State.VersionLabel)

	return d.awaitHealth(ctx, envFilter)
}

// awaitHealth blocks until the environment reports a terminal health state
// or the wait times out. A timeout is a degraded-but-non-fatal outcome with
// remediation hints, not a crash.
func (d *Deployer) awaitHealth(ctx *pipeline.Context, envFilter registry.Filter) error {
	env, err := ctx.Registry.WaitUntil(ctx, envFilter, healthSettled, ctx.Timeouts.EnvironmentHealth)
	if err != nil {
		if registry.IsWaitTimeout(err) {
			last := "unknown"
			if env != nil {
				last = fmt.Sprintf("status=%s health=%s", env.Attr(registry.AttrStatus), env.Attr(registry.AttrHealth))
			}
			ctx.State.Health = registry.HealthDegraded
			return &pipeline.AttentionError{
				Step:      d.Name(),
				LastState: last,
				Hints: []string{
					"the release is still rolling out or stuck; the environment was not left broken by this run",
					fmt.Sprintf("inspect recent environment events and application logs for %s", ctx.Config.EnvironmentName),
					"re-run 'bcb-deploy deploy' once the environment settles",
				},
			}
		}
		return fmt.Errorf("wait for environment health: %w", err)
	}

	ctx.State.EnvironmentID = env.ID
	ctx.State.EnvironmentCNAME = env.Attr(registry.AttrCNAME)
	ctx.State.Health = registry.HealthOf(env)

	ctx.Observer.Printf("[%s] environment %s is %s at http://%s",
		d.Name(), ctx.Config.EnvironmentName, ctx.State.Health, ctx.State.EnvironmentCNAME)
	return nil
}

// healthSettled ends the wait once the environment is out of its update and
// reports any terminal health state; that state is surfaced verbatim.
func healthSettled(r *registry.Resource) (bool, error) {
	if r.Attr(registry.AttrStatus) != "Ready" {
		return false, nil
	}
	return registry.HealthOf(r).Terminal(), nil
}
