// Package netpolicy provisions the security boundaries the application
// needs: the application tier's own boundary, and an access grant into the
// externally owned data tier.
package netpolicy

import (
	"fmt"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/pipeline"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/util/naming"
)

// Well-known web ports opened on the application boundary.
const (
	webPortHTTP  = 80
	webPortHTTPS = 443
)

// anySource leaves the app tier reachable from anywhere. Tradeoff inherited
// from the original design: ingress is not scoped to a load-balancer source.
const anySource = "0.0.0.0/0"

// Provisioner is the network policy phase.
type Provisioner struct{}

// New creates the network policy provisioner.
func New() *Provisioner { return &Provisioner{} }

// Name implements pipeline.Phase.
func (p *Provisioner) Name() string { return "provision-network" }

// Provision ensures the application boundary exists and wires access from it
// into the data tier. The data tier itself is owned by a separate
// provisioning flow; its absence is a warning, not a failure.
func (p *Provisioner) Provision(ctx *pipeline.Context) error {
	cfg := ctx.Config
	appBoundaryName := naming.AppBoundary(cfg.AppName)

	app, err := ctx.Registry.Find(ctx, registry.Filter{
		Kind:        registry.KindSecurityBoundary,
		Name:        appBoundaryName,
		PartitionID: cfg.PartitionID,
	})
	if err != nil {
		return fmt.Errorf("find application boundary: %w", err)
	}

	if app == nil {
		app, err = ctx.Registry.Create(ctx, registry.BoundarySpec{
			Name:        appBoundaryName,
			PartitionID: cfg.PartitionID,
			Description: fmt.Sprintf("web tier for %s", cfg.AppName),
			Rules:       webIngressRules(),
		})
		if err != nil {
			return fmt.Errorf("create application boundary: %w", err)
		}
		pipeline.LogResourceCreated(ctx.Observer, p.Name(), "security boundary", appBoundaryName, app.ID)
	} else {
		pipeline.LogResourceExists(ctx.Observer, p.Name(), "security boundary", appBoundaryName, app.ID)
	}
	ctx.State.AppBoundaryID = app.ID

	data, err := ctx.Registry.Find(ctx, registry.Filter{
		Kind:        registry.KindSecurityBoundary,
		Name:        cfg.DataTier.BoundaryName,
		PartitionID: cfg.PartitionID,
	})
	if err != nil {
		return fmt.Errorf("find data boundary: %w", err)
	}
	if data == nil {
		ctx.Warn(p.Name(),
			fmt.Sprintf("data boundary %q does not exist; skipping access grant", cfg.DataTier.BoundaryName),
			fmt.Sprintf("provision the data tier, then re-run 'bcb-deploy %s'", p.Name()))
		return nil
	}
	ctx.State.DataBoundaryID = data.ID

	_, err = ctx.Registry.Create(ctx, registry.GrantSpec{
		BoundaryName:     cfg.DataTier.BoundaryName,
		PartitionID:      cfg.PartitionID,
		Protocol:         "tcp",
		Port:             cfg.DataTier.Port,
		SourceBoundaryID: app.ID,
	})
	if err != nil {
		return fmt.Errorf("grant app access to data tier: %w", err)
	}
	ctx.Observer.Printf("[%s] app tier may reach %s on tcp/%d",
		p.Name(), cfg.DataTier.BoundaryName, cfg.DataTier.Port)
	return nil
}

func webIngressRules() []registry.AccessRule {
	return []registry.AccessRule{
		{Protocol: "tcp", Port: webPortHTTP, Source: anySource},
		{Protocol: "tcp", Port: webPortHTTPS, Source: anySource},
	}
}
