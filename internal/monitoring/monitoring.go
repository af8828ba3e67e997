// Package monitoring provisions the fixed alert-rule catalogue, one shared
// notification channel and one dashboard for the deployed application.
//
// Rules are independent and low-risk to retry individually, so partial
// success wins over all-or-nothing: each upsert failure is collected and
// reported at the end instead of aborting the remaining rules.
package monitoring

import (
	"fmt"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/pipeline"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/util/naming"
)

// Provisioner is the observability phase.
type Provisioner struct{}

// New creates the observability provisioner.
func New() *Provisioner { return &Provisioner{} }

// Name implements pipeline.Phase.
func (p *Provisioner) Name() string { return "provision-monitoring" }

// failure records one rule or dashboard upsert that did not go through.
type failure struct {
	name string
	err  error
}

// Provision creates the channel, the rule catalogue and the dashboard.
func (p *Provisioner) Provision(ctx *pipeline.Context) error {
	cfg := ctx.Config

	channelID, err := p.ensureChannel(ctx)
	if err != nil {
		return err
	}

	if cfg.DataTier.InstanceID == "" {
		ctx.Warn(p.Name(),
			"data tier instance id not configured; data-tier alert rules skipped",
			"set data_tier.instance_id, then re-run 'bcb-deploy provision-monitoring'")
	}

	var failures []failure
	rules := Catalogue(cfg, channelID)
	for _, rule := range rules {
		existing, findErr := ctx.Registry.Find(ctx, registry.Filter{Kind: registry.KindAlertRule, Name: rule.Name})

		if _, upsertErr := ctx.Registry.Upsert(ctx, rule); upsertErr != nil {
			failures = append(failures, failure{name: rule.Name, err: upsertErr})
			continue
		}

		switch {
		case findErr == nil && existing != nil:
			pipeline.LogResourceUpdated(ctx.Observer, p.Name(), "alert rule", rule.Name)
		default:
			pipeline.LogResourceCreated(ctx.Observer, p.Name(), "alert rule", rule.Name, rule.Name)
		}
	}

	dashboardName := naming.Dashboard(cfg.AppName)
	body, err := DashboardBody(cfg, ctx.State.EnvironmentID, rules)
	if err != nil {
		failures = append(failures, failure{name: dashboardName, err: err})
	} else {
		existing, findErr := ctx.Registry.Find(ctx, registry.Filter{Kind: registry.KindDashboard, Name: dashboardName})
		if _, upsertErr := ctx.Registry.Upsert(ctx, registry.DashboardSpec{Name: dashboardName, Body: body}); upsertErr != nil {
			failures = append(failures, failure{name: dashboardName, err: upsertErr})
		} else {
			ctx.State.DashboardName = dashboardName
			if findErr == nil && existing != nil {
				pipeline.LogResourceUpdated(ctx.Observer, p.Name(), "dashboard", dashboardName)
			} else {
				pipeline.LogResourceCreated(ctx.Observer, p.Name(), "dashboard", dashboardName, dashboardName)
			}
		}
	}

	for _, f := range failures {
		ctx.Warn(p.Name(),
			fmt.Sprintf("%s: %v", f.name, f.err),
			"create the missing target resource, then re-run 'bcb-deploy provision-monitoring'")
	}
	if len(failures) > 0 {
		ctx.Observer.Printf("[%s] %d of %d monitoring resources failed; the rest were provisioned",
			p.Name(), len(failures), len(rules)+1)
	}
	return nil
}

// ensureChannel finds or creates the single shared notification channel all
// rules reference; a channel create also re-subscribes configured addresses,
// which the control plane tolerates on repeat.
func (p *Provisioner) ensureChannel(ctx *pipeline.Context) (string, error) {
	name := naming.Channel(ctx.Config.AppName)

	existing, err := ctx.Registry.Find(ctx, registry.Filter{Kind: registry.KindNotificationChannel, Name: name})
	if err != nil {
		return "", fmt.Errorf("find notification channel: %w", err)
	}

	channel, err := ctx.Registry.Create(ctx, registry.ChannelSpec{
		Name:        name,
		Subscribers: ctx.Config.Monitoring.AlertEmails,
	})
	if err != nil {
		return "", fmt.Errorf("ensure notification channel: %w", err)
	}

	if existing != nil {
		pipeline.LogResourceExists(ctx.Observer, p.Name(), "notification channel", name, channel.ID)
	} else {
		pipeline.LogResourceCreated(ctx.Observer, p.Name(), "notification channel", name, channel.ID)
	}
	ctx.State.ChannelID = channel.ID
	return channel.ID, nil
}
