package netpolicy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/config"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/pipeline"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry/registrytest"
)

func testContext(fake *registrytest.Fake) *pipeline.Context {
	cfg := &config.Config{
		AppName:         "bcb",
		EnvironmentName: "bcb-prod",
		Region:          "us-east-1",
		PartitionID:     "vpc-0abc",
		DataTier: config.DataTierConfig{
			BoundaryName: "bcb-db",
			Port:         5432,
		},
	}
	return pipeline.NewContext(context.Background(), cfg, fake)
}

func TestProvision_CreatesAppBoundaryAndGrant(t *testing.T) {
	t.Parallel()

	fake := registrytest.NewFake()
	fake.Seed(&registry.Resource{Kind: registry.KindSecurityBoundary, ID: "sg-db", Name: "bcb-db"})
	ctx := testContext(fake)

	require.NoError(t, New().Provision(ctx))

	app := fake.Get(registry.KindSecurityBoundary, "bcb-web")
	require.NotNil(t, app, "application boundary must be created")
	assert.Equal(t, app.ID, ctx.State.AppBoundaryID)
	assert.Equal(t, "sg-db", ctx.State.DataBoundaryID)

	require.Len(t, fake.Grants, 1)
	for _, grant := range fake.Grants {
		assert.Equal(t, "bcb-db", grant.BoundaryName)
		assert.Equal(t, "tcp", grant.Protocol)
		assert.Equal(t, 5432, grant.Port)
		assert.Equal(t, app.ID, grant.SourceBoundaryID)
	}
	assert.Empty(t, ctx.Warnings())
}

func TestProvision_BoundaryBeforeGrant(t *testing.T) {
	t.Parallel()

	fake := registrytest.NewFake()
	fake.Seed(&registry.Resource{Kind: registry.KindSecurityBoundary, ID: "sg-db", Name: "bcb-db"})
	ctx := testContext(fake)

	require.NoError(t, New().Provision(ctx))

	assert.Equal(t, []string{
		"find:security-boundary:bcb-web",
		"create:security-boundary:bcb-web",
		"find:security-boundary:bcb-db",
		"create:access-grant:bcb-db",
	}, fake.Ops, "the grant must only be issued after both boundaries are resolved")
}

func TestProvision_ExistingBoundaryIsReused(t *testing.T) {
	t.Parallel()

	fake := registrytest.NewFake()
	fake.Seed(&registry.Resource{Kind: registry.KindSecurityBoundary, ID: "sg-app", Name: "bcb-web"})
	fake.Seed(&registry.Resource{Kind: registry.KindSecurityBoundary, ID: "sg-db", Name: "bcb-db"})
	ctx := testContext(fake)

	require.NoError(t, New().Provision(ctx))

	assert.Equal(t, "sg-app", ctx.State.AppBoundaryID)
	assert.NotContains(t, fake.Ops, "create:security-boundary:bcb-web",
		"an existing boundary must be adopted, not recreated")
}

func TestProvision_MissingDataBoundaryWarnsAndContinues(t *testing.T) {
	t.Parallel()

	fake := registrytest.NewFake()
	ctx := testContext(fake)

	require.NoError(t, New().Provision(ctx), "a missing data tier is a warning, not a failure")

	require.NotNil(t, fake.Get(registry.KindSecurityBoundary, "bcb-web"),
		"the app boundary is still provisioned")
	assert.Empty(t, fake.Grants, "no grant can be issued without the data boundary")

	warnings := ctx.WarningsFor("provision-network")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "bcb-db")
	assert.Contains(t, warnings[0].NextSteps, "provision the data tier")
}

func TestProvision_SecondRunIsIdempotent(t *testing.T) {
	t.Parallel()

	fake := registrytest.NewFake()
	fake.Seed(&registry.Resource{Kind: registry.KindSecurityBoundary, ID: "sg-db", Name: "bcb-db"})

	require.NoError(t, New().Provision(testContext(fake)))
	require.NoError(t, New().Provision(testContext(fake)))

	assert.Equal(t, 2, fake.Count(registry.KindSecurityBoundary), "app plus data boundary, no duplicates")
	assert.Len(t, fake.Grants, 1, "re-issuing the identical grant must not grow the set")
}

func TestProvision_FindFailureIsFatal(t *testing.T) {
	t.Parallel()

	fake := registrytest.NewFake()
	fake.FailFind[registry.KindSecurityBoundary] = errors.New("api unreachable")
	ctx := testContext(fake)

	err := New().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find application boundary")
}

func TestWebIngressRules(t *testing.T) {
	t.Parallel()

	rules := webIngressRules()
	require.Len(t, rules, 2)
	assert.Equal(t, registry.AccessRule{Protocol: "tcp", Port: 80, Source: "0.0.0.0/0"}, rules[0])
	assert.Equal(t, registry.AccessRule{Protocol: "tcp", Port: 443, Source: "0.0.0.0/0"}, rules[1])
}
