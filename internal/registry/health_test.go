package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attr string
		want HealthState
	}{
		{"Green", HealthHealthy},
		{"Ok", HealthHealthy},
		{"Healthy", HealthHealthy},
		{"Yellow", HealthDegraded},
		{"Warning", HealthDegraded},
		{"Degraded", HealthDegraded},
		{"Red", HealthFailed},
		{"Severe", HealthFailed},
		{"Failed", HealthFailed},
		{"", HealthPending},
		{"Grey", HealthPending},
		{"Pending", HealthPending},
		{"Launching", HealthInProgress},
	}

	for _, tt := range tests {
		name := tt.attr
		if name == "" {
			name = "empty"
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := &Resource{Kind: KindEnvironment, Attributes: map[string]string{AttrHealth: tt.attr}}
			assert.Equal(t, tt.want, HealthOf(r))
		})
	}
}

func TestHealthState_Terminal(t *testing.T) {
	t.Parallel()

	assert.True(t, HealthHealthy.Terminal())
	assert.True(t, HealthDegraded.Terminal())
	assert.True(t, HealthFailed.Terminal())
	assert.False(t, HealthPending.Terminal())
	assert.False(t, HealthInProgress.Terminal())
}

func TestResource_Attr(t *testing.T) {
	t.Parallel()

	var nilResource *Resource
	assert.Empty(t, nilResource.Attr(AttrHealth), "nil receiver must be safe")

	r := &Resource{Kind: KindEnvironment}
	assert.Empty(t, r.Attr(AttrCNAME), "nil attribute map must be safe")

	r.Attributes = map[string]string{AttrCNAME: "bcb-prod.example.com"}
	assert.Equal(t, "bcb-prod.example.com", r.Attr(AttrCNAME))
}
