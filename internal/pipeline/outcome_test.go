package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error is success",
			err:  nil,
			want: ExitSuccess,
		},
		{
			name: "generic error is failure",
			err:  errors.New("boom"),
			want: ExitFailure,
		},
		{
			name: "action required",
			err:  &ActionRequiredError{Step: "deploy", Instructions: []string{"create the environment"}},
			want: ExitActionRequired,
		},
		{
			name: "needs attention",
			err:  &AttentionError{Step: "deploy", LastState: "status=Updating health=Grey"},
			want: ExitNeedsAttention,
		},
		{
			name: "wrapped action required",
			err:  fmt.Errorf("run-all: %w", &ActionRequiredError{Step: "deploy"}),
			want: ExitActionRequired,
		},
		{
			name: "wrapped attention",
			err:  fmt.Errorf("run-all: %w", &AttentionError{Step: "deploy"}),
			want: ExitNeedsAttention,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestActionRequiredError_Message(t *testing.T) {
	t.Parallel()
	err := &ActionRequiredError{
		Step:         "deploy",
		Instructions: []string{"create the environment", "set DATABASE_URL"},
	}
	assert.Contains(t, err.Error(), "deploy: action required")
	assert.Contains(t, err.Error(), "create the environment")
	assert.Contains(t, err.Error(), "set DATABASE_URL")
}

func TestAttentionError_Message(t *testing.T) {
	t.Parallel()
	err := &AttentionError{
		Step:      "deploy",
		LastState: "status=Ready health=Degraded",
		Hints:     []string{"inspect recent environment events"},
	}
	assert.Contains(t, err.Error(), "needs attention")
	assert.Contains(t, err.Error(), "status=Ready health=Degraded")
	assert.Contains(t, err.Error(), "inspect recent environment events")
}
