package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockObserver records events and log lines for assertions.
type MockObserver struct {
	mu     sync.Mutex
	Lines  []string
	Events []Event
}

func NewMockObserver() *MockObserver {
	return &MockObserver{}
}

func (m *MockObserver) Printf(format string, v ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

func (m *MockObserver) EventsOfType(t EventType) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, e := range m.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// mockPhase implements the Phase interface for testing.
type mockPhase struct {
	name string
	fn   func(ctx *Context) error
}

func (m *mockPhase) Name() string { return m.name }

func (m *mockPhase) Provision(ctx *Context) error {
	if m.fn == nil {
		return nil
	}
	return m.fn(ctx)
}

func testContext(observer Observer) *Context {
	return &Context{
		Context:  context.Background(),
		Observer: observer,
	}
}

func TestRunPhases_Success(t *testing.T) {
	t.Parallel()
	var executed []string

	observer := NewMockObserver()
	ctx := testContext(observer)

	err := RunPhases(ctx, []Phase{
		&mockPhase{name: "package", fn: func(_ *Context) error { executed = append(executed, "package"); return nil }},
		&mockPhase{name: "deploy", fn: func(_ *Context) error { executed = append(executed, "deploy"); return nil }},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"package", "deploy"}, executed)
	assert.Len(t, observer.EventsOfType(EventPhaseCompleted), 2)
}

func TestRunPhases_FatalStopsPipeline(t *testing.T) {
	t.Parallel()
	var executed []string
	boom := errors.New("bucket gone")

	observer := NewMockObserver()
	ctx := testContext(observer)

	err := RunPhases(ctx, []Phase{
		&mockPhase{name: "first", fn: func(_ *Context) error { executed = append(executed, "first"); return boom }},
		&mockPhase{name: "second", fn: func(_ *Context) error { executed = append(executed, "second"); return nil }},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "first phase failed")
	assert.Equal(t, []string{"first"}, executed, "later phases must not run after a fatal error")
	assert.Len(t, observer.EventsOfType(EventPhaseFailed), 1)
}

func TestRunPhases_ActionRequiredStopsPipeline(t *testing.T) {
	t.Parallel()
	var executed []string
	action := &ActionRequiredError{Step: "deploy", Instructions: []string{"create the environment"}}

	observer := NewMockObserver()
	ctx := testContext(observer)

	err := RunPhases(ctx, []Phase{
		&mockPhase{name: "deploy", fn: func(_ *Context) error { executed = append(executed, "deploy"); return action }},
		&mockPhase{name: "monitoring", fn: func(_ *Context) error { executed = append(executed, "monitoring"); return nil }},
	})

	require.Error(t, err)
	var got *ActionRequiredError
	require.ErrorAs(t, err, &got, "the error must survive unwrapped for exit-code mapping")
	assert.Equal(t, []string{"deploy"}, executed)
}

func TestRunPhases_AttentionContinuesAndIsReturned(t *testing.T) {
	t.Parallel()
	var executed []string
	attention := &AttentionError{Step: "deploy", LastState: "status=Updating health=Grey"}

	observer := NewMockObserver()
	ctx := testContext(observer)

	err := RunPhases(ctx, []Phase{
		&mockPhase{name: "deploy", fn: func(_ *Context) error { executed = append(executed, "deploy"); return attention }},
		&mockPhase{name: "monitoring", fn: func(_ *Context) error { executed = append(executed, "monitoring"); return nil }},
	})

	require.Error(t, err)
	var got *AttentionError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, []string{"deploy", "monitoring"}, executed,
		"a degraded outcome must not block the remaining phases")
}

func TestRunPhases_WarningsSummarizedPerPhase(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	ctx := testContext(observer)

	err := RunPhases(ctx, []Phase{
		&mockPhase{name: "provision-network", fn: func(c *Context) error {
			c.Warn("provision-network", "data boundary missing", "provision the data tier")
			return nil
		}},
	})

	require.NoError(t, err, "warnings are not failures")
	require.Len(t, ctx.Warnings(), 1)
	assert.Equal(t, "data boundary missing", ctx.Warnings()[0].Message)

	var foundSummary, foundNextSteps bool
	for _, line := range observer.Lines {
		if line == "[provision-network] summary: 1 warning(s)" {
			foundSummary = true
		}
		if line == "[provision-network]     next steps: provision the data tier" {
			foundNextSteps = true
		}
	}
	assert.True(t, foundSummary, "phase summary must list the warning count")
	assert.True(t, foundNextSteps, "phase summary must include next steps")
}

func TestWarningsFor(t *testing.T) {
	t.Parallel()
	ctx := testContext(NewMockObserver())
	ctx.Warn("a", "first", "")
	ctx.Warn("b", "second", "")
	ctx.Warn("a", "third", "")

	require.Len(t, ctx.WarningsFor("a"), 2)
	require.Len(t, ctx.WarningsFor("b"), 1)
	assert.Empty(t, ctx.WarningsFor("c"))
}
