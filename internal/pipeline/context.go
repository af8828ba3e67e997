package pipeline

import (
	"context"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/config"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
)

// Context wraps all dependencies and state needed by a pipeline phase.
// It replaces any ambient region/account globals: partition, credentials and
// timeouts travel with it into every component.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Registry registry.Client
	Observer Observer
	Timeouts *config.Timeouts

	warnings []Warning
}

// NewContext creates a new pipeline context.
func NewContext(ctx context.Context, cfg *config.Config, reg registry.Client) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Registry: reg,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}

// Warning is a non-fatal finding collected during a phase and reported in
// the phase summary instead of being silently swallowed.
type Warning struct {
	Phase   string
	Message string
	// NextSteps tells the operator how to resolve the warning before or
	// after a re-run.
	NextSteps string
}

// Warn records a warning and emits it immediately through the observer.
func (c *Context) Warn(phase, message, nextSteps string) {
	c.warnings = append(c.warnings, Warning{Phase: phase, Message: message, NextSteps: nextSteps})
	c.Observer.Event(Event{
		Type:    EventWarning,
		Phase:   phase,
		Message: message,
	})
}

// Warnings returns all warnings collected so far.
func (c *Context) Warnings() []Warning {
	return c.warnings
}

// WarningsFor returns the warnings collected by one phase.
func (c *Context) WarningsFor(phase string) []Warning {
	var out []Warning
	for _, w := range c.warnings {
		if w.Phase == phase {
			out = append(out, w)
		}
	}
	return out
}
