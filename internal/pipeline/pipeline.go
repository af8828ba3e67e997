package pipeline

import (
	"errors"
	"fmt"
	"time"
)

// Phase defines the interface for a pipeline component.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the phase. Warnings go to ctx.Warn; returning an
	// error aborts the pipeline unless it is an AttentionError, which is
	// recorded and the remaining phases still run.
	Provision(ctx *Context) error
}

// RunPhases executes the phases sequentially.
//
// Fatal errors abort immediately with the step name attached and the remote
// error surfaced verbatim. An ActionRequiredError stops the run (later
// phases depend on the missing manual step). An AttentionError is carried to
// the final result but does not stop subsequent phases; the run finished,
// the outcome just needs an operator. Warnings are summarized after each
// phase, never swallowed.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting deployment pipeline with %d phases...", len(phases))

	var needsAttention *AttentionError

	for i, phase := range phases {
		phaseStart := time.Now()
		name := phase.Name()

		ctx.Observer.Printf("========== [%d/%d] %s ==========", i+1, len(phases), name)
		ctx.Observer.Event(Event{Type: EventPhaseStarted, Phase: name, Message: "starting"})

		err := phase.Provision(ctx)
		switch {
		case err == nil:
			ctx.Observer.Event(Event{
				Type:    EventPhaseCompleted,
				Phase:   name,
				Message: fmt.Sprintf("completed in %v", time.Since(phaseStart).Round(time.Millisecond)),
			})
		default:
			var attention *AttentionError
			if errors.As(err, &attention) {
				ctx.Observer.Event(Event{Type: EventWarning, Phase: name, Message: attention.Error()})
				needsAttention = attention
				break
			}
			ctx.Observer.Event(Event{Type: EventPhaseFailed, Phase: name, Message: err.Error()})
			var action *ActionRequiredError
			if errors.As(err, &action) {
				return err
			}
			return fmt.Errorf("%s phase failed: %w", name, err)
		}

		summarize(ctx, name)
	}

	ctx.Observer.Printf("Pipeline completed in %v", time.Since(start).Round(time.Millisecond))
	if n := len(ctx.Warnings()); n > 0 {
		ctx.Observer.Printf("%d warning(s) collected; review the phase summaries above.", n)
	}
	if needsAttention != nil {
		return needsAttention
	}
	return nil
}

// summarize prints the end-of-phase warning summary with next-steps text.
func summarize(ctx *Context, phase string) {
	warnings := ctx.WarningsFor(phase)
	if len(warnings) == 0 {
		ctx.Observer.Printf("[%s] summary: ok", phase)
		return
	}
	ctx.Observer.Printf("[%s] summary: %d warning(s)", phase, len(warnings))
	for _, w := range warnings {
		ctx.Observer.Printf("[%s]   - %s", phase, w.Message)
		if w.NextSteps != "" {
			ctx.Observer.Printf("[%s]     next steps: %s", phase, w.NextSteps)
		}
	}
}
