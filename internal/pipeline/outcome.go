package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes reported by the CLI. Success covers success-or-warning;
// ActionRequired and NeedsAttention are deliberately distinct from a generic
// failure so CI jobs can branch on them.
const (
	ExitSuccess        = 0
	ExitFailure        = 1
	ExitActionRequired = 3
	ExitNeedsAttention = 4
)

// ActionRequiredError reports an incomplete run that needs a one-time manual
// step before a re-run can finish (for example: the target environment does
// not exist and this pipeline refuses to create it blindly).
type ActionRequiredError struct {
	Step         string
	Instructions []string
}

func (e *ActionRequiredError) Error() string {
	return fmt.Sprintf("%s: action required:\n  %s", e.Step, strings.Join(e.Instructions, "\n  "))
}

// AttentionError reports a degraded-terminal outcome: the run finished but
// the observed state needs an operator's eyes (for example: the environment
// did not reach a healthy state before the wait timed out).
type AttentionError struct {
	Step      string
	LastState string
	Hints     []string
}

func (e *AttentionError) Error() string {
	return fmt.Sprintf("%s: needs attention (last observed state: %s):\n  %s",
		e.Step, e.LastState, strings.Join(e.Hints, "\n  "))
}

// ExitCode maps a pipeline error to the CLI exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var action *ActionRequiredError
	if errors.As(err, &action) {
		return ExitActionRequired
	}
	var attention *AttentionError
	if errors.As(err, &attention) {
		return ExitNeedsAttention
	}
	return ExitFailure
}
