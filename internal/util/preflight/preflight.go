// Package preflight runs the lint/test gate the CI variant executes before
// the packager step.
package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultCommands is the gate used when the configuration does not override
// it: the application's linter and test suite.
func DefaultCommands() []string {
	return []string{
		"python -m flake8 app",
		"python -m pytest -q",
	}
}

// Result records the outcome of a single gate command.
type Result struct {
	Command string
	Err     error
}

// Run executes the gate commands sequentially in dir, stopping at the first
// failure. Output streams to the operator's terminal.
func Run(ctx context.Context, dir string, commands []string) ([]Result, error) {
	if len(commands) == 0 {
		commands = DefaultCommands()
	}

	var results []Result
	for _, line := range commands {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if _, err := exec.LookPath(fields[0]); err != nil {
			return results, fmt.Errorf("preflight command %q not found in PATH: %w", fields[0], err)
		}

		cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
		cmd.Dir = dir
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		err := cmd.Run()
		results = append(results, Result{Command: line, Err: err})
		if err != nil {
			return results, fmt.Errorf("preflight gate failed at %q: %w", line, err)
		}
	}
	return results, nil
}
