// Package main is the entry point for the bcb-deploy CLI.
//
// bcb-deploy packages the better-call-buffet application, provisions its
// network and monitoring prerequisites and pushes releases to the managed
// hosting environment through a sequence of idempotent, dependency-ordered
// steps.
//
// Commands: package, provision-network, deploy, provision-monitoring,
// run-all.
//
// Exit codes: 0 success or warning, 1 fatal failure, 3 action required
// (a manual step is missing), 4 needs attention (degraded outcome).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mariobrusarosco/better-call-buffet-sub000/cmd/bcb-deploy/commands"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/pipeline"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// An operator interrupt halts the pipeline mid-step; the next run's
	// idempotent checks are the recovery mechanism.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pipeline.ExitCode(err))
	}
}
