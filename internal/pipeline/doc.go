// Package pipeline composes the deployment components into one ordered,
// idempotent provisioning workflow.
//
// Each component implements Phase and runs strictly sequentially; a phase
// only starts after the previous one reported terminal success or an
// explicit continue-with-warning. Fatal errors abort the whole pipeline;
// there is no rollback. Every remote creation is idempotent, so a re-run
// converges instead of duplicating resources.
package pipeline
