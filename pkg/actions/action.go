package actions

import (
	"jetup/pkg/lock"
	"jetup/pkg/log"
	"jetup/pkg/system"
)

// Action represents a single, discrete, idempotent change to the system.
// Actions carry no rollback: a required action that cannot be made to
// succeed fails the whole run instead.
type Action interface {
	// Description returns a human-readable string of what the action does.
	Description() string
	// Resources returns the locks the action contends on. The executor
	// waits for all of them before every attempt.
	Resources() []lock.Resource
	// Apply executes the action.
	Apply(runner system.CommandRunner, logger log.Logger) error
	// ExecutionDetails returns a slice of strings describing the low-level operations.
	ExecutionDetails() []string
}
