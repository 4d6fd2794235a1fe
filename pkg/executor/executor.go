// Package executor wraps a mutating action with lock waiting, bounded
// retries, exponential backoff, and a reclaim-and-retry fallback.
package executor

import (
	"fmt"
	"time"

	"jetup/pkg/actions"
	"jetup/pkg/clock"
	"jetup/pkg/lock"
	"jetup/pkg/log"
	"jetup/pkg/runner"
)

const (
	// DefaultMaxAttempts is the retry ceiling for a required action.
	DefaultMaxAttempts = 5
	// DefaultInitialDelay is the backoff before the second attempt; it
	// doubles after each further failure.
	DefaultInitialDelay = 4 * time.Second
)

// Result reports how an action ended.
type Result struct {
	// Attempts is the number of attempts performed, counting from 1.
	Attempts int
}

// ExhaustedError is returned when an action failed on every attempt of its
// retry budget. It is the one failure that escalates to the top level: a
// mutating step that never succeeds leaves the rest of the run on an
// unverified system.
type ExhaustedError struct {
	Action   string
	Attempts int
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("action %q failed after %d attempts: %v", e.Action, e.Attempts, e.LastErr)
}

func (e *ExhaustedError) Unwrap() error { return e.LastErr }

// Executor runs actions with retries. A zero MaxAttempts or InitialDelay
// falls back to the defaults.
type Executor struct {
	Runner       runner.CommandRunner
	Logger       log.Logger
	Waiter       *lock.Waiter
	Reclaimer    *lock.Reclaimer
	Clock        clock.Clock
	MaxAttempts  int
	InitialDelay time.Duration
}

// Run executes action until it succeeds or the retry budget is exhausted.
// Before every attempt it waits for the action's resources to come free.
// After a failed attempt it sleeps the current backoff delay, doubles the
// delay, and reclaims the action's resources before trying again; the
// final failed attempt does neither since no attempt follows it.
func (e *Executor) Run(action actions.Action) (Result, error) {
	maxAttempts := e.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	delay := e.InitialDelay
	if delay <= 0 {
		delay = DefaultInitialDelay
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		e.Waiter.WaitUntilFree(action.Resources())

		e.Logger.Info("=> "+action.Description(), "attempt", attempt)
		err := action.Apply(e.Runner, e.Logger)
		if err == nil {
			if attempt > 1 {
				e.Logger.Info("Action succeeded after retries", "action", action.Description(), "attempts", attempt)
			}
			return Result{Attempts: attempt}, nil
		}
		lastErr = err
		e.Logger.Warn("Action attempt failed", "action", action.Description(), "attempt", attempt, "error", err)

		if attempt == maxAttempts {
			break
		}
		e.Logger.Info("Backing off before retry", "delay", delay.String())
		e.Clock.Sleep(delay)
		delay *= 2
		e.Reclaimer.Reclaim(action.Resources())
	}

	exhausted := &ExhaustedError{Action: action.Description(), Attempts: maxAttempts, LastErr: lastErr}
	e.Logger.Error("Action exhausted its retry budget", "action", action.Description(), "attempts", maxAttempts, "error", lastErr)
	return Result{Attempts: maxAttempts}, exhausted
}
