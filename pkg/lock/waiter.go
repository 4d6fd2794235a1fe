package lock

import (
	"fmt"
	"time"

	"jetup/pkg/clock"
	"jetup/pkg/log"
	"jetup/pkg/runner"
)

// DefaultPollInterval is how long the Waiter sleeps between probes.
const DefaultPollInterval = 3 * time.Second

// Waiter blocks until a set of resources report no active holder. It never
// times out on its own; the retry budget of the caller bounds the total
// wait.
type Waiter struct {
	runner   runner.CommandRunner
	clock    clock.Clock
	logger   log.Logger
	interval time.Duration
}

// NewWaiter returns a Waiter polling at interval. A non-positive interval
// falls back to DefaultPollInterval.
func NewWaiter(r runner.CommandRunner, c clock.Clock, logger log.Logger, interval time.Duration) *Waiter {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Waiter{runner: r, clock: c, logger: logger, interval: interval}
}

// WaitUntilFree polls until a single pass over resources finds no active
// holder. Each poll that finds a holder emits one log entry, so long waits
// stay observable.
func (w *Waiter) WaitUntilFree(resources []Resource) {
	for {
		held, ok := w.anyHeld(resources)
		if !ok {
			return
		}
		w.logger.Info("Waiting for lock to be released", "resource", held.ID, "path", held.LockPath)
		w.clock.Sleep(w.interval)
	}
}

// Held reports whether a process currently holds the resource's lock.
// fuser exits zero exactly when the file has an active user.
func (w *Waiter) Held(r Resource) bool {
	_, err := w.runner.Run("", fmt.Sprintf("fuser %s", r.LockPath))
	return err == nil
}

func (w *Waiter) anyHeld(resources []Resource) (Resource, bool) {
	for _, r := range resources {
		if w.Held(r) {
			return r, true
		}
	}
	return Resource{}, false
}
