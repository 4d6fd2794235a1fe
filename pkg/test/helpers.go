package test

import (
	"errors"

	"jetup/pkg/lock"
)

// ErrExit1 stands in for a command exiting with a non-zero status.
var ErrExit1 = errors.New("exit status 1")

// MarkLocksFree configures the mock so every well-known package-database
// lock probes as free. Without this, the mock's default success for every
// command makes fuser report every lock as held.
func MarkLocksFree(r *MockCommandRunner) {
	for _, res := range lock.AptResources() {
		r.SetError("", "fuser "+res.LockPath, ErrExit1)
	}
}

// MarkLockHeldTimes scripts a lock to probe held n times before becoming
// free for good.
func MarkLockHeldTimes(r *MockCommandRunner, res lock.Resource, n int) {
	results := make([]ScriptedResult, n)
	for i := range results {
		results[i] = ScriptedResult{}
	}
	r.Script("", "fuser "+res.LockPath, results...)
	r.SetError("", "fuser "+res.LockPath, ErrExit1)
}
