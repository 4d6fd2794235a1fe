package lock_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jetup/pkg/lock"
	"jetup/pkg/test"
)

func TestWaiterReturnsImmediatelyWhenFree(t *testing.T) {
	runner := test.NewMockCommandRunner()
	test.MarkLocksFree(runner)
	clk := test.NewFakeClock()
	logger := test.NewMockLogger(slog.LevelDebug)

	waiter := lock.NewWaiter(runner, clk, logger, 3*time.Second)
	waiter.WaitUntilFree(lock.AptResources())

	assert.Empty(t, clk.Sleeps)
	assert.Zero(t, logger.CountMessages("Waiting for lock"))
}

func TestWaiterPollsUntilFree(t *testing.T) {
	runner := test.NewMockCommandRunner()
	test.MarkLocksFree(runner)
	test.MarkLockHeldTimes(runner, lock.DpkgLock, 2)
	clk := test.NewFakeClock()
	logger := test.NewMockLogger(slog.LevelDebug)

	waiter := lock.NewWaiter(runner, clk, logger, 3*time.Second)
	waiter.WaitUntilFree(lock.AptResources())

	// One log entry per poll that found the lock held, one sleep each.
	assert.Equal(t, 2, logger.CountMessages("Waiting for lock"))
	assert.Equal(t, []time.Duration{3 * time.Second, 3 * time.Second}, clk.Sleeps)
}

func TestWaiterChecksEveryResource(t *testing.T) {
	runner := test.NewMockCommandRunner()
	test.MarkLocksFree(runner)
	test.MarkLockHeldTimes(runner, lock.AptListsLock, 1)
	clk := test.NewFakeClock()
	logger := test.NewMockLogger(slog.LevelDebug)

	waiter := lock.NewWaiter(runner, clk, logger, time.Second)
	waiter.WaitUntilFree(lock.AptResources())

	assert.Equal(t, 1, logger.CountMessages("apt-lists"))
	assert.Len(t, clk.Sleeps, 1)
}

func TestWaiterDefaultInterval(t *testing.T) {
	runner := test.NewMockCommandRunner()
	test.MarkLocksFree(runner)
	test.MarkLockHeldTimes(runner, lock.DpkgLock, 1)
	clk := test.NewFakeClock()
	logger := test.NewMockLogger(slog.LevelDebug)

	waiter := lock.NewWaiter(runner, clk, logger, 0)
	waiter.WaitUntilFree([]lock.Resource{lock.DpkgLock})

	assert.Equal(t, []time.Duration{lock.DefaultPollInterval}, clk.Sleeps)
}

func TestHeld(t *testing.T) {
	runner := test.NewMockCommandRunner()
	clk := test.NewFakeClock()
	logger := test.NewMockLogger(slog.LevelDebug)
	waiter := lock.NewWaiter(runner, clk, logger, time.Second)

	// The mock succeeds by default, which is fuser's "has an active user".
	assert.True(t, waiter.Held(lock.DpkgLock))

	runner.SetError("", "fuser "+lock.DpkgLock.LockPath, test.ErrExit1)
	assert.False(t, waiter.Held(lock.DpkgLock))
}
