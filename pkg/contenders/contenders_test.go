package contenders_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"jetup/pkg/contenders"
	"jetup/pkg/test"
)

func TestSuspendStopsEveryUnit(t *testing.T) {
	runner := test.NewMockCommandRunner()
	logger := test.NewMockLogger(slog.LevelDebug)

	contenders.Suspend(runner, logger)

	for _, unit := range contenders.Units {
		assert.Contains(t, runner.Commands, "systemctl stop "+unit)
	}
}

func TestSuspendToleratesMissingUnits(t *testing.T) {
	runner := test.NewMockCommandRunner()
	runner.SetError("", "systemctl stop unattended-upgrades.service", test.ErrExit1)
	logger := test.NewMockLogger(slog.LevelDebug)

	guard := contenders.Suspend(runner, logger)

	assert.NotNil(t, guard)
	assert.True(t, logger.HasMessage("Could not stop background unit"))
}

func TestResumeRestartsEveryUnit(t *testing.T) {
	runner := test.NewMockCommandRunner()
	logger := test.NewMockLogger(slog.LevelDebug)

	guard := contenders.Suspend(runner, logger)
	guard.Resume()

	for _, unit := range contenders.Units {
		assert.Contains(t, runner.Commands, "systemctl start "+unit)
	}
}

func TestResumeIsIdempotent(t *testing.T) {
	runner := test.NewMockCommandRunner()
	logger := test.NewMockLogger(slog.LevelDebug)

	guard := contenders.Suspend(runner, logger)
	guard.Resume()
	guard.Resume()

	assert.Equal(t, 1, runner.CountCommand("systemctl start apt-daily.timer"))
}
