package optional_test

import (
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetup/pkg/optional"
	"jetup/pkg/test"
)

func setupInvoker(t *testing.T) (*test.MockCommandRunner, afero.Fs, *test.MockLogger, *optional.Invoker) {
	t.Helper()
	runner := test.NewMockCommandRunner()
	fs := afero.NewMemMapFs()
	logger := test.NewMockLogger(slog.LevelDebug)
	return runner, fs, logger, optional.NewInvoker(runner, fs, logger)
}

func TestRunIfPresentSkipsMissingScript(t *testing.T) {
	runner, _, logger, invoker := setupInvoker(t)

	invoker.RunIfPresent("Pin Terminal to dock", "/scripts/pin_terminal.sh", nil)

	// Exactly one informational skip, and nothing was executed.
	assert.Equal(t, 1, logger.CountMessages("Skipping optional step"))
	assert.Empty(t, runner.Commands)
}

func TestRunIfPresentRunsScriptAsRoot(t *testing.T) {
	runner, fs, logger, invoker := setupInvoker(t)
	require.NoError(t, afero.WriteFile(fs, "/scripts/terminal_font.sh", []byte("#!/bin/sh\n"), 0o644))

	invoker.RunIfPresent("Set terminal font", "/scripts/terminal_font.sh", []string{"Monospace", "12"})

	assert.Contains(t, runner.UserCommands["root"], "/scripts/terminal_font.sh Monospace 12")
	assert.True(t, logger.HasMessage("Optional step complete: Set terminal font"))

	info, err := fs.Stat("/scripts/terminal_font.sh")
	require.NoError(t, err)
	assert.Equal(t, "-rwxr-xr-x", info.Mode().String())
}

func TestRunIfPresentWarnsOnFailure(t *testing.T) {
	runner, fs, logger, invoker := setupInvoker(t)
	require.NoError(t, afero.WriteFile(fs, "/scripts/broken.sh", []byte("#!/bin/sh\nexit 1\n"), 0o755))
	runner.SetError("root", "/scripts/broken.sh", test.ErrExit1)

	invoker.RunIfPresent("Broken step", "/scripts/broken.sh", nil)

	// Exactly one warning, and the failure never escalates.
	assert.Equal(t, 1, logger.CountMessages("WARN: Optional step failed"))
	assert.Equal(t, 0, logger.CountMessages("ERROR"))
}
