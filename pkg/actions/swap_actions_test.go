package actions_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetup/pkg/actions"
	"jetup/pkg/system"
)

func writeFstab(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(system.AppFs, "/etc/fstab", []byte(content), 0o644))
}

func TestSwapFileActionCreatesAndPersists(t *testing.T) {
	runner, logger := setupActionTest(t)
	writeFstab(t, "/dev/root / ext4 defaults 0 1\n")
	action := &actions.SwapFileAction{Path: "/swapfile", SizeGB: 8}

	require.NoError(t, action.Apply(runner, logger))

	assert.Equal(t, []string{
		"fallocate -l 8G /swapfile",
		"chmod 600 /swapfile",
		"mkswap /swapfile",
		"swapon /swapfile",
	}, runner.Commands)

	content, err := afero.ReadFile(system.AppFs, "/etc/fstab")
	require.NoError(t, err)
	assert.Equal(t, "/dev/root / ext4 defaults 0 1\n/swapfile none swap sw 0 0\n", string(content))
}

func TestSwapFileActionIsIdempotent(t *testing.T) {
	runner, logger := setupActionTest(t)
	writeFstab(t, "/swapfile none swap sw 0 0\n")
	action := &actions.SwapFileAction{Path: "/swapfile", SizeGB: 8}

	require.NoError(t, action.Apply(runner, logger))

	assert.Empty(t, runner.Commands)
	assert.True(t, logger.HasMessage("already configured"))
}

func TestSwapFileActionAddsTrailingNewline(t *testing.T) {
	runner, logger := setupActionTest(t)
	writeFstab(t, "/dev/root / ext4 defaults 0 1")
	action := &actions.SwapFileAction{Path: "/swapfile", SizeGB: 4}

	require.NoError(t, action.Apply(runner, logger))

	content, err := afero.ReadFile(system.AppFs, "/etc/fstab")
	require.NoError(t, err)
	assert.Equal(t, "/dev/root / ext4 defaults 0 1\n/swapfile none swap sw 0 0\n", string(content))
}

func TestSwapFileActionRejectsBadSize(t *testing.T) {
	runner, logger := setupActionTest(t)
	writeFstab(t, "")

	err := (&actions.SwapFileAction{Path: "/swapfile", SizeGB: 0}).Apply(runner, logger)
	assert.Error(t, err)
	assert.Empty(t, runner.Commands)
}

func TestSwapFileActionStopsOnCommandFailure(t *testing.T) {
	runner, logger := setupActionTest(t)
	writeFstab(t, "")
	runner.SetError("", "mkswap /swapfile", assert.AnError)
	action := &actions.SwapFileAction{Path: "/swapfile", SizeGB: 8}

	err := action.Apply(runner, logger)
	require.Error(t, err)

	// fstab must not record a swap file that was never activated.
	content, readErr := afero.ReadFile(system.AppFs, "/etc/fstab")
	require.NoError(t, readErr)
	assert.NotContains(t, string(content), "/swapfile")
}

func TestSwapFileActionExecutionDetailsDiff(t *testing.T) {
	_, _ = setupActionTest(t)
	writeFstab(t, "/dev/root / ext4 defaults 0 1\n")
	action := &actions.SwapFileAction{Path: "/swapfile", SizeGB: 8}

	details := action.ExecutionDetails()
	assert.Contains(t, details[0], "fallocate -l 8G /swapfile")
	assert.Contains(t, details, "--- diff ---")
}
