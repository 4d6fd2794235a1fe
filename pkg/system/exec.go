package system

import (
	"fmt"
	"os/exec"

	"jetup/pkg/runner"
)

// CommandRunner defines an interface for running commands.
// This allows for mocking in tests.
// Re-exported from pkg/runner to keep call sites short.
type CommandRunner = runner.CommandRunner

// LiveCommandRunner is an implementation of CommandRunner that runs commands on the live system.
type LiveCommandRunner struct{}

// Run executes the given command and returns its combined output. A
// non-empty user runs the command as that user via sudo.
func (r *LiveCommandRunner) Run(user, command string) ([]byte, error) {
	var cmd *exec.Cmd
	if user == "" {
		cmd = exec.Command("sh", "-c", command)
	} else {
		cmd = exec.Command("sudo", "-u", user, "sh", "-c", command)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("command %q: %w", command, err)
	}
	return out, nil
}
