// Package runner defines the interface for shell command execution.
// It exists as its own package to break import cycles between the system
// and testing packages.
package runner

// CommandRunner runs a shell command, optionally as another user, and
// returns its combined output. Implementations are expected to be safe to
// call repeatedly with the same command.
type CommandRunner interface {
	Run(user, command string) ([]byte, error)
}
