// Package optional runs auxiliary helper scripts whose absence or failure
// must never abort a provisioning run. This is the deliberate opposite of
// the executor's policy for required actions: required steps must succeed,
// optional steps must not abort the run.
package optional

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"jetup/pkg/log"
	"jetup/pkg/runner"
)

// Invoker runs optional helper scripts.
type Invoker struct {
	runner runner.CommandRunner
	fs     afero.Fs
	logger log.Logger
}

func NewInvoker(r runner.CommandRunner, fs afero.Fs, logger log.Logger) *Invoker {
	return &Invoker{runner: r, fs: fs, logger: logger}
}

// RunIfPresent runs the script at path with args if it exists, logging the
// outcome. A missing script logs a single informational skip; a failing
// script logs a single warning. Neither is ever an error.
func (i *Invoker) RunIfPresent(label, path string, args []string) {
	exists, err := afero.Exists(i.fs, path)
	if err != nil || !exists {
		i.logger.Info("Skipping optional step, script not found", "step", label, "path", path)
		return
	}

	if err := i.fs.Chmod(path, 0o755); err != nil {
		i.logger.Warn("Optional step failed", "step", label, "path", path, "error", err)
		return
	}

	cmd := path
	if len(args) > 0 {
		cmd += " " + strings.Join(args, " ")
	}
	out, err := i.runner.Run("root", cmd)
	if err != nil {
		i.logger.Warn("Optional step failed", "step", label, "path", path, "error", err, "output", strings.TrimSpace(string(out)))
		return
	}
	i.logger.Info(fmt.Sprintf("Optional step complete: %s", label), "output", strings.TrimSpace(string(out)))
}
