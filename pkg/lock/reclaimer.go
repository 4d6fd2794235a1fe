package lock

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"jetup/pkg/log"
	"jetup/pkg/runner"
)

// Outcome classifies one reclaim sub-step. Every sub-step is logged with
// its own outcome instead of being silently swallowed.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// KnownContenders are the processes that are known to hold package-database
// locks on a desktop system.
var KnownContenders = []string{"apt", "apt-get", "dpkg", "unattended-upgrade"}

// Reclaimer force-clears locks believed to be stuck: it terminates known
// contender processes, removes stale lock files, and runs a repair pass on
// the package database. Every sub-step is best-effort; Reclaim exists to
// leave the system in a retriable state, not to guarantee success. It is
// idempotent and safe to call when nothing is actually stale.
type Reclaimer struct {
	runner runner.CommandRunner
	fs     afero.Fs
	logger log.Logger
}

func NewReclaimer(r runner.CommandRunner, fs afero.Fs, logger log.Logger) *Reclaimer {
	return &Reclaimer{runner: r, fs: fs, logger: logger}
}

// Reclaim clears the given resources. It never returns an error.
func (c *Reclaimer) Reclaim(resources []Resource) {
	for _, name := range KnownContenders {
		c.killContender(name)
	}
	for _, res := range resources {
		c.removeArtifact(res)
	}
	c.repairDatabase()
}

func (c *Reclaimer) killContender(name string) {
	// pkill exits non-zero when no process matched, which is the common
	// case and not a failure.
	_, err := c.runner.Run("", fmt.Sprintf("pkill -9 -x %s", name))
	outcome := OutcomeSucceeded
	if err != nil {
		outcome = OutcomeSkipped
	}
	c.logger.Info("Reclaim: terminate contender", "process", name, "outcome", string(outcome))
}

func (c *Reclaimer) removeArtifact(res Resource) {
	err := c.fs.Remove(res.LockPath)
	switch {
	case err == nil:
		c.logger.Info("Reclaim: remove lock file", "resource", res.ID, "path", res.LockPath, "outcome", string(OutcomeSucceeded))
	case os.IsNotExist(err):
		c.logger.Info("Reclaim: remove lock file", "resource", res.ID, "path", res.LockPath, "outcome", string(OutcomeSkipped))
	default:
		c.logger.Warn("Reclaim: remove lock file", "resource", res.ID, "path", res.LockPath, "outcome", string(OutcomeFailed), "error", err)
	}
}

func (c *Reclaimer) repairDatabase() {
	out, err := c.runner.Run("", "dpkg --configure -a")
	if err != nil {
		c.logger.Warn("Reclaim: repair package database", "outcome", string(OutcomeFailed), "error", err, "output", string(out))
		return
	}
	c.logger.Info("Reclaim: repair package database", "outcome", string(OutcomeSucceeded))
}
