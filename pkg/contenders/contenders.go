// Package contenders suspends the background services that compete for the
// package database while a provisioning run is in flight, and resumes them
// when the run ends, however it ends.
package contenders

import (
	"fmt"

	"jetup/pkg/log"
	"jetup/pkg/runner"
)

// Units are the systemd units that take package-database locks on their
// own schedule.
var Units = []string{
	"apt-daily.timer",
	"apt-daily-upgrade.timer",
	"unattended-upgrades.service",
}

// Guard represents the suspended state of the background contenders.
// Callers must arrange for Resume to run on every exit path, typically
// with defer immediately after Suspend.
type Guard struct {
	runner  runner.CommandRunner
	logger  log.Logger
	resumed bool
}

// Suspend stops each contender unit. Stopping is best-effort and logged
// per unit; a unit that is not present on the system is not an error.
func Suspend(r runner.CommandRunner, logger log.Logger) *Guard {
	for _, unit := range Units {
		if _, err := r.Run("", fmt.Sprintf("systemctl stop %s", unit)); err != nil {
			logger.Warn("Could not stop background unit", "unit", unit, "error", err)
			continue
		}
		logger.Info("Stopped background unit", "unit", unit)
	}
	return &Guard{runner: r, logger: logger}
}

// Resume restarts the contender units. It is idempotent; the second and
// later calls do nothing.
func (g *Guard) Resume() {
	if g.resumed {
		return
	}
	g.resumed = true
	for _, unit := range Units {
		if _, err := g.runner.Run("", fmt.Sprintf("systemctl start %s", unit)); err != nil {
			g.logger.Warn("Could not restart background unit", "unit", unit, "error", err)
			continue
		}
		g.logger.Info("Restarted background unit", "unit", unit)
	}
}
