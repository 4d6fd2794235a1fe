package system

import (
	"fmt"

	"github.com/spf13/afero"
)

// RebootMarkerPath is the file the distribution drops when an installed
// package wants a reboot.
const RebootMarkerPath = "/var/run/reboot-required"

// RebootRequired reports whether the reboot marker file exists.
func RebootRequired(fs afero.Fs) bool {
	ok, err := afero.Exists(fs, RebootMarkerPath)
	return err == nil && ok
}

// UnitActive reports whether a systemd unit is currently active.
func UnitActive(runner CommandRunner, unit string) bool {
	_, err := runner.Run("", fmt.Sprintf("systemctl is-active --quiet %s", unit))
	return err == nil
}
