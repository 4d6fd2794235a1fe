package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// RunLogPrefix is the fixed prefix of every run-log file name.
const RunLogPrefix = "jetup-run-"

const runLogTimeLayout = "20060102-150405"

// OpenRunLog creates the append-only log file for one provisioning run,
// named with RunLogPrefix plus a timestamp, owner-and-group readable.
// The file is created at the start of the run and never deleted by jetup.
// It returns the open file and its full path.
func OpenRunLog(fs afero.Fs, dir string, now time.Time) (io.WriteCloser, string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("creating log directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, RunLogPrefix+now.Format(runLogTimeLayout)+".log")
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, "", fmt.Errorf("creating run log %s: %w", path, err)
	}
	return f, path, nil
}
