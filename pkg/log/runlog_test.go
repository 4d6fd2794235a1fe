package log

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRunLogCreatesTimestampedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	f, path, err := OpenRunLog(fs, "/var/log/jetup", now)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "/var/log/jetup/jetup-run-20260314-092653.log", path)
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOpenRunLogAppends(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Now()

	f, path, err := OpenRunLog(fs, "/logs", now)
	require.NoError(t, err)
	_, err = f.Write([]byte("first\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// Reopening the same run's file must not truncate it.
	f2, _, err := OpenRunLog(fs, "/logs", now)
	require.NoError(t, err)
	_, err = f2.Write([]byte("second\n"))
	require.NoError(t, err)
	require.NoError(t, f2.Close())

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(content))
}

func TestOpenRunLogCreatesDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()

	f, _, err := OpenRunLog(fs, "/deep/nested/dir", time.Now())
	require.NoError(t, err)
	require.NoError(t, f.Close())

	exists, err := afero.DirExists(fs, "/deep/nested/dir")
	require.NoError(t, err)
	assert.True(t, exists)
}
