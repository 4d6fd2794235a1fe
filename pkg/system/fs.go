package system

import "github.com/spf13/afero"

// AppFs is the filesystem used for all file access. Tests replace it with
// an in-memory filesystem.
var AppFs afero.Fs = afero.NewOsFs()
