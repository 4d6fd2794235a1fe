package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"jetup/pkg/log"
	"jetup/pkg/model"
	"jetup/pkg/system"
)

// Defaults applied to manifest sections that leave a field empty.
const (
	DefaultScriptsDir  = "scripts"
	DefaultSwapPath    = "/swapfile"
	DefaultCodeKeyring = "/usr/share/keyrings/packages.microsoft.gpg"
	DefaultCodeList    = "/etc/apt/sources.list.d/vscode.list"
)

// LoadManifest reads, defaults, and validates the manifest at filename.
// The scripts directory is resolved relative to the manifest's own
// directory when not absolute, so a manifest can travel with its helper
// scripts.
func LoadManifest(filename string, logger log.Logger) (*model.Manifest, error) {
	content, err := afero.ReadFile(system.AppFs, filename)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", filename, err)
	}

	var m model.Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", filename, err)
	}

	applyDefaults(&m)
	if !filepath.IsAbs(m.ScriptsDir) {
		m.ScriptsDir = filepath.Join(filepath.Dir(filename), m.ScriptsDir)
	}

	if errs := m.Validate(); len(errs) > 0 {
		return nil, errs
	}

	logger.Debug("Loaded manifest", "path", filename, "scripts_dir", m.ScriptsDir)
	return &m, nil
}

func applyDefaults(m *model.Manifest) {
	if m.ScriptsDir == "" {
		m.ScriptsDir = DefaultScriptsDir
	}
	if m.Swap != nil && m.Swap.Path == "" {
		m.Swap.Path = DefaultSwapPath
	}
	if m.Code != nil {
		if m.Code.KeyringPath == "" {
			m.Code.KeyringPath = DefaultCodeKeyring
		}
		if m.Code.ListPath == "" {
			m.Code.ListPath = DefaultCodeList
		}
	}
}
