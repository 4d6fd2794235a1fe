package actions

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/afero"

	"jetup/pkg/lock"
	"jetup/pkg/log"
	"jetup/pkg/system"
)

// CondaInstallAction downloads a Conda distribution installer and runs it
// in batch mode. It is a no-op when the install prefix already exists.
type CondaInstallAction struct {
	InstallerURL string
	Prefix       string
	// InitUser, when set, gets "conda init" run for its shell profile.
	InitUser string
}

func (a *CondaInstallAction) Description() string {
	return fmt.Sprintf("Install Conda distribution to %s", a.Prefix)
}

func (a *CondaInstallAction) Resources() []lock.Resource {
	return nil
}

func (a *CondaInstallAction) installerPath() string {
	return "/tmp/" + path.Base(a.InstallerURL)
}

func (a *CondaInstallAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	exists, err := afero.DirExists(system.AppFs, a.Prefix)
	if err != nil {
		return fmt.Errorf("checking %s: %w", a.Prefix, err)
	}
	if exists {
		logger.Info("Conda prefix already present, skipping install", "prefix", a.Prefix)
		return nil
	}

	installer := a.installerPath()
	logger.Info("Downloading Conda installer", "url", a.InstallerURL)
	if out, err := runner.Run("", fmt.Sprintf("curl -fsSL -o %s %s", installer, a.InstallerURL)); err != nil {
		return fmt.Errorf("downloading installer: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	logger.Info("Running Conda installer", "prefix", a.Prefix)
	if out, err := runner.Run("", fmt.Sprintf("bash %s -b -p %s", installer, a.Prefix)); err != nil {
		return fmt.Errorf("running installer: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	if a.InitUser != "" {
		initCmd := fmt.Sprintf("%s/bin/conda init bash", a.Prefix)
		if out, err := runner.Run(a.InitUser, initCmd); err != nil {
			return fmt.Errorf("conda init for %s: %w (%s)", a.InitUser, err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}

func (a *CondaInstallAction) ExecutionDetails() []string {
	details := []string{
		fmt.Sprintf("download: %s -> %s", a.InstallerURL, a.installerPath()),
		fmt.Sprintf("run: bash %s -b -p %s", a.installerPath(), a.Prefix),
	}
	if a.InitUser != "" {
		details = append(details, fmt.Sprintf("run as %s: %s/bin/conda init bash", a.InitUser, a.Prefix))
	}
	return details
}
