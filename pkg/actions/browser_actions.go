package actions

import (
	"fmt"

	"jetup/pkg/lock"
	"jetup/pkg/log"
	"jetup/pkg/system"
)

// SnapInstallAction installs a snap, falling back to an apt package when
// the snap store is unreachable or snapd is missing.
type SnapInstallAction struct {
	Name            string
	Classic         bool
	FallbackPackage string
}

func (a *SnapInstallAction) Description() string {
	return fmt.Sprintf("Install snap %s", a.Name)
}

func (a *SnapInstallAction) Resources() []lock.Resource {
	// The apt fallback touches the package database.
	return lock.AptResources()
}

func (a *SnapInstallAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	cmd := fmt.Sprintf("snap install %s", a.Name)
	if a.Classic {
		cmd += " --classic"
	}
	logger.Info("Installing snap", "snap", a.Name)
	if _, err := runner.Run("", cmd); err == nil {
		return nil
	} else if a.FallbackPackage == "" {
		return fmt.Errorf("snap install %s: %w", a.Name, err)
	} else {
		logger.Warn("Snap install failed, falling back to apt", "snap", a.Name, "package", a.FallbackPackage, "error", err)
	}
	out, err := runner.Run("", aptGet("install "+a.FallbackPackage))
	if err != nil {
		return fmt.Errorf("apt fallback for snap %s: %w (%s)", a.Name, err, string(out))
	}
	return nil
}

func (a *SnapInstallAction) ExecutionDetails() []string {
	details := []string{fmt.Sprintf("run: snap install %s", a.Name)}
	if a.Classic {
		details[0] += " --classic"
	}
	if a.FallbackPackage != "" {
		details = append(details, "on failure run: "+aptGet("install "+a.FallbackPackage))
	}
	return details
}

// FlatpakRemoteAction registers a flatpak remote if it is not already
// configured.
type FlatpakRemoteAction struct {
	Remote string
	URL    string
}

func (a *FlatpakRemoteAction) Description() string {
	return fmt.Sprintf("Add flatpak remote %s", a.Remote)
}

func (a *FlatpakRemoteAction) Resources() []lock.Resource {
	return nil
}

func (a *FlatpakRemoteAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	logger.Info("Adding flatpak remote", "remote", a.Remote, "url", a.URL)
	cmd := fmt.Sprintf("flatpak remote-add --if-not-exists %s %s", a.Remote, a.URL)
	if out, err := runner.Run("", cmd); err != nil {
		return fmt.Errorf("flatpak remote-add %s: %w (%s)", a.Remote, err, string(out))
	}
	return nil
}

func (a *FlatpakRemoteAction) ExecutionDetails() []string {
	return []string{fmt.Sprintf("run: flatpak remote-add --if-not-exists %s %s", a.Remote, a.URL)}
}

// FlatpakInstallAction installs an application ref from a flatpak remote.
type FlatpakInstallAction struct {
	Remote string
	Ref    string
}

func (a *FlatpakInstallAction) Description() string {
	return fmt.Sprintf("Install flatpak %s", a.Ref)
}

func (a *FlatpakInstallAction) Resources() []lock.Resource {
	return nil
}

func (a *FlatpakInstallAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	logger.Info("Installing flatpak", "ref", a.Ref, "remote", a.Remote)
	cmd := fmt.Sprintf("flatpak install -y --noninteractive %s %s", a.Remote, a.Ref)
	if out, err := runner.Run("", cmd); err != nil {
		return fmt.Errorf("flatpak install %s: %w (%s)", a.Ref, err, string(out))
	}
	return nil
}

func (a *FlatpakInstallAction) ExecutionDetails() []string {
	return []string{fmt.Sprintf("run: flatpak install -y --noninteractive %s %s", a.Remote, a.Ref)}
}
