package actions

import (
	"fmt"
	"strings"

	"jetup/pkg/lock"
	"jetup/pkg/log"
	"jetup/pkg/system"
)

// PipInstallAction installs Python packages with pip.
type PipInstallAction struct {
	Python   string // interpreter, e.g. "python3"
	Packages []string
	IndexURL string // optional extra index, e.g. a wheel mirror for the board
}

func (a *PipInstallAction) Description() string {
	return fmt.Sprintf("Install Python packages %s", strings.Join(a.Packages, ", "))
}

func (a *PipInstallAction) Resources() []lock.Resource {
	return nil
}

func (a *PipInstallAction) command() string {
	python := a.Python
	if python == "" {
		python = "python3"
	}
	cmd := fmt.Sprintf("%s -m pip install --no-input", python)
	if a.IndexURL != "" {
		cmd += " --extra-index-url " + a.IndexURL
	}
	return cmd + " " + strings.Join(a.Packages, " ")
}

func (a *PipInstallAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	if len(a.Packages) == 0 {
		return fmt.Errorf("package list cannot be empty")
	}
	logger.Info("Installing Python packages", "packages", strings.Join(a.Packages, " "))
	out, err := runner.Run("", a.command())
	if err != nil {
		return fmt.Errorf("pip install: %w", err)
	}
	logger.Debug("pip install output", "output", string(out))
	return nil
}

func (a *PipInstallAction) ExecutionDetails() []string {
	return []string{"run: " + a.command()}
}

// WheelInstallAction installs a single prebuilt wheel from a URL. Board
// vendors publish ML wheels this way rather than on the package index.
type WheelInstallAction struct {
	Python string
	URL    string
}

func (a *WheelInstallAction) Description() string {
	return fmt.Sprintf("Install wheel %s", a.URL)
}

func (a *WheelInstallAction) Resources() []lock.Resource {
	return nil
}

func (a *WheelInstallAction) command() string {
	python := a.Python
	if python == "" {
		python = "python3"
	}
	return fmt.Sprintf("%s -m pip install --no-input %s", python, a.URL)
}

func (a *WheelInstallAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	if strings.TrimSpace(a.URL) == "" {
		return fmt.Errorf("wheel URL cannot be empty")
	}
	logger.Info("Installing wheel", "url", a.URL)
	out, err := runner.Run("", a.command())
	if err != nil {
		return fmt.Errorf("wheel install: %w", err)
	}
	logger.Debug("wheel install output", "output", string(out))
	return nil
}

func (a *WheelInstallAction) ExecutionDetails() []string {
	return []string{"run: " + a.command()}
}
