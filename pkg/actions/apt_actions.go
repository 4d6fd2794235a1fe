package actions

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"

	"jetup/pkg/lock"
	"jetup/pkg/log"
	"jetup/pkg/system"
)

// aptGet builds an apt-get command line with interactive prompts
// suppressed.
func aptGet(args string) string {
	return "DEBIAN_FRONTEND=noninteractive apt-get -y " + args
}

// AptUpdateAction refreshes the package index.
type AptUpdateAction struct{}

func (a *AptUpdateAction) Description() string {
	return "Update package index"
}

func (a *AptUpdateAction) Resources() []lock.Resource {
	return lock.AptResources()
}

func (a *AptUpdateAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	logger.Info("Updating package index")
	out, err := runner.Run("", aptGet("update"))
	if err != nil {
		return fmt.Errorf("apt-get update: %w", err)
	}
	logger.Debug("apt-get update output", "output", string(out))
	return nil
}

func (a *AptUpdateAction) ExecutionDetails() []string {
	return []string{"run: " + aptGet("update")}
}

// AptInstallAction installs a set of packages in one transaction.
type AptInstallAction struct {
	Packages []string
}

func (a *AptInstallAction) Description() string {
	return fmt.Sprintf("Install packages %s", strings.Join(a.Packages, ", "))
}

func (a *AptInstallAction) Resources() []lock.Resource {
	return lock.AptResources()
}

func (a *AptInstallAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	if len(a.Packages) == 0 {
		return fmt.Errorf("package list cannot be empty")
	}
	for _, pkg := range a.Packages {
		if strings.TrimSpace(pkg) == "" {
			return fmt.Errorf("package name cannot be empty")
		}
	}
	logger.Info("Installing packages", "packages", strings.Join(a.Packages, " "))
	out, err := runner.Run("", aptGet("install "+strings.Join(a.Packages, " ")))
	if err != nil {
		return fmt.Errorf("apt-get install: %w", err)
	}
	logger.Debug("apt-get install output", "output", string(out))
	return nil
}

func (a *AptInstallAction) ExecutionDetails() []string {
	return []string{"run: " + aptGet("install "+strings.Join(a.Packages, " "))}
}

// AptRepoAction registers a third-party apt repository: it fetches the
// signing key into a keyring and writes the sources list entry.
type AptRepoAction struct {
	Name        string
	KeyURL      string
	KeyringPath string
	Entry       string
	ListPath    string
}

func (a *AptRepoAction) Description() string {
	return fmt.Sprintf("Add apt repository %s", a.Name)
}

func (a *AptRepoAction) Resources() []lock.Resource {
	return lock.AptResources()
}

func (a *AptRepoAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	logger.Info("Adding apt repository", "name", a.Name, "list", a.ListPath)
	keyCmd := fmt.Sprintf("curl -fsSL %s | gpg --dearmor --yes -o %s", a.KeyURL, a.KeyringPath)
	if out, err := runner.Run("", keyCmd); err != nil {
		return fmt.Errorf("fetching signing key for %s: %w (%s)", a.Name, err, strings.TrimSpace(string(out)))
	}
	if err := afero.WriteFile(system.AppFs, a.ListPath, []byte(a.Entry+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", a.ListPath, err)
	}
	return nil
}

func (a *AptRepoAction) ExecutionDetails() []string {
	current := ""
	if content, err := afero.ReadFile(system.AppFs, a.ListPath); err == nil {
		current = string(content)
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(current, a.Entry+"\n", false)
	return []string{
		fmt.Sprintf("fetch signing key %s into %s", a.KeyURL, a.KeyringPath),
		fmt.Sprintf("write sources list: %s", a.ListPath),
		"--- diff ---",
		dmp.DiffPrettyText(diffs),
		"--- end diff ---",
	}
}
