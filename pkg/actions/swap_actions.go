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

const fstabPath = "/etc/fstab"

// SwapFileAction creates a swap file, activates it, and persists it in
// fstab. It is a no-op when the swap file is already listed there.
type SwapFileAction struct {
	Path   string
	SizeGB int
}

func (a *SwapFileAction) Description() string {
	return fmt.Sprintf("Create %dG swap file at %s", a.SizeGB, a.Path)
}

func (a *SwapFileAction) Resources() []lock.Resource {
	return nil
}

func (a *SwapFileAction) fstabLine() string {
	return fmt.Sprintf("%s none swap sw 0 0", a.Path)
}

func (a *SwapFileAction) Apply(runner system.CommandRunner, logger log.Logger) error {
	if a.SizeGB <= 0 {
		return fmt.Errorf("swap size must be positive, got %d", a.SizeGB)
	}
	fstab, err := afero.ReadFile(system.AppFs, fstabPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", fstabPath, err)
	}
	if strings.Contains(string(fstab), a.Path) {
		logger.Info("Swap file already configured", "path", a.Path)
		return nil
	}

	steps := []string{
		fmt.Sprintf("fallocate -l %dG %s", a.SizeGB, a.Path),
		fmt.Sprintf("chmod 600 %s", a.Path),
		fmt.Sprintf("mkswap %s", a.Path),
		fmt.Sprintf("swapon %s", a.Path),
	}
	logger.Info("Creating swap file", "path", a.Path, "size_gb", a.SizeGB)
	for _, step := range steps {
		if out, err := runner.Run("", step); err != nil {
			return fmt.Errorf("%s: %w (%s)", step, err, strings.TrimSpace(string(out)))
		}
	}

	updated := string(fstab)
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += a.fstabLine() + "\n"
	if err := afero.WriteFile(system.AppFs, fstabPath, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("updating %s: %w", fstabPath, err)
	}
	return nil
}

func (a *SwapFileAction) ExecutionDetails() []string {
	current := ""
	if content, err := afero.ReadFile(system.AppFs, fstabPath); err == nil {
		current = string(content)
	}
	proposed := current
	if proposed != "" && !strings.HasSuffix(proposed, "\n") {
		proposed += "\n"
	}
	proposed += a.fstabLine() + "\n"
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(current, proposed, false)
	return []string{
		fmt.Sprintf("run: fallocate -l %dG %s && chmod 600 %s && mkswap %s && swapon %s",
			a.SizeGB, a.Path, a.Path, a.Path, a.Path),
		fmt.Sprintf("update file: %s", fstabPath),
		"--- diff ---",
		dmp.DiffPrettyText(diffs),
		"--- end diff ---",
	}
}
