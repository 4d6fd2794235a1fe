package model

import (
	"fmt"
	"strings"
)

// Browser install strategies. How to install a browser is a pluggable
// choice, not something baked into the runner.
const (
	BrowserStrategyFlatpak = "flatpak"
	BrowserStrategySnap    = "snap"
)

// Manifest is the desired post-flash configuration of one workstation.
// Nil sections contribute nothing to the plan.
type Manifest struct {
	Packages      []string       `yaml:"packages"`
	Browser       *BrowserSpec   `yaml:"browser"`
	Code          *CodeSpec      `yaml:"code"`
	Python        *PythonSpec    `yaml:"python"`
	Swap          *SwapSpec      `yaml:"swap"`
	Conda         *CondaSpec     `yaml:"conda"`
	Retry         RetrySpec      `yaml:"retry"`
	ScriptsDir    string         `yaml:"scripts_dir"`
	OptionalSteps []OptionalStep `yaml:"optional_steps"`
}

// BrowserSpec selects a browser install strategy and its parameters.
type BrowserSpec struct {
	Strategy string       `yaml:"strategy"`
	Flatpak  *FlatpakSpec `yaml:"flatpak"`
	Snap     *SnapSpec    `yaml:"snap"`
}

type FlatpakSpec struct {
	Remote    string `yaml:"remote"`
	RemoteURL string `yaml:"remote_url"`
	Ref       string `yaml:"ref"`
}

type SnapSpec struct {
	Name            string `yaml:"name"`
	Classic         bool   `yaml:"classic"`
	FallbackPackage string `yaml:"fallback_package"`
}

// CodeSpec configures the editor apt repository and package.
type CodeSpec struct {
	KeyURL      string `yaml:"key_url"`
	KeyringPath string `yaml:"keyring_path"`
	Entry       string `yaml:"entry"`
	ListPath    string `yaml:"list_path"`
	Package     string `yaml:"package"`
}

type PythonSpec struct {
	Interpreter string   `yaml:"interpreter"`
	Packages    []string `yaml:"packages"`
	Wheels      []string `yaml:"wheels"`
	IndexURL    string   `yaml:"index_url"`
}

type SwapSpec struct {
	Path   string `yaml:"path"`
	SizeGB int    `yaml:"size_gb"`
}

type CondaSpec struct {
	InstallerURL string `yaml:"installer_url"`
	Prefix       string `yaml:"prefix"`
	InitUser     string `yaml:"init_user"`
}

// RetrySpec tunes the retry core. Zero values take the executor defaults.
type RetrySpec struct {
	MaxAttempts         int `yaml:"max_attempts"`
	InitialDelaySeconds int `yaml:"initial_delay_seconds"`
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
}

// OptionalStep names an auxiliary script that is run if present and whose
// failure never aborts the run.
type OptionalStep struct {
	Label  string   `yaml:"label"`
	Script string   `yaml:"script"`
	Args   []string `yaml:"args"`
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	if len(es) == 0 {
		return ""
	}
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the manifest for inconsistencies without touching the
// system.
func (m *Manifest) Validate() ValidationErrors {
	var errs ValidationErrors

	for i, pkg := range m.Packages {
		if strings.TrimSpace(pkg) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("packages[%d]", i),
				Message: "package name cannot be empty",
			})
		}
	}

	if b := m.Browser; b != nil {
		switch b.Strategy {
		case BrowserStrategyFlatpak:
			if b.Flatpak == nil || b.Flatpak.Ref == "" {
				errs = append(errs, ValidationError{Field: "browser.flatpak.ref", Message: "required for the flatpak strategy"})
			}
		case BrowserStrategySnap:
			if b.Snap == nil || b.Snap.Name == "" {
				errs = append(errs, ValidationError{Field: "browser.snap.name", Message: "required for the snap strategy"})
			}
		default:
			errs = append(errs, ValidationError{
				Field:   "browser.strategy",
				Message: fmt.Sprintf("unknown strategy %q (want %s or %s)", b.Strategy, BrowserStrategyFlatpak, BrowserStrategySnap),
			})
		}
	}

	if c := m.Code; c != nil {
		if c.KeyURL == "" {
			errs = append(errs, ValidationError{Field: "code.key_url", Message: "cannot be empty"})
		}
		if c.Entry == "" {
			errs = append(errs, ValidationError{Field: "code.entry", Message: "cannot be empty"})
		}
		if c.Package == "" {
			errs = append(errs, ValidationError{Field: "code.package", Message: "cannot be empty"})
		}
	}

	if p := m.Python; p != nil {
		if len(p.Packages) == 0 && len(p.Wheels) == 0 {
			errs = append(errs, ValidationError{Field: "python", Message: "needs at least one package or wheel"})
		}
	}

	if s := m.Swap; s != nil && s.SizeGB <= 0 {
		errs = append(errs, ValidationError{Field: "swap.size_gb", Message: "must be positive"})
	}

	if c := m.Conda; c != nil {
		if c.InstallerURL == "" {
			errs = append(errs, ValidationError{Field: "conda.installer_url", Message: "cannot be empty"})
		}
		if c.Prefix == "" {
			errs = append(errs, ValidationError{Field: "conda.prefix", Message: "cannot be empty"})
		}
	}

	if m.Retry.MaxAttempts < 0 {
		errs = append(errs, ValidationError{Field: "retry.max_attempts", Message: "cannot be negative"})
	}
	if m.Retry.InitialDelaySeconds < 0 {
		errs = append(errs, ValidationError{Field: "retry.initial_delay_seconds", Message: "cannot be negative"})
	}
	if m.Retry.PollIntervalSeconds < 0 {
		errs = append(errs, ValidationError{Field: "retry.poll_interval_seconds", Message: "cannot be negative"})
	}

	for i, step := range m.OptionalSteps {
		if step.Label == "" {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("optional_steps[%d].label", i), Message: "cannot be empty"})
		}
		if step.Script == "" {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("optional_steps[%d].script", i), Message: "cannot be empty"})
		}
	}

	return errs
}
