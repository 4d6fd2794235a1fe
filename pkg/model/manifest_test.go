package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validManifest() *Manifest {
	return &Manifest{
		Packages: []string{"curl", "gnupg"},
		Browser: &BrowserSpec{
			Strategy: BrowserStrategyFlatpak,
			Flatpak:  &FlatpakSpec{Remote: "flathub", Ref: "org.chromium.Chromium"},
		},
		Swap: &SwapSpec{Path: "/swapfile", SizeGB: 8},
	}
}

func TestValidManifestPasses(t *testing.T) {
	assert.Empty(t, validManifest().Validate())
}

func TestEmptyManifestPasses(t *testing.T) {
	// Every section is optional; an empty manifest plans only the index update.
	assert.Empty(t, (&Manifest{}).Validate())
}

func TestEmptyPackageNameFails(t *testing.T) {
	m := validManifest()
	m.Packages = append(m.Packages, "  ")

	errs := m.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "packages[2]", errs[0].Field)
}

func TestUnknownBrowserStrategyFails(t *testing.T) {
	m := validManifest()
	m.Browser.Strategy = "appimage"

	errs := m.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "appimage")
}

func TestFlatpakStrategyNeedsRef(t *testing.T) {
	m := validManifest()
	m.Browser.Flatpak = nil

	errs := m.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "browser.flatpak.ref", errs[0].Field)
}

func TestSnapStrategyNeedsName(t *testing.T) {
	m := &Manifest{Browser: &BrowserSpec{Strategy: BrowserStrategySnap, Snap: &SnapSpec{}}}

	errs := m.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "browser.snap.name", errs[0].Field)
}

func TestCodeSectionRequiresFields(t *testing.T) {
	m := &Manifest{Code: &CodeSpec{}}

	errs := m.Validate()
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	assert.ElementsMatch(t, []string{"code.key_url", "code.entry", "code.package"}, fields)
}

func TestPythonSectionNeedsContent(t *testing.T) {
	m := &Manifest{Python: &PythonSpec{}}

	errs := m.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "python", errs[0].Field)
}

func TestSwapSizeMustBePositive(t *testing.T) {
	m := &Manifest{Swap: &SwapSpec{Path: "/swapfile"}}

	errs := m.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "swap.size_gb", errs[0].Field)
}

func TestCondaSectionRequiresFields(t *testing.T) {
	m := &Manifest{Conda: &CondaSpec{}}

	errs := m.Validate()
	assert.Len(t, errs, 2)
}

func TestNegativeRetryValuesFail(t *testing.T) {
	m := &Manifest{Retry: RetrySpec{MaxAttempts: -1, InitialDelaySeconds: -4, PollIntervalSeconds: -3}}

	errs := m.Validate()
	assert.Len(t, errs, 3)
}

func TestOptionalStepsNeedLabelAndScript(t *testing.T) {
	m := &Manifest{OptionalSteps: []OptionalStep{{}}}

	errs := m.Validate()
	assert.Len(t, errs, 2)
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "swap.size_gb", Message: "must be positive"},
		{Field: "python", Message: "needs at least one package or wheel"},
	}
	assert.Equal(t, "swap.size_gb: must be positive; python: needs at least one package or wheel", errs.Error())
	assert.Empty(t, ValidationErrors{}.Error())
}
