// Package plan turns a manifest into the fixed, ordered sequence of
// required actions for one provisioning run.
package plan

import (
	"jetup/pkg/actions"
	"jetup/pkg/model"
)

// Build returns the required actions in execution order. The order is
// fixed: package index first, base packages next, then the sections that
// depend on them. Absent manifest sections contribute no actions.
func Build(m *model.Manifest) []actions.Action {
	var plan []actions.Action

	plan = append(plan, &actions.AptUpdateAction{})

	if len(m.Packages) > 0 {
		plan = append(plan, &actions.AptInstallAction{Packages: m.Packages})
	}

	if c := m.Code; c != nil {
		plan = append(plan,
			&actions.AptRepoAction{
				Name:        "vscode",
				KeyURL:      c.KeyURL,
				KeyringPath: c.KeyringPath,
				Entry:       c.Entry,
				ListPath:    c.ListPath,
			},
			// The new repository needs a second index refresh before its
			// package is visible.
			&actions.AptUpdateAction{},
			&actions.AptInstallAction{Packages: []string{c.Package}},
		)
	}

	plan = append(plan, browserActions(m.Browser)...)

	if p := m.Python; p != nil {
		if len(p.Packages) > 0 {
			plan = append(plan, &actions.PipInstallAction{
				Python:   p.Interpreter,
				Packages: p.Packages,
				IndexURL: p.IndexURL,
			})
		}
		for _, wheel := range p.Wheels {
			plan = append(plan, &actions.WheelInstallAction{Python: p.Interpreter, URL: wheel})
		}
	}

	if s := m.Swap; s != nil {
		plan = append(plan, &actions.SwapFileAction{Path: s.Path, SizeGB: s.SizeGB})
	}

	if c := m.Conda; c != nil {
		plan = append(plan, &actions.CondaInstallAction{
			InstallerURL: c.InstallerURL,
			Prefix:       c.Prefix,
			InitUser:     c.InitUser,
		})
	}

	return plan
}

func browserActions(b *model.BrowserSpec) []actions.Action {
	if b == nil {
		return nil
	}
	switch b.Strategy {
	case model.BrowserStrategyFlatpak:
		var out []actions.Action
		if b.Flatpak.Remote != "" && b.Flatpak.RemoteURL != "" {
			out = append(out, &actions.FlatpakRemoteAction{
				Remote: b.Flatpak.Remote,
				URL:    b.Flatpak.RemoteURL,
			})
		}
		return append(out, &actions.FlatpakInstallAction{
			Remote: b.Flatpak.Remote,
			Ref:    b.Flatpak.Ref,
		})
	case model.BrowserStrategySnap:
		return []actions.Action{&actions.SnapInstallAction{
			Name:            b.Snap.Name,
			Classic:         b.Snap.Classic,
			FallbackPackage: b.Snap.FallbackPackage,
		}}
	}
	return nil
}
