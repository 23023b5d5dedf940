package config

import (
	"fmt"
	"strings"
)

// PreciseBuildError is returned when precise builds were explicitly
// disabled but packages disagree on feature flags, which makes a shared
// workspace build impossible.
type PreciseBuildError struct {
	// Packages are the names of the packages whose feature selections
	// differ from the workspace's.
	Packages []string
}

func (e *PreciseBuildError) Error() string {
	return fmt.Sprintf(
		"precise builds are explicitly disabled, but these packages have feature settings that differ from the workspace: %s",
		strings.Join(e.Packages, ", "))
}

// Resolved is the output of the precedence merge: one flattened Settings
// per package plus the run-wide workspace settings.
type Resolved struct {
	Workspace Workspace
	// ByPackage is indexed in step with workspace.Info.Packages.
	ByPackage []Settings
}

// Merge resolves the two-level precedence between the workspace-wide raw
// settings and each package's raw overrides. packageNames must be in step
// with packageRaws; it is only used for error reporting.
//
// Precise-build resolution happens here because it is a property of the
// whole merge: a package overriding feature flags silently forces precise
// builds unless the workspace explicitly forbade them.
func Merge(workspaceRaw Raw, packageRaws []Raw, packageNames []string) (*Resolved, error) {
	workspaceFeatures := featuresOf(workspaceRaw)

	var mismatched []string
	byPackage := make([]Settings, 0, len(packageRaws))
	for i, pkgRaw := range packageRaws {
		merged := overlay(workspaceRaw, pkgRaw)
		settings := flatten(merged)
		if !settings.Features.Equal(workspaceFeatures) {
			mismatched = append(mismatched, packageNames[i])
		}
		byPackage = append(byPackage, settings)
	}

	requiresPrecise := len(mismatched) > 0
	precise := requiresPrecise
	if workspaceRaw.PreciseBuilds != nil {
		if !*workspaceRaw.PreciseBuilds && requiresPrecise {
			return nil, &PreciseBuildError{Packages: mismatched}
		}
		precise = *workspaceRaw.PreciseBuilds
	}

	ws := Workspace{
		PreciseBuilds: precise,
		PublishJobs:   append([]string(nil), workspaceRaw.PublishJobs...),
	}
	if workspaceRaw.PublishPrereleases != nil {
		ws.PublishPrereleases = *workspaceRaw.PublishPrereleases
	}
	if workspaceRaw.Tap != nil {
		ws.Tap = *workspaceRaw.Tap
	}

	return &Resolved{Workspace: ws, ByPackage: byPackage}, nil
}

// overlay returns base with every field the override set replacing the
// base's value. List fields replace wholesale; they do not concatenate.
func overlay(base, override Raw) Raw {
	merged := base
	if override.Targets != nil {
		merged.Targets = override.Targets
	}
	if override.Installers != nil {
		merged.Installers = override.Installers
	}
	if override.WindowsArchive != nil {
		merged.WindowsArchive = override.WindowsArchive
	}
	if override.UnixArchive != nil {
		merged.UnixArchive = override.UnixArchive
	}
	if override.Checksum != nil {
		merged.Checksum = override.Checksum
	}
	if override.InstallPath != nil {
		merged.InstallPath = override.InstallPath
	}
	if override.Features != nil {
		merged.Features = override.Features
	}
	if override.AllFeatures != nil {
		merged.AllFeatures = override.AllFeatures
	}
	if override.DefaultFeatures != nil {
		merged.DefaultFeatures = override.DefaultFeatures
	}
	if override.Dist != nil {
		merged.Dist = override.Dist
	}
	if override.AutoIncludes != nil {
		merged.AutoIncludes = override.AutoIncludes
	}
	if override.Include != nil {
		merged.Include = override.Include
	}
	if override.NpmScope != nil {
		merged.NpmScope = override.NpmScope
	}
	if override.Tap != nil {
		merged.Tap = override.Tap
	}
	if override.HomebrewDeps != nil {
		merged.HomebrewDeps = override.HomebrewDeps
	}
	return merged
}

func featuresOf(raw Raw) FeatureSelection {
	features := FeatureSelection{DefaultFeatures: true}
	if raw.DefaultFeatures != nil {
		features.DefaultFeatures = *raw.DefaultFeatures
	}
	if raw.AllFeatures != nil {
		features.AllFeatures = *raw.AllFeatures
	}
	features.Features = append([]string(nil), raw.Features...)
	return features
}

func includesOf(paths []string) []Include {
	includes := make([]Include, 0, len(paths))
	for _, p := range paths {
		includes = append(includes, Include{Path: p})
	}
	return includes
}

// flatten applies defaults and validates enum fields, producing the final
// per-package settings. Unknown enum values were already rejected by the
// loader, so parse failures here fall back to defaults.
func flatten(raw Raw) Settings {
	settings := Settings{
		Targets:        append([]string(nil), raw.Targets...),
		WindowsArchive: ZipStyleZip,
		UnixArchive:    ZipStyleTarXzip,
		Checksum:       ChecksumSha256,
		InstallPath:    DefaultInstallPath,
		Features:       featuresOf(raw),
		Dist:           raw.Dist,
		AutoIncludes:   true,
		Include:        includesOf(raw.Include),
		HomebrewDeps:   append([]string(nil), raw.HomebrewDeps...),
	}

	for _, installer := range raw.Installers {
		if style, err := ParseInstallerStyle(installer); err == nil {
			settings.Installers = append(settings.Installers, style)
		}
	}
	if raw.WindowsArchive != nil {
		if style, err := ParseZipStyle(*raw.WindowsArchive); err == nil {
			settings.WindowsArchive = style
		}
	}
	if raw.UnixArchive != nil {
		if style, err := ParseZipStyle(*raw.UnixArchive); err == nil {
			settings.UnixArchive = style
		}
	}
	if raw.Checksum != nil {
		if style, err := ParseChecksumStyle(*raw.Checksum); err == nil {
			settings.Checksum = style
		}
	}
	if raw.InstallPath != nil {
		settings.InstallPath = InstallPath(*raw.InstallPath)
	}
	if raw.AutoIncludes != nil {
		settings.AutoIncludes = *raw.AutoIncludes
	}
	if raw.NpmScope != nil {
		settings.NpmScope = *raw.NpmScope
	}
	if raw.Tap != nil {
		settings.Tap = *raw.Tap
	}
	return settings
}
