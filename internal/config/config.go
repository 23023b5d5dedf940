// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the resolved distribution settings and the enums they
// are built from. Raw holds what a manifest actually said (pointer fields,
// nil when unset); Settings is the flattened, fully-defaulted view the
// planner consumes. The two are kept separate so the workspace/package
// precedence merge in merge.go stays an explicit, testable step.
package config

import (
	"fmt"
	"sort"
	"strings"
)

// ArtifactMode selects which scope of artifacts a run produces.
type ArtifactMode string

const (
	// ModeLocal produces only platform-local artifacts (archives, msi...).
	ModeLocal ArtifactMode = "local"
	// ModeGlobal produces only release-wide artifacts (most installers).
	ModeGlobal ArtifactMode = "global"
	// ModeHost produces everything buildable on the current host.
	ModeHost ArtifactMode = "host"
	// ModeAll produces everything.
	ModeAll ArtifactMode = "all"
)

// ParseArtifactMode validates a raw artifact mode string.
func ParseArtifactMode(s string) (ArtifactMode, error) {
	switch ArtifactMode(s) {
	case ModeLocal, ModeGlobal, ModeHost, ModeAll:
		return ArtifactMode(s), nil
	}
	return "", fmt.Errorf("invalid artifact mode %q: must be one of local, global, host, all", s)
}

// ChecksumStyle selects the checksum algorithm for artifacts.
type ChecksumStyle string

const (
	ChecksumSha256 ChecksumStyle = "sha256"
	ChecksumSha512 ChecksumStyle = "sha512"
	// ChecksumNone disables checksumming.
	ChecksumNone ChecksumStyle = "false"
)

// Ext returns the file extension for checksum files of this style.
func (c ChecksumStyle) Ext() string {
	return string(c)
}

// ParseChecksumStyle validates a raw checksum style string.
func ParseChecksumStyle(s string) (ChecksumStyle, error) {
	switch ChecksumStyle(s) {
	case ChecksumSha256, ChecksumSha512, ChecksumNone:
		return ChecksumStyle(s), nil
	}
	return "", fmt.Errorf("invalid checksum style %q: must be one of sha256, sha512, false", s)
}

// ZipStyle selects the archive format for executable bundles.
type ZipStyle string

const (
	ZipStyleZip     ZipStyle = "zip"
	ZipStyleTarGzip ZipStyle = "tar.gz"
	ZipStyleTarXzip ZipStyle = "tar.xz"
	ZipStyleTarZstd ZipStyle = "tar.zst"
	// ZipStyleTempDir stages files in a directory without producing an
	// archive. Used for installer staging dirs (msi).
	ZipStyleTempDir ZipStyle = "tempdir"
)

// Ext returns the file extension for the archive format, including the
// leading dot. Temp dirs have no extension.
func (z ZipStyle) Ext() string {
	if z == ZipStyleTempDir {
		return ""
	}
	return "." + string(z)
}

// IsTar reports whether the style is a tarball flavor.
func (z ZipStyle) IsTar() bool {
	return strings.HasPrefix(string(z), "tar.")
}

// ParseZipStyle validates a raw archive format string.
func ParseZipStyle(s string) (ZipStyle, error) {
	switch ZipStyle(s) {
	case ZipStyleZip, ZipStyleTarGzip, ZipStyleTarXzip, ZipStyleTarZstd:
		return ZipStyle(s), nil
	}
	return "", fmt.Errorf("invalid archive format %q: must be one of zip, tar.gz, tar.xz, tar.zst", s)
}

// InstallerStyle identifies one of the installer generators.
type InstallerStyle string

const (
	InstallerShell      InstallerStyle = "shell"
	InstallerPowershell InstallerStyle = "powershell"
	InstallerNpm        InstallerStyle = "npm"
	InstallerHomebrew   InstallerStyle = "homebrew"
	InstallerMsi        InstallerStyle = "msi"
)

// ParseInstallerStyle validates a raw installer kind string.
func ParseInstallerStyle(s string) (InstallerStyle, error) {
	switch InstallerStyle(s) {
	case InstallerShell, InstallerPowershell, InstallerNpm, InstallerHomebrew, InstallerMsi:
		return InstallerStyle(s), nil
	}
	return "", fmt.Errorf("invalid installer %q: must be one of shell, powershell, npm, homebrew, msi", s)
}

// PublishJobHomebrew is the publish job that pushes Homebrew formulas to a tap.
const PublishJobHomebrew = "homebrew"

// InstallPath is the strategy for selecting where installers place
// binaries. "home" installs under the user's home directory; any other
// value is an explicit path template passed through to installers.
type InstallPath string

// DefaultInstallPath is used when a package does not configure one.
const DefaultInstallPath InstallPath = "home"

// FeatureSelection captures the build feature flags a package compiles with.
type FeatureSelection struct {
	// DefaultFeatures is false when default features are disabled.
	DefaultFeatures bool
	// AllFeatures enables every feature, superseding Features.
	AllFeatures bool
	// Features lists individually enabled features.
	Features []string
}

// Key returns a canonical string for the selection, suitable for grouping
// builds and for equality checks.
func (f FeatureSelection) Key() string {
	if f.AllFeatures {
		return "all"
	}
	features := append([]string(nil), f.Features...)
	sort.Strings(features)
	key := strings.Join(features, ",")
	if !f.DefaultFeatures {
		key = "no-default+" + key
	}
	return key
}

// Equal reports whether two selections request the same build.
func (f FeatureSelection) Equal(other FeatureSelection) bool {
	return f.Key() == other.Key()
}

// Raw is the settings block exactly as a manifest declared it. Nil fields
// were not set and fall through to the next precedence level.
type Raw struct {
	Targets            []string
	Installers         []string
	WindowsArchive     *string
	UnixArchive        *string
	Checksum           *string
	InstallPath        *string
	Features           []string
	AllFeatures        *bool
	DefaultFeatures    *bool
	PreciseBuilds      *bool
	Dist               *bool
	AutoIncludes       *bool
	Include            []string
	NpmScope           *string
	Tap                *string
	PublishJobs        []string
	PublishPrereleases *bool
	HomebrewDeps       []string
}

// Include is one extra static asset requested by a manifest. IsDir is
// resolved by whoever loaded the manifest so later stages never stat.
type Include struct {
	Path  string
	IsDir bool
}

// Settings is the flattened per-package configuration the planner runs on.
type Settings struct {
	// Targets are the platforms the package wants artifacts for.
	Targets []string
	// Installers are the installer kinds the package wants.
	Installers []InstallerStyle
	// WindowsArchive is the archive format for Windows-class targets.
	WindowsArchive ZipStyle
	// UnixArchive is the archive format for everything else.
	UnixArchive ZipStyle
	// Checksum is the checksum style for the package's artifacts.
	Checksum ChecksumStyle
	// InstallPath is the install-path strategy for installers.
	InstallPath InstallPath
	// Features is the build feature selection.
	Features FeatureSelection
	// Dist, when non-nil, explicitly opts the package in or out of
	// distribution regardless of its publish flag.
	Dist *bool
	// AutoIncludes controls readme/license/changelog auto-discovery.
	AutoIncludes bool
	// Include lists extra static assets to bundle.
	Include []Include
	// NpmScope is the @scope for npm packages, if any.
	NpmScope string
	// Tap is the Homebrew tap repository, if any.
	Tap string
	// HomebrewDeps are run-time dependencies for generated formulas.
	HomebrewDeps []string
}

// Workspace holds the settings that only make sense once per run.
type Workspace struct {
	// PreciseBuilds is true when builds are planned per package rather
	// than per workspace.
	PreciseBuilds bool
	// PublishJobs are the publish pipelines enabled for the run.
	PublishJobs []string
	// PublishPrereleases allows publish jobs to run for prereleases.
	PublishPrereleases bool
	// Tap is the workspace-wide Homebrew tap, if any.
	Tap string
}
