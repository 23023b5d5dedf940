// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the workspace model: the already-parsed project
// metadata the planner consumes. The planner never re-reads manifests;
// a format-specific loader (see internal/hcl) produces one Info per run
// and everything downstream treats it as immutable.
package workspace

import (
	"fmt"
	"path/filepath"
)

// PackageIdx is a stable index into Info.Packages.
type PackageIdx int

// StaticAssetKind classifies a static asset bundled into archives.
type StaticAssetKind string

const (
	AssetReadme    StaticAssetKind = "readme"
	AssetLicense   StaticAssetKind = "license"
	AssetChangelog StaticAssetKind = "changelog"
	AssetOther     StaticAssetKind = "other"
)

// StaticAsset is a file that should be copied into bundles like archives.
// IsDir is resolved at discovery time so the planning core never has to
// consult the file system.
type StaticAsset struct {
	Kind  StaticAssetKind
	Path  string
	IsDir bool
}

// Package is the metadata of one versioned package in the workspace.
type Package struct {
	// Name is the package name, used as the app name of its Release.
	Name string
	// Version is the package's semantic version, without a leading "v".
	Version string
	// Description is a brief description of the app.
	Description string
	// Authors lists the package authors.
	Authors []string
	// License is an SPDX license expression.
	License string
	// RepositoryURL points at the source repository.
	RepositoryURL string
	// HomepageURL points at the app homepage.
	HomepageURL string
	// Keywords lists the package's keywords.
	Keywords []string
	// Binaries are the executable names the package declares.
	Binaries []string
	// Publish is false when the package is marked not-publishable.
	Publish bool
	// ManifestPath is the manifest file this package was read from.
	ManifestPath string
	// PackageRoot is the directory containing the manifest.
	PackageRoot string
	// ReadmeFile, ChangelogFile and LicenseFiles are discovered static
	// assets, empty when absent.
	ReadmeFile    string
	ChangelogFile string
	LicenseFiles  []string
}

// Info is the complete, immutable description of the workspace being
// planned.
type Info struct {
	// WorkspaceDir is the root directory of the workspace.
	WorkspaceDir string
	// TargetDir is the build output directory.
	TargetDir string
	// Packages are the workspace members, in manifest order.
	Packages []Package
}

// Package returns the package at the given index.
func (i *Info) Package(idx PackageIdx) *Package {
	return &i.Packages[idx]
}

// DistDir is the directory the plan stages and writes artifacts in,
// nested under the target dir.
func (i *Info) DistDir() string {
	return filepath.Join(i.TargetDir, "distrib")
}

// RepositoryURL returns the workspace-wide repository URL: the URL every
// package agrees on. It returns "" when packages disagree or none declare
// one, since a wrong download URL is worse than no installer.
func (i *Info) RepositoryURL() (string, error) {
	url := ""
	for idx := range i.Packages {
		pkgURL := i.Packages[idx].RepositoryURL
		if pkgURL == "" {
			continue
		}
		if url != "" && url != pkgURL {
			return "", fmt.Errorf("packages disagree on repository url: %q vs %q", url, pkgURL)
		}
		url = pkgURL
	}
	return url, nil
}
