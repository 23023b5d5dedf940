// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"fmt"
	"path/filepath"

	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/workspace"
)

// addNpmInstaller registers an npm package tarball that fetches the right
// prebuilt archive at install time. The package wraps exactly one binary.
func (b *Builder) addNpmInstaller(releaseIdx plan.ReleaseIdx) {
	if !b.globalArtifactsEnabled() {
		return
	}
	release := b.graph.Release(releaseIdx)
	downloadURL := b.graph.ArtifactDownloadURL
	if downloadURL == "" {
		b.sink.Warn("skipping npm installer: no repository url to download artifacts from",
			"release", release.ID)
		return
	}
	if len(release.Bins) > 1 {
		b.sink.Warn("skipping npm installer: releases with multiple binaries are not supported",
			"release", release.ID)
		return
	}

	packageName := release.AppName
	if release.NpmScope != "" {
		packageName = release.NpmScope + "/" + release.AppName
	}

	var fragments []plan.ExecutableZipFragment
	for _, variantIdx := range release.Variants {
		fragment := b.fragmentForVariant(releaseIdx, variantIdx)
		if config.ZipStyle(fragment.ZipStyle) != config.ZipStyleTarGzip {
			b.sink.Warn("npm installer works best with tar.gz archives",
				"release", release.ID, "target", fragment.TargetTriples[0], "format", fragment.ZipStyle)
		}
		fragments = append(fragments, fragment)
	}
	if len(fragments) == 0 {
		b.sink.Warn("skipping npm installer: release has no variants",
			"release", release.ID)
		return
	}

	dirName := release.ID + "-npm-package"
	dirPath := filepath.Join(b.graph.DistDir, dirName)
	zipStyle := config.ZipStyleTarGzip
	artifactName := dirName + zipStyle.Ext()
	artifactPath := filepath.Join(b.graph.DistDir, artifactName)

	var bin string
	if len(release.Bins) == 1 {
		bin = release.Bins[0].Name
	}

	b.addGlobalArtifact(releaseIdx, plan.Artifact{
		ID:            artifactName,
		TargetTriples: sortedTriples(fragments),
		FilePath:      artifactPath,
		IsGlobal:      true,
		Archive: &plan.Archive{
			// npm expects the tarball contents under a "package" root.
			WithRoot:     "package",
			DirPath:      dirPath,
			ZipStyle:     zipStyle,
			StaticAssets: append([]workspace.StaticAsset(nil), release.StaticAssets...),
		},
		Kind: plan.InstallerKind{Installer: plan.NpmInstaller{
			InstallerInfo: plan.InstallerInfo{
				DestPath:    artifactPath,
				AppName:     release.AppName,
				AppVersion:  release.Version,
				InstallPath: string(release.InstallPath),
				BaseURL:     downloadURL,
				Fragments:   fragments,
				Hint:        fmt.Sprintf("npm install %s@%s", packageName, release.Version),
				Desc:        "Install prebuilt binaries into your npm project",
			},
			PackageName:          packageName,
			PackageVersion:       release.Version,
			PackageDesc:          release.AppDesc,
			PackageAuthors:       release.AppAuthors,
			PackageLicense:       release.AppLicense,
			PackageRepositoryURL: release.AppRepositoryURL,
			PackageHomepageURL:   release.AppHomepageURL,
			PackageKeywords:      release.AppKeywords,
			PackageDir:           dirPath,
			Bin:                  bin,
		}},
	})
}
