// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"fmt"
	"path/filepath"

	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/platforms"
)

// addShellInstaller registers the curl-able install script covering every
// non-Windows variant of the release.
func (b *Builder) addShellInstaller(releaseIdx plan.ReleaseIdx) {
	if !b.globalArtifactsEnabled() {
		return
	}
	release := b.graph.Release(releaseIdx)
	downloadURL := b.graph.ArtifactDownloadURL
	if downloadURL == "" {
		b.sink.Warn("skipping shell installer: no repository url to download artifacts from",
			"release", release.ID)
		return
	}

	artifactName := release.ID + "-installer.sh"
	artifactPath := filepath.Join(b.graph.DistDir, artifactName)
	installerURL := fmt.Sprintf("%s/%s", downloadURL, artifactName)
	hint := fmt.Sprintf("# WARNING: this installer is experimental\ncurl --proto '=https' --tlsv1.2 -LsSf %s | sh", installerURL)
	desc := "Install prebuilt binaries via shell script"

	fallback := b.needsRosettaFallback(releaseIdx)
	var fragments []plan.ExecutableZipFragment
	for _, variantIdx := range release.Variants {
		variant := b.graph.Variant(variantIdx)
		if platforms.IsWindows(variant.Target) {
			continue
		}
		fragment := b.fragmentForVariant(releaseIdx, variantIdx)
		if fallback && variant.Target == platforms.X64MacOS {
			fragments = append(fragments, retargetFragment(fragment, platforms.Arm64MacOS))
		}
		fragments = append(fragments, fragment)
	}
	if len(fragments) == 0 {
		b.sink.Warn("skipping shell installer: release has no variants it can install",
			"release", release.ID)
		return
	}

	b.addGlobalArtifact(releaseIdx, plan.Artifact{
		ID:            artifactName,
		TargetTriples: sortedTriples(fragments),
		FilePath:      artifactPath,
		IsGlobal:      true,
		Kind: plan.InstallerKind{Installer: plan.ShellInstaller{InstallerInfo: plan.InstallerInfo{
			DestPath:    artifactPath,
			AppName:     release.AppName,
			AppVersion:  release.Version,
			InstallPath: string(release.InstallPath),
			BaseURL:     downloadURL,
			Fragments:   fragments,
			Hint:        hint,
			Desc:        desc,
		}}},
	})
}
