// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"fmt"
	"path/filepath"

	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/platforms"
)

// addPowershellInstaller registers the irm-able install script covering
// every Windows variant of the release.
func (b *Builder) addPowershellInstaller(releaseIdx plan.ReleaseIdx) {
	if !b.globalArtifactsEnabled() {
		return
	}
	release := b.graph.Release(releaseIdx)
	downloadURL := b.graph.ArtifactDownloadURL
	if downloadURL == "" {
		b.sink.Warn("skipping powershell installer: no repository url to download artifacts from",
			"release", release.ID)
		return
	}

	artifactName := release.ID + "-installer.ps1"
	artifactPath := filepath.Join(b.graph.DistDir, artifactName)
	installerURL := fmt.Sprintf("%s/%s", downloadURL, artifactName)
	hint := fmt.Sprintf("# WARNING: this installer is experimental\nirm %s | iex", installerURL)
	desc := "Install prebuilt binaries via powershell script"

	var fragments []plan.ExecutableZipFragment
	for _, variantIdx := range release.Variants {
		variant := b.graph.Variant(variantIdx)
		if !platforms.IsWindows(variant.Target) {
			continue
		}
		fragments = append(fragments, b.fragmentForVariant(releaseIdx, variantIdx))
	}
	if len(fragments) == 0 {
		b.sink.Warn("skipping powershell installer: release has no windows variants",
			"release", release.ID)
		return
	}

	b.addGlobalArtifact(releaseIdx, plan.Artifact{
		ID:            artifactName,
		TargetTriples: sortedTriples(fragments),
		FilePath:      artifactPath,
		IsGlobal:      true,
		Kind: plan.InstallerKind{Installer: plan.PowershellInstaller{InstallerInfo: plan.InstallerInfo{
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
