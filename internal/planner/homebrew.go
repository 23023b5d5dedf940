// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/platforms"
)

// addHomebrewInstaller registers a Homebrew formula. Formulas cover macOS
// and Linux, but glibc builds tend to be too new for Homebrew's bottles,
// so gnu targets are left out alongside Windows.
func (b *Builder) addHomebrewInstaller(releaseIdx plan.ReleaseIdx) {
	if !b.globalArtifactsEnabled() {
		return
	}
	release := b.graph.Release(releaseIdx)
	downloadURL := b.graph.ArtifactDownloadURL
	if downloadURL == "" {
		b.sink.Warn("skipping homebrew installer: no repository url to download artifacts from",
			"release", release.ID)
		return
	}

	publishesHomebrew := false
	for _, job := range b.graph.PublishJobs {
		if job == config.PublishJobHomebrew {
			publishesHomebrew = true
		}
	}
	if release.Tap != "" && !publishesHomebrew {
		b.sink.Warn("a homebrew tap is configured but the homebrew publish job is not enabled; the formula will not be pushed anywhere",
			"release", release.ID)
	}
	if release.Tap == "" && publishesHomebrew {
		b.sink.Warn("the homebrew publish job is enabled but no tap is configured; there is nowhere to push the formula",
			"release", release.ID)
	}

	fallback := b.needsRosettaFallback(releaseIdx)
	var arm64, x64 *plan.ExecutableZipFragment
	var fragments []plan.ExecutableZipFragment
	for _, variantIdx := range release.Variants {
		variant := b.graph.Variant(variantIdx)
		if platforms.IsWindows(variant.Target) || platforms.IsLinuxGnu(variant.Target) {
			continue
		}
		fragment := b.fragmentForVariant(releaseIdx, variantIdx)
		switch variant.Target {
		case platforms.X64MacOS:
			clone := fragment
			x64 = &clone
			if fallback {
				arm := retargetFragment(fragment, platforms.Arm64MacOS)
				arm64 = &arm
				fragments = append(fragments, arm)
			}
		case platforms.Arm64MacOS:
			clone := fragment
			arm64 = &clone
		}
		fragments = append(fragments, fragment)
	}
	if len(fragments) == 0 {
		b.sink.Warn("skipping homebrew installer: release has no variants a formula can cover",
			"release", release.ID)
		return
	}

	formulaName := strings.ToLower(release.AppName)
	artifactName := release.ID + ".rb"
	artifactPath := filepath.Join(b.graph.DistDir, artifactName)
	hint := fmt.Sprintf("brew install %s", formulaName)
	if release.Tap != "" {
		hint = fmt.Sprintf("brew install %s/%s", release.Tap, formulaName)
	}

	b.addGlobalArtifact(releaseIdx, plan.Artifact{
		ID:            artifactName,
		TargetTriples: sortedTriples(fragments),
		FilePath:      artifactPath,
		IsGlobal:      true,
		Kind: plan.InstallerKind{Installer: plan.HomebrewInstaller{
			InstallerInfo: plan.InstallerInfo{
				DestPath:    artifactPath,
				AppName:     release.AppName,
				AppVersion:  release.Version,
				InstallPath: string(release.InstallPath),
				BaseURL:     downloadURL,
				Fragments:   fragments,
				Hint:        hint,
				Desc:        "Install prebuilt binaries via Homebrew",
			},
			AppName:      formulaName,
			FormulaClass: classCase(release.AppName),
			Desc:         release.AppDesc,
			License:      release.AppLicense,
			Homepage:     release.AppHomepageURL,
			Tap:          release.Tap,
			Dependencies: append([]string(nil), release.HomebrewDeps...),
			Arm64:        arm64,
			X64:          x64,
		}},
	})
}
