// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/platforms"
)

// AddInstaller registers one installer for a release. A generator may skip
// itself with a warning (missing download URL, no covered platforms); hard
// misconfiguration is returned as an error.
func (b *Builder) AddInstaller(releaseIdx plan.ReleaseIdx, style config.InstallerStyle) error {
	switch style {
	case config.InstallerShell:
		b.addShellInstaller(releaseIdx)
	case config.InstallerPowershell:
		b.addPowershellInstaller(releaseIdx)
	case config.InstallerNpm:
		b.addNpmInstaller(releaseIdx)
	case config.InstallerHomebrew:
		b.addHomebrewInstaller(releaseIdx)
	case config.InstallerMsi:
		return b.addMsiInstaller(releaseIdx)
	default:
		return fmt.Errorf("unknown installer style %q", style)
	}
	return nil
}

// fragmentForVariant describes one variant's archive as an installer
// fragment, simulating the archive without registering it.
func (b *Builder) fragmentForVariant(releaseIdx plan.ReleaseIdx, variantIdx plan.VariantIdx) plan.ExecutableZipFragment {
	artifact, assets := b.makeExecutableZipForVariant(releaseIdx, variantIdx)
	binaries := make([]string, 0, len(assets))
	for _, asset := range assets {
		binaries = append(binaries, b.graph.Binary(asset.binary).FileName)
	}
	return plan.ExecutableZipFragment{
		ID:            artifact.ID,
		TargetTriples: append([]string(nil), artifact.TargetTriples...),
		ZipStyle:      string(artifact.Archive.ZipStyle),
		Binaries:      binaries,
	}
}

// needsRosettaFallback reports whether a release covers x64 macOS but not
// arm64 macOS. In that case script installers offer the x64 build to arm64
// machines, which run it under emulation.
func (b *Builder) needsRosettaFallback(releaseIdx plan.ReleaseIdx) bool {
	release := b.graph.Release(releaseIdx)
	hasX64, hasArm64 := false, false
	for _, target := range release.Targets {
		switch target {
		case platforms.X64MacOS:
			hasX64 = true
		case platforms.Arm64MacOS:
			hasArm64 = true
		}
	}
	return hasX64 && !hasArm64
}

// retargetFragment clones a fragment claiming a different platform than the
// one its archive was built for.
func retargetFragment(fragment plan.ExecutableZipFragment, target string) plan.ExecutableZipFragment {
	clone := fragment
	clone.TargetTriples = []string{target}
	clone.Binaries = append([]string(nil), fragment.Binaries...)
	return clone
}

// sortedTriples returns the deduplicated, sorted union of each fragment's
// claimed platforms.
func sortedTriples(fragments []plan.ExecutableZipFragment) []string {
	seen := map[string]bool{}
	var triples []string
	for _, fragment := range fragments {
		for _, target := range fragment.TargetTriples {
			if !seen[target] {
				seen[target] = true
				triples = append(triples, target)
			}
		}
	}
	sort.Strings(triples)
	return triples
}

// classCase turns an app name like "my-app" into a Ruby class name like
// "MyApp".
func classCase(name string) string {
	var out strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			out.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}
