// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"path/filepath"

	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/platforms"
)

// addMsiInstaller registers one MSI per Windows variant. Unlike the script
// installers an MSI bundles the binaries itself, so it is a local artifact
// and needs a single owning package for its wix sources.
func (b *Builder) addMsiInstaller(releaseIdx plan.ReleaseIdx) error {
	if !b.localArtifactsEnabled() {
		return nil
	}
	release := b.graph.Release(releaseIdx)
	checksum := release.Checksum

	for _, variantIdx := range append([]plan.VariantIdx(nil), release.Variants...) {
		variant := b.graph.Variant(variantIdx)
		if !platforms.IsWindows(variant.Target) {
			continue
		}

		artifactName := variant.ID + ".msi"
		artifactPath := filepath.Join(b.graph.DistDir, artifactName)
		dirName := variant.ID + "_msi"
		dirPath := filepath.Join(b.graph.DistDir, dirName)

		var pkgSpec, manifestPath, pkgRoot string
		for _, binIdx := range variant.Binaries {
			binary := b.graph.Binary(binIdx)
			if pkgSpec == "" {
				pkgSpec = binary.PkgSpec
				pkg := b.ws.Package(binary.Pkg)
				manifestPath = pkg.ManifestPath
				pkgRoot = pkg.PackageRoot
			} else if pkgSpec != binary.PkgSpec {
				return &MultiPackageMsiError{
					ArtifactName: artifactName,
					Spec1:        pkgSpec,
					Spec2:        binary.PkgSpec,
				}
			}
		}
		if pkgSpec == "" {
			return &NoPackageMsiError{ArtifactName: artifactName}
		}
		wxsPath := filepath.Join(pkgRoot, "wix", "main.wxs")

		target := variant.Target
		binaries := append([]plan.BinaryIdx(nil), variant.Binaries...)
		artifactIdx := b.addLocalArtifact(variantIdx, plan.Artifact{
			ID:            artifactName,
			TargetTriples: []string{target},
			FilePath:      artifactPath,
			Archive: &plan.Archive{
				DirPath:  dirPath,
				ZipStyle: config.ZipStyleTempDir,
			},
			Kind: plan.InstallerKind{Installer: plan.MsiInstaller{
				PackageDir:   dirPath,
				PkgSpec:      pkgSpec,
				Target:       target,
				FilePath:     artifactPath,
				WxsPath:      wxsPath,
				ManifestPath: manifestPath,
			}},
		})
		for _, binIdx := range binaries {
			binary := b.graph.Binary(binIdx)
			b.RequireBinary(artifactIdx, variantIdx, binIdx, filepath.Join(dirPath, binary.FileName))
		}
		if checksum != config.ChecksumNone {
			b.AddArtifactChecksum(variantIdx, artifactIdx, checksum)
		}
	}
	return nil
}
