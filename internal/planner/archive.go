// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"path/filepath"

	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/platforms"
	"github.com/vk/distplango/internal/workspace"
)

// builtAsset is one binary a simulated archive would contain, paired with
// the staging path it would be copied to.
type builtAsset struct {
	binary plan.BinaryIdx
	dest   string
}

// AddExecutableZip registers the executable archive of every variant of a
// release, wiring each archive's binaries and a checksum when one is
// configured. It is a no-op when the artifact mode excludes local
// artifacts.
func (b *Builder) AddExecutableZip(releaseIdx plan.ReleaseIdx) {
	if !b.localArtifactsEnabled() {
		return
	}
	release := b.graph.Release(releaseIdx)
	checksum := release.Checksum
	for _, variantIdx := range append([]plan.VariantIdx(nil), release.Variants...) {
		artifact, assets := b.makeExecutableZipForVariant(releaseIdx, variantIdx)
		artifactIdx := b.addLocalArtifact(variantIdx, artifact)
		for _, asset := range assets {
			b.RequireBinary(artifactIdx, variantIdx, asset.binary, asset.dest)
		}
		if checksum != config.ChecksumNone {
			b.AddArtifactChecksum(variantIdx, artifactIdx, checksum)
		}
	}
}

// makeExecutableZipForVariant describes the executable archive one variant
// would produce, without registering anything. Installer generators use
// this to learn archive names and contents even in runs that only build
// global artifacts.
func (b *Builder) makeExecutableZipForVariant(releaseIdx plan.ReleaseIdx, variantIdx plan.VariantIdx) (plan.Artifact, []builtAsset) {
	release := b.graph.Release(releaseIdx)
	variant := b.graph.Variant(variantIdx)

	zipStyle := release.UnixArchive
	if platforms.IsWindows(variant.Target) {
		zipStyle = release.WindowsArchive
	}

	dirName := variant.ID
	dirPath := filepath.Join(b.graph.DistDir, dirName)
	artifactName := dirName + zipStyle.Ext()
	artifactPath := filepath.Join(b.graph.DistDir, artifactName)

	// Zip files unpack flat; tarballs get a root dir named after the
	// variant so extraction is tidy.
	withRoot := ""
	if zipStyle != config.ZipStyleZip {
		withRoot = dirName
	}

	var assets []builtAsset
	for _, binIdx := range variant.Binaries {
		binary := b.graph.Binary(binIdx)
		assets = append(assets, builtAsset{
			binary: binIdx,
			dest:   filepath.Join(dirPath, binary.FileName),
		})
	}

	artifact := plan.Artifact{
		ID:            artifactName,
		TargetTriples: []string{variant.Target},
		Archive: &plan.Archive{
			WithRoot:     withRoot,
			DirPath:      dirPath,
			ZipStyle:     zipStyle,
			StaticAssets: append([]workspace.StaticAsset(nil), variant.StaticAssets...),
		},
		FilePath: artifactPath,
		Kind:     plan.ExecutableZipKind{},
	}
	return artifact, assets
}

// RequireBinary records that an artifact needs a binary copied to destPath
// once built. The first time a binary is required anywhere, its debug
// symbol artifact is registered too, on platforms that produce separate
// symbols.
func (b *Builder) RequireBinary(artifactIdx plan.ArtifactIdx, variantIdx plan.VariantIdx, binIdx plan.BinaryIdx, destPath string) {
	binary := b.graph.Binary(binIdx)

	if binary.SymbolsArtifact == nil {
		if kind, ok := platforms.SymbolKindFor(binary.Target); ok {
			id := binary.ID + "." + kind.Ext()
			path := filepath.Join(b.graph.DistDir, id)
			symbolsIdx := b.addLocalArtifact(variantIdx, plan.Artifact{
				ID:            id,
				TargetTriples: []string{binary.Target},
				FilePath:      path,
				Kind:          plan.SymbolsKind{Kind: kind},
			})
			binary = b.graph.Binary(binIdx)
			binary.SymbolsArtifact = &symbolsIdx
			binary.CopySymbolsTo = append(binary.CopySymbolsTo, path)
		}
	}

	binary.CopyExeTo = append(binary.CopyExeTo, destPath)

	artifact := b.graph.Artifact(artifactIdx)
	if artifact.RequiredBinaries == nil {
		artifact.RequiredBinaries = map[plan.BinaryIdx]string{}
	}
	artifact.RequiredBinaries[binIdx] = destPath
}

// AddArtifactChecksum registers a checksum artifact for another artifact
// and links the two. Checksum artifacts never get checksums of their own.
func (b *Builder) AddArtifactChecksum(variantIdx plan.VariantIdx, of plan.ArtifactIdx, style config.ChecksumStyle) plan.ArtifactIdx {
	target := b.graph.Artifact(of)
	id := target.ID + "." + style.Ext()
	path := filepath.Join(filepath.Dir(target.FilePath), id)

	checksumIdx := b.addLocalArtifact(variantIdx, plan.Artifact{
		ID:            id,
		TargetTriples: append([]string(nil), target.TargetTriples...),
		FilePath:      path,
		Kind: plan.ChecksumKind{Spec: plan.ChecksumSpec{
			Style:    style,
			SrcPath:  target.FilePath,
			DestPath: path,
		}},
	})
	target = b.graph.Artifact(of)
	target.Checksum = &checksumIdx
	return checksumIdx
}
