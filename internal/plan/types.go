// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package plan

import (
	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/platforms"
	"github.com/vk/distplango/internal/workspace"
)

// ReleaseIdx is a handle to a Release in a Graph.
type ReleaseIdx int

// VariantIdx is a handle to a ReleaseVariant in a Graph.
type VariantIdx int

// BinaryIdx is a handle to a Binary in a Graph.
type BinaryIdx int

// ArtifactIdx is a handle to an Artifact in a Graph.
type ArtifactIdx int

// BinaryRef names one binary a Release should provide, together with the
// package that owns it.
type BinaryRef struct {
	Pkg  workspace.PackageIdx
	Name string
}

// Release is one versioned package being announced.
type Release struct {
	// AppName is the name of the app.
	AppName string
	// AppDesc is a brief description of the app.
	AppDesc string
	// AppAuthors lists the app's authors.
	AppAuthors []string
	// AppLicense is the app's license expression.
	AppLicense string
	// AppRepositoryURL points at the app's source repository.
	AppRepositoryURL string
	// AppHomepageURL points at the app's homepage.
	AppHomepageURL string
	// AppKeywords lists the app's keywords.
	AppKeywords []string
	// Version is the version being released, without a leading "v".
	Version string
	// ID is the unique id of the release (e.g. "my-app-v1.0.0").
	ID string
	// Targets lists the platforms this Release has variants for.
	Targets []string
	// Bins are the binaries every variant should provide.
	Bins []BinaryRef
	// GlobalArtifacts are artifacts shared across all variants. The list
	// only ever grows.
	GlobalArtifacts []ArtifactIdx
	// Variants are the per-platform specializations. The list only ever
	// grows.
	Variants []VariantIdx
	// WindowsArchive is the archive format for Windows-class variants.
	WindowsArchive config.ZipStyle
	// UnixArchive is the archive format for every other variant.
	UnixArchive config.ZipStyle
	// Checksum is the checksum style for the release's artifacts.
	Checksum config.ChecksumStyle
	// NpmScope is the @scope for npm packages, if any.
	NpmScope string
	// StaticAssets are bundled into archives for every variant.
	StaticAssets []workspace.StaticAsset
	// InstallPath is the install-path strategy handed to installers.
	InstallPath config.InstallPath
	// Tap is the Homebrew tap for this release, if any.
	Tap string
	// HomebrewDeps are run-time dependencies for a generated formula.
	HomebrewDeps []string
}

// ReleaseVariant is a Release specialized to one target platform.
type ReleaseVariant struct {
	// Target is the platform this variant is built for.
	Target string
	// ID uniquely identifies the variant (e.g.
	// "my-app-v1.0.0-x86_64-pc-windows-msvc").
	ID string
	// Binaries are the binaries included in this variant.
	Binaries []BinaryIdx
	// StaticAssets are bundled into this variant's archives.
	StaticAssets []workspace.StaticAsset
	// LocalArtifacts are the artifacts tied to exactly this variant.
	LocalArtifacts []ArtifactIdx
}

// Binary is one compiled executable for one platform. Binaries are
// deduplicated by ID: if two variants need the same binary it is a single
// entity referenced from both.
type Binary struct {
	// ID uniquely identifies the binary (e.g.
	// "my-binary-v1.0.0-x86_64-pc-windows-msvc").
	ID string
	// Pkg is the package that defines this binary.
	Pkg workspace.PackageIdx
	// PkgSpec is the unambiguous name used to refer to the package in
	// per-package build invocations.
	PkgSpec string
	// Name is the binary name as declared by the package.
	Name string
	// FileName is the name the built file will have, including any
	// platform executable suffix.
	FileName string
	// Target is the platform to build for.
	Target string
	// SymbolsArtifact is the artifact holding this binary's debug
	// symbols, when the platform produces one.
	SymbolsArtifact *ArtifactIdx
	// CopyExeTo are the paths the executable must be copied to after the
	// build. A binary with an empty list is never actually built.
	CopyExeTo []string
	// CopySymbolsTo are the paths the symbol bundle must be copied to.
	CopySymbolsTo []string
	// Features is the feature selection the binary builds with.
	Features config.FeatureSelection
}

// Archive describes the stage-then-bundle work for an artifact: create a
// directory, copy static files into it, then archive it.
type Archive struct {
	// WithRoot optionally nests all archive contents under this
	// directory name. Empty means contents sit at the archive root.
	WithRoot string
	// DirPath is the staging directory for the artifact's contents.
	DirPath string
	// ZipStyle is the archive flavor to produce.
	ZipStyle config.ZipStyle
	// StaticAssets are copied into the staging dir before archiving.
	StaticAssets []workspace.StaticAsset
}

// Artifact is one deliverable file: an archive, installer, checksum or
// symbol bundle.
type Artifact struct {
	// ID is the artifact's unique id, which is also its file name (e.g.
	// "my-app-v0.1.0-x86_64-pc-windows-msvc.zip").
	ID string
	// TargetTriples are the platforms this artifact covers.
	TargetTriples []string
	// Archive, when set, describes the staging work for this artifact.
	Archive *Archive
	// FilePath is where the final artifact appears in the dist dir.
	FilePath string
	// RequiredBinaries maps each needed binary to the path it must be
	// copied to.
	RequiredBinaries map[BinaryIdx]string
	// Kind is what sort of artifact this is.
	Kind ArtifactKind
	// Checksum is the artifact's checksum artifact, if one was derived.
	// A checksum artifact never carries one itself.
	Checksum *ArtifactIdx
	// IsGlobal is true when the artifact belongs to the Release as a
	// whole rather than to one variant. It must agree with which list
	// the artifact was registered under.
	IsGlobal bool
}

// ChecksumSpec describes producing a checksum file for another file.
type ChecksumSpec struct {
	// Style is the checksum algorithm.
	Style config.ChecksumStyle
	// SrcPath is the file to checksum.
	SrcPath string
	// DestPath is where the checksum file is written.
	DestPath string
}

// Tool is an executable the executor may need to invoke, discovered by
// the host probe.
type Tool struct {
	// Cmd is the command name or path.
	Cmd string
	// Version is whatever the tool reported, in case it is useful.
	Version string
}

// SymbolKind re-exports the platform symbol format for artifact payloads.
type SymbolKind = platforms.SymbolKind
