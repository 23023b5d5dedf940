// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the BuildStep sum type: the ordered, concrete actions
// an external executor runs to realize the plan. The planner guarantees
// ordering (toolchain/compile first, then steps from local artifacts,
// then steps from global artifacts); the executor is free to parallelize
// anything the ordering allows.
package plan

import "github.com/vk/distplango/internal/config"

// BuildStep is one concrete action for the executor. Implementations are
// ToolchainStep, CompileStep, CopyFileStep, CopyDirStep, ArchiveStep,
// GenerateInstallerStep and ChecksumStep.
type BuildStep interface {
	isBuildStep()
	// Name is a stable identifier for rendered plans.
	Name() string
}

// CompileStep builds binaries for one target platform.
type CompileStep struct {
	// Target is the platform to compile for.
	Target string
	// Features is the feature selection to build with.
	Features config.FeatureSelection
	// PkgSpec names the single package to build. Empty means build the
	// whole workspace.
	PkgSpec string
	// BuildFlags are extra compiler flags, ambient environment flags
	// plus rule-based per-platform injections.
	BuildFlags string
	// ExpectedBinaries are the binaries this build must produce.
	ExpectedBinaries []BinaryIdx
}

func (CompileStep) isBuildStep() {}
func (CompileStep) Name() string { return "compile" }

// ToolchainStep provisions a toolchain component the host may lack before
// cross-compiling.
type ToolchainStep struct {
	// Tool is the provisioning tool to invoke.
	Tool Tool
	// Target is the platform whose toolchain must be installed.
	Target string
}

func (ToolchainStep) isBuildStep() {}
func (ToolchainStep) Name() string { return "provision-toolchain" }

// CopyFileStep copies one file.
type CopyFileStep struct {
	SrcPath  string
	DestPath string
}

func (CopyFileStep) isBuildStep() {}
func (CopyFileStep) Name() string { return "copy-file" }

// CopyDirStep copies a directory recursively.
type CopyDirStep struct {
	SrcPath  string
	DestPath string
}

func (CopyDirStep) isBuildStep() {}
func (CopyDirStep) Name() string { return "copy-dir" }

// ArchiveStep bundles a staged directory into an archive.
type ArchiveStep struct {
	// SrcPath is the staging directory to archive.
	SrcPath string
	// DestPath is the final archive path.
	DestPath string
	// WithRoot optionally nests contents under this directory name.
	WithRoot string
	// ZipStyle is the archive flavor.
	ZipStyle config.ZipStyle
}

func (ArchiveStep) isBuildStep() {}
func (ArchiveStep) Name() string { return "archive" }

// GenerateInstallerStep emits one opaque installer-generation action
// carrying the installer's full descriptor.
type GenerateInstallerStep struct {
	Installer Installer
}

func (GenerateInstallerStep) isBuildStep() {}
func (GenerateInstallerStep) Name() string { return "generate-installer" }

// ChecksumStep produces a checksum file for an artifact.
type ChecksumStep struct {
	Spec ChecksumSpec
}

func (ChecksumStep) isBuildStep() {}
func (ChecksumStep) Name() string { return "checksum" }
