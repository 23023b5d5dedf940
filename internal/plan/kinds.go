// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed set of artifact kinds and installer
// descriptors. These are deliberately sum types (a sealed interface with
// one struct per variant) rather than an open hierarchy: the step
// compiler and any executor must handle every kind explicitly, and new
// kinds are rare, deliberate additions.
package plan

// ArtifactKind is what sort of deliverable an Artifact is. Implementations
// are ExecutableZipKind, SymbolsKind, InstallerKind and ChecksumKind.
type ArtifactKind interface {
	isArtifactKind()
	// Name is a stable identifier for rendered plans.
	Name() string
}

// ExecutableZipKind marks an archive containing binaries. Everything
// interesting lives on the Artifact itself.
type ExecutableZipKind struct{}

func (ExecutableZipKind) isArtifactKind() {}
func (ExecutableZipKind) Name() string    { return "executable-zip" }

// SymbolsKind marks a debug-symbol bundle.
type SymbolsKind struct {
	// Kind is the symbol format of the bundle.
	Kind SymbolKind
}

func (SymbolsKind) isArtifactKind() {}
func (SymbolsKind) Name() string    { return "symbols" }

// InstallerKind marks an installer artifact and carries its full
// generator descriptor.
type InstallerKind struct {
	Installer Installer
}

func (InstallerKind) isArtifactKind() {}
func (k InstallerKind) Name() string  { return "installer-" + k.Installer.Style() }

// ChecksumKind marks a checksum file for another artifact.
type ChecksumKind struct {
	Spec ChecksumSpec
}

func (ChecksumKind) isArtifactKind() {}
func (ChecksumKind) Name() string    { return "checksum" }

// Installer is the descriptor an external executor needs to generate one
// installer, as a sum type over the five supported generators.
type Installer interface {
	isInstaller()
	// Style is the installer kind's stable name.
	Style() string
}

// ExecutableZipFragment is an installer manifest's view of one archive:
// enough to download and unpack it without the archive being a registered
// artifact of this run.
type ExecutableZipFragment struct {
	// ID is the archive's artifact id (also its file name).
	ID string
	// TargetTriples are the platforms the fragment claims to cover. An
	// emulation-fallback fragment claims a platform its archive was not
	// built for.
	TargetTriples []string
	// ZipStyle is the archive's format.
	ZipStyle string
	// Binaries are the executable file names inside the archive.
	Binaries []string
}

// InstallerInfo is the descriptor payload shared by every installer kind.
type InstallerInfo struct {
	// DestPath is where the generated installer is written.
	DestPath string
	// AppName and AppVersion identify the release being installed.
	AppName    string
	AppVersion string
	// InstallPath is the install-path strategy template.
	InstallPath string
	// BaseURL is the base URL artifacts are downloadable from.
	BaseURL string
	// Fragments are the archives the installer can fetch.
	Fragments []ExecutableZipFragment
	// Hint is the one-liner users run to install.
	Hint string
	// Desc is a human description of the installer.
	Desc string
}

// ShellInstaller generates a curl-able POSIX shell install script.
type ShellInstaller struct {
	InstallerInfo
}

func (ShellInstaller) isInstaller()  {}
func (ShellInstaller) Style() string { return "shell" }

// PowershellInstaller generates a Windows PowerShell install script.
type PowershellInstaller struct {
	InstallerInfo
}

func (PowershellInstaller) isInstaller()  {}
func (PowershellInstaller) Style() string { return "powershell" }

// NpmInstaller generates an npm package that fetches prebuilt binaries.
type NpmInstaller struct {
	InstallerInfo
	// PackageName is the npm package name, including any @scope.
	PackageName string
	// PackageVersion is the npm package version.
	PackageVersion string
	// PackageDesc, PackageAuthors, PackageLicense, PackageRepositoryURL,
	// PackageHomepageURL and PackageKeywords fill the package manifest.
	PackageDesc          string
	PackageAuthors       []string
	PackageLicense       string
	PackageRepositoryURL string
	PackageHomepageURL   string
	PackageKeywords      []string
	// PackageDir is the staging directory for the npm package.
	PackageDir string
	// Bin is the single binary the package exposes.
	Bin string
}

func (NpmInstaller) isInstaller()  {}
func (NpmInstaller) Style() string { return "npm" }

// HomebrewInstaller generates a Homebrew formula.
type HomebrewInstaller struct {
	InstallerInfo
	// AppName is the formula's install target name.
	AppName string
	// FormulaClass is the Ruby class name for the formula.
	FormulaClass string
	// Desc, License and Homepage fill the formula metadata.
	Desc     string
	License  string
	Homepage string
	// Tap is the repository the formula is published to, if any.
	Tap string
	// Dependencies are run-time formula dependencies.
	Dependencies []string
	// Arm64 and X64 are the macOS fragments the formula selects between,
	// nil when the platform has no coverage.
	Arm64 *ExecutableZipFragment
	X64   *ExecutableZipFragment
}

func (HomebrewInstaller) isInstaller()  {}
func (HomebrewInstaller) Style() string { return "homebrew" }

// MsiInstaller generates a Windows MSI for one variant of one package.
type MsiInstaller struct {
	// PackageDir is the staging directory for MSI inputs.
	PackageDir string
	// PkgSpec is the single package whose binaries back the MSI.
	PkgSpec string
	// Target is the Windows platform the MSI covers.
	Target string
	// FilePath is where the MSI is written.
	FilePath string
	// WxsPath is the packaging descriptor expected next to the package
	// manifest.
	WxsPath string
	// ManifestPath is the owning package's manifest.
	ManifestPath string
}

func (MsiInstaller) isInstaller()  {}
func (MsiInstaller) Style() string { return "msi" }
