// Package platforms centralizes knowledge about target platform
// identifiers ("target triples") and the per-platform policy tables the
// planner consults: executable suffixes, OS classification, and the
// debug-symbol format a platform can produce.
package platforms

import "strings"

// Well-known target triples. The planner treats triples as opaque strings
// everywhere except the classification helpers below; these constants
// exist for the handful of rules that name specific platforms.
const (
	X64Linux   = "x86_64-unknown-linux-gnu"
	Arm64Linux = "aarch64-unknown-linux-gnu"
	X64MacOS   = "x86_64-apple-darwin"
	Arm64MacOS = "aarch64-apple-darwin"
	X64Windows = "x86_64-pc-windows-msvc"
)

// IsWindows reports whether the triple is a Windows-class target.
func IsWindows(target string) bool {
	return strings.Contains(target, "windows")
}

// IsWindowsMsvc reports whether the triple uses the MSVC Windows ABI.
func IsWindowsMsvc(target string) bool {
	return strings.Contains(target, "windows-msvc")
}

// IsMacOS reports whether the triple is a macOS-class target.
func IsMacOS(target string) bool {
	return strings.HasSuffix(target, "apple-darwin")
}

// IsLinuxGnu reports whether the triple is a glibc Linux target.
func IsLinuxGnu(target string) bool {
	return strings.Contains(target, "linux-gnu")
}

// ExeSuffix returns the file extension executables carry on the given
// platform, including the leading dot, or "" if there is none.
func ExeSuffix(target string) string {
	if IsWindows(target) {
		return ".exe"
	}
	return ""
}

// SymbolKind identifies a debug-symbol bundle format.
type SymbolKind string

const (
	// SymbolPdb is Microsoft's pdb format.
	SymbolPdb SymbolKind = "pdb"
	// SymbolDsym is Apple's dSYM bundle.
	SymbolDsym SymbolKind = "dSYM"
	// SymbolDwp is the DWARF package format.
	SymbolDwp SymbolKind = "dwp"
)

// Ext returns the file extension for the symbol kind.
func (k SymbolKind) Ext() string {
	return string(k)
}

// SymbolKindFor is the policy table mapping a target platform to the
// debug-symbol format the planner should request for it.
//
// Every branch currently reports no symbols: pdb handling is pending a
// redesign of symbol staging, dSYM bundles are directories and break
// flat-file artifact handling, and dwp files are not reliably produced by
// the toolchains we drive. The lazy symbol-artifact machinery in the
// planner is live; flipping a case here is all it takes to re-enable a
// platform.
func SymbolKindFor(target string) (SymbolKind, bool) {
	switch {
	case IsWindowsMsvc(target):
		return "", false
	case IsMacOS(target):
		return "", false
	default:
		return "", false
	}
}

// displayNames maps the triples we commonly plan for to human-readable
// platform names used in rendered plans.
var displayNames = map[string]string{
	X64Linux:   "Linux x64",
	Arm64Linux: "Linux arm64",
	X64MacOS:   "macOS x64",
	Arm64MacOS: "macOS arm64",
	X64Windows: "Windows x64",
}

// DisplayName returns a human-readable name for a triple, or "" if the
// triple is not recognized.
func DisplayName(target string) string {
	return displayNames[target]
}
