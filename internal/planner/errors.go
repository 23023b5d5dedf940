// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import "fmt"

// MultiPackageMsiError reports an msi whose binaries span more than one
// package. An msi is built from a single package's wix sources, so there is
// no way to decide which package owns the installer.
type MultiPackageMsiError struct {
	ArtifactName string
	Spec1        string
	Spec2        string
}

func (e *MultiPackageMsiError) Error() string {
	return fmt.Sprintf(
		"%s depends on binaries from multiple packages (%s and %s); an msi can only bundle binaries from one package",
		e.ArtifactName, e.Spec1, e.Spec2,
	)
}

// NoPackageMsiError reports an msi with no binaries at all, leaving it
// without an owning package.
type NoPackageMsiError struct {
	ArtifactName string
}

func (e *NoPackageMsiError) Error() string {
	return fmt.Sprintf("%s has no binaries, so it has no package to build the msi from", e.ArtifactName)
}

// NoTargetsError reports a run where host mode was disabled but neither the
// command line nor the configuration named any target triples.
type NoTargetsError struct{}

func (e *NoTargetsError) Error() string {
	return "artifact mode disables host-only building, but no targets were specified on the command line or in the manifest"
}
