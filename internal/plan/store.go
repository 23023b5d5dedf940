// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package plan

// Graph is the complete release plan: append-only arenas of every entity,
// the compiled build steps, and the resolved announcement metadata.
//
// All mutation goes through the arena append/lookup methods below, during
// construction by the planner. Entities never hold owning references to
// each other, only handles into these arenas.
type Graph struct {
	// The arenas. Handles index into these slices directly.
	Releases  []Release
	Variants  []ReleaseVariant
	Binaries  []Binary
	Artifacts []Artifact

	// BuildSteps is the ordered action list compiled from the arenas.
	BuildSteps []BuildStep

	// AnnouncementTag is the resolved tag for this run (e.g. "v1.0.0").
	AnnouncementTag string
	// AnnouncementVersion is the version being announced, when the run
	// is a unified version announcement.
	AnnouncementVersion string
	// AnnouncementIsPrerelease is true for prerelease announcements.
	AnnouncementIsPrerelease bool

	// ArtifactDownloadURL is the base URL artifacts can be downloaded
	// from ("<url>/<artifact-id>"), empty when unknown.
	ArtifactDownloadURL string

	// WorkspaceDir, TargetDir and DistDir locate the plan's staging area.
	WorkspaceDir string
	TargetDir    string
	DistDir      string

	// PreciseBuilds is true when compile steps are planned per package
	// rather than per workspace.
	PreciseBuilds bool
	// PublishJobs are the publish pipelines enabled for the run.
	PublishJobs []string
	// PublishPrereleases allows publish jobs for prereleases.
	PublishPrereleases bool
	// Tap is the workspace-wide Homebrew tap, if any.
	Tap string
}

// Release returns the release for a handle.
func (g *Graph) Release(idx ReleaseIdx) *Release {
	return &g.Releases[idx]
}

// Variant returns the variant for a handle.
func (g *Graph) Variant(idx VariantIdx) *ReleaseVariant {
	return &g.Variants[idx]
}

// Binary returns the binary for a handle.
func (g *Graph) Binary(idx BinaryIdx) *Binary {
	return &g.Binaries[idx]
}

// Artifact returns the artifact for a handle.
func (g *Graph) Artifact(idx ArtifactIdx) *Artifact {
	return &g.Artifacts[idx]
}

// AddRelease appends a release and returns its handle.
func (g *Graph) AddRelease(release Release) ReleaseIdx {
	idx := ReleaseIdx(len(g.Releases))
	g.Releases = append(g.Releases, release)
	return idx
}

// AddVariant appends a variant and returns its handle.
func (g *Graph) AddVariant(variant ReleaseVariant) VariantIdx {
	idx := VariantIdx(len(g.Variants))
	g.Variants = append(g.Variants, variant)
	return idx
}

// AddBinary appends a binary and returns its handle.
func (g *Graph) AddBinary(binary Binary) BinaryIdx {
	idx := BinaryIdx(len(g.Binaries))
	g.Binaries = append(g.Binaries, binary)
	return idx
}

// AddArtifact appends an artifact and returns its handle.
func (g *Graph) AddArtifact(artifact Artifact) ArtifactIdx {
	idx := ArtifactIdx(len(g.Artifacts))
	g.Artifacts = append(g.Artifacts, artifact)
	return idx
}
