// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"fmt"

	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/diag"
	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/platforms"
	"github.com/vk/distplango/internal/workspace"
)

// Builder accumulates a plan.Graph. It is the only writer of the graph;
// every entity goes in through one of the Add methods so ids stay unique
// and the local/global artifact split stays consistent.
type Builder struct {
	graph *plan.Graph
	ws    *workspace.Info
	cfgs  []config.Settings
	mode  config.ArtifactMode
	sink  diag.Sink

	// binariesByID dedups binaries across variants of a release. Two
	// variants for the same target share one Binary entity.
	binariesByID map[string]plan.BinaryIdx
}

// NewBuilder wires a builder over a probed workspace and its resolved
// configuration. mode controls which artifact classes later Add calls are
// allowed to register.
func NewBuilder(ws *workspace.Info, resolved *config.Resolved, mode config.ArtifactMode, sink diag.Sink) *Builder {
	if sink == nil {
		sink = diag.Discard
	}
	graph := &plan.Graph{
		WorkspaceDir:       ws.WorkspaceDir,
		TargetDir:          ws.TargetDir,
		DistDir:            ws.DistDir(),
		PreciseBuilds:      resolved.Workspace.PreciseBuilds,
		PublishJobs:        resolved.Workspace.PublishJobs,
		PublishPrereleases: resolved.Workspace.PublishPrereleases,
		Tap:                resolved.Workspace.Tap,
	}
	return &Builder{
		graph:        graph,
		ws:           ws,
		cfgs:         resolved.ByPackage,
		mode:         mode,
		sink:         sink,
		binariesByID: map[string]plan.BinaryIdx{},
	}
}

// Graph exposes the graph under construction.
func (b *Builder) Graph() *plan.Graph { return b.graph }

// AddRelease registers a release for one package. Static assets are
// assembled here so every later consumer (archives, npm packages) sees the
// same list.
func (b *Builder) AddRelease(pkgIdx workspace.PackageIdx) plan.ReleaseIdx {
	pkg := b.ws.Package(pkgIdx)
	cfg := b.cfgs[pkgIdx]

	var assets []workspace.StaticAsset
	if cfg.AutoIncludes {
		if pkg.ReadmeFile != "" {
			assets = append(assets, workspace.StaticAsset{Kind: workspace.AssetReadme, Path: pkg.ReadmeFile})
		}
		if pkg.ChangelogFile != "" {
			assets = append(assets, workspace.StaticAsset{Kind: workspace.AssetChangelog, Path: pkg.ChangelogFile})
		}
		for _, lic := range pkg.LicenseFiles {
			assets = append(assets, workspace.StaticAsset{Kind: workspace.AssetLicense, Path: lic})
		}
	}
	for _, inc := range cfg.Include {
		assets = append(assets, workspace.StaticAsset{Kind: workspace.AssetOther, Path: inc.Path, IsDir: inc.IsDir})
	}

	version := pkg.Version
	id := fmt.Sprintf("%s-v%s", pkg.Name, version)
	return b.graph.AddRelease(plan.Release{
		AppName:          pkg.Name,
		AppDesc:          pkg.Description,
		AppAuthors:       pkg.Authors,
		AppLicense:       pkg.License,
		AppRepositoryURL: pkg.RepositoryURL,
		AppHomepageURL:   pkg.HomepageURL,
		AppKeywords:      pkg.Keywords,
		Version:          version,
		ID:               id,
		WindowsArchive: cfg.WindowsArchive,
		UnixArchive:    cfg.UnixArchive,
		Checksum:       cfg.Checksum,
		NpmScope:       cfg.NpmScope,
		InstallPath:    cfg.InstallPath,
		Tap:            cfg.Tap,
		HomebrewDeps:   cfg.HomebrewDeps,
		StaticAssets:   assets,
	})
}

// AddBinary declares that a release ships the named binary from a package.
// Variants added afterwards pick it up per target.
func (b *Builder) AddBinary(releaseIdx plan.ReleaseIdx, pkgIdx workspace.PackageIdx, name string) {
	release := b.graph.Release(releaseIdx)
	release.Bins = append(release.Bins, plan.BinaryRef{Pkg: pkgIdx, Name: name})
}

// AddVariant registers the target-specific half of a release and
// instantiates (or reuses) a Binary entity per declared binary.
func (b *Builder) AddVariant(releaseIdx plan.ReleaseIdx, target string) plan.VariantIdx {
	release := b.graph.Release(releaseIdx)
	id := fmt.Sprintf("%s-%s", release.ID, target)

	var binaries []plan.BinaryIdx
	for _, ref := range release.Bins {
		pkg := b.ws.Package(ref.Pkg)
		cfg := b.cfgs[ref.Pkg]
		binID := fmt.Sprintf("%s-v%s-%s", ref.Name, pkg.Version, target)
		idx, ok := b.binariesByID[binID]
		if !ok {
			idx = b.graph.AddBinary(plan.Binary{
				ID:       binID,
				Pkg:      ref.Pkg,
				PkgSpec:  pkg.Name,
				Name:     ref.Name,
				FileName: ref.Name + platforms.ExeSuffix(target),
				Target:   target,
				Features: cfg.Features,
			})
			b.binariesByID[binID] = idx
		}
		binaries = append(binaries, idx)
	}

	variantIdx := b.graph.AddVariant(plan.ReleaseVariant{
		Target:       target,
		ID:           id,
		Binaries:     binaries,
		StaticAssets: append([]workspace.StaticAsset(nil), release.StaticAssets...),
	})
	release.Variants = append(release.Variants, variantIdx)
	release.Targets = append(release.Targets, target)
	return variantIdx
}

// localArtifactsEnabled reports whether the artifact mode admits
// per-variant artifacts.
func (b *Builder) localArtifactsEnabled() bool {
	switch b.mode {
	case config.ModeLocal, config.ModeHost, config.ModeAll:
		return true
	default:
		return false
	}
}

// globalArtifactsEnabled reports whether the artifact mode admits
// release-wide artifacts.
func (b *Builder) globalArtifactsEnabled() bool {
	switch b.mode {
	case config.ModeGlobal, config.ModeAll:
		return true
	default:
		return false
	}
}

func (b *Builder) addLocalArtifact(variantIdx plan.VariantIdx, artifact plan.Artifact) plan.ArtifactIdx {
	if !b.localArtifactsEnabled() {
		panic("planner: local artifact registered while local artifacts are disabled")
	}
	if artifact.IsGlobal {
		panic("planner: artifact marked global registered as local")
	}
	idx := b.graph.AddArtifact(artifact)
	variant := b.graph.Variant(variantIdx)
	variant.LocalArtifacts = append(variant.LocalArtifacts, idx)
	return idx
}

func (b *Builder) addGlobalArtifact(releaseIdx plan.ReleaseIdx, artifact plan.Artifact) plan.ArtifactIdx {
	if !b.globalArtifactsEnabled() {
		panic("planner: global artifact registered while global artifacts are disabled")
	}
	if !artifact.IsGlobal {
		panic("planner: artifact marked local registered as global")
	}
	idx := b.graph.AddArtifact(artifact)
	release := b.graph.Release(releaseIdx)
	release.GlobalArtifacts = append(release.GlobalArtifacts, idx)
	return idx
}
