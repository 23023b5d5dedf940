// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/distplango/internal/diag"
	"github.com/vk/distplango/internal/host"
	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/platforms"
)

// staticCrtFlag forces static linking of the C runtime. Injected for
// msvc targets so produced binaries run without a redistributable.
const staticCrtFlag = "--static-crt"

// ComputeSteps compiles the graph's entities into the ordered action list
// an executor runs: toolchain and compile steps first, then the steps of
// every local artifact, then the steps of every global artifact. The
// result is a pure function of the inputs, so planning the same graph
// twice yields identical steps.
func ComputeSteps(g *plan.Graph, hostInfo host.Info, sink diag.Sink) []plan.BuildStep {
	if sink == nil {
		sink = diag.Discard
	}
	var steps []plan.BuildStep

	// Group buildable binaries by target. A binary nothing requires is
	// never built.
	byTarget := map[string][]plan.BinaryIdx{}
	for idx := range g.Binaries {
		binary := &g.Binaries[idx]
		if len(binary.CopyExeTo) == 0 && len(binary.CopySymbolsTo) == 0 {
			continue
		}
		byTarget[binary.Target] = append(byTarget[binary.Target], plan.BinaryIdx(idx))
	}
	targets := make([]string, 0, len(byTarget))
	for target := range byTarget {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		binaries := byTarget[target]

		// Cross-compiling between macOS flavors works once the right
		// toolchain component is installed, so provision it when we can.
		if platforms.IsMacOS(target) && platforms.IsMacOS(hostInfo.Target) && target != hostInfo.Target {
			if hostInfo.ToolchainInstaller != nil {
				steps = append(steps, plan.ToolchainStep{
					Tool:   *hostInfo.ToolchainInstaller,
					Target: target,
				})
			} else {
				sink.Warn("no toolchain installer found; cross-compile may fail",
					"host", hostInfo.Target, "target", target)
			}
		}

		buildFlags := hostInfo.BuildFlags
		if platforms.IsWindowsMsvc(target) {
			buildFlags = strings.TrimSpace(buildFlags + " " + staticCrtFlag)
		}

		if g.PreciseBuilds {
			steps = append(steps, preciseCompileSteps(g, target, buildFlags, binaries)...)
		} else {
			features := g.Binary(binaries[0]).Features
			steps = append(steps, plan.CompileStep{
				Target:           target,
				Features:         features,
				BuildFlags:       buildFlags,
				ExpectedBinaries: binaries,
			})
		}
	}

	steps = appendArtifactSteps(g, steps, false)
	steps = appendArtifactSteps(g, steps, true)
	return steps
}

// preciseCompileSteps splits one target's binaries into a compile step per
// (package, feature selection) pair, ordered deterministically.
func preciseCompileSteps(g *plan.Graph, target, buildFlags string, binaries []plan.BinaryIdx) []plan.BuildStep {
	type groupKey struct {
		pkgSpec  string
		features string
	}
	groups := map[groupKey][]plan.BinaryIdx{}
	for _, idx := range binaries {
		binary := g.Binary(idx)
		key := groupKey{pkgSpec: binary.PkgSpec, features: binary.Features.Key()}
		groups[key] = append(groups[key], idx)
	}
	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].pkgSpec != keys[j].pkgSpec {
			return keys[i].pkgSpec < keys[j].pkgSpec
		}
		return keys[i].features < keys[j].features
	})

	var steps []plan.BuildStep
	for _, key := range keys {
		group := groups[key]
		steps = append(steps, plan.CompileStep{
			Target:           target,
			Features:         g.Binary(group[0]).Features,
			PkgSpec:          key.pkgSpec,
			BuildFlags:       buildFlags,
			ExpectedBinaries: group,
		})
	}
	return steps
}

// appendArtifactSteps emits the steps for every artifact in one scope
// class, in arena order: the kind's own step (installer generation,
// checksumming), then staging copies, then the archive.
func appendArtifactSteps(g *plan.Graph, steps []plan.BuildStep, global bool) []plan.BuildStep {
	for idx := range g.Artifacts {
		artifact := &g.Artifacts[idx]
		if artifact.IsGlobal != global {
			continue
		}

		switch kind := artifact.Kind.(type) {
		case plan.ExecutableZipKind:
			// Contents arrive via the compile steps' copy lists.
		case plan.SymbolsKind:
			// Symbol extraction is target-tooling work the executor does
			// as part of the build; no standalone step yet.
		case plan.InstallerKind:
			steps = append(steps, plan.GenerateInstallerStep{Installer: kind.Installer})
		case plan.ChecksumKind:
			steps = append(steps, plan.ChecksumStep{Spec: kind.Spec})
		}

		if artifact.Archive == nil {
			continue
		}
		for _, asset := range artifact.Archive.StaticAssets {
			dest := filepath.Join(artifact.Archive.DirPath, filepath.Base(asset.Path))
			if asset.IsDir {
				steps = append(steps, plan.CopyDirStep{SrcPath: asset.Path, DestPath: dest})
			} else {
				steps = append(steps, plan.CopyFileStep{SrcPath: asset.Path, DestPath: dest})
			}
		}
		steps = append(steps, plan.ArchiveStep{
			SrcPath:  artifact.Archive.DirPath,
			DestPath: artifact.FilePath,
			WithRoot: artifact.Archive.WithRoot,
			ZipStyle: artifact.Archive.ZipStyle,
		})
	}
	return steps
}
