// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"context"
	"sort"

	"github.com/vk/distplango/internal/announce"
	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/ctxlog"
	"github.com/vk/distplango/internal/diag"
	"github.com/vk/distplango/internal/host"
	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/workspace"
)

// RunConfig is what the command line contributes to a planning run.
type RunConfig struct {
	// Tag is the announcement tag, "" to infer one.
	Tag string
	// NeedsCoherentTag requires tag inference to be unambiguous. Planning
	// front-ends turn this off to survey everything.
	NeedsCoherentTag bool
	// ArtifactMode selects which artifact classes to plan.
	ArtifactMode config.ArtifactMode
	// Targets restricts planning to these platforms. Empty means use the
	// configured targets (or just the host, in host mode).
	Targets []string
	// Installers restricts planning to these installer kinds. Empty means
	// every configured kind.
	Installers []config.InstallerStyle
}

// Gather resolves the announcement and builds the full plan for it:
// releases with their variants, binaries, artifacts, installers, and the
// compiled build steps.
func Gather(
	ctx context.Context,
	ws *workspace.Info,
	resolved *config.Resolved,
	run RunConfig,
	hostInfo host.Info,
	sink diag.Sink,
) (*plan.Graph, *announce.Tag, error) {
	logger := ctxlog.FromContext(ctx)
	if sink == nil {
		sink = diag.Discard
	}

	b := NewBuilder(ws, resolved, run.ArtifactMode, sink)
	g := b.Graph()

	// In host mode with no explicit targets, plan whatever the host can
	// build and ignore each package's target list.
	bypassTargetFilter := false
	triples := run.Targets
	if len(triples) == 0 {
		if run.ArtifactMode == config.ModeHost {
			bypassTargetFilter = true
			triples = []string{hostInfo.Target}
		} else {
			triples = configuredTargets(resolved)
			if len(triples) == 0 {
				return nil, nil, &NoTargetsError{}
			}
		}
	}

	announcing, err := announce.Select(ctx, ws, resolved.ByPackage, run.Tag, run.NeedsCoherentTag)
	if err != nil {
		return nil, nil, err
	}
	g.AnnouncementTag = announcing.Tag
	g.AnnouncementVersion = announcing.Version
	g.AnnouncementIsPrerelease = announcing.IsPrerelease

	if repoURL, err := ws.RepositoryURL(); err == nil && repoURL != "" {
		g.ArtifactDownloadURL = repoURL + "/releases/download/" + announcing.Tag
	} else if err != nil {
		logger.Debug("not deriving a download url", "reason", err)
	}

	for _, rel := range announcing.Releases {
		cfg := resolved.ByPackage[rel.Pkg]
		releaseIdx := b.AddRelease(rel.Pkg)
		for _, bin := range rel.Binaries {
			b.AddBinary(releaseIdx, rel.Pkg, bin)
		}
		for _, target := range triples {
			if !bypassTargetFilter && !containsString(cfg.Targets, target) {
				continue
			}
			b.AddVariant(releaseIdx, target)
		}

		b.AddExecutableZip(releaseIdx)

		styles := cfg.Installers
		if len(run.Installers) > 0 {
			styles = intersectInstallers(cfg.Installers, run.Installers)
		}
		for _, style := range styles {
			if err := b.AddInstaller(releaseIdx, style); err != nil {
				return nil, nil, err
			}
		}
	}

	g.BuildSteps = ComputeSteps(g, hostInfo, sink)
	return g, announcing, nil
}

// configuredTargets is the sorted union of every package's target list.
func configuredTargets(resolved *config.Resolved) []string {
	seen := map[string]bool{}
	var triples []string
	for _, cfg := range resolved.ByPackage {
		for _, target := range cfg.Targets {
			if !seen[target] {
				seen[target] = true
				triples = append(triples, target)
			}
		}
	}
	sort.Strings(triples)
	return triples
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// intersectInstallers keeps requested styles that the package actually
// configured, preserving the configured order.
func intersectInstallers(configured, requested []config.InstallerStyle) []config.InstallerStyle {
	var out []config.InstallerStyle
	for _, style := range configured {
		for _, want := range requested {
			if style == want {
				out = append(out, style)
				break
			}
		}
	}
	return out
}
