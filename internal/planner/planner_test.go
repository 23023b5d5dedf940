// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/platforms"
	"github.com/vk/distplango/internal/workspace"
)

// singleAppWorkspace is a one-package workspace shipping one binary.
func singleAppWorkspace() *workspace.Info {
	return &workspace.Info{
		WorkspaceDir: "/ws",
		TargetDir:    "/ws/target",
		Packages: []workspace.Package{{
			Name:          "my-app",
			Version:       "1.0.0",
			Description:   "An app under test",
			Authors:       []string{"Dev Eloper"},
			License:       "MIT",
			RepositoryURL: "https://example.com/me/my-app",
			Binaries:      []string{"my-app"},
			Publish:       true,
			ManifestPath:  "/ws/dist.hcl",
			PackageRoot:   "/ws",
		}},
	}
}

// resolve merges raw settings for the given workspace, failing the test on
// merge errors.
func resolve(t *testing.T, ws *workspace.Info, workspaceRaw config.Raw, packageRaws ...config.Raw) *config.Resolved {
	t.Helper()
	if len(packageRaws) == 0 {
		packageRaws = make([]config.Raw, len(ws.Packages))
	}
	names := make([]string, len(ws.Packages))
	for i := range ws.Packages {
		names[i] = ws.Packages[i].Name
	}
	resolved, err := config.Merge(workspaceRaw, packageRaws, names)
	require.NoError(t, err)
	return resolved
}

// newTestBuilder wires a builder in "all" mode over the given fixtures.
func newTestBuilder(t *testing.T, ws *workspace.Info, resolved *config.Resolved) *Builder {
	t.Helper()
	return NewBuilder(ws, resolved, config.ModeAll, nil)
}

// addUnixAndWindowsVariants registers the usual linux+windows pair.
func addUnixAndWindowsVariants(b *Builder, releaseIdx plan.ReleaseIdx) (linux, windows plan.VariantIdx) {
	linux = b.AddVariant(releaseIdx, platforms.X64Linux)
	windows = b.AddVariant(releaseIdx, platforms.X64Windows)
	return linux, windows
}
