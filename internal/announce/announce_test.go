package announce

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/workspace"
)

// testWorkspace builds a workspace where every package ships one binary
// named after itself.
func testWorkspace(pkgs ...workspace.Package) (*workspace.Info, []config.Settings) {
	for i := range pkgs {
		if pkgs[i].Binaries == nil {
			pkgs[i].Binaries = []string{pkgs[i].Name}
		}
		pkgs[i].Publish = true
	}
	ws := &workspace.Info{
		WorkspaceDir: "/ws",
		TargetDir:    "/ws/target",
		Packages:     pkgs,
	}
	cfgs := make([]config.Settings, len(pkgs))
	return ws, cfgs
}

func TestSelect_ExplicitUnifiedTag(t *testing.T) {
	t.Parallel()

	ws, cfgs := testWorkspace(
		workspace.Package{Name: "alpha", Version: "1.2.3"},
		workspace.Package{Name: "beta", Version: "1.2.3"},
	)

	tag, err := Select(context.Background(), ws, cfgs, "v1.2.3", true)
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3", tag.Tag)
	assert.Equal(t, "1.2.3", tag.Version)
	assert.Nil(t, tag.Package)
	assert.False(t, tag.IsPrerelease)
	require.Len(t, tag.Releases, 2)
}

func TestSelect_InferredTag(t *testing.T) {
	t.Parallel()

	ws, cfgs := testWorkspace(
		workspace.Package{Name: "alpha", Version: "0.4.0"},
		workspace.Package{Name: "beta", Version: "0.4.0"},
	)

	tag, err := Select(context.Background(), ws, cfgs, "", true)
	require.NoError(t, err)
	assert.Equal(t, "v0.4.0", tag.Tag)
	assert.Equal(t, "0.4.0", tag.Version)
}

func TestSelect_IncoherentVersionsRejected(t *testing.T) {
	t.Parallel()

	ws, cfgs := testWorkspace(
		workspace.Package{Name: "alpha", Version: "1.0.0"},
		workspace.Package{Name: "beta", Version: "2.0.0"},
	)

	_, err := Select(context.Background(), ws, cfgs, "", true)
	require.Error(t, err)

	var tooMany *TooManyUnrelatedAppsError
	require.ErrorAs(t, err, &tooMany)
	assert.Contains(t, tooMany.Help, "--tag=v1.0.0 will Announce: alpha")
	assert.Contains(t, tooMany.Help, "--tag=v2.0.0 will Announce: beta")
}

func TestSelect_IncoherentVersionsPlaceholder(t *testing.T) {
	t.Parallel()

	ws, cfgs := testWorkspace(
		workspace.Package{Name: "alpha", Version: "1.0.0"},
		workspace.Package{Name: "beta", Version: "2.0.0"},
	)

	// Planning-only callers survey everything with a placeholder tag.
	tag, err := Select(context.Background(), ws, cfgs, "", false)
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0-FAKEVER", tag.Tag)
	assert.True(t, tag.IsPrerelease)
	require.Len(t, tag.Releases, 2)
}

func TestSelect_PackageTag(t *testing.T) {
	t.Parallel()

	ws, cfgs := testWorkspace(
		workspace.Package{Name: "alpha", Version: "1.0.0"},
		workspace.Package{Name: "beta", Version: "2.0.0"},
	)

	tag, err := Select(context.Background(), ws, cfgs, "beta-v2.0.0", true)
	require.NoError(t, err)
	require.NotNil(t, tag.Package)
	assert.Equal(t, workspace.PackageIdx(1), *tag.Package)
	require.Len(t, tag.Releases, 1)
	assert.Equal(t, workspace.PackageIdx(1), tag.Releases[0].Pkg)
}

func TestSelect_ContradictoryPackageTag(t *testing.T) {
	t.Parallel()

	ws, cfgs := testWorkspace(
		workspace.Package{Name: "alpha", Version: "1.0.0"},
	)

	_, err := Select(context.Background(), ws, cfgs, "alpha-v3.0.0", true)
	require.Error(t, err)

	var contradictory *ContradictoryTagError
	require.ErrorAs(t, err, &contradictory)
	assert.Equal(t, "alpha", contradictory.PackageName)
	assert.Equal(t, "3.0.0", contradictory.TagVersion)
	assert.Equal(t, "1.0.0", contradictory.RealVersion)
}

func TestSelect_LongestPackageNameWins(t *testing.T) {
	t.Parallel()

	ws, cfgs := testWorkspace(
		workspace.Package{Name: "app", Version: "1.0.0"},
		workspace.Package{Name: "app-helper", Version: "2.0.0"},
	)

	tag, err := Select(context.Background(), ws, cfgs, "app-helper-v2.0.0", true)
	require.NoError(t, err)
	require.NotNil(t, tag.Package)
	assert.Equal(t, "app-helper", ws.Package(*tag.Package).Name)
}

func TestSelect_SlashDelimitedTag(t *testing.T) {
	t.Parallel()

	ws, cfgs := testWorkspace(
		workspace.Package{Name: "alpha", Version: "1.0.0"},
	)

	tag, err := Select(context.Background(), ws, cfgs, "releases/alpha/v1.0.0", true)
	require.NoError(t, err)
	require.NotNil(t, tag.Package)
	assert.Equal(t, workspace.PackageIdx(0), *tag.Package)
}

func TestSelect_PrereleaseDetected(t *testing.T) {
	t.Parallel()

	ws, cfgs := testWorkspace(
		workspace.Package{Name: "alpha", Version: "1.0.0-rc.1"},
	)

	tag, err := Select(context.Background(), ws, cfgs, "v1.0.0-rc.1", true)
	require.NoError(t, err)
	assert.True(t, tag.IsPrerelease)
}

func TestSelect_GarbageTag(t *testing.T) {
	t.Parallel()

	ws, cfgs := testWorkspace(
		workspace.Package{Name: "alpha", Version: "1.0.0"},
	)

	_, err := Select(context.Background(), ws, cfgs, "not-a-version", true)
	require.Error(t, err)

	var parseErr *TagVersionParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestSelect_NothingToRelease(t *testing.T) {
	t.Parallel()

	// A workspace of pure libraries: no binaries anywhere.
	ws := &workspace.Info{
		WorkspaceDir: "/ws",
		TargetDir:    "/ws/target",
		Packages: []workspace.Package{
			{Name: "libonly", Version: "1.0.0", Publish: true},
		},
	}
	cfgs := make([]config.Settings, 1)

	_, err := Select(context.Background(), ws, cfgs, "v1.0.0", true)
	require.Error(t, err)

	var nothing *NothingToReleaseError
	require.ErrorAs(t, err, &nothing)
	assert.Contains(t, nothing.Help, "no packages in your workspace with distributable binaries")
}

func TestSelect_DistOverridesPublish(t *testing.T) {
	t.Parallel()

	ws, cfgs := testWorkspace(
		workspace.Package{Name: "alpha", Version: "1.0.0"},
		workspace.Package{Name: "beta", Version: "1.0.0"},
	)
	// beta is unpublishable but explicitly opted in.
	ws.Packages[1].Publish = false
	distTrue := true
	cfgs[1].Dist = &distTrue

	tag, err := Select(context.Background(), ws, cfgs, "v1.0.0", true)
	require.NoError(t, err)
	require.Len(t, tag.Releases, 2)

	// Flipping the override back off excludes it again.
	distFalse := false
	cfgs[1].Dist = &distFalse
	tag, err = Select(context.Background(), ws, cfgs, "v1.0.0", true)
	require.NoError(t, err)
	require.Len(t, tag.Releases, 1)
	assert.Equal(t, workspace.PackageIdx(0), tag.Releases[0].Pkg)
}
