// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/diag"
	"github.com/vk/distplango/internal/host"
	"github.com/vk/distplango/internal/plan"
	"github.com/vk/distplango/internal/platforms"
	"github.com/vk/distplango/internal/workspace"
)

var linuxHost = host.Info{Target: platforms.X64Linux}

// stepNames flattens a step list to its stable names for coarse ordering
// assertions.
func stepNames(steps []plan.BuildStep) []string {
	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = step.Name()
	}
	return names
}

func TestComputeSteps_CompilesThenLocalsThenGlobals(t *testing.T) {
	t.Parallel()

	ws := singleAppWorkspace()
	b, releaseIdx := installerFixture(t, ws, resolve(t, ws, config.Raw{}), nil,
		platforms.X64Linux, platforms.X64Windows)
	b.AddExecutableZip(releaseIdx)
	require.NoError(t, b.AddInstaller(releaseIdx, config.InstallerShell))

	steps := ComputeSteps(b.Graph(), linuxHost, nil)

	assert.Equal(t, []string{
		"compile",            // windows (targets sort before linux)
		"compile",            // linux
		"archive",            // linux zip
		"checksum",           // linux zip checksum
		"archive",            // windows zip
		"checksum",           // windows zip checksum
		"generate-installer", // shell script, global so last
	}, stepNames(steps))

	windowsCompile := steps[0].(plan.CompileStep)
	assert.Equal(t, platforms.X64Windows, windowsCompile.Target)
	assert.Equal(t, staticCrtFlag, windowsCompile.BuildFlags)

	linuxCompile := steps[1].(plan.CompileStep)
	assert.Equal(t, platforms.X64Linux, linuxCompile.Target)
	assert.Empty(t, linuxCompile.BuildFlags)
	require.Len(t, linuxCompile.ExpectedBinaries, 1)

	archive := steps[2].(plan.ArchiveStep)
	assert.Equal(t, config.ZipStyleTarXzip, archive.ZipStyle)
	assert.Equal(t, "my-app-v1.0.0-"+platforms.X64Linux, archive.WithRoot)
}

func TestComputeSteps_AmbientBuildFlagsKept(t *testing.T) {
	t.Parallel()

	ws := singleAppWorkspace()
	b, releaseIdx := installerFixture(t, ws, resolve(t, ws, config.Raw{}), nil,
		platforms.X64Windows)
	b.AddExecutableZip(releaseIdx)

	steps := ComputeSteps(b.Graph(), host.Info{Target: platforms.X64Linux, BuildFlags: "--frozen"}, nil)

	compile := steps[0].(plan.CompileStep)
	assert.Equal(t, "--frozen --static-crt", compile.BuildFlags)
}

func TestComputeSteps_UnrequiredBinariesNotBuilt(t *testing.T) {
	t.Parallel()

	ws := singleAppWorkspace()
	b, _ := installerFixture(t, ws, resolve(t, ws, config.Raw{}), nil,
		platforms.X64Linux)
	// No archives, no installers: nothing requires the binary.

	steps := ComputeSteps(b.Graph(), linuxHost, nil)
	assert.Empty(t, steps)
}

func TestComputeSteps_PreciseBuildsSplitByPackage(t *testing.T) {
	t.Parallel()

	ws := singleAppWorkspace()
	ws.Packages = append(ws.Packages, workspace.Package{
		Name: "other", Version: "1.0.0", Binaries: []string{"other"},
		Publish: true, ManifestPath: "/ws/other/dist.hcl", PackageRoot: "/ws/other",
	})
	// Divergent feature selections force precise per-package builds.
	resolved := resolve(t, ws, config.Raw{},
		config.Raw{Features: []string{"fancy"}}, config.Raw{})
	require.True(t, resolved.Workspace.PreciseBuilds)

	b := NewBuilder(ws, resolved, config.ModeAll, nil)
	for pkgIdx := range ws.Packages {
		releaseIdx := b.AddRelease(workspace.PackageIdx(pkgIdx))
		b.AddBinary(releaseIdx, workspace.PackageIdx(pkgIdx), ws.Packages[pkgIdx].Binaries[0])
		b.AddVariant(releaseIdx, platforms.X64Linux)
		b.AddExecutableZip(releaseIdx)
	}

	steps := ComputeSteps(b.Graph(), linuxHost, nil)

	var compiles []plan.CompileStep
	for _, step := range steps {
		if compile, ok := step.(plan.CompileStep); ok {
			compiles = append(compiles, compile)
		}
	}
	require.Len(t, compiles, 2)
	assert.Equal(t, "my-app", compiles[0].PkgSpec)
	assert.Equal(t, []string{"fancy"}, compiles[0].Features.Features)
	assert.Equal(t, "other", compiles[1].PkgSpec)
	assert.Empty(t, compiles[1].Features.Features)
}

func TestComputeSteps_DarwinCrossProvisionsToolchain(t *testing.T) {
	t.Parallel()

	ws := singleAppWorkspace()
	b, releaseIdx := installerFixture(t, ws, resolve(t, ws, config.Raw{}), nil,
		platforms.Arm64MacOS)
	b.AddExecutableZip(releaseIdx)

	tool := plan.Tool{Cmd: "toolchainctl"}
	steps := ComputeSteps(b.Graph(), host.Info{
		Target:             platforms.X64MacOS,
		ToolchainInstaller: &tool,
	}, nil)

	require.GreaterOrEqual(t, len(steps), 2)
	toolchain, ok := steps[0].(plan.ToolchainStep)
	require.True(t, ok, "toolchain provisioning must precede the compile")
	assert.Equal(t, "toolchainctl", toolchain.Tool.Cmd)
	assert.Equal(t, platforms.Arm64MacOS, toolchain.Target)
	_, ok = steps[1].(plan.CompileStep)
	assert.True(t, ok)
}

func TestComputeSteps_DarwinCrossWithoutInstallerWarns(t *testing.T) {
	t.Parallel()

	ws := singleAppWorkspace()
	b, releaseIdx := installerFixture(t, ws, resolve(t, ws, config.Raw{}), nil,
		platforms.Arm64MacOS)
	b.AddExecutableZip(releaseIdx)

	recorder := &diag.Recorder{}
	steps := ComputeSteps(b.Graph(), host.Info{Target: platforms.X64MacOS}, recorder)

	_, ok := steps[0].(plan.CompileStep)
	assert.True(t, ok, "compilation proceeds without provisioning")
	require.Len(t, recorder.Warnings, 1)
	assert.Contains(t, recorder.Warnings[0], "no toolchain installer found")
}

func TestComputeSteps_StaticAssetCopies(t *testing.T) {
	t.Parallel()

	ws := singleAppWorkspace()
	resolved := resolve(t, ws, config.Raw{})
	resolved.ByPackage[0].Include = []config.Include{
		{Path: "/ws/docs", IsDir: true},
		{Path: "/ws/extra.txt"},
	}

	b := NewBuilder(ws, resolved, config.ModeAll, nil)
	b.Graph().ArtifactDownloadURL = testDownloadURL
	releaseIdx := b.AddRelease(0)
	b.AddBinary(releaseIdx, 0, "my-app")
	b.AddVariant(releaseIdx, platforms.X64Linux)
	b.AddExecutableZip(releaseIdx)

	steps := ComputeSteps(b.Graph(), linuxHost, nil)

	assert.Equal(t, []string{"compile", "copy-dir", "copy-file", "archive", "checksum"}, stepNames(steps))

	copyDir := steps[1].(plan.CopyDirStep)
	assert.Equal(t, "/ws/docs", copyDir.SrcPath)
	assert.Equal(t, "/ws/target/distrib/my-app-v1.0.0-"+platforms.X64Linux+"/docs", copyDir.DestPath)

	copyFile := steps[2].(plan.CopyFileStep)
	assert.Equal(t, "/ws/extra.txt", copyFile.SrcPath)

	archive := steps[3].(plan.ArchiveStep)
	assert.Equal(t, "/ws/target/distrib/my-app-v1.0.0-"+platforms.X64Linux, archive.SrcPath)
}

func TestComputeSteps_Deterministic(t *testing.T) {
	t.Parallel()

	build := func() []plan.BuildStep {
		ws := singleAppWorkspace()
		b, releaseIdx := installerFixture(t, ws, resolve(t, ws, config.Raw{}), nil,
			platforms.X64Linux, platforms.Arm64Linux, platforms.X64Windows, platforms.X64MacOS)
		b.AddExecutableZip(releaseIdx)
		require.NoError(t, b.AddInstaller(releaseIdx, config.InstallerShell))
		require.NoError(t, b.AddInstaller(releaseIdx, config.InstallerPowershell))
		require.NoError(t, b.AddInstaller(releaseIdx, config.InstallerHomebrew))
		return ComputeSteps(b.Graph(), linuxHost, nil)
	}

	first, second := build(), build()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("identical inputs produced different step lists (-first +second):\n%s", diff)
	}
}
