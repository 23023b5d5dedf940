package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/platforms"
)

// writeManifest writes content to dir/name, creating dir as needed.
func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const rootManifest = `
workspace {
  target_dir = "out"

  dist {
    targets    = [platforms.x64_linux, platforms.x64_windows]
    installers = ["shell", "powershell"]
    tap        = "myorg/homebrew-tap"
  }
}

package "my-app" {
  version     = "v1.2.3"
  description = "An app under test"
  authors     = ["Dev Eloper"]
  license     = "MIT"
  repository  = "https://example.com/me/my-app/"
  binaries    = ["my-app"]

  dist {
    checksum = "sha512"
  }
}
`

func TestLoad_RootManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "dist.hcl", rootManifest)

	loaded, err := Load(context.Background(), dir)
	require.NoError(t, err)

	ws := loaded.Workspace
	assert.Equal(t, dir, ws.WorkspaceDir)
	assert.Equal(t, filepath.Join(dir, "out"), ws.TargetDir)

	require.Len(t, ws.Packages, 1)
	pkg := ws.Packages[0]
	assert.Equal(t, "my-app", pkg.Name)
	assert.Equal(t, "1.2.3", pkg.Version, "leading v is stripped")
	assert.Equal(t, "https://example.com/me/my-app", pkg.RepositoryURL, "trailing slash is stripped")
	assert.Equal(t, []string{"my-app"}, pkg.Binaries)
	assert.True(t, pkg.Publish)
	assert.Equal(t, dir, pkg.PackageRoot)

	assert.Equal(t, []string{platforms.X64Linux, platforms.X64Windows}, loaded.WorkspaceRaw.Targets)
	assert.Equal(t, []string{"shell", "powershell"}, loaded.WorkspaceRaw.Installers)
	require.NotNil(t, loaded.WorkspaceRaw.Tap)
	assert.Equal(t, "myorg/homebrew-tap", *loaded.WorkspaceRaw.Tap)

	require.Len(t, loaded.PackageRaws, 1)
	require.NotNil(t, loaded.PackageRaws[0].Checksum)
	assert.Equal(t, "sha512", *loaded.PackageRaws[0].Checksum)
}

func TestLoad_AcceptsFilePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, "dist.hcl", rootManifest)

	loaded, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, dir, loaded.Workspace.WorkspaceDir)
}

func TestLoad_DiscoversStaticAssets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "dist.hcl", rootManifest)
	for _, name := range []string{"README.md", "CHANGELOG.md", "LICENSE-MIT", "LICENSE-APACHE"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	loaded, err := Load(context.Background(), dir)
	require.NoError(t, err)

	pkg := loaded.Workspace.Packages[0]
	assert.Equal(t, filepath.Join(dir, "README.md"), pkg.ReadmeFile)
	assert.Equal(t, filepath.Join(dir, "CHANGELOG.md"), pkg.ChangelogFile)
	assert.Equal(t, []string{
		filepath.Join(dir, "LICENSE-APACHE"),
		filepath.Join(dir, "LICENSE-MIT"),
	}, pkg.LicenseFiles)
}

func TestLoad_MemberManifests(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "dist.hcl", rootManifest)
	toolsDir := filepath.Join(dir, "tools")
	writeManifest(t, toolsDir, "tools.dist.hcl", `
package "my-tool" {
  version  = "1.2.3"
  binaries = ["my-tool"]
}
`)

	loaded, err := Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, loaded.Workspace.Packages, 2)
	tool := loaded.Workspace.Packages[1]
	assert.Equal(t, "my-tool", tool.Name)
	assert.Equal(t, toolsDir, tool.PackageRoot)
	assert.Equal(t, []string{"my-app", "my-tool"}, loaded.PackageNames)
}

func TestLoad_WorkspaceBlockOnlyInRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "dist.hcl", rootManifest)
	writeManifest(t, filepath.Join(dir, "extra"), "extra.dist.hcl", `
workspace {}

package "extra" {
  version = "1.2.3"
}
`)

	_, err := Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace block is only allowed in the root")
}

func TestLoad_NoPackages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "dist.hcl", `workspace {}`)

	_, err := Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declares no packages")
}

func TestLoad_UnknownSetting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "dist.hcl", `
package "my-app" {
  version = "1.0.0"

  dist {
    compression_level = 9
  }
}
`)

	_, err := Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown setting "compression_level"`)
}

func TestLoad_InvalidEnumValue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "dist.hcl", `
package "my-app" {
  version = "1.0.0"

  dist {
    checksum = "md5"
  }
}
`)

	_, err := Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "md5")
}

func TestLoad_MissingManifest(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestResolveIncludes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("x"), 0o644))

	resolved := &config.Resolved{ByPackage: []config.Settings{{
		Include: []config.Include{
			{Path: "docs"},
			{Path: "extra.txt"},
			{Path: filepath.Join(dir, "extra.txt")},
		},
	}}}

	ResolveIncludes(resolved, dir)

	includes := resolved.ByPackage[0].Include
	assert.Equal(t, filepath.Join(dir, "docs"), includes[0].Path)
	assert.True(t, includes[0].IsDir)
	assert.Equal(t, filepath.Join(dir, "extra.txt"), includes[1].Path)
	assert.False(t, includes[1].IsDir)
	assert.Equal(t, filepath.Join(dir, "extra.txt"), includes[2].Path, "absolute paths pass through")
}
