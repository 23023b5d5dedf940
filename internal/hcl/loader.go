package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/ctxlog"
	"github.com/vk/distplango/internal/fsutil"
	"github.com/vk/distplango/internal/workspace"
)

// ManifestName is the root manifest file name.
const ManifestName = "dist.hcl"

// memberManifestExt marks supplemental manifests containing extra package
// blocks.
const memberManifestExt = ".dist.hcl"

// Loaded is everything a manifest tree declares: the parsed workspace
// plus the raw settings for the precedence merge.
type Loaded struct {
	Workspace *workspace.Info
	// WorkspaceRaw is the workspace block's dist settings.
	WorkspaceRaw config.Raw
	// PackageRaws are each package's dist overrides, in step with
	// Workspace.Packages.
	PackageRaws []config.Raw
	// PackageNames are in step with PackageRaws, for error reporting.
	PackageNames []string
}

// Load reads a workspace from path, which may be a dist.hcl file or a
// directory containing one. Supplemental *.dist.hcl files under the
// workspace contribute extra package blocks; only the root manifest may
// carry a workspace block.
func Load(ctx context.Context, path string) (*Loaded, error) {
	logger := ctxlog.FromContext(ctx)

	rootManifest, workspaceDir, err := locateRoot(path)
	if err != nil {
		return nil, err
	}
	files := []string{rootManifest}
	members, err := fsutil.FindFilesByExtension(workspaceDir, memberManifestExt)
	if err != nil {
		return nil, fmt.Errorf("scanning for member manifests: %w", err)
	}
	files = append(files, members...)

	parser := hclparse.NewParser()
	evalCtx := evalContext()

	loaded := &Loaded{
		Workspace: &workspace.Info{WorkspaceDir: workspaceDir},
	}
	targetDir := "target"

	for _, file := range files {
		logger.Debug("decoding manifest", "path", file)
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}
		var manifest manifestFile
		diags = gohcl.DecodeBody(hclFile.Body, nil, &manifest)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		if manifest.Workspace != nil {
			if file != rootManifest {
				return nil, fmt.Errorf("manifest %s: workspace block is only allowed in the root %s", file, ManifestName)
			}
			if manifest.Workspace.TargetDir != nil {
				targetDir = *manifest.Workspace.TargetDir
			}
			loaded.WorkspaceRaw, err = decodeDist(manifest.Workspace.Dist, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", file, err)
			}
		}

		for _, block := range manifest.Packages {
			pkg, raw, err := loadPackage(block, file, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", file, err)
			}
			loaded.Workspace.Packages = append(loaded.Workspace.Packages, pkg)
			loaded.PackageRaws = append(loaded.PackageRaws, raw)
			loaded.PackageNames = append(loaded.PackageNames, pkg.Name)
		}
	}

	if len(loaded.Workspace.Packages) == 0 {
		return nil, fmt.Errorf("manifest %s declares no packages", rootManifest)
	}
	if !filepath.IsAbs(targetDir) {
		targetDir = filepath.Join(workspaceDir, targetDir)
	}
	loaded.Workspace.TargetDir = targetDir

	logger.Debug("workspace loaded",
		"dir", workspaceDir, "packages", len(loaded.Workspace.Packages))
	return loaded, nil
}

// locateRoot resolves the given path to (root manifest file, workspace dir).
func locateRoot(path string) (string, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	manifest := path
	if info.IsDir() {
		manifest = filepath.Join(path, ManifestName)
		if _, err := os.Stat(manifest); err != nil {
			return "", "", fmt.Errorf("no %s found in %s", ManifestName, path)
		}
	}
	abs, err := filepath.Abs(manifest)
	if err != nil {
		return "", "", err
	}
	return abs, filepath.Dir(abs), nil
}

// loadPackage turns a decoded package block into workspace metadata plus
// its raw dist overlay, discovering static assets next to the manifest.
func loadPackage(block *packageBlock, manifestPath string, evalCtx *hcl.EvalContext) (workspace.Package, config.Raw, error) {
	raw, err := decodeDist(block.Dist, evalCtx)
	if err != nil {
		return workspace.Package{}, config.Raw{}, fmt.Errorf("package %q: %w", block.Name, err)
	}

	version := strings.TrimPrefix(block.Version, "v")
	pkgRoot := filepath.Dir(manifestPath)
	pkg := workspace.Package{
		Name:         block.Name,
		Version:      version,
		Keywords:     block.Keywords,
		Authors:      block.Authors,
		Binaries:     block.Binaries,
		Publish:      true,
		ManifestPath: manifestPath,
		PackageRoot:  pkgRoot,
	}
	if block.Description != nil {
		pkg.Description = *block.Description
	}
	if block.License != nil {
		pkg.License = *block.License
	}
	if block.Repository != nil {
		pkg.RepositoryURL = strings.TrimSuffix(*block.Repository, "/")
	}
	if block.Homepage != nil {
		pkg.HomepageURL = *block.Homepage
	}
	if block.Publish != nil {
		pkg.Publish = *block.Publish
	}

	if readmes, err := fsutil.FindFilesByPrefix(pkgRoot, "README"); err == nil && len(readmes) > 0 {
		pkg.ReadmeFile = readmes[0]
	}
	if changelogs, err := fsutil.FindFilesByPrefix(pkgRoot, "CHANGELOG", "RELEASES"); err == nil && len(changelogs) > 0 {
		pkg.ChangelogFile = changelogs[0]
	}
	if licenses, err := fsutil.FindFilesByPrefix(pkgRoot, "LICENSE", "UNLICENSE"); err == nil {
		pkg.LicenseFiles = licenses
	}

	return pkg, raw, nil
}

// ResolveIncludes rewrites merged include paths relative to the workspace
// root and records whether each points at a directory. It is a separate
// pass because the merge itself never touches the file system.
func ResolveIncludes(resolved *config.Resolved, workspaceDir string) {
	for i := range resolved.ByPackage {
		includes := resolved.ByPackage[i].Include
		for j := range includes {
			if !filepath.IsAbs(includes[j].Path) {
				includes[j].Path = filepath.Join(workspaceDir, includes[j].Path)
			}
			if info, err := os.Stat(includes[j].Path); err == nil && info.IsDir() {
				includes[j].IsDir = true
			}
		}
	}
}
