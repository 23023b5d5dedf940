package hcl

import "github.com/hashicorp/hcl/v2"

// manifestFile is the top-level structure of one manifest file for
// decoding.
type manifestFile struct {
	Workspace *workspaceBlock `hcl:"workspace,block"`
	Packages  []*packageBlock `hcl:"package,block"`
}

// workspaceBlock is the workspace-wide half of the root manifest.
type workspaceBlock struct {
	// TargetDir is the build output directory, relative to the workspace
	// root unless absolute.
	TargetDir *string `hcl:"target_dir,optional"`
	// Dist holds the workspace-default distribution settings.
	Dist *distBlock `hcl:"dist,block"`
}

// packageBlock declares one distributable package.
type packageBlock struct {
	Name        string   `hcl:"name,label"`
	Version     string   `hcl:"version"`
	Description *string  `hcl:"description,optional"`
	Authors     []string `hcl:"authors,optional"`
	License     *string  `hcl:"license,optional"`
	Repository  *string  `hcl:"repository,optional"`
	Homepage    *string  `hcl:"homepage,optional"`
	Keywords    []string `hcl:"keywords,optional"`
	Binaries    []string `hcl:"binaries,optional"`
	Publish     *bool    `hcl:"publish,optional"`
	// Dist holds this package's distribution overrides.
	Dist *distBlock `hcl:"dist,block"`
}

// distBlock defers its attributes to the cty-based decoder in decode.go,
// which knows the full settings vocabulary.
type distBlock struct {
	Body hcl.Body `hcl:",remain"`
}
