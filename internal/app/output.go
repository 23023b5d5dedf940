package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vk/distplango/internal/plan"
	"gopkg.in/yaml.v3"
)

// The rendered plan is a stable external surface: downstream tooling (CI
// pipelines, upload scripts) consumes it, so the sum types are flattened
// into tagged structs instead of leaking Go interfaces.

type renderedPlan struct {
	Announcement renderedAnnouncement `json:"announcement" yaml:"announcement"`
	WorkspaceDir string               `json:"workspace_dir" yaml:"workspace_dir"`
	DistDir      string               `json:"dist_dir" yaml:"dist_dir"`
	DownloadURL  string               `json:"download_url,omitempty" yaml:"download_url,omitempty"`
	Releases     []renderedRelease    `json:"releases" yaml:"releases"`
	Artifacts    []renderedArtifact   `json:"artifacts" yaml:"artifacts"`
	Steps        []renderedStep       `json:"steps" yaml:"steps"`
}

type renderedAnnouncement struct {
	Tag          string `json:"tag" yaml:"tag"`
	Version      string `json:"version,omitempty" yaml:"version,omitempty"`
	IsPrerelease bool   `json:"is_prerelease" yaml:"is_prerelease"`
}

type renderedRelease struct {
	App      string            `json:"app" yaml:"app"`
	Version  string            `json:"version" yaml:"version"`
	ID       string            `json:"id" yaml:"id"`
	Targets  []string          `json:"targets" yaml:"targets"`
	Global   []string          `json:"global_artifacts,omitempty" yaml:"global_artifacts,omitempty"`
	Variants []renderedVariant `json:"variants" yaml:"variants"`
}

type renderedVariant struct {
	ID        string           `json:"id" yaml:"id"`
	Target    string           `json:"target" yaml:"target"`
	Binaries  []renderedBinary `json:"binaries" yaml:"binaries"`
	Artifacts []string         `json:"local_artifacts,omitempty" yaml:"local_artifacts,omitempty"`
}

type renderedBinary struct {
	ID       string `json:"id" yaml:"id"`
	Package  string `json:"package" yaml:"package"`
	Name     string `json:"name" yaml:"name"`
	FileName string `json:"file_name" yaml:"file_name"`
}

type renderedArtifact struct {
	ID            string   `json:"id" yaml:"id"`
	Kind          string   `json:"kind" yaml:"kind"`
	TargetTriples []string `json:"target_triples,omitempty" yaml:"target_triples,omitempty"`
	Path          string   `json:"path" yaml:"path"`
	Global        bool     `json:"global" yaml:"global"`
	Checksum      string   `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	InstallHint   string   `json:"install_hint,omitempty" yaml:"install_hint,omitempty"`
}

type renderedStep struct {
	Name string `json:"name" yaml:"name"`

	Target     string   `json:"target,omitempty" yaml:"target,omitempty"`
	PkgSpec    string   `json:"package,omitempty" yaml:"package,omitempty"`
	Features   string   `json:"features,omitempty" yaml:"features,omitempty"`
	BuildFlags string   `json:"build_flags,omitempty" yaml:"build_flags,omitempty"`
	Binaries   []string `json:"binaries,omitempty" yaml:"binaries,omitempty"`

	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`

	Src      string `json:"src,omitempty" yaml:"src,omitempty"`
	Dest     string `json:"dest,omitempty" yaml:"dest,omitempty"`
	WithRoot string `json:"with_root,omitempty" yaml:"with_root,omitempty"`
	ZipStyle string `json:"zip_style,omitempty" yaml:"zip_style,omitempty"`

	Installer string `json:"installer,omitempty" yaml:"installer,omitempty"`
	Checksum  string `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

// renderPlan writes the graph to w in the requested format.
func renderPlan(w io.Writer, format string, g *plan.Graph) error {
	rendered := buildRenderedPlan(g)
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rendered); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rendered)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func buildRenderedPlan(g *plan.Graph) renderedPlan {
	rendered := renderedPlan{
		Announcement: renderedAnnouncement{
			Tag:          g.AnnouncementTag,
			Version:      g.AnnouncementVersion,
			IsPrerelease: g.AnnouncementIsPrerelease,
		},
		WorkspaceDir: g.WorkspaceDir,
		DistDir:      g.DistDir,
		DownloadURL:  g.ArtifactDownloadURL,
	}

	for i := range g.Releases {
		release := &g.Releases[i]
		rr := renderedRelease{
			App:     release.AppName,
			Version: release.Version,
			ID:      release.ID,
			Targets: release.Targets,
		}
		for _, idx := range release.GlobalArtifacts {
			rr.Global = append(rr.Global, g.Artifact(idx).ID)
		}
		for _, variantIdx := range release.Variants {
			variant := g.Variant(variantIdx)
			rv := renderedVariant{ID: variant.ID, Target: variant.Target}
			for _, binIdx := range variant.Binaries {
				binary := g.Binary(binIdx)
				rv.Binaries = append(rv.Binaries, renderedBinary{
					ID:       binary.ID,
					Package:  binary.PkgSpec,
					Name:     binary.Name,
					FileName: binary.FileName,
				})
			}
			for _, idx := range variant.LocalArtifacts {
				rv.Artifacts = append(rv.Artifacts, g.Artifact(idx).ID)
			}
			rr.Variants = append(rr.Variants, rv)
		}
		rendered.Releases = append(rendered.Releases, rr)
	}

	for i := range g.Artifacts {
		artifact := &g.Artifacts[i]
		ra := renderedArtifact{
			ID:            artifact.ID,
			Kind:          artifact.Kind.Name(),
			TargetTriples: artifact.TargetTriples,
			Path:          artifact.FilePath,
			Global:        artifact.IsGlobal,
		}
		if artifact.Checksum != nil {
			ra.Checksum = g.Artifact(*artifact.Checksum).ID
		}
		if kind, ok := artifact.Kind.(plan.InstallerKind); ok {
			ra.InstallHint = installerHint(kind.Installer)
		}
		rendered.Artifacts = append(rendered.Artifacts, ra)
	}

	for _, step := range g.BuildSteps {
		rendered.Steps = append(rendered.Steps, renderStep(g, step))
	}
	return rendered
}

func installerHint(installer plan.Installer) string {
	switch inst := installer.(type) {
	case plan.ShellInstaller:
		return inst.Hint
	case plan.PowershellInstaller:
		return inst.Hint
	case plan.NpmInstaller:
		return inst.Hint
	case plan.HomebrewInstaller:
		return inst.Hint
	default:
		return ""
	}
}

func renderStep(g *plan.Graph, step plan.BuildStep) renderedStep {
	rendered := renderedStep{Name: step.Name()}
	switch s := step.(type) {
	case plan.CompileStep:
		rendered.Target = s.Target
		rendered.PkgSpec = s.PkgSpec
		rendered.Features = s.Features.Key()
		rendered.BuildFlags = s.BuildFlags
		for _, idx := range s.ExpectedBinaries {
			rendered.Binaries = append(rendered.Binaries, g.Binary(idx).ID)
		}
	case plan.ToolchainStep:
		rendered.Tool = s.Tool.Cmd
		rendered.Target = s.Target
	case plan.CopyFileStep:
		rendered.Src = s.SrcPath
		rendered.Dest = s.DestPath
	case plan.CopyDirStep:
		rendered.Src = s.SrcPath
		rendered.Dest = s.DestPath
	case plan.ArchiveStep:
		rendered.Src = s.SrcPath
		rendered.Dest = s.DestPath
		rendered.WithRoot = s.WithRoot
		rendered.ZipStyle = string(s.ZipStyle)
	case plan.GenerateInstallerStep:
		rendered.Installer = s.Installer.Style()
	case plan.ChecksumStep:
		rendered.Checksum = string(s.Spec.Style)
		rendered.Src = s.Spec.SrcPath
		rendered.Dest = s.Spec.DestPath
	}
	return rendered
}
