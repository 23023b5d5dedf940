package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/platforms"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// evalContext is the context dist-block expressions evaluate in. It
// exposes the known platform triples as platforms.<name> so manifests do
// not have to spell them out.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"platforms": cty.ObjectVal(map[string]cty.Value{
				"x64_linux":   cty.StringVal(platforms.X64Linux),
				"arm64_linux": cty.StringVal(platforms.Arm64Linux),
				"x64_macos":   cty.StringVal(platforms.X64MacOS),
				"arm64_macos": cty.StringVal(platforms.Arm64MacOS),
				"x64_windows": cty.StringVal(platforms.X64Windows),
			}),
		},
	}
}

// decodeDist decodes one dist block into a Raw settings overlay. Enum
// values are validated here so the merge can treat surviving values as
// well-formed.
func decodeDist(block *distBlock, evalCtx *hcl.EvalContext) (config.Raw, error) {
	var raw config.Raw
	if block == nil {
		return raw, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return raw, fmt.Errorf("invalid dist block: %w", diags)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		attr := attrs[name]
		var err error
		switch name {
		case "targets":
			raw.Targets, err = decodeStrings(attr, evalCtx)
		case "installers":
			raw.Installers, err = decodeStrings(attr, evalCtx)
			if err == nil {
				for _, installer := range raw.Installers {
					if _, err = config.ParseInstallerStyle(installer); err != nil {
						break
					}
				}
			}
		case "windows_archive":
			raw.WindowsArchive, err = decodeEnum(attr, evalCtx, config.ParseZipStyle)
		case "unix_archive":
			raw.UnixArchive, err = decodeEnum(attr, evalCtx, config.ParseZipStyle)
		case "checksum":
			raw.Checksum, err = decodeEnum(attr, evalCtx, config.ParseChecksumStyle)
		case "install_path":
			raw.InstallPath, err = decodeStringPtr(attr, evalCtx)
		case "features":
			raw.Features, err = decodeStrings(attr, evalCtx)
		case "all_features":
			raw.AllFeatures, err = decodeBoolPtr(attr, evalCtx)
		case "default_features":
			raw.DefaultFeatures, err = decodeBoolPtr(attr, evalCtx)
		case "precise_builds":
			raw.PreciseBuilds, err = decodeBoolPtr(attr, evalCtx)
		case "dist":
			raw.Dist, err = decodeBoolPtr(attr, evalCtx)
		case "auto_includes":
			raw.AutoIncludes, err = decodeBoolPtr(attr, evalCtx)
		case "include":
			raw.Include, err = decodeStrings(attr, evalCtx)
		case "npm_scope":
			raw.NpmScope, err = decodeStringPtr(attr, evalCtx)
		case "tap":
			raw.Tap, err = decodeStringPtr(attr, evalCtx)
		case "publish_jobs":
			raw.PublishJobs, err = decodeStrings(attr, evalCtx)
		case "publish_prereleases":
			raw.PublishPrereleases, err = decodeBoolPtr(attr, evalCtx)
		case "homebrew_deps":
			raw.HomebrewDeps, err = decodeStrings(attr, evalCtx)
		default:
			err = fmt.Errorf("unknown setting %q", name)
		}
		if err != nil {
			return config.Raw{}, fmt.Errorf("dist block at %s: %w", attr.Range, err)
		}
	}
	return raw, nil
}

// decodeValue evaluates an attribute and converts it to the wanted cty
// type before decoding into the Go target.
func decodeValue(attr *hcl.Attribute, evalCtx *hcl.EvalContext, want cty.Type, target any) error {
	val, diags := attr.Expr.Value(evalCtx)
	if diags.HasErrors() {
		return diags
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

func decodeStrings(attr *hcl.Attribute, evalCtx *hcl.EvalContext) ([]string, error) {
	var out []string
	if err := decodeValue(attr, evalCtx, cty.List(cty.String), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeStringPtr(attr *hcl.Attribute, evalCtx *hcl.EvalContext) (*string, error) {
	var s string
	if err := decodeValue(attr, evalCtx, cty.String, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeBoolPtr(attr *hcl.Attribute, evalCtx *hcl.EvalContext) (*bool, error) {
	var b bool
	if err := decodeValue(attr, evalCtx, cty.Bool, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// decodeEnum decodes a string attribute and runs it through the enum's
// parser, keeping the raw string on success.
func decodeEnum[T ~string](attr *hcl.Attribute, evalCtx *hcl.EvalContext, parse func(string) (T, error)) (*string, error) {
	s, err := decodeStringPtr(attr, evalCtx)
	if err != nil {
		return nil, err
	}
	if _, err := parse(*s); err != nil {
		return nil, err
	}
	return s, nil
}
