package announce

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/ctxlog"
	"github.com/vk/distplango/internal/workspace"
)

// fakeVersion is the placeholder announcement used by planning-only
// callers that opted out of coherence.
const fakeVersion = "1.0.0-FAKEVER"

// PackageRelease is one package selected for release together with the
// binaries it contributes.
type PackageRelease struct {
	Pkg      workspace.PackageIdx
	Binaries []string
}

// Tag is the fully-resolved announcement for a run.
type Tag struct {
	// Tag is the full announcement tag (e.g. "v1.0.0", "my-app-v1.0.0").
	Tag string
	// Version is the version being announced, when doing a unified
	// version announcement. Empty for single-package announcements.
	Version string
	// Package is the single targeted package, when the tag named one.
	Package *workspace.PackageIdx
	// IsPrerelease is true when the announced version is a prerelease.
	IsPrerelease bool
	// Releases are the packages+binaries covered by the announcement.
	Releases []PackageRelease
}

// partialTag carries resolution state between the parse and inference
// passes.
type partialTag struct {
	tag        string
	version    string
	pkg        *workspace.PackageIdx
	prerelease bool
}

// Select resolves the announcement for a run.
//
// rawTag being "" means no --tag was passed and the tag must be inferred:
// if every selected package shares one version, that version is announced.
//
// needsCoherent=false tells Select to produce a result even when
// inference is ambiguous. Planning-only callers use this to consider
// "everything": a placeholder tag is substituted and Releases still
// contains every distributable binary in the workspace.
func Select(
	ctx context.Context,
	ws *workspace.Info,
	cfgs []config.Settings,
	rawTag string,
	needsCoherent bool,
) (*Tag, error) {
	logger := ctxlog.FromContext(ctx)

	announcing, err := parseTag(ws, rawTag)
	if err != nil {
		return nil, err
	}
	releases := selectPackages(ctx, ws, cfgs, announcing)

	if len(releases) == 0 {
		if announcing.pkg != nil {
			// An explicit single-package tag may legitimately name a
			// library; proceed with a minimal announcement.
			logger.Warn("you're releasing a library; only minimal functionality will work",
				"package", ws.Package(*announcing.pkg).Name)
		} else {
			// Explore the hypothetical no-tag world so the help can list
			// every option the user actually has.
			fresh, err := parseTag(ws, "")
			if err != nil {
				return nil, err
			}
			freshReleases := selectPackages(ctx, ws, cfgs, fresh)
			groups := possibleTags(ws, freshReleases)
			help := tagHelp(ws, groups,
				"You may need to pass the current version as --tag, or need to give all your packages the same version")
			return nil, &NothingToReleaseError{Help: help}
		}
	}

	if announcing.tag == "" {
		groups := possibleTags(ws, releases)
		switch {
		case len(groups) == 1:
			version := groups[0].Version
			announcing.tag = "v" + version
			announcing.prerelease = isPrerelease(version)
			announcing.version = version
			logger.Info("inferred announcement tag", "tag", announcing.tag)
		case needsCoherent:
			help := tagHelp(ws, groups,
				"Please either specify --tag, or give them all the same version")
			return nil, &TooManyUnrelatedAppsError{Help: help}
		default:
			announcing.tag = "v" + fakeVersion
			announcing.prerelease = true
			announcing.version = fakeVersion
		}
	}

	return &Tag{
		Tag:          announcing.tag,
		Version:      announcing.version,
		Package:      announcing.pkg,
		IsPrerelease: announcing.prerelease,
		Releases:     releases,
	}, nil
}

// parseTag does the actual parsing logic for a tag.
//
// With rawTag == "" there is nothing to parse and the returned partialTag
// is empty, telling later passes to infer everything.
func parseTag(ws *workspace.Info, rawTag string) (*partialTag, error) {
	announcing := &partialTag{}
	if rawTag == "" {
		return announcing, nil
	}
	announcing.tag = rawTag

	tagSuffix := rawTag
	// Check if we're using '/'s to delimit things ("blah/v1.0.0" or
	// "blah/some-package/v1.0.0").
	if slash := strings.LastIndex(rawTag, "/"); slash >= 0 {
		prefix, suffix := rawTag[:slash], rawTag[slash+1:]
		maybePackage := prefix
		if inner := strings.LastIndex(prefix, "/"); inner >= 0 {
			maybePackage = prefix[inner+1:]
		}
		// The component is a package reference only if it is exactly a
		// package name (nothing left after stripping).
		if pkg, rest, ok := stripPackagePrefix(ws, maybePackage); ok && rest == "" {
			announcing.pkg = &pkg
		}
		tagSuffix = suffix
	}

	// Check the fused "some-package-v1.0.0" form. The package name must
	// be followed by a dash to be accepted.
	if announcing.pkg == nil {
		if pkg, rest, ok := stripPackagePrefix(ws, tagSuffix); ok {
			if after, found := strings.CutPrefix(rest, "-"); found {
				tagSuffix = after
				announcing.pkg = &pkg
			}
		}
	}

	// Whatever remains should be the version with an optional "v" marker.
	tagSuffix = strings.TrimPrefix(tagSuffix, "v")
	version, err := parseVersion(tagSuffix)
	if err != nil {
		return nil, &TagVersionParseError{Tag: rawTag, Detail: err}
	}
	announcing.prerelease = isPrerelease(version)

	if announcing.pkg != nil {
		// A package-targeted tag must agree with the package's version.
		pkg := ws.Package(*announcing.pkg)
		if !versionsEqual(pkg.Version, version) {
			return nil, &ContradictoryTagError{
				Tag:         rawTag,
				PackageName: pkg.Name,
				TagVersion:  version,
				RealVersion: pkg.Version,
			}
		}
	} else {
		announcing.version = version
	}

	if announcing.pkg == nil && announcing.version == "" {
		return nil, &NoTagMatchError{Tag: rawTag}
	}
	return announcing, nil
}

// selectPackages chooses which packages/binaries the announcement
// includes, logging each package's fate.
func selectPackages(
	ctx context.Context,
	ws *workspace.Info,
	cfgs []config.Settings,
	announcing *partialTag,
) []PackageRelease {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("selecting packages from workspace")

	var releases []PackageRelease
	for i := range ws.Packages {
		pkgIdx := workspace.PackageIdx(i)
		pkg := ws.Package(pkgIdx)

		reason := checkDistPackage(ws, cfgs[i], pkgIdx, announcing)
		if reason != "" {
			logger.Debug("package excluded", "package", pkg.Name, "reason", reason)
			continue
		}
		logger.Debug("package selected", "package", pkg.Name, "binaries", pkg.Binaries)

		if len(pkg.Binaries) == 0 {
			continue
		}
		releases = append(releases, PackageRelease{
			Pkg:      pkgIdx,
			Binaries: append([]string(nil), pkg.Binaries...),
		})
	}
	return releases
}

// checkDistPackage decides whether a package should be distributed,
// returning a non-empty disqualification reason if not.
//
// The code assumes a package should be distributed and runs through a
// battery of disqualifying checks. With no tag passed, everything that
// isn't intrinsically disqualified gets through; tag coherence is
// enforced later.
func checkDistPackage(
	ws *workspace.Info,
	cfg config.Settings,
	pkgIdx workspace.PackageIdx,
	announcing *partialTag,
) string {
	pkg := ws.Package(pkgIdx)

	// Nothing to release if there are no binaries.
	if len(pkg.Binaries) == 0 {
		return "no binaries"
	}

	// An explicit dist setting overrides everything else.
	overridePublish := false
	if cfg.Dist != nil {
		if !*cfg.Dist {
			return "dist = false"
		}
		overridePublish = true
	}

	// Otherwise defer to the package's publish flag.
	if !pkg.Publish && !overridePublish {
		return "publish = false"
	}

	// A package-targeted announcement rejects every other package.
	if announcing.pkg != nil && *announcing.pkg != pkgIdx {
		return fmt.Sprintf("didn't match tag %s", announcing.tag)
	}

	// A version-targeted announcement rejects mismatched versions.
	if announcing.version != "" && !versionsEqual(pkg.Version, announcing.version) {
		return fmt.Sprintf("didn't match tag %s", announcing.tag)
	}

	return ""
}

// stripPackagePrefix strips a package name prefix from the input,
// preferring the longest package name so that "my-app-helper-v1.0.0"
// resolves to my-app-helper and not my-app. Returns the matched package
// and the remaining input.
func stripPackagePrefix(ws *workspace.Info, input string) (workspace.PackageIdx, string, bool) {
	var (
		found   bool
		bestPkg workspace.PackageIdx
		best    string
	)
	for i := range ws.Packages {
		rest, ok := strings.CutPrefix(input, ws.Packages[i].Name)
		if !ok {
			continue
		}
		if found && len(best) <= len(rest) {
			continue
		}
		found = true
		bestPkg = workspace.PackageIdx(i)
		best = rest
	}
	return bestPkg, best, found
}
