package announce

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/distplango/internal/workspace"
)

// versionGroup is one candidate announcement: a version and the packages
// that would be covered by announcing it.
type versionGroup struct {
	Version  string
	Packages []workspace.PackageIdx
}

// possibleTags groups the selected packages by version, sorted
// semantically so help output and inference are deterministic. Inference
// succeeds when exactly one group exists.
func possibleTags(ws *workspace.Info, releases []PackageRelease) []versionGroup {
	byVersion := make(map[string][]workspace.PackageIdx)
	for _, release := range releases {
		version := ws.Package(release.Pkg).Version
		byVersion[version] = append(byVersion[version], release.Pkg)
	}

	versions := make([]string, 0, len(byVersion))
	for version := range byVersion {
		versions = append(versions, version)
	}
	sort.Slice(versions, func(i, j int) bool {
		return compareVersions(versions[i], versions[j]) < 0
	})

	groups := make([]versionGroup, 0, len(versions))
	for _, version := range versions {
		groups = append(groups, versionGroup{Version: version, Packages: byVersion[version]})
	}
	return groups
}

// tagHelp renders a help printout of the --tag values that could have
// been passed.
func tagHelp(ws *workspace.Info, groups []versionGroup, baseSuggestion string) string {
	if len(groups) == 0 || len(groups[0].Packages) == 0 {
		return `It appears that you have no packages in your workspace with distributable binaries. You can rerun with "--log-level=debug" to see what distplango thinks is in your workspace. Here are some typical issues:

    If you're trying to announce a library, we require you explicitly select it with e.g. "--tag=my-library-v1.0.0", as this mode is experimental.

    If you have binaries in your workspace, "publish = false" could be hiding them; adding "dist = true" to the package's dist block in dist.hcl may help.`
	}

	var help strings.Builder
	help.WriteString(baseSuggestion)
	help.WriteString("\n\n")
	help.WriteString("Here are some options:\n\n")
	for _, group := range groups {
		fmt.Fprintf(&help, "--tag=v%s will Announce: ", group.Version)
		for i, pkg := range group.Packages {
			if i > 0 {
				help.WriteString(", ")
			}
			help.WriteString(ws.Package(pkg).Name)
		}
		help.WriteString("\n")
	}
	help.WriteString("\n")

	samplePkg := ws.Package(groups[0].Packages[0])
	fmt.Fprintf(&help, "you can also request any single package with --tag=%s-v%s\n",
		samplePkg.Name, samplePkg.Version)
	return help.String()
}
