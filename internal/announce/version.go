package announce

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// parseVersion strictly parses a semantic version (with or without a
// leading "v") and returns it in canonical form without the "v".
func parseVersion(raw string) (string, error) {
	v := raw
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid semantic version %q", raw)
	}
	return strings.TrimPrefix(semver.Canonical(v), "v"), nil
}

// versionsEqual compares two versions semantically.
func versionsEqual(a, b string) bool {
	return semver.Compare("v"+a, "v"+b) == 0
}

// compareVersions orders two versions semantically.
func compareVersions(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}

// isPrerelease reports whether a version carries a prerelease suffix.
func isPrerelease(version string) bool {
	return semver.Prerelease("v"+version) != ""
}
