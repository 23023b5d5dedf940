package announce

import "fmt"

// TagVersionParseError is returned when a tag's version component is not
// a valid semantic version.
type TagVersionParseError struct {
	// Tag is the literal tag that was passed.
	Tag string
	// Detail is the underlying parse failure.
	Detail error
}

func (e *TagVersionParseError) Error() string {
	return fmt.Sprintf("couldn't parse the version from the tag %q: %v", e.Tag, e.Detail)
}

func (e *TagVersionParseError) Unwrap() error { return e.Detail }

// ContradictoryTagError is returned when a tag names a package whose real
// version disagrees with the version the tag encodes.
type ContradictoryTagError struct {
	// Tag is the literal tag that was passed.
	Tag string
	// PackageName is the package the tag matched.
	PackageName string
	// TagVersion is the version parsed from the tag.
	TagVersion string
	// RealVersion is the package's actual version.
	RealVersion string
}

func (e *ContradictoryTagError) Error() string {
	return fmt.Sprintf(
		"the tag %q says to release %s %s, but that package is version %s",
		e.Tag, e.PackageName, e.TagVersion, e.RealVersion)
}

// NoTagMatchError is returned when a tag matches neither a package name
// nor a version.
type NoTagMatchError struct {
	Tag string
}

func (e *NoTagMatchError) Error() string {
	return fmt.Sprintf("the tag %q didn't match any packages or versions in the workspace", e.Tag)
}

// TooManyUnrelatedAppsError is returned when no tag was given, the
// selected packages span multiple versions, and the caller requires a
// coherent announcement.
type TooManyUnrelatedAppsError struct {
	// Help lists every candidate tag and the packages it would cover.
	Help string
}

func (e *TooManyUnrelatedAppsError) Error() string {
	return "there are too many unrelated apps in your workspace to coherently announce!\n\n" + e.Help
}

// NothingToReleaseError is returned when selection produced no binaries
// and no single package was explicitly targeted.
type NothingToReleaseError struct {
	Help string
}

func (e *NothingToReleaseError) Error() string {
	return "this workspace doesn't have anything for distplango to release!\n\n" + e.Help
}
