// Package announce resolves what a run is releasing: which
// packages/binaries, under which version, behind which git tag.
//
// Resolution happens before any graph construction. A user-supplied tag
// is parsed against the workspace's package names with strict
// disambiguation; with no tag, the selected packages' versions are
// grouped and a tag is inferred only when exactly one version group
// exists. Every failure path produces actionable help text listing the
// tags that would have worked.
package announce
