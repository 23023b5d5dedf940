// Package plan defines the release plan's entity model: Releases,
// ReleaseVariants, Binaries and Artifacts held in append-only arenas
// inside a Graph, plus the BuildStep list compiled from them.
//
// # Why arenas and handles
//
// A Binary can be required by many Artifacts across many Variants, and an
// Artifact can back-link to its checksum Artifact. Owning pointers between
// entities would create cycles and make the structure impossible to
// serialize or reason about. Instead, every entity lives in exactly one
// dense slice on the Graph and everything else refers to it by a typed
// integer handle (ReleaseIdx, VariantIdx, BinaryIdx, ArtifactIdx).
// Handles are never invalidated or reused; entities are never removed.
//
// # Lifecycle
//
// The Graph is grown exclusively by the planner package during a single
// construction pass, then frozen. The step compiler reads the frozen
// graph and fills in BuildSteps; nothing mutates entities after that.
package plan
