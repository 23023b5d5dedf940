// Package hcl loads dist.hcl workspace manifests.
//
// A manifest has one workspace block and any number of package blocks.
// Distribution settings live in nested dist blocks, decoded leniently
// into config.Raw so the precedence merge in internal/config can overlay
// workspace defaults under package overrides. Additional package blocks
// may live in *.dist.hcl files anywhere under the workspace; the
// workspace block is only allowed in the root manifest.
//
// This is the only package that reads project files from disk. It also
// discovers static assets (readme, license, changelog) next to each
// manifest so later stages never stat.
package hcl
