// Package app wires the planning pipeline together: it owns the logger,
// loads and merges the workspace manifests, probes the host, runs the
// planner, and renders the finished plan for downstream consumers.
package app
