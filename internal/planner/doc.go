// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package planner turns a workspace plus resolved configuration into a
// plan.Graph.
//
// The Builder is the only writer of the graph. Callers describe a release
// top-down (release, then variants, then artifacts and installers) and the
// builder takes care of deduplicating binaries, attaching checksums and
// keeping the local/global artifact split consistent with the selected
// artifact mode. Gather is the orchestration entry point that drives the
// builder from an announcement tag, then hands the finished graph to
// ComputeSteps.
//
// Nothing in this package touches the file system or the environment; host
// facts arrive pre-probed in a host.Info and anything worth telling the user
// about goes through a diag.Sink.
package planner
