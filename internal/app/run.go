package app

import (
	"context"
	"fmt"

	"github.com/vk/distplango/internal/ctxlog"
	"github.com/vk/distplango/internal/diag"
	"github.com/vk/distplango/internal/host"
	"github.com/vk/distplango/internal/planner"
)

// Run executes the main application logic based on the provided
// configuration: probe the host, gather the plan, render it.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	hostInfo := host.Probe()
	a.logger.Debug("Host probed.", "target", hostInfo.Target, "has_toolchain_installer", hostInfo.ToolchainInstaller != nil)

	run := planner.RunConfig{
		Tag:              appConfig.Tag,
		NeedsCoherentTag: !appConfig.AllowDisjointTag,
		ArtifactMode:     appConfig.ArtifactMode,
		Targets:          appConfig.Targets,
		Installers:       appConfig.Installers,
	}
	graph, announcing, err := planner.Gather(ctx, a.ws, a.resolved, run, hostInfo, diag.Logger(a.logger))
	if err != nil {
		return fmt.Errorf("failed to gather the release plan: %w", err)
	}
	a.logger.Info("Release plan gathered.",
		"tag", announcing.Tag,
		"releases", len(graph.Releases),
		"artifacts", len(graph.Artifacts),
		"steps", len(graph.BuildSteps),
	)

	if err := renderPlan(a.outW, appConfig.Output, graph); err != nil {
		return fmt.Errorf("failed to render the release plan: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
