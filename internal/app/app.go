package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/distplango/internal/config"
	"github.com/vk/distplango/internal/ctxlog"
	"github.com/vk/distplango/internal/hcl"
	"github.com/vk/distplango/internal/workspace"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Plan output goes to outW; logs go to logW so the rendered
// plan stays machine-readable.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	ws       *workspace.Info
	resolved *config.Resolved
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with the workspace loaded and its
// configuration merged. A failure to load the manifest is a fatal startup
// error.
func NewApp(outW, logW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	loaded, err := hcl.Load(ctx, appConfig.ManifestPath)
	if err != nil {
		panic(fmt.Errorf("failed to load workspace manifest: %w", err))
	}
	logger.Debug("Workspace manifest loaded.", "packages", len(loaded.Workspace.Packages))

	resolved, err := config.Merge(loaded.WorkspaceRaw, loaded.PackageRaws, loaded.PackageNames)
	if err != nil {
		panic(fmt.Errorf("failed to resolve configuration: %w", err))
	}
	hcl.ResolveIncludes(resolved, loaded.Workspace.WorkspaceDir)
	logger.Debug("Configuration merged.", "precise_builds", resolved.Workspace.PreciseBuilds)

	return &App{
		outW:     outW,
		logger:   logger,
		ws:       loaded.Workspace,
		resolved: resolved,
	}
}

// Workspace returns the loaded workspace. This is primarily for testing.
func (a *App) Workspace() *workspace.Info {
	return a.ws
}
