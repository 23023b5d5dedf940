package app

import (
	"errors"
	"fmt"

	"github.com/vk/distplango/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ManifestPath is a dist.hcl file or a directory containing one.
	ManifestPath string

	// Tag is the announcement tag; empty means infer one.
	Tag string
	// AllowDisjointTag disables coherent-tag enforcement so planning can
	// survey workspaces with unrelated app versions.
	AllowDisjointTag bool

	ArtifactMode config.ArtifactMode
	// Targets restricts planning to these platforms, empty for all
	// configured ones.
	Targets []string
	// Installers restricts planning to these installer kinds.
	Installers []config.InstallerStyle

	// Output selects the plan rendering: "json" or "yaml".
	Output string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if cfg.ArtifactMode == "" {
		cfg.ArtifactMode = config.ModeAll
	}
	if cfg.Output == "" {
		cfg.Output = "json"
	}
	if cfg.Output != "json" && cfg.Output != "yaml" {
		return nil, fmt.Errorf("invalid output %q: must be 'json' or 'yaml'", cfg.Output)
	}
	return &cfg, nil
}
