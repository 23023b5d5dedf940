package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/distplango/internal/app"
	"github.com/vk/distplango/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("distplango", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
distplango - Plan release artifacts, archives and installers for a workspace.

Usage:
  distplango [options] [MANIFEST_PATH]

Arguments:
  MANIFEST_PATH
    Path to a dist.hcl file or a directory containing one.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to the dist.hcl manifest or its directory.")
	mFlag := flagSet.String("m", "", "Path to the dist.hcl manifest or its directory (shorthand).")
	tagFlag := flagSet.String("tag", "", "Announcement tag (e.g. 'v1.0.0' or 'my-app-v1.0.0'). Inferred when omitted.")
	noCoherentFlag := flagSet.Bool("no-coherent-tag", false, "Allow planning workspaces whose app versions do not agree on one tag.")
	artifactsFlag := flagSet.String("artifacts", "all", "Artifact scope to plan. Options: 'local', 'global', 'host', 'all'.")
	targetsFlag := flagSet.String("targets", "", "Comma-separated target platforms to restrict planning to.")
	installersFlag := flagSet.String("installers", "", "Comma-separated installer kinds to restrict planning to.")
	outputFlag := flagSet.String("output", "json", "Plan output format. Options: 'json' or 'yaml'.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *manifestFlag != "" {
		path = *manifestFlag
	} else if *mFlag != "" {
		path = *mFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Manifest path determined.", "path", path)

	if path == "" {
		slog.Debug("No manifest path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	mode, err := config.ParseArtifactMode(strings.ToLower(*artifactsFlag))
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	var installers []config.InstallerStyle
	for _, raw := range splitList(*installersFlag) {
		style, err := config.ParseInstallerStyle(raw)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		installers = append(installers, style)
	}
	slog.Debug("CLI parameter validation complete.")

	appConfig, err := app.NewConfig(app.Config{
		ManifestPath:     path,
		Tag:              *tagFlag,
		AllowDisjointTag: *noCoherentFlag,
		ArtifactMode:     mode,
		Targets:          splitList(*targetsFlag),
		Installers:       installers,
		Output:           strings.ToLower(*outputFlag),
		LogFormat:        logFormat,
		LogLevel:         logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return appConfig, false, nil
}

// splitList parses a comma-separated flag value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
