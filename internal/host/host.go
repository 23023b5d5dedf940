// Package host probes the machine the planner runs on: its target
// platform identifier, ambient build flags, and whether a
// toolchain-provisioning tool is available for cross-compiles.
//
// The probe happens once, up front, and its result is passed into the
// step compiler as plain data. The compiler itself never touches the
// environment, which keeps it a pure function of the plan.
package host

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/vk/distplango/internal/platforms"
	"github.com/vk/distplango/internal/plan"
)

// Environment variables consulted by Probe.
const (
	// EnvHostTarget overrides the detected host target triple.
	EnvHostTarget = "DIST_HOST_TARGET"
	// EnvBuildFlags carries ambient compiler flags to layer platform
	// rules on top of.
	EnvBuildFlags = "DIST_BUILD_FLAGS"
	// EnvToolchainInstaller names the command used to provision missing
	// cross-compilation toolchains, if the workspace has one.
	EnvToolchainInstaller = "DIST_TOOLCHAIN_INSTALLER"
)

// Info is everything the step compiler needs to know about the host.
type Info struct {
	// Target is the host's target triple.
	Target string
	// BuildFlags are ambient compiler flags already set in the
	// environment.
	BuildFlags string
	// ToolchainInstaller is the provisioning tool, nil when absent.
	ToolchainInstaller *plan.Tool
}

// Probe inspects the environment and returns the host description.
func Probe() Info {
	info := Info{
		Target:     os.Getenv(EnvHostTarget),
		BuildFlags: os.Getenv(EnvBuildFlags),
	}
	if info.Target == "" {
		info.Target = detectTarget(runtime.GOOS, runtime.GOARCH)
	}
	if cmd := os.Getenv(EnvToolchainInstaller); cmd != "" {
		if _, err := exec.LookPath(cmd); err == nil {
			info.ToolchainInstaller = &plan.Tool{Cmd: cmd}
		}
	}
	return info
}

// detectTarget maps a Go platform to the corresponding target triple.
func detectTarget(goos, goarch string) string {
	switch goos {
	case "linux":
		if goarch == "arm64" {
			return platforms.Arm64Linux
		}
		return platforms.X64Linux
	case "darwin":
		if goarch == "arm64" {
			return platforms.Arm64MacOS
		}
		return platforms.X64MacOS
	case "windows":
		return platforms.X64Windows
	default:
		return platforms.X64Linux
	}
}
