package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/distplango/internal/platforms"
)

func TestDetectTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos, goarch string
		want         string
	}{
		{"linux", "amd64", platforms.X64Linux},
		{"linux", "arm64", platforms.Arm64Linux},
		{"darwin", "amd64", platforms.X64MacOS},
		{"darwin", "arm64", platforms.Arm64MacOS},
		{"windows", "amd64", platforms.X64Windows},
		{"plan9", "amd64", platforms.X64Linux},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectTarget(tt.goos, tt.goarch), "%s/%s", tt.goos, tt.goarch)
	}
}

func TestProbe_EnvOverrides(t *testing.T) {
	t.Setenv(EnvHostTarget, platforms.Arm64MacOS)
	t.Setenv(EnvBuildFlags, "--frozen")
	t.Setenv(EnvToolchainInstaller, "")

	info := Probe()
	assert.Equal(t, platforms.Arm64MacOS, info.Target)
	assert.Equal(t, "--frozen", info.BuildFlags)
	assert.Nil(t, info.ToolchainInstaller)
}
