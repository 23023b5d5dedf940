package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A manifest with a syntax error is guaranteed to make app.NewApp
	// panic during the loading phase.
	invalidHCL := `
		workspace {
			dist {
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "dist.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{filePath}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_PlansValidWorkspace(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	manifest := `
workspace {
  dist {
    targets    = [platforms.x64_linux]
    installers = ["shell"]
  }
}

package "my-app" {
  version    = "1.2.3"
  repository = "https://example.com/my/app"
  binaries   = ["my-app"]
}
`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "dist.hcl")
	err := os.WriteFile(filePath, []byte(manifest), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{"--log-level", "error", filePath}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, args)

	// --- Assert ---
	require.NoError(t, runErr)
	rendered := out.String()
	require.Contains(t, rendered, `"tag": "v1.2.3"`)
	require.Contains(t, rendered, "my-app-v1.2.3-x86_64-unknown-linux-gnu")
	require.Contains(t, rendered, "my-app-v1.2.3-installer.sh")
}
