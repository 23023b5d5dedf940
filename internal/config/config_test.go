package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArtifactMode(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"local", "global", "host", "all"} {
		mode, err := ParseArtifactMode(valid)
		require.NoError(t, err)
		assert.Equal(t, ArtifactMode(valid), mode)
	}

	_, err := ParseArtifactMode("everything")
	require.Error(t, err)
}

func TestParseZipStyle(t *testing.T) {
	t.Parallel()

	style, err := ParseZipStyle("tar.gz")
	require.NoError(t, err)
	assert.Equal(t, ZipStyleTarGzip, style)
	assert.True(t, style.IsTar())
	assert.Equal(t, ".tar.gz", style.Ext())

	style, err = ParseZipStyle("zip")
	require.NoError(t, err)
	assert.False(t, style.IsTar())

	// The temp-dir style is internal staging, not a manifest value.
	_, err = ParseZipStyle("tempdir")
	require.Error(t, err)
	assert.Equal(t, "", ZipStyleTempDir.Ext())
}

func TestParseChecksumStyle(t *testing.T) {
	t.Parallel()

	style, err := ParseChecksumStyle("sha512")
	require.NoError(t, err)
	assert.Equal(t, "sha512", style.Ext())

	_, err = ParseChecksumStyle("crc32")
	require.Error(t, err)
}

func TestFeatureSelectionKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", FeatureSelection{DefaultFeatures: true}.Key())
	assert.Equal(t, "all", FeatureSelection{AllFeatures: true, Features: []string{"x"}}.Key())
	assert.Equal(t, "no-default+", FeatureSelection{}.Key())

	// Feature order must not matter.
	a := FeatureSelection{DefaultFeatures: true, Features: []string{"tls", "json"}}
	b := FeatureSelection{DefaultFeatures: true, Features: []string{"json", "tls"}}
	assert.True(t, a.Equal(b))
	assert.Equal(t, "json,tls", a.Key())

	c := FeatureSelection{Features: []string{"json", "tls"}}
	assert.False(t, a.Equal(c))
}
