package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colord.yaml")
	contents := `
maxDocumentSize: 1024
namedColors: false
disabledMatchers:
  json: [named]
  "*": [hsl]
cacheTTL: 5m
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 1024, config.MaxDocumentSize)
	require.False(t, config.NamedColors)
	require.Equal(t, []string{"named"}, config.DisabledMatchers["json"])
	require.Equal(t, []string{"hsl"}, config.DisabledMatchers["*"])
	require.Equal(t, "5m0s", time.Duration(config.CacheTTL).String())
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	config, err := LoadConfig("/does/not/exist.yaml")
	require.Error(t, err)
	require.Equal(t, DefaultConfig().MaxDocumentSize, config.MaxDocumentSize)
	require.True(t, config.NamedColors)
}
