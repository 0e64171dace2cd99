package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Empty(t, cfg.Dialects)
	require.False(t, cfg.SkipsCategory("Connection"))
}

func TestLoadEmptyPathReturnsEmptyConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crusher.yaml")
	contents := `
dialects:
  - "SELECT 1 FROM RDB$DATABASE"
skip_categories:
  - "Array Parameters"
skip_tests:
  - "cursor-stress-rapid-lifecycle"
connect_timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"SELECT 1 FROM RDB$DATABASE"}, cfg.Dialects)
	require.True(t, cfg.SkipsCategory("Array Parameters"))
	require.False(t, cfg.SkipsCategory("Connection"))
	require.True(t, cfg.SkipsTest("cursor-stress-rapid-lifecycle"))
	require.Equal(t, 5*time.Second, cfg.ConnectTimeout)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialects: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestNilConfigSkipsNothing(t *testing.T) {
	var cfg *Config
	require.False(t, cfg.SkipsCategory("anything"))
	require.False(t, cfg.SkipsTest("anything"))
}
