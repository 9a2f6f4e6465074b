package config

import (
	"os"
	"path/filepath"
	"testing"

	"mirra/internal/mirror"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default.DaemonPort, cfg.DaemonPort)
	assert.Equal(t, Default.DebounceMs, cfg.DebounceMs)
	assert.Equal(t, Default.BufferSize, cfg.BufferSize)
	assert.Equal(t, mirror.DefaultTrashPatterns, cfg.TrashPatterns)
	assert.Contains(t, cfg.DBPath, ".mirra")
}

func TestLoadEnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MIRRA_DAEMON_PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.DaemonPort)
}

func TestLoadConfigFile(t *testing.T) {
	viper.Reset()
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".mirra")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(configDir, "config.yaml"),
		[]byte("debounce_ms: 2000\ntrash_patterns:\n  - '.*\\.bak$'\n"),
		0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2000, cfg.DebounceMs)
	assert.Equal(t, []string{`.*\.bak$`}, cfg.TrashPatterns)
	assert.Equal(t, Default.DaemonPort, cfg.DaemonPort)
}
