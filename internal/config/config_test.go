package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.ProbeTimeout)
	assert.Equal(t, "mediainfo", cfg.MediaInfoBin)
	assert.Equal(t, int64(16<<20), cfg.MaxMoovSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MEDIAMETA_PROBE_TIMEOUT", "30s")
	t.Setenv("MEDIAMETA_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediameta.yml")
	data := "probe_timeout: 1m\nmediainfo_bin: /opt/mediainfo\nlog_level: warning\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.ProbeTimeout)
	assert.Equal(t, "/opt/mediainfo", cfg.MediaInfoBin)
	assert.Equal(t, "warning", cfg.LogLevel)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("MEDIAMETA_LOG_LEVEL", "loud")
	_, err := Load("")
	assert.Error(t, err)

	cfg := &Config{ProbeTimeout: 0, MediaInfoBin: "mediainfo", MaxMoovSize: 1024, LogLevel: "info", MetricsPrefix: "mediameta"}
	assert.Error(t, cfg.Validate())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
