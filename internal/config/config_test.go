package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, found, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, DefaultModules, cfg.EnabledModules)
	assert.NotNil(t, cfg.Modules)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
  uploads_dir: /tmp/docs
logging:
  level: debug
  development: true
enabled_modules:
  - grammar
  - summarize
modules:
  grammar:
    server_url: http://languagetool:8081
    language: en-GB
  completion:
    max_tokens: 256
`)

	cfg, found, err := Load(path)
	require.NoError(t, err)
	assert.True(t, found)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/tmp/docs", cfg.Server.UploadsDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, []string{"grammar", "summarize"}, cfg.EnabledModules)
	assert.Equal(t, "http://languagetool:8081", cfg.Modules["grammar"]["server_url"])
	assert.EqualValues(t, 256, cfg.Modules["completion"]["max_tokens"])
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a mapping")

	_, found, err := Load(path)
	assert.True(t, found)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"8080\"\n")
	t.Setenv("INKWELL_PORT", "9999")
	t.Setenv("INKWELL_LOG_LEVEL", "warn")

	cfg, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "credentials.env")
	require.NoError(t, os.WriteFile(envPath, []byte("INKWELL_TEST_KEY=sekrit\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("INKWELL_TEST_KEY") })

	LoadEnvFiles(envPath, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "sekrit", os.Getenv("INKWELL_TEST_KEY"))
}
