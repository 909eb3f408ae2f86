package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "pdf", cfg.Report.DefaultFormat)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "worklog.db", filepath.Base(cfg.Database.Path))
	assert.Empty(t, cfg.Sync.RedisAddr)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
user:
  full_name: 山田 太郎
report:
  font_path: /fonts/NotoSansJP-Regular.ttf
sync:
  redis_addr: localhost:6379
log:
  level: debug
`), 0600))

	t.Setenv("WORKLOG_LOG_LEVEL", "warn")
	t.Setenv("WORKLOG_REDIS_DB", "2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "山田 太郎", cfg.User.FullName)
	assert.Equal(t, "/fonts/NotoSansJP-Regular.ttf", cfg.Report.FontPath)
	assert.Equal(t, "localhost:6379", cfg.Sync.RedisAddr)
	assert.Equal(t, "warn", cfg.Log.Level, "environment wins over file")
	assert.Equal(t, 2, cfg.Sync.RedisDB)
	assert.Equal(t, "pdf", cfg.Report.DefaultFormat, "unset keys keep defaults")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WORKLOG_CLIENT=ACME\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("WORKLOG_CLIENT") })

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ACME", cfg.Defaults.Client)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user: [unterminated"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("WORKLOG_REDIS_DB", "not-a-number")
	_, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.User.FullName = "Sato"
	cfg.Defaults.Client = "ACME"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sato", loaded.User.FullName)
	assert.Equal(t, "ACME", loaded.Defaults.Client)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "data", "worklog.db")
	cfg.Log.File = filepath.Join(dir, "state", "worklog.log")
	cfg.Report.OutputDir = filepath.Join(dir, "reports")

	require.NoError(t, cfg.EnsureDirectories())
	for _, sub := range []string{"data", "state", "reports"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
