package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
		assert.Equal(t, "minioadmin", cfg.Storage.AccessKey)
		assert.Equal(t, "assets", cfg.Storage.Bucket)
		assert.False(t, cfg.Storage.UseSSL)
		assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("Environment", func(t *testing.T) {
		t.Setenv("STORAGE_ENDPOINT", "minio:9000")
		t.Setenv("STORAGE_BUCKET", "media")
		t.Setenv("STORAGE_USE_SSL", "true")
		t.Setenv("SERVER_API_KEY", "secret")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "minio:9000", cfg.Storage.Endpoint)
		assert.Equal(t, "media", cfg.Storage.Bucket)
		assert.True(t, cfg.Storage.UseSSL)
		assert.Equal(t, "secret", cfg.Server.ApiKey)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		yaml := "storage:\n  bucket: archive\n  timeout_seconds: 5\nlog:\n  format: console\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, "archive", cfg.Storage.Bucket)
		assert.Equal(t, 5, cfg.Storage.TimeoutSeconds)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	})

	t.Run("MalformedConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage: [unterminated"), 0o644))

		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})
}
