package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values and fills defaults", func(t *testing.T) {
		// Given: a config file with a few keys
		path := writeConfig(t, `
log-level: debug
storage:
  driver: sqlite
  session-ttl: 30m
sqlite:
  path: /tmp/sessions.db
`)

		// When: it is loaded
		conf, err := Load(path)

		// Then: file values win and the rest come from defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageSQLite, conf.Storage.Driver)
		assert.Equal(t, 30*time.Minute, conf.Storage.SessionTTL)
		assert.Equal(t, "/tmp/sessions.db", conf.SQLite.Path)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8000\"\n")
		t.Setenv("HTTP_PORT", "8080")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "8080", conf.HTTPPort)
	})

	t.Run("Unknown storage driver", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  driver: postgres\n")

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yml")) })
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SESSION_TTL", "5m")

	conf, err := LoadEnv()

	require.NoError(t, err)
	assert.Equal(t, StorageMemory, conf.Storage.Driver)
	assert.Equal(t, 5*time.Minute, conf.Storage.SessionTTL)
	assert.Equal(t, "info", conf.LogLevel)
}
