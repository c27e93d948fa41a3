package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.Backend.BaseURL)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Server.SearchLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopfront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend:
  base_url: http://store.internal:9000
  timeout: 5s
server:
  addr: ":9000"
  search_limit: 12
logging:
  level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://store.internal:9000", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout())
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 12, cfg.Server.SearchLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopfront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  base_url: http://file:1\n"), 0644))

	t.Setenv("SHOPFRONT_BACKEND_URL", "http://env:2")
	t.Setenv("SHOPFRONT_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env:2", cfg.Backend.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MalformedYAMLIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [not: a map"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestDurations_FallBackOnGarbage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.Timeout = "not-a-duration"
	cfg.Chat.Timeout = ""

	assert.Equal(t, 30*time.Second, cfg.BackendTimeout())
	assert.Equal(t, 30*time.Second, cfg.ChatTimeout())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "shopfront.yaml")
	cfg := DefaultConfig()
	cfg.Server.Addr = ":7777"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", loaded.Server.Addr)
}
