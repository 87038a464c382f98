package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Run("empty path is a no-op", func(t *testing.T) {
		cfg := &Config{ServerEndpointAddr: "keep"}
		require.NoError(t, parseJson(cfg, ""))
		assert.Equal(t, "keep", cfg.ServerEndpointAddr)
	})

	t.Run("nanosecond durations", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"request_timeout": 2_000_000_000})
		cfg := &Config{}
		cfg.LoadDefaults()

		require.NoError(t, parseJson(cfg, path))
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	})

	t.Run("bad JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

		err := parseJson(&Config{}, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"request_timeout": "soon"})
		require.Error(t, parseJson(&Config{}, path))
	})
}
