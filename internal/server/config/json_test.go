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
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http": "www.example:8080",
		"secret_key":         "my_secret_key",
		"token_ttl":          "1h",
		"hash_algorithm":     "argon2id",
		"store_backend":      "s3",
		"s3_bucket":          "bucket",
		"aws_region":         "region",
		"redis_db":           3,
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-config", path})

		assert.Equal(t, "www.example:8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, time.Hour, cfg.TokenTTL)
		assert.Equal(t, "argon2id", cfg.HashAlgorithm)
		assert.Equal(t, BackendS3, cfg.StoreBackend)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.AWSRegion)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC, "absent keys keep current value")
	})

	t.Run("no config flag leaves config unchanged", func(t *testing.T) {
		cfg := &Config{SecretKey: "key"}
		parseJson(cfg, []string{"-s", "x"})
		assert.Equal(t, &Config{SecretKey: "key"}, cfg)
	})

	t.Run("missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}) })
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", bad}) })
	})
}
