package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

var configKeys = []string{
	"TECHREADS_API_BASE_URL",
	"TECHREADS_ADDR",
	"TECHREADS_SYNC_ADDR",
	"TECHREADS_SESSION_DB",
	"TECHREADS_REDIS_ADDR",
	"TECHREADS_COOKIE",
}

// clearEnv unsets every config key, with t.Setenv registering the
// restore for after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":7070", cfg.SyncAddr)
	assert.Equal(t, "techreads_session", cfg.CookieName)
	assert.Empty(t, cfg.RedisAddr)
	assert.NotEmpty(t, cfg.SessionDB)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TECHREADS_API_BASE_URL", "https://api.example.com/")
	t.Setenv("TECHREADS_SYNC_ADDR", "127.0.0.1:9000")

	cfg := Load()
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL, "trailing slash is trimmed")
	assert.Equal(t, "127.0.0.1:9000", cfg.SyncAddr)
}

func TestSyncAddrSetEmptyDisables(t *testing.T) {
	clearEnv(t)
	t.Setenv("TECHREADS_SYNC_ADDR", "")

	cfg := Load()
	assert.Empty(t, cfg.SyncAddr, "explicitly empty must not revert to the default port")
}
