package utils

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the webapp and CLI read from the
// environment. The remote API base URL moved across revisions of the
// original client (local ports, hosted domain), so it is always
// externalized here and never hard-coded.
type Config struct {
	APIBaseURL  string
	HTTPAddr    string
	SyncAddr    string // TCP badge-event listener, set empty to disable
	SessionDB   string
	RedisAddr   string // optional badge mirror, empty disables
	CookieName  string
	HTTPTimeout time.Duration
}

func Load() Config {
	// .env is optional; real env always wins
	_ = godotenv.Load()

	return Config{
		APIBaseURL:  strings.TrimRight(getenv("TECHREADS_API_BASE_URL", "http://localhost:5000"), "/"),
		HTTPAddr:    getenv("TECHREADS_ADDR", ":8080"),
		SyncAddr:    getenv("TECHREADS_SYNC_ADDR", ":7070"),
		SessionDB:   getenv("TECHREADS_SESSION_DB", defaultSessionDB()),
		RedisAddr:   getenv("TECHREADS_REDIS_ADDR", ""),
		CookieName:  getenv("TECHREADS_COOKIE", "techreads_session"),
		HTTPTimeout: 15 * time.Second,
	}
}

func defaultSessionDB() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return home + "/.techreads/sessions.db"
}

// getenv falls back to def only when k is unset. An explicitly empty
// value sticks, so TECHREADS_SYNC_ADDR="" disables the TCP listener
// instead of silently reverting to the default port.
func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}
