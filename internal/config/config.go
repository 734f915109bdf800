// Package config loads service configuration from the environment.
// Every key has a documented default; nothing is required to start.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DBPath     string // path to the SQLite database file
	DBMaxConns int    // bound on simultaneous database sessions

	AllowedOrigin string // CORS origin for the extension ("*" by default)

	// Redis (optional read cache; disabled when RedisAddr is empty)
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // Total time to retry connecting
	RedisRetryInterval  time.Duration // Initial wait between retries (grows exponentially)
	RedisMaxWait        time.Duration // Max wait between retries
	RedisPingTimeout    time.Duration // Timeout for each ping attempt
	CacheTTL            time.Duration // TTL for cached owner collections
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PINBOX_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("PINBOX_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("PINBOX_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PINBOX_PRETTY_LOG", false),

		// Database
		DBPath:     getenv("PINBOX_DB_PATH", "data/pinbox.db"),
		DBMaxConns: getenvInt("PINBOX_DB_MAX_CONNS", 10),

		AllowedOrigin: getenv("PINBOX_ALLOWED_ORIGIN", "*"),

		// Redis settings
		RedisAddr:           getenv("PINBOX_REDIS_ADDR", ""),
		RedisPassword:       getenv("PINBOX_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("PINBOX_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("PINBOX_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("PINBOX_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("PINBOX_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("PINBOX_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("PINBOX_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("PINBOX_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("PINBOX_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("PINBOX_REDIS_PING_TIMEOUT", 5*time.Second),
		CacheTTL:            mustDuration("PINBOX_CACHE_TTL", 5*time.Minute),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// CacheEnabled reports whether the optional Redis read cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
