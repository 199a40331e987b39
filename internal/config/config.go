// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// SourceConfig controls where directory files are read from.
type SourceConfig struct {
	// DefaultOrigin is loaded at startup: a file name, path or http(s) URL
	DefaultOrigin string `env:"SOURCE_DEFAULT_ORIGIN" default:"kosher-list-landa-filtered.csv"`

	// DataDir is the root for relative file origins (default: data)
	DataDir string `env:"SOURCE_DATA_DIR" default:"data"`

	// FetchTimeout bounds a single HTTP fetch attempt (default: 15s)
	FetchTimeout time.Duration `env:"SOURCE_FETCH_TIMEOUT" default:"15s"`

	// FetchRetries is how often a failed HTTP fetch is retried (default: 2)
	FetchRetries int `env:"SOURCE_FETCH_RETRIES" default:"2"`

	// MaxFileSize caps fetched and uploaded content in bytes (default: 20MB)
	MaxFileSize int64 `env:"SOURCE_MAX_FILE_SIZE" default:"20971520"`

	// Watch reloads the default origin when its file changes (default: false)
	Watch bool `env:"SOURCE_WATCH" default:"false"`

	// WatchDebounce groups bursts of file events into one reload (default: 300ms)
	WatchDebounce time.Duration `env:"SOURCE_WATCH_DEBOUNCE" default:"300ms"`

	// RefreshInterval reloads the current origin periodically; 0 disables (default: 0)
	RefreshInterval time.Duration `env:"SOURCE_REFRESH_INTERVAL" default:"0s"`

	// MaxConcurrentLoads caps parallel loads and uploads (default: 4)
	MaxConcurrentLoads int `env:"SOURCE_MAX_CONCURRENT_LOADS" default:"4"`

	// LoadWait is how long a load waits for a free slot (default: 30s)
	LoadWait time.Duration `env:"SOURCE_LOAD_WAIT" default:"30s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs or addresses
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
