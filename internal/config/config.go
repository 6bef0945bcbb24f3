// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// DefaultAppIDAllowlist holds the Canva app ids permitted to request presigned URLs
// when APP_ID_ALLOWLIST is not set.
var DefaultAppIDAllowlist = []string{
	"AAFj-rTO9p4", // Google Drive app
	"AAGOcWldqN8", // Google Drive prod test
	"AAGRQ20WDLE",
	"AAGRQ-CBMjg",
	"AAGRQxOMUt0",
	"AAGRQ9n4erY",
}

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ServerWriteTimeout bounds the time spent writing a response, including streamed assets.
	ServerWriteTimeout time.Duration
	// ShutdownTimeout is the grace period given to in-flight requests on shutdown.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// PublicBaseURL is the scheme and host used to build presigned URLs.
	// When empty, https://<request host> is used.
	PublicBaseURL string

	// KMSKeyURI is the gocloud.dev/secrets URI of the envelope encryption key alias.
	KMSKeyURI string
	// CapabilityTTL is how long a presigned URL stays redeemable.
	CapabilityTTL time.Duration

	// JWKSURLTemplate is the JWKS endpoint, with {appId} replaced by the token audience.
	JWKSURLTemplate string
	// JWKSCacheTTL is how long resolved signing keys are cached. Zero disables caching.
	JWKSCacheTTL time.Duration
	// JWKSFetchTimeout bounds a single JWKS request.
	JWKSFetchTimeout time.Duration
	// AppIDAllowlist is the set of app ids accepted as token audience.
	AppIDAllowlist []string

	// OriginBaseURL is the Drive files endpoint assets are fetched from.
	OriginBaseURL string
	// OriginFetchTimeout is the upper bound for a single asset fetch, body included.
	OriginFetchTimeout time.Duration

	// OAuthAuthorizeURL is the Google authorization endpoint /auth redirects to.
	OAuthAuthorizeURL string

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins. Empty reflects the caller origin.
	CORSAllowOrigins string

	// RateLimitEnabled indicates whether per-IP rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for per-IP rate limiting.
	RateLimitBurst int

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:         env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:         env.GetInt("SERVER_PORT", 3000),
		ServerWriteTimeout: env.GetDuration("SERVER_WRITE_TIMEOUT_SECONDS", 900, time.Second),
		ShutdownTimeout:    env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 30, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		PublicBaseURL: strings.TrimSuffix(env.GetString("PUBLIC_BASE_URL", ""), "/"),

		// Capabilities
		KMSKeyURI:     env.GetString("KMS_KEY_URI", "awskms://alias/asset-proxy?region=us-east-1"),
		CapabilityTTL: env.GetDuration("CAPABILITY_TTL_SECONDS", 240, time.Second),

		// Token verification
		JWKSURLTemplate: env.GetString(
			"JWKS_URL_TEMPLATE",
			"https://api.canva.com/rest/v1/apps/{appId}/jwks",
		),
		JWKSCacheTTL:     env.GetDuration("JWKS_CACHE_TTL_SECONDS", 600, time.Second),
		JWKSFetchTimeout: env.GetDuration("JWKS_FETCH_TIMEOUT_MILLISECONDS", 5000, time.Millisecond),
		AppIDAllowlist:   parseList(env.GetString("APP_ID_ALLOWLIST", ""), DefaultAppIDAllowlist),

		// Origin
		OriginBaseURL: strings.TrimSuffix(
			env.GetString("ORIGIN_BASE_URL", "https://www.googleapis.com/drive/v3/files"),
			"/",
		),
		OriginFetchTimeout: env.GetDuration("ORIGIN_FETCH_TIMEOUT_SECONDS", 600, time.Second),

		OAuthAuthorizeURL: env.GetString(
			"OAUTH_AUTHORIZE_URL",
			"https://accounts.google.com/o/oauth2/v2/auth",
		),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", true),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Rate Limiting (per client IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "drive_proxy"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// parseList splits a comma-separated value, falling back to def when nothing remains.
func parseList(value string, def []string) []string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return append([]string(nil), def...)
	}
	return items
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
