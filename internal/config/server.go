// Package config provides configuration management for the ban-check relay.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment represents the deployment environment.
type Environment string

const (
	// EnvDevelopment is the default local development environment.
	EnvDevelopment Environment = "development"
	// EnvStaging is the staging/pre-production environment.
	EnvStaging Environment = "staging"
	// EnvProduction is the production environment.
	EnvProduction Environment = "production"
)

// Upstream response modes. Raw passes the Garena payload through untouched,
// normalized reduces it to the fixed ban-status fields.
const (
	ModeRaw        = "raw"
	ModeNormalized = "normalized"
)

// ServerConfig holds server-level configuration loaded from environment variables.
type ServerConfig struct {
	Environment     Environment
	ListenAddr      string        // address the HTTP server binds to (default: ":8080")
	LogLevel        string        // zerolog level name (default: "info")
	CORSOrigin      string        // Access-Control-Allow-Origin value (default: "*")
	UpstreamURL     string        // override for the Garena endpoint, empty uses the built-in default
	UpstreamTimeout time.Duration // per-call bound on upstream requests (default: 15s)
	ResponseMode    string        // "raw" or "normalized" (default: "raw")
	Proxy           ProxyConfig
}

// LoadServerConfig reads server configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func LoadServerConfig() ServerConfig {
	_ = godotenv.Load()

	env := Environment(os.Getenv("ENV"))
	switch env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// valid
	default:
		env = EnvDevelopment
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":" + getEnv("PORT", "8080")
	}

	timeoutSeconds := getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15)
	if timeoutSeconds <= 0 {
		timeoutSeconds = 15
	}

	mode := strings.ToLower(strings.TrimSpace(os.Getenv("UPSTREAM_RESPONSE_MODE")))
	switch mode {
	case ModeRaw, ModeNormalized:
		// valid
	default:
		mode = ModeRaw
	}

	return ServerConfig{
		Environment:     env,
		ListenAddr:      listenAddr,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "*"),
		UpstreamURL:     os.Getenv("UPSTREAM_URL"),
		UpstreamTimeout: time.Duration(timeoutSeconds) * time.Second,
		ResponseMode:    mode,
		Proxy:           LoadProxyConfig(),
	}
}

// getEnv reads a string from an environment variable, returning the default if unset.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer from an environment variable, returning the default if unset or invalid.
func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
