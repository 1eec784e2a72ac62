package main

import (
	"os"
	"strconv"
	"time"

	"github.com/elC0mpa/oci-freetier/model"
)

// Config holds environment-based configuration for the MCP server
type Config struct {
	OCIConfigFile string
	OCIProfile    string

	ConnectionTimeout time.Duration
	ReadTimeout       time.Duration
	MaxRetries        int
	RetryMaxAttempts  int
	RetryBaseDelay    time.Duration
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCIConfigFile:     os.Getenv("OCI_CONFIG_FILE"),
		OCIProfile:        getEnvOrDefault("OCI_PROFILE", "DEFAULT"),
		ConnectionTimeout: getDurationOrDefault("OCI_CONNECTION_TIMEOUT", model.DefaultConnectionTimeout),
		ReadTimeout:       getDurationOrDefault("OCI_READ_TIMEOUT", model.DefaultReadTimeout),
		MaxRetries:        getIntOrDefault("OCI_MAX_RETRIES", model.DefaultMaxRetries),
		RetryMaxAttempts:  getIntOrDefault("RETRY_MAX_ATTEMPTS", model.DefaultRetryMaxAttempts),
		RetryBaseDelay:    getDurationOrDefault("RETRY_BASE_DELAY", model.DefaultRetryBaseDelay),
	}
}

// Options maps the MCP configuration onto a non-interactive options set.
func (c *Config) Options() model.Options {
	return model.Options{
		NonInteractive:    true,
		OCIConfigFile:     c.OCIConfigFile,
		OCIProfile:        c.OCIProfile,
		ConnectionTimeout: c.ConnectionTimeout,
		ReadTimeout:       c.ReadTimeout,
		MaxRetries:        c.MaxRetries,
		RetryMaxAttempts:  c.RetryMaxAttempts,
		RetryBaseDelay:    c.RetryBaseDelay,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
