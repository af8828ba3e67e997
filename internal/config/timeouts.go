package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	EnvironmentHealth time.Duration // Timeout for waiting for environment health after a release
	PollInterval      time.Duration // Fixed interval between registry polls
	Upload            time.Duration // Timeout for artifact upload
	RetryMaxAttempts  int           // Maximum number of retry attempts for transient remote errors
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - BCB_TIMEOUT_ENV_HEALTH (default: 10m)
//   - BCB_POLL_INTERVAL (default: 15s)
//   - BCB_TIMEOUT_UPLOAD (default: 5m)
//   - BCB_RETRY_MAX_ATTEMPTS (default: 5)
//   - BCB_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		EnvironmentHealth: parseDuration("BCB_TIMEOUT_ENV_HEALTH", 10*time.Minute),
		PollInterval:      parseDuration("BCB_POLL_INTERVAL", 15*time.Second),
		Upload:            parseDuration("BCB_TIMEOUT_UPLOAD", 5*time.Minute),
		RetryMaxAttempts:  parseInt("BCB_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("BCB_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
