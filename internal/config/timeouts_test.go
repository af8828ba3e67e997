package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	timeouts := LoadTimeouts()

	assert.Equal(t, 10*time.Minute, timeouts.EnvironmentHealth)
	assert.Equal(t, 15*time.Second, timeouts.PollInterval)
	assert.Equal(t, 5*time.Minute, timeouts.Upload)
	assert.Equal(t, 5, timeouts.RetryMaxAttempts)
	assert.Equal(t, 1*time.Second, timeouts.RetryInitialDelay)
}

func TestLoadTimeouts_EnvOverrides(t *testing.T) {
	t.Setenv("BCB_TIMEOUT_ENV_HEALTH", "30m")
	t.Setenv("BCB_POLL_INTERVAL", "5s")
	t.Setenv("BCB_RETRY_MAX_ATTEMPTS", "2")

	timeouts := LoadTimeouts()

	assert.Equal(t, 30*time.Minute, timeouts.EnvironmentHealth)
	assert.Equal(t, 5*time.Second, timeouts.PollInterval)
	assert.Equal(t, 2, timeouts.RetryMaxAttempts)
}

func TestLoadTimeouts_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("BCB_TIMEOUT_ENV_HEALTH", "not-a-duration")
	t.Setenv("BCB_RETRY_MAX_ATTEMPTS", "many")

	timeouts := LoadTimeouts()

	assert.Equal(t, 10*time.Minute, timeouts.EnvironmentHealth)
	assert.Equal(t, 5, timeouts.RetryMaxAttempts)
}
