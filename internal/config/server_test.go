package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadServerConfigFromEnv_DefaultValues(t *testing.T) {
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT",
		"SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadServerConfigFromEnv()
	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadServerConfigFromEnv_CustomValues(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "8000")
	t.Setenv("SERVER_WRITE_TIMEOUT", "2m")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "30s")

	cfg := LoadServerConfigFromEnv()
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 2*time.Minute, cfg.WriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestServerConfig_GetAddress(t *testing.T) {
	tests := []struct {
		name     string
		config   ServerConfig
		expected string
	}{
		{name: "port only with colon", config: ServerConfig{Port: ":8080"}, expected: ":8080"},
		{name: "host and port", config: ServerConfig{Host: "localhost", Port: "8000"}, expected: "localhost:8000"},
		{name: "host and port with colon", config: ServerConfig{Host: "0.0.0.0", Port: ":8000"}, expected: "0.0.0.0:8000"},
		{name: "ipv6 host", config: ServerConfig{Host: "::1", Port: "8000"}, expected: "[::1]:8000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.GetAddress())
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	valid := ServerConfig{
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}

	tests := []struct {
		name        string
		mutate      func(*ServerConfig)
		errContains string
	}{
		{name: "valid config", mutate: func(*ServerConfig) {}},
		{name: "invalid read timeout", mutate: func(c *ServerConfig) { c.ReadTimeout = 0 }, errContains: "ReadTimeout"},
		{name: "invalid write timeout", mutate: func(c *ServerConfig) { c.WriteTimeout = -time.Second }, errContains: "WriteTimeout"},
		{name: "invalid idle timeout", mutate: func(c *ServerConfig) { c.IdleTimeout = 0 }, errContains: "IdleTimeout"},
		{name: "invalid shutdown timeout", mutate: func(c *ServerConfig) { c.ShutdownTimeout = 0 }, errContains: "ShutdownTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}
