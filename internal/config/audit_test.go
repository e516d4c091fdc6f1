package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadAuditConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("AUDIT_REFERENCE_REVIEWER", "")
		t.Setenv("AUDIT_SKIP_MALFORMED", "")
		t.Setenv("AUDIT_PARALLEL", "")
		t.Setenv("AUDIT_CSV_PATH", "")

		cfg := LoadAuditConfigFromEnv()
		assert.Equal(t, "Alice", cfg.ReferenceReviewer)
		assert.False(t, cfg.SkipMalformed)
		assert.True(t, cfg.Parallel)
		assert.Empty(t, cfg.CSVPath)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("AUDIT_REFERENCE_REVIEWER", "bob")
		t.Setenv("AUDIT_SKIP_MALFORMED", "true")
		t.Setenv("AUDIT_PARALLEL", "0")
		t.Setenv("AUDIT_CSV_PATH", "inventory.csv")

		cfg := LoadAuditConfigFromEnv()
		assert.Equal(t, "bob", cfg.ReferenceReviewer)
		assert.True(t, cfg.SkipMalformed)
		assert.False(t, cfg.Parallel)
		assert.Equal(t, "inventory.csv", cfg.CSVPath)
	})
}

func TestAuditConfig_Validate(t *testing.T) {
	assert.Error(t, AuditConfig{}.Validate())
}

func TestCORSConfig_AllowAll(t *testing.T) {
	assert.True(t, CORSConfig{}.AllowAll())
	assert.True(t, CORSConfig{AllowedOrigins: []string{"http://localhost:5173", "*"}}.AllowAll())
	assert.False(t, CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}}.AllowAll())
}
