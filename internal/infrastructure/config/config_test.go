package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("FRAUDLENS_AUTH__JWT_SECRET", testSecret)
	t.Setenv("FRAUDLENS_SERVER__PORT", "9100")
	t.Setenv("FRAUDLENS_REDIS__LOCK_TTL", "45s")
	t.Setenv("FRAUDLENS_SCORING__CONTAMINATION", "0.2")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, 0.2, cfg.Scoring.Contamination)
	assert.Equal(t, 100, cfg.Scoring.Trees)
	assert.Equal(t, "fraudlens:lock:", cfg.Redis.LockPrefix)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
environment: production
log_level: warn
auth:
  jwt_secret: ` + testSecret + `
seed:
  enabled: false
scoring:
  trees: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 50, cfg.Scoring.Trees)
	assert.False(t, cfg.Seed.Enabled)
	assert.False(t, cfg.IsDevelopment())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, "auth.jwt_secret"},
		{"auth disabled needs no secret", func(c *Config) { c.Auth.Enabled = false; c.Auth.JWTSecret = "" }, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"contamination too high", func(c *Config) { c.Scoring.Contamination = 0.7 }, "scoring.contamination"},
		{"probability out of range", func(c *Config) { c.Scoring.FingerprintMismatchProbability = 1.5 }, "fingerprint_mismatch_probability"},
		{"no trees", func(c *Config) { c.Scoring.Trees = 0 }, "scoring.trees"},
		{"seed count", func(c *Config) { c.Seed.Count = 0 }, "seed.count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.Auth.JWTSecret = testSecret
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
