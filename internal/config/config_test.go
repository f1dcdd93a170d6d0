package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Environment:    "development",
		AllowedOrigins: "http://localhost:3000",
		Session: SessionConfig{
			TTL:           30 * 24 * time.Hour,
			CacheTTL:      10 * time.Minute,
			SweepInterval: time.Hour,
		},
		Content: ContentConfig{Store: "disk", Dir: "./data"},
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"production", "production", true},
		{"prod", "prod", true},
		{"development", "development", false},
		{"dev", "dev", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			assert.Equal(t, tt.expected, cfg.IsProduction())
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"development", "development", true},
		{"dev", "dev", true},
		{"empty", "", true},
		{"production", "production", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *Config)
		errorContains string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero_ttl", func(c *Config) { c.Session.TTL = 0 }, "SESSION_TTL"},
		{"zero_cache_ttl", func(c *Config) { c.Session.CacheTTL = 0 }, "SESSION_CACHE_TTL"},
		{"zero_sweep_interval", func(c *Config) { c.Session.SweepInterval = 0 }, "SESSION_SWEEP_INTERVAL"},
		{"unknown_store", func(c *Config) { c.Content.Store = "ftp" }, "CONTENT_STORE"},
		{"disk_without_dir", func(c *Config) { c.Content.Dir = "" }, "CONTENT_DIR"},
		{"s3_without_bucket", func(c *Config) { c.Content.Store = "s3" }, "S3_BUCKET"},
		{"s3_with_bucket", func(c *Config) {
			c.Content.Store = "s3"
			c.Content.S3Bucket = "posts"
		}, ""},
		{"production_http_origin", func(c *Config) {
			c.Environment = "production"
		}, "https"},
		{"production_https_origin", func(c *Config) {
			c.Environment = "production"
			c.AllowedOrigins = "https://blog.example.com"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
		assert.Equal(t, 10*time.Minute, cfg.Session.CacheTTL)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, "disk", cfg.Content.Store)
		assert.Empty(t, cfg.RabbitMQURL)
	})

	t.Run("environment_overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("SESSION_TTL", "48h")
		t.Setenv("SESSION_CACHE_ENABLED", "false")
		t.Setenv("CONTENT_STORE", "s3")
		t.Setenv("S3_BUCKET", "post-bodies")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, 48*time.Hour, cfg.Session.TTL)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, "post-bodies", cfg.Content.S3Bucket)
	})

	t.Run("invalid_duration", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "forever")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("validation_failure", func(t *testing.T) {
		t.Setenv("CONTENT_STORE", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "S3_BUCKET")
	})
}

func TestParseList(t *testing.T) {
	assert.Nil(t, ParseList(""))
	assert.Equal(t, []string{"a", "b"}, ParseList(" a, ,b "))
}

func TestConfig_SecureCookies(t *testing.T) {
	assert.False(t, (&Config{Environment: "development"}).SecureCookies())
	assert.True(t, (&Config{Environment: "development", CookieSecure: true}).SecureCookies())
	assert.True(t, (&Config{Environment: "production"}).SecureCookies())
}
