package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}}))

	assert.Equal(t, "5000", cfg.HTTP.Port)
	assert.Equal(t, "dev-secret", cfg.JWT.Secret)
	assert.Equal(t, "sgcgartglass", cfg.JWT.Issuer)
	assert.Equal(t, time.Hour, cfg.JWT.TTL())
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
	assert.Equal(t, "https://openapi.etsy.com/v3/application", cfg.Etsy.BaseApiURL)
	assert.Equal(t, 10*time.Second, cfg.Etsy.Timeout)
	assert.Equal(t, DriverSQLite, cfg.Database.ResolvedDriver())
}

func TestParsePrefixedSections(t *testing.T) {
	cfg := &Config{}
	err := env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{
		"DB_HOST":         "db.internal",
		"DB_NAME":         "shop",
		"JWT_TTL_SECONDS": "60",
		"ETSY_API_KEY":    "key",
		"CORS_ORIGINS":    "https://a.example, https://b.example ,",
	}})
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.Database.ResolvedDriver())
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, time.Minute, cfg.JWT.TTL())
	assert.Equal(t, "key", cfg.Etsy.APIKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins())
}

func TestResolvedDriver(t *testing.T) {
	tests := []struct {
		name string
		db   Database
		want string
	}{
		{name: "explicit sqlite wins over host", db: Database{Driver: "SQLite", Host: "h"}, want: DriverSQLite},
		{name: "explicit mysql", db: Database{Driver: "mysql"}, want: DriverMySQL},
		{name: "host implies mysql", db: Database{Host: "h"}, want: DriverMySQL},
		{name: "fallback sqlite", db: Database{}, want: DriverSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.db.ResolvedDriver())
		})
	}
}

func TestAllowedOriginsWildcard(t *testing.T) {
	assert.Equal(t, []string{"*"}, CORS{Origins: " * "}.AllowedOrigins())
	assert.Equal(t, []string{"*"}, CORS{}.AllowedOrigins())
}

func TestConfigured(t *testing.T) {
	assert.False(t, JWT{Secret: DefaultJWTSecret}.Configured())
	assert.True(t, JWT{Secret: "s3cret"}.Configured())
	assert.False(t, Admin{Email: "admin@example.com"}.Configured())
	assert.True(t, Admin{Email: "admin@example.com", PasswordHash: "$2a$"}.Configured())
	assert.False(t, Etsy{APIKey: "key"}.Configured())
	assert.True(t, Etsy{APIKey: "key", SharedSecret: "shh"}.Configured())
}
