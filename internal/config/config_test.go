package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_RequiresSealTokenAndOrigin(t *testing.T) {
	cfg := GetDefaultConfig()

	err := cfg.Validate()
	assert.Error(t, err)

	cfg.Seal.Token = "token"
	cfg.CORS.AllowedOrigin = "https://shop.example.com"
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORTAL_SEAL_TOKEN", "env-token")
	t.Setenv("PORTAL_CORS_ALLOWED_ORIGIN", "https://shop.example.com")
	t.Setenv("PORTAL_SEAL_PROGRAM_PREFIX", "club-")

	cfg, err := NewConfig()
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, "env-token", cfg.Seal.Token)
	assert.Equal(t, "https://shop.example.com", cfg.CORS.AllowedOrigin)
	assert.Equal(t, "club-", cfg.Seal.ProgramPrefix)
	assert.Equal(t, DefaultSealBaseURL, cfg.Seal.BaseURL)
}

func TestNewConfig_FailsWithoutToken(t *testing.T) {
	t.Setenv("PORTAL_SEAL_TOKEN", "")
	t.Setenv("PORTAL_CORS_ALLOWED_ORIGIN", "https://shop.example.com")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestPostgresConfig_DSNOverride(t *testing.T) {
	c := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "user=u password=p dbname=d host=db port=5432 sslmode=disable", c.GetDSN())
	assert.Equal(t, "postgres://u:p@db:5432/d?sslmode=disable", c.GetMigrateURL())

	c.DSN = "postgres://other"
	assert.Equal(t, "postgres://other", c.GetDSN())
	assert.Equal(t, "postgres://other", c.GetMigrateURL())
}
