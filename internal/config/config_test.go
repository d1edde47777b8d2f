package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_ACCESS_TTL", "")

	cfg := Load()

	assert.Equal(t, "8010", cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 15*time.Minute, cfg.MinIO.PresignExpiry)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_ACCESS_TTL", "90s")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("AWS_USE_SSL", "true")
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.JWT.AccessTTL)
	assert.Equal(t, 7, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg := Load()
	require.EqualError(t, cfg.Validate(), "JWT_SECRET is required")

	cfg.JWT.Secret = "secret"
	cfg.MinIO.AccessKeyID = "key"
	cfg.MinIO.SecretAccessKey = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "movies", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=movies sslmode=disable TimeZone=UTC connect_timeout=10", cfg.DSN())
}
