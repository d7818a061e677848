package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "postgres://postgres:@localhost:5432/container_ledger?sslmode=disable", cfg.DB.ConnectionString())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Empty(t, cfg.Redis.Addr, "sin REDIS_ADDR la caché queda apagada")
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/ledger")
	v.Set("DB_PORT", "6543")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("REDIS_ADDR", "redis:6379")
	v.Set("REDIS_TTL", "90")
	v.Set("HTTP_READ_TIMEOUT", "2m")
	v.Set("METRICS_ENABLED", "false")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/ledger", cfg.DB.ConnectionString())
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 2*time.Minute, cfg.HTTP.ReadTimeout)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestFromViper_Validacion(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	_, err := fromViper(v)
	assert.ErrorContains(t, err, "JWT_SECRET")

	v = viper.New()
	v.Set("DB_MIN_CONNS", "30")
	_, err = fromViper(v)
	assert.ErrorContains(t, err, "DB_MIN_CONNS")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "ops", Password: "p@ss/w:rd", DBName: "ledger", SSLMode: "require"}
	assert.Equal(t, "postgres://ops:p%40ss%2Fw%3Ard@db:5432/ledger?sslmode=require", c.DSN())
}
