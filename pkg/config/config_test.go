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
	assert.Equal(t, "consulta-cnpj", cfg.App.Name)
	assert.Equal(t, 15*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.DB.Enabled(), "sin DB_HOST ni DATABASE_URL el histórico queda desactivado")
	assert.Empty(t, cfg.Redis.URL)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("CACHE_TTL_MINUTES", 5)
	v.Set("DB_HOST", "db")
	v.Set("DB_PASSWORD", "p@ss:word")
	v.Set("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, "postgres://postgres:p%40ss%3Aword@db:5432/consulta_cnpj?sslmode=disable", cfg.DB.ConnectionString())
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestFromViper_TimeoutInvalido(t *testing.T) {
	v := viper.New()
	v.Set("REGISTRY_TIMEOUT_SECONDS", "0")
	_, err := fromViper(v)
	assert.Error(t, err)
}
