package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/brewduel/internal/factory"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(env(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.server.Port)
	assert.Empty(t, cfg.factory.StorageType)
	assert.Nil(t, cfg.factory.RedisConfig)
	assert.False(t, cfg.debugEndpoints)
	assert.Equal(t, slog.LevelInfo, cfg.logLevel)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := loadConfig(env(map[string]string{
		envPort:           "9090",
		envDebugEndpoints: "true",
		envLogLevel:       "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.server.Port)
	assert.True(t, cfg.debugEndpoints)
	assert.Equal(t, slog.LevelDebug, cfg.logLevel)
}

func TestLoadConfigRedis(t *testing.T) {
	cfg, err := loadConfig(env(map[string]string{
		envStorageType:  factory.StorageTypeRedis,
		envRedisURL:     "redis://cache:6379/1",
		envRedisRoomTTL: "2h",
		envRedisLockTTL: "3s",
	}))
	require.NoError(t, err)

	require.NotNil(t, cfg.factory.RedisConfig)
	assert.Equal(t, "redis://cache:6379/1", cfg.factory.RedisConfig.URL)
	assert.Equal(t, 2*time.Hour, cfg.factory.RedisConfig.RoomTTL)
	assert.Equal(t, 2*time.Hour, cfg.factory.RedisConfig.ResultTTL)
	assert.Equal(t, 3*time.Second, cfg.factory.RedisConfig.LockTTL)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad port":          {envPort: "http"},
		"port out of range": {envPort: "70000"},
		"bad debug flag":    {envDebugEndpoints: "sometimes"},
		"bad log level":     {envLogLevel: "loud"},
		"redis without url": {envStorageType: factory.StorageTypeRedis},
		"bad room ttl":      {envStorageType: factory.StorageTypeRedis, envRedisURL: "redis://x", envRedisRoomTTL: "1 day"},
		"bad lock ttl":      {envStorageType: factory.StorageTypeRedis, envRedisURL: "redis://x", envRedisLockTTL: "soon"},
	}

	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(env(values))
			assert.Error(t, err)
		})
	}
}
