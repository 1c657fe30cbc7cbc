package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/brewduel/internal/api"
	"github.com/mcoot/brewduel/internal/factory"
	redisstorage "github.com/mcoot/brewduel/internal/storage/redis"
)

// Environment variables read at startup
const (
	envPort           = "BREWDUEL_PORT"
	envStorageType    = "STORAGE_TYPE"
	envRedisURL       = "REDIS_URL"
	envRedisRoomTTL   = "REDIS_ROOM_TTL"
	envRedisLockTTL   = "REDIS_LOCK_TTL"
	envDebugEndpoints = "BREWDUEL_DEBUG_ENDPOINTS"
	envLogLevel       = "LOG_LEVEL"
)

type config struct {
	server         api.ServerConfig
	factory        factory.Config
	debugEndpoints bool
	logLevel       slog.Level
}

// loadConfig builds the process configuration from the environment
func loadConfig(getenv func(string) string) (*config, error) {
	cfg := &config{
		server:  api.DefaultServerConfig(),
		factory: factory.Config{StorageType: getenv(envStorageType)},
	}

	if v := getenv(envPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%s: invalid port %q", envPort, v)
		}
		cfg.server.Port = port
	}

	if v := getenv(envDebugEndpoints); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envDebugEndpoints, err)
		}
		cfg.debugEndpoints = enabled
	}

	if v := getenv(envLogLevel); v != "" {
		if err := cfg.logLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return nil, fmt.Errorf("%s: %w", envLogLevel, err)
		}
	}

	if cfg.factory.StorageType == factory.StorageTypeRedis {
		redisCfg, err := loadRedisConfig(getenv)
		if err != nil {
			return nil, err
		}
		cfg.factory.RedisConfig = redisCfg
	}

	return cfg, nil
}

func loadRedisConfig(getenv func(string) string) (*redisstorage.Config, error) {
	redisURL := getenv(envRedisURL)
	if redisURL == "" {
		return nil, fmt.Errorf("%s required when %s=redis", envRedisURL, envStorageType)
	}

	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = redisURL

	if v := getenv(envRedisRoomTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envRedisRoomTTL, err)
		}
		redisCfg.RoomTTL = ttl
		redisCfg.ResultTTL = ttl
	}

	if v := getenv(envRedisLockTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envRedisLockTTL, err)
		}
		redisCfg.LockTTL = ttl
	}

	return &redisCfg, nil
}
