package server

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/smokyabdulrahman/salat/internal/cache"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

// Config holds the server settings. Every value comes from a SALAT_*
// environment variable, optionally seeded from a .env file.
type Config struct {
	Addr          string
	LogLevel      string
	Redis         cache.RedisConfig
	GeoCacheTTL   time.Duration
	DefaultMethod string
}

// LoadConfig reads the environment, then envFile if it exists. A missing
// file is not an error.
func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SALAT_HTTP_ADDR", ":8080")
	v.SetDefault("SALAT_LOG_LEVEL", "info")
	v.SetDefault("SALAT_REDIS_ADDR", "")
	v.SetDefault("SALAT_REDIS_PASSWORD", "")
	v.SetDefault("SALAT_REDIS_DB", 0)
	v.SetDefault("SALAT_GEO_CACHE_TTL", "24h")
	v.SetDefault("SALAT_DEFAULT_METHOD", prayer.DefaultMethodID)

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	ttl, err := time.ParseDuration(v.GetString("SALAT_GEO_CACHE_TTL"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid SALAT_GEO_CACHE_TTL %q: must be a positive duration", v.GetString("SALAT_GEO_CACHE_TTL"))
	}

	m, err := prayer.LookupMethod(v.GetString("SALAT_DEFAULT_METHOD"))
	if err != nil {
		return nil, fmt.Errorf("invalid SALAT_DEFAULT_METHOD: %w", err)
	}

	cfg := &Config{
		Addr:     v.GetString("SALAT_HTTP_ADDR"),
		LogLevel: v.GetString("SALAT_LOG_LEVEL"),
		Redis: cache.RedisConfig{
			Addr:     v.GetString("SALAT_REDIS_ADDR"),
			Password: v.GetString("SALAT_REDIS_PASSWORD"),
			DB:       v.GetInt("SALAT_REDIS_DB"),
		},
		GeoCacheTTL:   ttl,
		DefaultMethod: m.ID,
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("SALAT_HTTP_ADDR must not be empty")
	}
	return cfg, nil
}

// OpenStore connects to Redis when an address is configured and otherwise
// returns an in-process store. The returned close func is never nil.
func OpenStore(cfg *Config, logger *zap.Logger) (cache.Store, func() error, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("Using in-memory geo cache")
		return cache.NewMemoryStore(), func() error { return nil }, nil
	}
	rs, err := cache.NewRedisStore(cfg.Redis, logger)
	if err != nil {
		return nil, nil, err
	}
	return rs, rs.Close, nil
}
