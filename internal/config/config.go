package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

type TelemetryConfig struct {
	// Seed seeds the randomness sources; 0 derives a seed from the clock.
	Seed                 uint64 `mapstructure:"seed"`
	BroadcastIntervalSec int    `mapstructure:"broadcast_interval_seconds"`
	DefaultHistoryHours  int    `mapstructure:"default_history_hours"`
	DefaultForecastHours int    `mapstructure:"default_forecast_hours"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("cache.ttl_seconds", 30)
	viper.SetDefault("rate_limit.requests_per_minute", 120)
	viper.SetDefault("rate_limit.burst", 20)
	viper.SetDefault("telemetry.seed", 0)
	viper.SetDefault("telemetry.broadcast_interval_seconds", 5)
	viper.SetDefault("telemetry.default_history_hours", 24)
	viper.SetDefault("telemetry.default_forecast_hours", 6)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
