package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// ServerConfig holds all configuration for the server. Tags use mapstructure
// for Viper unmarshalling.
type ServerConfig struct {
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDBName string `mapstructure:"MONGO_DB_NAME"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"` // empty means in-memory cache
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogPretty   bool   `mapstructure:"LOG_PRETTY"`

	OtelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`

	// Session lifecycle. TTLs are magnitude+unit strings (30s, 15m, 12h,
	// 1d); unparsable values fall back to defaults instead of erroring.
	AccessTokenKey  string `mapstructure:"ACCESS_TOKEN_KEY"`
	RefreshTokenKey string `mapstructure:"REFRESH_TOKEN_KEY"`
	AccessTokenTTL  string `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL string `mapstructure:"REFRESH_TOKEN_TTL"`
	DailyLogoutAt   string `mapstructure:"DAILY_LOGOUT_AT"` // "HH:MM" in UTC

	AnnualLeaveDays   int    `mapstructure:"ANNUAL_LEAVE_DAYS"`
	AllowlistCacheTTL string `mapstructure:"ALLOWLIST_CACHE_TTL"`
}

const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 12 * time.Hour
	DefaultAllowlistTTL    = 5 * time.Minute
)

// LoadConfig reads configuration from file, environment variables, and
// defaults.
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/attend/")
	v.AddConfigPath("$HOME/.attend")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/attend_dev")
	v.SetDefault("MONGO_DB_NAME", "attend_dev")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("OTEL_SERVICE_NAME", "attend-server")
	v.SetDefault("ACCESS_TOKEN_KEY", "dev_access_key_change_me")
	v.SetDefault("REFRESH_TOKEN_KEY", "dev_refresh_key_change_me")
	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "12h")
	v.SetDefault("DAILY_LOGOUT_AT", "12:00")
	v.SetDefault("ANNUAL_LEAVE_DAYS", 20)
	v.SetDefault("ALLOWLIST_CACHE_TTL", "5m")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Not found is fine, env vars and defaults carry it.
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return &cfg, nil
}

// ParseTTL parses a magnitude+unit duration string where the unit is one of
// s, m, h, d. An unparsable value falls back to the supplied default; a TTL
// misconfiguration must never keep the server from starting.
func ParseTTL(s string, fallback time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return warnTTL(s, fallback)
	}
	mag, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || mag < 0 {
		return warnTTL(s, fallback)
	}
	switch s[len(s)-1] {
	case 's':
		return time.Duration(mag) * time.Second
	case 'm':
		return time.Duration(mag) * time.Minute
	case 'h':
		return time.Duration(mag) * time.Hour
	case 'd':
		return time.Duration(mag) * 24 * time.Hour
	default:
		return warnTTL(s, fallback)
	}
}

func warnTTL(s string, fallback time.Duration) time.Duration {
	log.Warn().Str("ttl", s).Dur("fallback", fallback).Msg("unparsable TTL, using fallback")
	return fallback
}
