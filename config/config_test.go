package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTTL(t *testing.T) {
	fallback := 42 * time.Minute
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"15m", 15 * time.Minute},
		{"12h", 12 * time.Hour},
		{"1d", 24 * time.Hour},
		{"0s", 0},
		{" 12h ", 12 * time.Hour},
		{"", fallback},
		{"h", fallback},
		{"12", fallback},
		{"12x", fallback},
		{"-5m", fallback},
		{"twelve hours", fallback},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTTL(tt.in, fallback))
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "12:00", cfg.DailyLogoutAt)
	assert.Equal(t, "15m", cfg.AccessTokenTTL)
	assert.Equal(t, "12h", cfg.RefreshTokenTTL)
	assert.Equal(t, 20, cfg.AnnualLeaveDays)
	assert.Empty(t, cfg.RedisAddr)
}
