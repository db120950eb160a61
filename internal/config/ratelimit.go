package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig controls the fixed-window limiter applied to the
// registration and login endpoints. When Enabled is false or no Redis
// client is available the middleware becomes a pass-through.
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // requests allowed per window
	Window  time.Duration // window length
	Prefix  string        // Redis key namespace
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig. Defaults are used when variables are not set.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled: !strings.EqualFold(os.Getenv("RATE_LIMIT_ENABLED"), "false"),
		Limit:   rlInt("RATE_LIMIT_REQUESTS", 10),
		Window:  rlDur("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:  rlStr("RATE_LIMIT_PREFIX", "ratelimit"),
	}
}

func rlStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func rlInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func rlDur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
