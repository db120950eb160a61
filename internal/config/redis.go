package config

// Redis backs the per-user profile cache and the auth rate limiter. The
// client is optional: when the server cannot be reached at startup the
// constructor returns nil and both features degrade to no-ops.

import (
	"context"
	"crypto/tls"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from the loaded configuration and
// verifies the connection with a short ping. It returns nil on failure so
// callers can keep running without Redis.
func NewRedisClient(cfg Config) *redis.Client {
	var tlsConf *tls.Config
	if cfg.RedisTLS {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// redisAddr resolves the server address: REDIS_HOST/REDIS_PORT win over
// the REDIS_ADDR shorthand, and a local instance is the fallback.
func redisAddr() string {
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		return host + ":" + port
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// boolEnv treats "true" (any case) and "1" as true.
func boolEnv(key string) bool {
	v := os.Getenv(key)
	return strings.EqualFold(v, "true") || v == "1"
}
