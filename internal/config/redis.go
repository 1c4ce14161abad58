package config

import (
    "context"
    "crypto/tls"
    "log"
    "os"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis using REDIS_HOST/REDIS_PORT (or the
// REDIS_ADDR shorthand), with optional REDIS_PASSWORD, REDIS_DB and
// REDIS_TLS. Redis backs the rate limiter and the browse-page response
// cache only, so a failed ping returns nil and both features shut off
// rather than blocking startup.
func NewRedisClient() *redis.Client {
    addr := os.Getenv("REDIS_ADDR")
    if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
        addr = host + ":" + port
    }
    if addr == "" {
        addr = "localhost:6379"
    }

    opts := &redis.Options{
        Addr:     addr,
        Password: os.Getenv("REDIS_PASSWORD"),
        DB:       atoi(os.Getenv("REDIS_DB")),
    }
    if v := os.Getenv("REDIS_TLS"); v == "1" || strings.EqualFold(v, "true") {
        opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
    }

    client := redis.NewClient(opts)
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        log.Printf("redis unavailable at %s: %v", addr, err)
        return nil
    }
    return client
}
