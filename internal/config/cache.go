package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// CacheConfig configures the Redis response cache. The listing
// catalogues, search and notice pages are the intended consumers: they
// are anonymous, read-heavy and change rarely. Methods lists the HTTP
// methods eligible for caching, KeyStrategy picks which request parts
// form the cache key and MaxBodyBytes caps the size of a stored body.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* environment variables, falling back to
// defaults suitable for the public browse surface.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      methodSet(getenv("CACHE_METHODS", "GET")),
        TTL:          parseDur(getenv("CACHE_TTL", "30s")),
        KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       getenv("CACHE_PREFIX", "cache"),
        MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
    }
}

func methodSet(csv string) map[string]bool {
    set := make(map[string]bool)
    for _, m := range strings.Split(csv, ",") {
        if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
            set[m] = true
        }
    }
    return set
}

// Env helpers shared by the cache, rate limit and core config loaders.

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func envBool(key string, def bool) bool {
    switch strings.ToLower(os.Getenv(key)) {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    }
    return def
}

func atoi(s string) int {
    n, _ := strconv.Atoi(s)
    return n
}

func parseDur(s string) time.Duration {
    d, err := time.ParseDuration(s)
    if err != nil {
        return time.Second
    }
    return d
}
