package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/stayplan/stayplan-server/internal/config"
)

// recordingWriter tees the response body into a buffer, capped at
// limit bytes, while still streaming it to the client.
type recordingWriter struct {
    http.ResponseWriter
    status  int
    body    bytes.Buffer
    written int64
    limit   int64
}

func (w *recordingWriter) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
    if w.limit <= 0 {
        w.body.Write(b)
    } else if w.written < w.limit {
        if keep := w.limit - w.written; int64(len(b)) <= keep {
            w.body.Write(b)
        } else {
            w.body.Write(b[:keep])
        }
    }
    w.written += int64(len(b))
    return w.ResponseWriter.Write(b)
}

// NewRedisCache caches whole GET responses in Redis. The public browse
// surface (listing catalogues, search, notices) is read-heavy and
// anonymous, so responses are stored with headers and body and a hit
// is byte-identical to what the handler would have produced. With
// caching disabled or Redis absent it degrades to a pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 5 * time.Minute
    }
    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }
            key := cacheKey(cfg, c)

            if raw, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
                if status, hdr, body, ok := decodeCached(raw); ok {
                    for name, vals := range hdr {
                        if strings.EqualFold(name, "Content-Length") {
                            continue // Echo recomputes it
                        }
                        for _, v := range vals {
                            c.Response().Header().Add(name, v)
                        }
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    if len(body) > 0 {
                        _, _ = c.Response().Write(body)
                    }
                    return nil
                }
            }

            rw := &recordingWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = rw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            // Only successful, fully-captured responses are worth storing.
            if rw.status != http.StatusOK || (maxBody > 0 && rw.written > maxBody) {
                return nil
            }
            hdr := make(http.Header, len(c.Response().Header()))
            for name, vals := range c.Response().Header() {
                hdr[name] = append([]string(nil), vals...)
            }
            if payload, err := encodeCached(rw.status, hdr, rw.body.Bytes()); err == nil {
                // Detached context: the entry should land even when the
                // client hangs up right after the response.
                _ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
            }
            return nil
        }
    }
}

// cacheKey hashes the request parts selected by the key strategy under
// the configured prefix.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
    r := c.Request()
    route := c.Path()
    query := r.URL.RawQuery

    var parts []string
    switch strings.ToLower(cfg.KeyStrategy) {
    case "route":
        parts = []string{"route", route}
    case "method_route":
        parts = []string{"method", r.Method, "route", route}
    case "method_route_query":
        parts = []string{"method", r.Method, "route", route, "q", query}
    default: // route_query
        parts = []string{"route", route, "q", query}
    }
    sum := sha1.Sum([]byte(strings.Join(parts, ":")))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// Cached entries pack [4B status][4B header length][header JSON][body].

func encodeCached(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    out := make([]byte, 8+len(hdrJSON)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    copy(out[8:], hdrJSON)
    copy(out[8+len(hdrJSON):], body)
    return out, nil
}

func decodeCached(raw []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(raw) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(raw[0:4]))
    hlen := int(binary.BigEndian.Uint32(raw[4:8]))
    if hlen < 0 || 8+hlen > len(raw) {
        return 0, nil, nil, false
    }
    header = make(http.Header)
    if hlen > 0 {
        if err := json.Unmarshal(raw[8:8+hlen], &header); err != nil {
            return 0, nil, nil, false
        }
    }
    return status, header, raw[8+hlen:], true
}
