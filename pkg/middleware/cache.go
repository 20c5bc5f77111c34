package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rasoilabs/pos-backend/pkg/logger"
)

// CacheConfig holds response cache configuration
type CacheConfig struct {
	DefaultTTL time.Duration
	// Paths limits caching to requests whose path starts with one of these
	// prefixes. Empty means cache every GET.
	Paths []string
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{DefaultTTL: 30 * time.Second}
}

func (c CacheConfig) cacheable(path string) bool {
	if len(c.Paths) == 0 {
		return true
	}
	for _, p := range c.Paths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Cache caches successful GET responses in Redis. The key embeds the
// request path so mutating handlers can invalidate by path prefix.
func Cache(redisClient *redis.Client, config CacheConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if redisClient == nil || r.Method != http.MethodGet || !config.cacheable(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKey(r)
			ctx := r.Context()

			cached, err := redisClient.Get(ctx, key).Bytes()
			if err == nil && len(cached) > 0 {
				logger.Debug(ctx).Str("path", r.URL.Path).Msg("Cache hit")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.Write(cached)
				return
			}

			rec := &recordingWriter{ResponseWriter: w, statusCode: http.StatusOK}
			rec.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(rec, r)

			if rec.statusCode == http.StatusOK && rec.body.Len() > 0 {
				if err := redisClient.Set(ctx, key, rec.body.Bytes(), config.DefaultTTL).Err(); err != nil {
					logger.Warn(ctx).Err(err).Str("key", key).Msg("Failed to cache response")
				}
			}
		})
	}
}

// InvalidateCache removes cached responses whose key matches the path pattern
func InvalidateCache(redisClient *redis.Client, pathPattern string) error {
	if redisClient == nil {
		return nil
	}

	ctx := context.Background()
	iter := redisClient.Scan(ctx, 0, "cache:"+pathPattern+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := redisClient.Del(ctx, keys...).Err(); err != nil {
			return err
		}
		logger.Logger.Info().
			Int("count", len(keys)).
			Str("pattern", pathPattern).
			Msg("Cache invalidated")
	}

	return nil
}

func cacheKey(r *http.Request) string {
	hash := sha256.Sum256([]byte(r.URL.RawQuery + ":" + r.Header.Get("Authorization")))
	return fmt.Sprintf("cache:%s:%s", r.URL.Path, hex.EncodeToString(hash[:8]))
}

// recordingWriter buffers the response body so it can be cached after the
// handler runs, while still writing through to the client.
type recordingWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *recordingWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}
