package middleware

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/driving-licence-admin/internal/config"
)

// captureWriter buffers the response body while forwarding it to the
// client, so a successful response can be cached after the fact.
type captureWriter struct {
	http.ResponseWriter
	status  int
	buf     bytes.Buffer
	size    int64
	limit   int64
	skipped bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 || cw.size+int64(len(b)) <= cw.limit {
		cw.buf.Write(b)
	} else {
		// Once any chunk is dropped the buffer no longer holds the
		// full body and must not be cached.
		cw.skipped = true
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// cacheKey builds a stable key from route and query string.  The tail
// is hashed so long search strings do not blow up key length.
func cacheKey(prefix string, c echo.Context) string {
	tail := c.Path() + "?" + c.Request().URL.RawQuery
	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// ResponseCache caches successful GET responses in Redis.  Every
// response on this API is JSON, so only the status-200 body is
// stored; hits are replayed with Content-Type application/json and an
// X-Cache header for debugging.  With caching disabled or no Redis
// client available the middleware is a pass-through.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.EqualFold(c.Request().Method, http.MethodGet) {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				c.Response().Header().Set("X-Cache", "HIT")
				c.Response().WriteHeader(http.StatusOK)
				_, _ = c.Response().Write(body)
				return nil
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(cfg.MaxBodyBytes)}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && !cw.skipped && cw.buf.Len() > 0 {
				_ = rdb.SetEx(ctx, key, cw.buf.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}
