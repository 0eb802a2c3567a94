// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports the reachability of an optional dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Cache states reported by the health endpoint.
const (
	CacheOK          = "ok"
	CacheDisabled    = "disabled"
	CacheUnavailable = "unavailable"
)

// pingTimeout bounds the dependency check of a single health request.
const pingTimeout = time.Second

// NewHealth returns the /healthz handler.
// The cache is optional, so an unreachable cache is reported but never fails the check.
// disabled is the error cache returns from Ping when it runs without a backend.
func NewHealth(cache Pinger, disabled error) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Explicitly prevent caching
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cacheState(c.Request.Context(), cache, disabled)})
		}
	}
}

func cacheState(ctx context.Context, cache Pinger, disabled error) string {
	if cache == nil {
		return CacheDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := cache.Ping(ctx)
	switch {
	case err == nil:
		return CacheOK
	case disabled != nil && errors.Is(err, disabled):
		return CacheDisabled
	default:
		return CacheUnavailable
	}
}
