// Package router assembles the HTTP route table.
package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	hrhandler "rppg_backend/internal/feature/heartrate/transport/handler"
	"rppg_backend/internal/feature/heartrate/transport/http/dto"
	"rppg_backend/internal/shared/ratelimiter"
)

// NewRouter builds the gin engine.
//
// Routes:
//   - GET /                 liveness message
//   - GET|HEAD|OPTIONS /healthz
//   - POST /analyze         rate limited analysis
//   - OPTIONS /analyze      CORS preflight
func NewRouter(hr *hrhandler.HeartRateHandler, health gin.HandlerFunc,
	limiter ratelimiter.RateLimiterInterface, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(allowedOrigins)))

	// Connectivity checks
	r.GET("/", hr.Index)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// Analysis
	r.OPTIONS("/analyze", hr.Preflight)
	r.POST("/analyze", ratelimiter.Middleware(limiter, dto.MsgTooManyRequests), hr.Analyze)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
