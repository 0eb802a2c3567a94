package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"rppg_backend/internal/app/di"
	"rppg_backend/internal/app/router"
	"rppg_backend/internal/feature/heartrate/domain/entity"
	hrhandler "rppg_backend/internal/feature/heartrate/transport/handler"
	"rppg_backend/internal/platform/cache"
	"rppg_backend/internal/platform/config"
	platformhandler "rppg_backend/internal/platform/http/handler"
	"rppg_backend/internal/platform/logger"
	infraredis "rppg_backend/internal/platform/redis"
	"rppg_backend/internal/shared/ratelimiter"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.Env)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	mode := entity.Mode(cfg.DefaultMode)
	if !mode.Valid() {
		slog.Error("invalid ANALYZE_DEFAULT_MODE", "mode", cfg.DefaultMode)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Estimator -> usecase -> handler
	est := di.NewCachedEstimator(rdb, cfg.CacheTTL)
	analyzeUC := di.NewAnalyzeUsecase(est, mode)
	hrH := hrhandler.NewHeartRateHandler(analyzeUC)

	r := router.NewRouter(
		hrH,
		platformhandler.NewHealth(est, cache.ErrDisabled),
		ratelimiter.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		cfg.CORSAllowedOrigins,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("heart rate server listening", "addr", srv.Addr, "env", cfg.Env, "default_mode", mode)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}
}
