// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"rppg_backend/internal/feature/heartrate/adapters/plot"
	"rppg_backend/internal/feature/heartrate/adapters/remote"
	"rppg_backend/internal/feature/heartrate/domain/entity"
	"rppg_backend/internal/feature/heartrate/estimator"
	"rppg_backend/internal/feature/heartrate/transport/handler"
	"rppg_backend/internal/feature/heartrate/usecase"
	"rppg_backend/internal/platform/cache"
	infrahttp "rppg_backend/internal/platform/http"
)

// NewCachedEstimator wraps the default pipeline with the Redis result cache.
// A nil rdb keeps only request coalescing.
func NewCachedEstimator(rdb *redis.Client, ttl time.Duration) *cache.CachingEstimator {
	return cache.NewCachingEstimator(rdb, ttl, estimator.NewDefault(), cache.DefaultNamespace)
}

// NewAnalyzeUsecase wires an estimator to the PNG renderer and request defaults.
func NewAnalyzeUsecase(est usecase.Estimator, defaultMode entity.Mode) handler.AnalyzeUsecase {
	return usecase.NewAnalyzeUsecase(
		est,
		plot.NewRenderer(estimator.CardiacLowHz, estimator.CardiacHighHz),
		estimator.DefaultSampleRate,
		defaultMode,
	)
}

// NewLocalAnalyzer returns an in-process analyzer without caching.
func NewLocalAnalyzer(defaultMode entity.Mode) handler.AnalyzeUsecase {
	return NewAnalyzeUsecase(estimator.NewDefault(), defaultMode)
}

// NewRemoteClient creates a remote analysis client with a tuned HTTP client.
func NewRemoteClient(baseURL string, timeout time.Duration) *remote.Client {
	return remote.NewClient(baseURL, infrahttp.NewHTTPClient(timeout))
}
