package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"paddy-backend/internal/cache"
)

type HealthChecker struct {
	db    *pgxpool.Pool
	cache *cache.Cache
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
	Cache    CacheHealth    `json:"cache"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type CacheHealth struct {
	Status  string `json:"status"`
	Enabled bool   `json:"enabled"`
}

func NewHealthChecker(db *pgxpool.Pool, c *cache.Cache) *HealthChecker {
	return &HealthChecker{db: db, cache: c}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()
	cacheHealth := h.checkCache()

	// the cache degrades gracefully, so only the database gates readiness
	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
		Cache:    cacheHealth,
	}
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func (h *HealthChecker) checkCache() CacheHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	status := "healthy"
	if !h.cache.IsHealthy(ctx) {
		status = "unhealthy"
	}
	return CacheHealth{
		Status:  status,
		Enabled: h.cache.Enabled(),
	}
}
