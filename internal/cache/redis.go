package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"paddy-backend/internal/config"
	"paddy-backend/internal/logger"
	"paddy-backend/internal/metrics"
	"paddy-backend/internal/models"
)

const statsTTL = 5 * time.Minute

// Cache holds dashboard payloads in redis, keyed by tenant and season. A nil
// client means caching is disabled and every method degrades to a no-op, so
// the rest of the system never has to care whether redis is reachable.
type Cache struct {
	client *redis.Client
	log    *logger.Logger
}

// New connects to redis when configured. An empty redis host or a failed
// ping yields a disabled cache, not an error: the service runs fine without
// it, just slower.
func New(cfg *config.Config, log *logger.Logger) *Cache {
	if cfg.Redis.Host == "" {
		log.Info("redis not configured, dashboard cache disabled")
		return &Cache{log: log}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, dashboard cache disabled", "error", err)
		client.Close()
		return &Cache{log: log}
	}

	log.Info("redis connected", "addr", client.Options().Addr)
	return &Cache{client: client, log: log}
}

func (c *Cache) Enabled() bool {
	return c.client != nil
}

func statsKey(tenantID, seasonID int) string {
	return fmt.Sprintf("dashboard:%d:%d", tenantID, seasonID)
}

func (c *Cache) GetStats(ctx context.Context, tenantID, seasonID int) (*models.DashboardStats, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, statsKey(tenantID, seasonID)).Bytes()
	if err != nil {
		metrics.DashboardCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}
	var stats models.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		metrics.DashboardCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.DashboardCacheHits.WithLabelValues("hit").Inc()
	return &stats, true
}

func (c *Cache) SetStats(ctx context.Context, tenantID, seasonID int, stats *models.DashboardStats) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey(tenantID, seasonID), data, statsTTL).Err(); err != nil {
		c.log.Warn("dashboard cache write failed", "error", err)
	}
}

// Invalidate drops every cached season of the tenant. Entry and target
// writes call this, so a dashboard read never serves stale totals past the
// next request.
func (c *Cache) Invalidate(ctx context.Context, tenantID int) {
	if c.client == nil {
		return
	}
	pattern := fmt.Sprintf("dashboard:%d:*", tenantID)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}

// IsHealthy pings redis for the health endpoint. A disabled cache reports
// healthy; it is an optional dependency.
func (c *Cache) IsHealthy(ctx context.Context) bool {
	if c.client == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err() == nil
}

func (c *Cache) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
