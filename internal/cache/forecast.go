package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/resale-ops/backend-go/internal/config"
	"github.com/resale-ops/backend-go/internal/domain"
)

const (
	forecastSummaryKeyPrefix = "forecast:summary"
	scanBatchSize            = 100
	defaultForecastTTL       = 5 * time.Minute
)

// ForecastSummaryCache keeps recently computed summaries keyed by their
// window sizes. The engine is deterministic over the day's data, so a short
// TTL is all the invalidation the read path needs; report ingestion calls
// InvalidateAll after loading new orders.
type ForecastSummaryCache interface {
	GetSummary(ctx context.Context, historicalDays, forecastDays int) (*domain.ForecastSummary, bool, error)
	SetSummary(ctx context.Context, historicalDays, forecastDays int, summary *domain.ForecastSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

func NewForecastCache(cfg config.CacheConfig) (ForecastSummaryCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopForecastCache() ForecastSummaryCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) GetSummary(ctx context.Context, historicalDays, forecastDays int) (*domain.ForecastSummary, bool, error) {
	key := buildForecastSummaryKey(historicalDays, forecastDays)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.ForecastSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode forecast summary cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisForecastCache) SetSummary(ctx context.Context, historicalDays, forecastDays int, summary *domain.ForecastSummary) error {
	key := buildForecastSummaryKey(historicalDays, forecastDays)
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode forecast summary cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, forecastSummaryKeyPrefix, scanBatchSize)
}

func (n *noopForecastCache) GetSummary(ctx context.Context, historicalDays, forecastDays int) (*domain.ForecastSummary, bool, error) {
	return nil, false, nil
}

func (n *noopForecastCache) SetSummary(ctx context.Context, historicalDays, forecastDays int, summary *domain.ForecastSummary) error {
	return nil
}

func (n *noopForecastCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildForecastSummaryKey(historicalDays, forecastDays int) string {
	return fmt.Sprintf("%s:%d:%d", forecastSummaryKeyPrefix, historicalDays, forecastDays)
}
