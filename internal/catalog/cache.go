// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"discovery-service/internal/common/logger"
	"discovery-service/internal/common/metrics"
	"discovery-service/internal/models"

	"github.com/redis/go-redis/v9"
)

// nearCellSlackKm is the worst-case distance between two centers that
// quantize to the same cache cell (the cell diagonal). Near fetches with the
// radius padded by it, so an entry written for one center still holds every
// business within the requested radius of any other center sharing the cell.
// The filter pipeline applies the exact radius afterwards.
const nearCellSlackKm = 1.6

// CachedSource is a Redis read-through decorator over a Source. Cache
// failures are logged and bypassed; only an underlying source failure
// surfaces to the caller. Keys for Near are quantized to two decimal places
// (~1.1 km cells) so nearby readings share entries.
type CachedSource struct {
	inner  Source
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(inner Source, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog.cache"}),
	}
}

func (c *CachedSource) Near(ctx context.Context, center models.LocationReading, radiusKm float64) ([]models.BusinessRecord, error) {
	key := fmt.Sprintf("catalog:near:%.2f:%.2f:%.1f", center.Latitude, center.Longitude, radiusKm)
	return c.through(ctx, key, func() ([]models.BusinessRecord, error) {
		return c.inner.Near(ctx, center, radiusKm+nearCellSlackKm)
	})
}

func (c *CachedSource) Active(ctx context.Context) ([]models.BusinessRecord, error) {
	return c.through(ctx, "catalog:active", func() ([]models.BusinessRecord, error) {
		return c.inner.Active(ctx)
	})
}

func (c *CachedSource) Featured(ctx context.Context) ([]models.BusinessRecord, error) {
	return c.through(ctx, "catalog:featured", func() ([]models.BusinessRecord, error) {
		return c.inner.Featured(ctx)
	})
}

func (c *CachedSource) through(ctx context.Context, key string, fetch func() ([]models.BusinessRecord, error)) ([]models.BusinessRecord, error) {
	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		var records []models.BusinessRecord
		if err := json.Unmarshal([]byte(val), &records); err == nil {
			metrics.CatalogCacheHits.WithLabelValues("hit").Inc()
			return records, nil
		}
		// Stale or corrupt payload: drop it and fall through.
		_ = c.redis.Del(ctx, key).Err()
		metrics.CatalogCacheHits.WithLabelValues("error").Inc()
	} else if err == redis.Nil {
		metrics.CatalogCacheHits.WithLabelValues("miss").Inc()
	} else {
		metrics.CatalogCacheHits.WithLabelValues("error").Inc()
		c.logger.Warn("cache read failed, falling back to source", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	records, err := fetch()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return records, nil
}
