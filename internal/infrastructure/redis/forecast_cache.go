package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

var _ ports.ForecastCache = (*ForecastCache)(nil)

// ForecastCache guarda ForecastResult como JSON bajo forecast:{stock}:{versión}.
type ForecastCache struct {
	rdb    goredis.Cmdable
	prefix string
}

// NewForecastCache crea el caché; prefix vacío usa "forecast".
func NewForecastCache(rdb goredis.Cmdable, prefix string) *ForecastCache {
	if prefix == "" {
		prefix = "forecast"
	}
	return &ForecastCache{rdb: rdb, prefix: prefix}
}

// Key clave de un pronóstico.
func (c *ForecastCache) Key(stock, version string) string {
	return fmt.Sprintf("%s:%s:%s", c.prefix, stock, version)
}

func (c *ForecastCache) Get(ctx context.Context, stock, version string) (*entity.ForecastResult, error) {
	val, err := c.rdb.Get(ctx, c.Key(stock, version)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.External("redis", "get forecast", err)
	}
	var r entity.ForecastResult
	if err := json.Unmarshal(val, &r); err != nil {
		return nil, fmt.Errorf("decodificar pronóstico en caché: %w", err)
	}
	return &r, nil
}

func (c *ForecastCache) Set(ctx context.Context, stock, version string, result *entity.ForecastResult, ttl time.Duration) error {
	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("codificar pronóstico: %w", err)
	}
	if err := c.rdb.Set(ctx, c.Key(stock, version), b, ttl).Err(); err != nil {
		return domain.External("redis", "set forecast", err)
	}
	return nil
}
