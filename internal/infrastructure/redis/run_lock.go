package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
)

var _ ports.RunLocker = (*RunLocker)(nil)

// RunLocker candado distribuido de corrida única.
type RunLocker struct {
	client *redislock.Client
}

// NewRunLocker crea el candado sobre el cliente de Redis.
func NewRunLocker(rdb redislock.RedisClient) *RunLocker {
	return &RunLocker{client: redislock.New(rdb)}
}

// Acquire intenta tomar el candado una sola vez, sin reintentos.
func (l *RunLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrRunInProgress
	}
	if err != nil {
		return nil, domain.External("redis", "obtain lock", err)
	}
	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return domain.External("redis", "release lock", err)
		}
		return nil
	}, nil
}
