package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/redis"
	"github.com/kemaxx/InventoryInsights/pkg/config"
)

// Requiere TEST_REDIS_ADDR (ej. localhost:6379); si no está, se omite.
func requireRedis(t *testing.T) context.Context {
	t.Helper()
	if os.Getenv("TEST_REDIS_ADDR") == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	return context.Background()
}

func TestForecastCache_GetSet(t *testing.T) {
	ctx := requireRedis(t)
	rdb, err := redis.NewClient(ctx, config.RedisConfig{Addr: os.Getenv("TEST_REDIS_ADDR")})
	require.NoError(t, err)
	defer rdb.Close()

	cache := redis.NewForecastCache(rdb, "test-forecast-"+uuid.NewString())
	got, err := cache.Get(ctx, "GULDER", "v1")
	require.NoError(t, err)
	assert.Nil(t, got)

	in := &entity.ForecastResult{
		StockName:        "GULDER",
		CurrentWeekEnd:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		UpcomingForecast: 42,
		UpcomingUpperCI:  50,
	}
	require.NoError(t, cache.Set(ctx, "GULDER", "v1", in, time.Minute))

	got, err = cache.Get(ctx, "GULDER", "v1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in.UpcomingForecast, got.UpcomingForecast)
	assert.True(t, in.CurrentWeekEnd.Equal(got.CurrentWeekEnd))
}

func TestRunLocker_SegundaCorridaRechazada(t *testing.T) {
	ctx := requireRedis(t)
	rdb, err := redis.NewClient(ctx, config.RedisConfig{Addr: os.Getenv("TEST_REDIS_ADDR")})
	require.NoError(t, err)
	defer rdb.Close()

	locker := redis.NewRunLocker(rdb)
	key := "test-lock:" + uuid.NewString()

	release, err := locker.Acquire(ctx, key, 10*time.Second)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, key, 10*time.Second)
	assert.ErrorIs(t, err, domain.ErrRunInProgress)

	require.NoError(t, release(ctx))
	release2, err := locker.Acquire(ctx, key, 10*time.Second)
	require.NoError(t, err)
	require.NoError(t, release2(ctx))
}
