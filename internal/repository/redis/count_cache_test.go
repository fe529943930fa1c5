package redis_test

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/accounts-service/internal/repository"
	"github.com/maxviazov/accounts-service/internal/repository/contract"
	"github.com/maxviazov/accounts-service/internal/repository/memory"
	accredis "github.com/maxviazov/accounts-service/internal/repository/redis"
)

// countingRepo records how often Count reaches the underlying store.
type countingRepo struct {
	*memory.AccountRepository
	counts atomic.Int32
}

func (c *countingRepo) Count(ctx context.Context) (int64, error) {
	c.counts.Add(1)
	return c.AccountRepository.Count(ctx)
}

// setupTestRedis connects to REDIS_ADDR; tests are skipped when it is not set.
func setupTestRedis(t *testing.T) *goredis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping redis tests")
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.Ping(context.Background()).Err())
	require.NoError(t, client.Del(context.Background(), accredis.CountKey).Err())
	t.Cleanup(func() {
		_ = client.Del(context.Background(), accredis.CountKey).Err()
		_ = client.Close()
	})
	return client
}

func TestCountCache_HitAfterMiss(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()
	inner := &countingRepo{AccountRepository: memory.NewAccountRepository(contract.Accounts(1, 2, 3)...)}
	repo := accredis.NewCountCachedRepository(inner, client, time.Minute, zerolog.New(io.Discard))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	inner.Put(contract.Accounts(4)...)
	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n, "second read should come from cache")
	assert.Equal(t, int32(1), inner.counts.Load())

	ttl := client.TTL(ctx, accredis.CountKey).Val()
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	require.NoError(t, client.Del(ctx, accredis.CountKey).Err())
	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestCountCache_MalformedValueFallsBack(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, client.Set(ctx, accredis.CountKey, "not-a-number", time.Minute).Err())

	repo := accredis.NewCountCachedRepository(memory.NewAccountRepository(contract.Accounts(1, 2)...), client, time.Minute, zerolog.New(io.Discard))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "2", client.Get(ctx, accredis.CountKey).Val())
}

func TestCountCache_RedisDownDegradesToStore(t *testing.T) {
	// nothing listens on this port; every redis call fails fast
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	repo := accredis.NewCountCachedRepository(memory.NewAccountRepository(contract.Accounts(5, 6)...), client, 0, zerolog.New(io.Discard))
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	page, err := repo.ListDesc(context.Background(), repository.Page{Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(6), page[0].AccountID)
}

func TestCountCache_ListDescDelegates(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	repo := accredis.NewCountCachedRepository(memory.NewAccountRepository(contract.Accounts(1, 2, 3, 4, 5)...), client, time.Second, zerolog.New(io.Discard))

	page, err := repo.ListDesc(context.Background(), repository.Page{Limit: 2, Offset: 1})
	require.NoError(t, err)
	got := []int64{}
	for _, a := range page {
		got = append(got, a.AccountID)
	}
	assert.Equal(t, []int64{4, 3}, got)
}
