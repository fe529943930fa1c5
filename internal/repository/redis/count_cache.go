// Package redis decorates an AccountRepository with a Redis-backed cache of
// the total account count. Pages are never cached; only COUNT(*) is, since it
// is the expensive half of a listing on large tables.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/maxviazov/accounts-service/internal/config"
	"github.com/maxviazov/accounts-service/internal/model"
	"github.com/maxviazov/accounts-service/internal/repository"
)

// CountKey holds the cached population size.
const CountKey = "accounts:total_count"

const defaultCountTTL = 30 * time.Second

type countCachedRepository struct {
	next   repository.AccountRepository
	client goredis.UniversalClient
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCountCachedRepository wraps next. A zero ttl falls back to 30s; the
// cache never stores a count without expiry.
func NewCountCachedRepository(next repository.AccountRepository, client goredis.UniversalClient, ttl time.Duration, logger zerolog.Logger) repository.AccountRepository {
	if ttl <= 0 {
		ttl = defaultCountTTL
	}
	return &countCachedRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    logger.With().Str("module", "repository").Str("component", "count_cache").Logger(),
	}
}

func (r *countCachedRepository) ListDesc(ctx context.Context, p repository.Page) ([]model.Account, error) {
	return r.next.ListDesc(ctx, p)
}

// Count serves from Redis when possible. Redis failures degrade to the
// wrapped store and are only logged.
func (r *countCachedRepository) Count(ctx context.Context) (int64, error) {
	raw, err := r.client.Get(ctx, CountKey).Result()
	switch {
	case err == nil:
		if n, perr := strconv.ParseInt(raw, 10, 64); perr == nil && n >= 0 {
			return n, nil
		}
		r.log.Warn().Str("key", CountKey).Str("value", raw).Msg("discarding malformed cached count")
	case errors.Is(err, goredis.Nil):
	default:
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		r.log.Warn().Err(err).Str("key", CountKey).Msg("count cache read failed")
	}

	n, err := r.next.Count(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.client.Set(ctx, CountKey, strconv.FormatInt(n, 10), r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", CountKey).Msg("count cache write failed")
	}
	return n, nil
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("Successfully connected to Redis")
	return client, nil
}

var _ repository.AccountRepository = (*countCachedRepository)(nil)
