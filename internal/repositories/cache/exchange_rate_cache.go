// Package cache holds Redis read-through decorators for repositories.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/placement_ledger/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "fx:"
	genPrefix     = "fx:gen:"
	scanBatchSize = 100
)

// ExchangeRateCache fronts an exchange rate repository with Redis. Only hits
// are cached; a miss always goes to the repository so a rate recorded later
// is seen immediately. Lookup keys carry a per-pair generation that every
// write bumps, because a back-dated rate can change what "on or before"
// resolves to. A lookup that raced with a write fills a key of the old
// generation, which no later read uses. Redis failures are logged and fall
// through to the repository.
type ExchangeRateCache struct {
	next   portsrepo.ExchangeRateRepositoryFacade
	client redis.UniversalClient
	ttl    time.Duration
}

// NewExchangeRateCache wraps next. A zero ttl keeps entries until the pair is
// written to.
func NewExchangeRateCache(next portsrepo.ExchangeRateRepositoryFacade, client redis.UniversalClient, ttl time.Duration) *ExchangeRateCache {
	return &ExchangeRateCache{next: next, client: client, ttl: ttl}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*ExchangeRateCache)(nil)

func genKey(from, to string) string {
	return fmt.Sprintf("%s%s:%s", genPrefix, from, to)
}

func pairPattern(from, to string) string {
	return fmt.Sprintf("%s%s:%s:*", keyPrefix, from, to)
}

func lookupKey(from, to string, gen int64, asOf time.Time) string {
	return fmt.Sprintf("%s%s:%s:g%d:%s", keyPrefix, from, to, gen, asOf.Format(time.DateOnly))
}

// generation reads the pair's current generation. A pair never written to
// is at generation zero.
func (c *ExchangeRateCache) generation(ctx context.Context, from, to string) (int64, error) {
	gen, err := c.client.Get(ctx, genKey(from, to)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// FindRateOnOrBefore implements portsrepo.ExchangeRateReader.
func (c *ExchangeRateCache) FindRateOnOrBefore(ctx context.Context, from, to string, asOf time.Time) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	gen, err := c.generation(ctx, from, to)
	if err != nil {
		logger.Warn("fx cache generation read failed",
			slog.String("from", from),
			slog.String("to", to),
			slog.String("error", err.Error()))
		return c.next.FindRateOnOrBefore(ctx, from, to, asOf)
	}
	key := lookupKey(from, to, gen, asOf)

	val, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rate domain.ExchangeRate
		if uerr := json.Unmarshal(val, &rate); uerr == nil {
			return &rate, nil
		}
		logger.Warn("Discarding undecodable fx cache entry", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		logger.Warn("fx cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	rate, err := c.next.FindRateOnOrBefore(ctx, from, to, asOf)
	if err != nil {
		return nil, err
	}

	if payload, merr := json.Marshal(rate); merr == nil {
		if serr := c.client.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			logger.Warn("fx cache write failed", slog.String("key", key), slog.String("error", serr.Error()))
		}
	}
	return rate, nil
}

// ListExchangeRates is not cached.
func (c *ExchangeRateCache) ListExchangeRates(ctx context.Context, from, to string) ([]domain.ExchangeRate, error) {
	return c.next.ListExchangeRates(ctx, from, to)
}

// SaveExchangeRate writes through, bumps the pair's generation and drops the
// entries it superseded.
func (c *ExchangeRateCache) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	if err := c.next.SaveExchangeRate(ctx, rate); err != nil {
		return err
	}
	if err := c.invalidate(ctx, rate.FromCurrencyCode, rate.ToCurrencyCode); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("fx cache invalidation failed",
			slog.String("from", rate.FromCurrencyCode),
			slog.String("to", rate.ToCurrencyCode),
			slog.String("error", err.Error()))
	}
	return nil
}

func (c *ExchangeRateCache) invalidate(ctx context.Context, from, to string) error {
	if err := c.client.Incr(ctx, genKey(from, to)).Err(); err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pairPattern(from, to), scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis batch delete: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
